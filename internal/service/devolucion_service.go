package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/dto"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/model"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DevolucionService enforces the no-cash-refund policy: merchandise is only
// traded for merchandise of equal value, exactly once per venta.
type DevolucionService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearDevolucionRequest) (*dto.DevolucionResponse, error)
	ObtenerPorVenta(ctx context.Context, ventaID uuid.UUID) (*dto.DevolucionResponse, error)
	ListarRecientes(ctx context.Context, limit int) ([]dto.DevolucionResponse, error)
}

type devolucionService struct {
	repo      repository.DevolucionRepository
	ventaRepo repository.VentaRepository
}

func NewDevolucionService(repo repository.DevolucionRepository, ventaRepo repository.VentaRepository) DevolucionService {
	return &devolucionService{repo: repo, ventaRepo: ventaRepo}
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// Acceptance rule for diferencia = total_cambiado − total_devuelto:
//
//	diferencia < −0.01  → ErrReembolsoEfectivo  (cash would leave the store)
//	diferencia > +0.01  → ErrValorExcedido      (excess needs a separate sale)
//	otherwise           → accepted
//
// The duplicate check runs inside the insert transaction AND the store carries
// a unique index on venta_id, so concurrent requests against the same venta
// yield exactly one devolucion.
//
// Stock is deliberately not touched for either side of the exchange.

func (s *devolucionService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearDevolucionRequest) (*dto.DevolucionResponse, error) {
	if usuarioID == uuid.Nil {
		return nil, fmt.Errorf("%w: falta el usuario", ErrValidacion)
	}
	if len(req.LineasDevueltas) == 0 || len(req.LineasEntregadas) == 0 {
		return nil, fmt.Errorf("%w: la devolución necesita líneas devueltas y entregadas", ErrValidacion)
	}
	ventaID, err := uuid.Parse(req.VentaID)
	if err != nil {
		return nil, fmt.Errorf("%w: venta_id inválido", ErrValidacion)
	}

	devueltas, totalDevuelto, err := resolverLineas(req.LineasDevueltas, "devuelto")
	if err != nil {
		return nil, err
	}
	entregadas, totalCambiado, err := resolverLineas(req.LineasEntregadas, "entregado")
	if err != nil {
		return nil, err
	}

	diferencia := totalCambiado.Sub(totalDevuelto)
	if diferencia.LessThan(toleranciaMoneda.Neg()) {
		return nil, ErrReembolsoEfectivo
	}
	if diferencia.GreaterThan(toleranciaMoneda) {
		return nil, ErrValorExcedido
	}

	var dev model.Devolucion
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venta, err := s.ventaRepo.FindByID(ctx, ventaID)
		if err != nil {
			return ErrNotFound
		}
		if venta.Estado != "completada" {
			return fmt.Errorf("%w: solo se devuelven ventas completadas", ErrValidacion)
		}

		existe, err := s.repo.ExistsByVentaID(ctx, tx, ventaID)
		if err != nil {
			return err
		}
		if existe {
			return ErrDevolucionDuplicada
		}

		dev = model.Devolucion{
			VentaID:       ventaID,
			UsuarioID:     usuarioID,
			TotalDevuelto: totalDevuelto,
			TotalCambiado: totalCambiado,
			Diferencia:    diferencia,
			Lineas:        append(devueltas, entregadas...),
		}
		if err := s.repo.Create(ctx, tx, &dev); err != nil {
			// Unique index on venta_id catches the race the existence check can miss.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDevolucionDuplicada
			}
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return devolucionToResponse(&dev), nil
}

func (s *devolucionService) ObtenerPorVenta(ctx context.Context, ventaID uuid.UUID) (*dto.DevolucionResponse, error) {
	dev, err := s.repo.FindByVentaID(ctx, ventaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return devolucionToResponse(dev), nil
}

func (s *devolucionService) ListarRecientes(ctx context.Context, limit int) ([]dto.DevolucionResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	devs, err := s.repo.ListRecientes(ctx, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.DevolucionResponse, 0, len(devs))
	for i := range devs {
		resp = append(resp, *devolucionToResponse(&devs[i]))
	}
	return resp, nil
}

// resolverLineas validates a request line set and totals qty × precio.
func resolverLineas(lineas []dto.LineaDevolucionRequest, tipo string) ([]model.LineaDevolucion, decimal.Decimal, error) {
	out := make([]model.LineaDevolucion, 0, len(lineas))
	total := decimal.Zero
	for _, l := range lineas {
		pid, err := uuid.Parse(l.ProductoID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("%w: producto_id inválido", ErrValidacion)
		}
		if l.Cantidad <= 0 {
			return nil, decimal.Zero, fmt.Errorf("%w: la cantidad debe ser mayor a cero", ErrValidacion)
		}
		total = total.Add(l.PrecioUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad))))
		out = append(out, model.LineaDevolucion{
			Tipo:           tipo,
			ProductoID:     pid,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
		})
	}
	return out, total, nil
}

func devolucionToResponse(d *model.Devolucion) *dto.DevolucionResponse {
	resp := &dto.DevolucionResponse{
		ID:            d.ID.String(),
		VentaID:       d.VentaID.String(),
		UsuarioID:     d.UsuarioID.String(),
		TotalDevuelto: d.TotalDevuelto,
		TotalCambiado: d.TotalCambiado,
		Diferencia:    d.Diferencia,
		CreadoEn:      d.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, l := range d.Lineas {
		nombre := ""
		if l.Producto != nil {
			nombre = l.Producto.Nombre
		}
		item := dto.LineaDevolucionResponse{
			ProductoID:     l.ProductoID.String(),
			Producto:       nombre,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
		}
		if l.Tipo == "devuelto" {
			resp.LineasDevueltas = append(resp.LineasDevueltas, item)
		} else {
			resp.LineasEntregadas = append(resp.LineasEntregadas, item)
		}
	}
	return resp
}
