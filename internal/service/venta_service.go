package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/dto"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/model"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/repository"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AlertaStockDispatcher enqueues low-stock alert jobs. Dispatch is best-effort:
// a failure is logged and swallowed, never surfaced to the sale.
type AlertaStockDispatcher interface {
	EnqueueAlertaStock(ctx context.Context, job worker.AlertaStockJob) error
}

type VentaService interface {
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	Anular(ctx context.Context, ventaID uuid.UUID, motivo string) error
	ObtenerPorID(ctx context.Context, ventaID uuid.UUID) (*dto.VentaResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	caja         CajaService
	dispatcher   AlertaStockDispatcher
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	caja CajaService,
	dispatcher AlertaStockDispatcher,
) VentaService {
	return &ventaService{
		repo:         repo,
		productoRepo: productoRepo,
		caja:         caja,
		dispatcher:   dispatcher,
	}
}

// ── Registrar ─────────────────────────────────────────────────────────────────
// A sale requires an open register session for the acting user. Inside one
// transaction: invoice code from the sequence, stock decrement per line (the
// guard is in the UPDATE, so concurrent sales cannot oversell), venta +
// factura + detalles insert. After commit, products at or below their minimum
// trigger a best-effort alert job.

func (s *ventaService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	caja, err := s.caja.CajaDeUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if caja == nil {
		return nil, ErrSinCaja
	}

	metodoPagoID, err := uuid.Parse(req.MetodoPagoID)
	if err != nil {
		return nil, fmt.Errorf("%w: metodo_pago_id inválido", ErrValidacion)
	}
	var clienteID *uuid.UUID
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("%w: cliente_id inválido", ErrValidacion)
		}
		clienteID = &cid
	}

	var venta model.Venta
	var bajoStock []worker.ProductoBajoStock

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		codigo, err := s.repo.NextCodigoFactura(ctx, tx)
		if err != nil {
			return err
		}

		total := decimal.Zero
		var detalles []model.DetalleFactura
		bajoStock = bajoStock[:0]

		for _, item := range req.Items {
			pid, err := uuid.Parse(item.ProductoID)
			if err != nil {
				return fmt.Errorf("%w: producto_id inválido", ErrValidacion)
			}
			p, err := s.productoRepo.FindByIDTx(tx, pid)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("producto %s: %w", item.ProductoID, ErrNotFound)
				}
				return err
			}
			if !p.Activo {
				return fmt.Errorf("%w: el producto %s está inactivo", ErrValidacion, p.Nombre)
			}

			ok, err := s.productoRepo.DescontarStock(tx, pid, item.Cantidad)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("producto %s: %w", p.Nombre, ErrStockInsuficiente)
			}

			subtotal := p.PrecioVenta.Mul(decimal.NewFromInt(int64(item.Cantidad)))
			total = total.Add(subtotal)
			detalles = append(detalles, model.DetalleFactura{
				ProductoID:     pid,
				Cantidad:       item.Cantidad,
				PrecioUnitario: p.PrecioVenta,
				Subtotal:       subtotal,
			})

			if restante := p.Stock - item.Cantidad; restante <= p.StockMinimo {
				bajoStock = append(bajoStock, worker.ProductoBajoStock{
					Nombre:       p.Nombre,
					CodigoBarras: p.CodigoBarras,
					Stock:        restante,
					StockMinimo:  p.StockMinimo,
				})
			}
		}

		venta = model.Venta{
			CodigoFactura: codigo,
			UsuarioID:     usuarioID,
			ClienteID:     clienteID,
			MetodoPagoID:  metodoPagoID,
			Total:         total,
			Estado:        "completada",
			Factura: &model.Factura{
				Subtotal: total,
				Total:    total,
				Detalles: detalles,
			},
		}
		return s.repo.Create(ctx, tx, &venta)
	})
	if txErr != nil {
		return nil, txErr
	}

	if len(bajoStock) > 0 && s.dispatcher != nil {
		if err := s.dispatcher.EnqueueAlertaStock(ctx, worker.AlertaStockJob{Productos: bajoStock}); err != nil {
			log.Warn().Err(err).Int("productos", len(bajoStock)).Msg("no se pudo encolar la alerta de stock")
		}
	}

	return ventaToResponse(&venta), nil
}

// ── Anular ────────────────────────────────────────────────────────────────────
// Voids a completed sale and restores its stock. Voided sales disappear from
// reconciliation and from every report.

func (s *ventaService) Anular(ctx context.Context, ventaID uuid.UUID, motivo string) error {
	if motivo == "" {
		return fmt.Errorf("%w: falta el motivo de anulación", ErrValidacion)
	}
	venta, err := s.repo.FindByID(ctx, ventaID)
	if err != nil {
		return ErrNotFound
	}
	if venta.Estado == "anulada" {
		return fmt.Errorf("%w: la venta ya está anulada", ErrValidacion)
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if venta.Factura != nil {
			for _, det := range venta.Factura.Detalles {
				if err := s.productoRepo.ReponerStock(tx, det.ProductoID, det.Cantidad); err != nil {
					return err
				}
			}
		}
		return s.repo.UpdateEstadoTx(tx, ventaID, "anulada")
	})
}

func (s *ventaService) ObtenerPorID(ctx context.Context, ventaID uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, ventaID)
	if err != nil {
		return nil, ErrNotFound
	}
	return ventaToResponse(venta), nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:            v.ID.String(),
		CodigoFactura: v.CodigoFactura,
		UsuarioID:     v.UsuarioID.String(),
		MetodoPagoID:  v.MetodoPagoID.String(),
		Total:         v.Total,
		Estado:        v.Estado,
		CreadoEn:      v.CreatedAt.UTC().Format(time.RFC3339),
	}
	if v.ClienteID != nil {
		cid := v.ClienteID.String()
		resp.ClienteID = &cid
	}
	if v.Factura != nil {
		for _, det := range v.Factura.Detalles {
			nombre := ""
			if det.Producto != nil {
				nombre = det.Producto.Nombre
			}
			resp.Items = append(resp.Items, dto.ItemVentaResponse{
				ProductoID:     det.ProductoID.String(),
				Producto:       nombre,
				Cantidad:       det.Cantidad,
				PrecioUnitario: det.PrecioUnitario,
				Subtotal:       det.Subtotal,
			})
		}
	}
	return resp
}
