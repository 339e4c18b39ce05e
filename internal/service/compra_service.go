package service

import (
	"context"
	"fmt"
	"time"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/dto"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/model"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CompraService interface {
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error)
}

type compraService struct {
	repo         repository.CompraRepository
	productoRepo repository.ProductoRepository
}

func NewCompraService(repo repository.CompraRepository, productoRepo repository.ProductoRepository) CompraService {
	return &compraService{repo: repo, productoRepo: productoRepo}
}

// Registrar records a supplier purchase and increments stock per line, all in
// one transaction.
func (s *compraService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error) {
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, fmt.Errorf("%w: proveedor_id inválido", ErrValidacion)
	}

	var compra model.Compra
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		total := decimal.Zero
		var detalles []model.DetalleCompra

		for _, item := range req.Items {
			pid, err := uuid.Parse(item.ProductoID)
			if err != nil {
				return fmt.Errorf("%w: producto_id inválido", ErrValidacion)
			}
			if err := s.productoRepo.ReponerStock(tx, pid, item.Cantidad); err != nil {
				return err
			}
			total = total.Add(item.PrecioUnitario.Mul(decimal.NewFromInt(int64(item.Cantidad))))
			detalles = append(detalles, model.DetalleCompra{
				ProductoID:     pid,
				Cantidad:       item.Cantidad,
				PrecioUnitario: item.PrecioUnitario,
			})
		}

		compra = model.Compra{
			ProveedorID: proveedorID,
			UsuarioID:   usuarioID,
			Total:       total,
			Detalles:    detalles,
		}
		return s.repo.Create(ctx, tx, &compra)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.CompraResponse{
		ID:          compra.ID.String(),
		ProveedorID: compra.ProveedorID.String(),
		UsuarioID:   compra.UsuarioID.String(),
		Total:       compra.Total,
		CreadoEn:    compra.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}
