package service

import (
	"context"
	"testing"
	"time"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/dto"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/model"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCompraRepo struct {
	compras []model.Compra
}

var _ repository.CompraRepository = (*stubCompraRepo)(nil)

func (r *stubCompraRepo) Create(_ context.Context, _ *gorm.DB, c *model.Compra) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.compras = append(r.compras, *c)
	return nil
}

func (r *stubCompraRepo) DB() *gorm.DB { return nil }

func TestRegistrarCompraReponeStock(t *testing.T) {
	cemento := &model.Producto{Nombre: "Cemento 25kg", CodigoBarras: "100", PrecioVenta: dec("12"), Stock: 2, StockMinimo: 5, Activo: true}
	productos := newStubProductoRepo(cemento)
	repo := &stubCompraRepo{}
	svc := NewCompraService(repo, productos)

	resp, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID: uuid.NewString(),
		Items: []dto.ItemCompraRequest{
			{ProductoID: cemento.ID.String(), Cantidad: 20, PrecioUnitario: dec("8.50")},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(dec("170")))
	assert.Equal(t, 22, cemento.Stock)
	require.Len(t, repo.compras, 1)
	assert.Len(t, repo.compras[0].Detalles, 1)
}

func TestRegistrarCompraProveedorInvalido(t *testing.T) {
	svc := NewCompraService(&stubCompraRepo{}, newStubProductoRepo())

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID: "no-es-uuid",
		Items:       []dto.ItemCompraRequest{{ProductoID: uuid.NewString(), Cantidad: 1, PrecioUnitario: dec("1")}},
	})
	assert.ErrorIs(t, err, ErrValidacion)
}
