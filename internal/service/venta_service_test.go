package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/dto"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/model"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/repository"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory VentaRepository ────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas    map[uuid.UUID]*model.Venta
	secuencia int64
	estados   map[uuid.UUID]string
}

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{
		ventas:  make(map[uuid.UUID]*model.Venta),
		estados: make(map[uuid.UUID]string),
	}
}

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	if v, ok := r.ventas[id]; ok {
		v.Estado = estado
	}
	r.estados[id] = estado
	return nil
}

func (r *stubVentaRepo) NextCodigoFactura(_ context.Context, _ *gorm.DB) (string, error) {
	r.secuencia++
	return fmt.Sprintf("F-%08d", r.secuencia), nil
}

func (r *stubVentaRepo) SumDelDiaPorTipoPago(_ context.Context, _ uuid.UUID, _ time.Time) (map[string]decimal.Decimal, error) {
	return map[string]decimal.Decimal{}, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

// ── In-memory ProductoRepository ─────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

func newStubProductoRepo(productos ...*model.Producto) *stubProductoRepo {
	r := &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
	for _, p := range productos {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.productos[p.ID] = p
	}
	return r
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductoRepo) DescontarStock(_ *gorm.DB, id uuid.UUID, cantidad int) (bool, error) {
	p, ok := r.productos[id]
	if !ok || p.Stock < cantidad {
		return false, nil
	}
	p.Stock -= cantidad
	return true, nil
}

func (r *stubProductoRepo) ReponerStock(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	if p, ok := r.productos[id]; ok {
		p.Stock += cantidad
	}
	return nil
}

func (r *stubProductoRepo) ListBajoStock(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo && p.Stock <= p.StockMinimo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) ContarBajoStock(_ context.Context) (int64, int64, error) {
	var agotados, bajos int64
	for _, p := range r.productos {
		if !p.Activo {
			continue
		}
		switch {
		case p.Stock == 0:
			agotados++
		case p.Stock <= p.StockMinimo:
			bajos++
		}
	}
	return agotados, bajos, nil
}

// ── CajaService stub (only the session lookup matters) ───────────────────────

type stubCajaSesion struct {
	caja *model.Caja
}

var _ CajaService = (*stubCajaSesion)(nil)

func (s *stubCajaSesion) ListarDisponibles(context.Context) ([]dto.CajaResponse, error) {
	return nil, nil
}
func (s *stubCajaSesion) Abrir(context.Context, uuid.UUID, uuid.UUID) (*dto.SesionCajaResponse, error) {
	return nil, nil
}
func (s *stubCajaSesion) VentasDelDia(context.Context, uuid.UUID, time.Time) (*dto.VentasDelDiaResponse, error) {
	return nil, nil
}
func (s *stubCajaSesion) Cerrar(context.Context, uuid.UUID, uuid.UUID, decimal.Decimal) (*dto.CierreCajaResponse, error) {
	return nil, nil
}
func (s *stubCajaSesion) Historial(context.Context, int, int) ([]dto.CierreCajaResponse, int64, error) {
	return nil, 0, nil
}
func (s *stubCajaSesion) CajaDeUsuario(context.Context, uuid.UUID) (*model.Caja, error) {
	return s.caja, nil
}

// ── Dispatcher doubles ───────────────────────────────────────────────────────

type spyDispatcher struct {
	jobs []worker.AlertaStockJob
}

func (d *spyDispatcher) EnqueueAlertaStock(_ context.Context, job worker.AlertaStockJob) error {
	d.jobs = append(d.jobs, job)
	return nil
}

type failingDispatcher struct{}

func (failingDispatcher) EnqueueAlertaStock(context.Context, worker.AlertaStockJob) error {
	return errors.New("redis down")
}

func cajaAbierta() *stubCajaSesion {
	return &stubCajaSesion{caja: &model.Caja{ID: uuid.New(), Nombre: "Caja 1"}}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestRegistrarVentaSinCaja(t *testing.T) {
	svc := NewVentaService(newStubVentaRepo(), newStubProductoRepo(), &stubCajaSesion{}, &spyDispatcher{})

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		MetodoPagoID: uuid.NewString(),
		Items:        []dto.ItemVentaRequest{{ProductoID: uuid.NewString(), Cantidad: 1}},
	})
	assert.ErrorIs(t, err, ErrSinCaja)
}

func TestRegistrarVenta(t *testing.T) {
	martillo := &model.Producto{Nombre: "Martillo", CodigoBarras: "111", PrecioVenta: dec("15.50"), Stock: 10, StockMinimo: 2, Activo: true}
	clavos := &model.Producto{Nombre: "Clavos x100", CodigoBarras: "222", PrecioVenta: dec("3.25"), Stock: 50, StockMinimo: 10, Activo: true}
	productos := newStubProductoRepo(martillo, clavos)
	ventas := newStubVentaRepo()
	svc := NewVentaService(ventas, productos, cajaAbierta(), &spyDispatcher{})

	resp, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		MetodoPagoID: uuid.NewString(),
		Items: []dto.ItemVentaRequest{
			{ProductoID: martillo.ID.String(), Cantidad: 2},
			{ProductoID: clavos.ID.String(), Cantidad: 4},
		},
	})
	require.NoError(t, err)

	// 2×15.50 + 4×3.25 = 44.00
	assert.True(t, resp.Total.Equal(dec("44")))
	assert.Equal(t, "completada", resp.Estado)
	assert.Len(t, resp.Items, 2)

	assert.Equal(t, 8, martillo.Stock)
	assert.Equal(t, 46, clavos.Stock)
	assert.Len(t, ventas.ventas, 1)
}

func TestRegistrarVentaStockInsuficiente(t *testing.T) {
	tornillos := &model.Producto{Nombre: "Tornillos", CodigoBarras: "333", PrecioVenta: dec("1"), Stock: 3, StockMinimo: 1, Activo: true}
	productos := newStubProductoRepo(tornillos)
	svc := NewVentaService(newStubVentaRepo(), productos, cajaAbierta(), &spyDispatcher{})

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		MetodoPagoID: uuid.NewString(),
		Items:        []dto.ItemVentaRequest{{ProductoID: tornillos.ID.String(), Cantidad: 5}},
	})
	assert.ErrorIs(t, err, ErrStockInsuficiente)
}

func TestRegistrarVentaProductoInactivo(t *testing.T) {
	retirado := &model.Producto{Nombre: "Pintura vieja", CodigoBarras: "444", PrecioVenta: dec("10"), Stock: 5, Activo: false}
	productos := newStubProductoRepo(retirado)
	svc := NewVentaService(newStubVentaRepo(), productos, cajaAbierta(), &spyDispatcher{})

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		MetodoPagoID: uuid.NewString(),
		Items:        []dto.ItemVentaRequest{{ProductoID: retirado.ID.String(), Cantidad: 1}},
	})
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestRegistrarVentaEncolaAlertaStock(t *testing.T) {
	taladro := &model.Producto{Nombre: "Taladro", CodigoBarras: "555", PrecioVenta: dec("120"), Stock: 4, StockMinimo: 3, Activo: true}
	productos := newStubProductoRepo(taladro)
	dispatcher := &spyDispatcher{}
	svc := NewVentaService(newStubVentaRepo(), productos, cajaAbierta(), dispatcher)

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		MetodoPagoID: uuid.NewString(),
		Items:        []dto.ItemVentaRequest{{ProductoID: taladro.ID.String(), Cantidad: 2}},
	})
	require.NoError(t, err)

	require.Len(t, dispatcher.jobs, 1)
	require.Len(t, dispatcher.jobs[0].Productos, 1)
	assert.Equal(t, "Taladro", dispatcher.jobs[0].Productos[0].Nombre)
	assert.Equal(t, 2, dispatcher.jobs[0].Productos[0].Stock)
}

// Alert dispatch is best-effort: a broken queue never fails the sale.
func TestRegistrarVentaDispatcherCaido(t *testing.T) {
	taladro := &model.Producto{Nombre: "Taladro", CodigoBarras: "555", PrecioVenta: dec("120"), Stock: 3, StockMinimo: 3, Activo: true}
	productos := newStubProductoRepo(taladro)
	svc := NewVentaService(newStubVentaRepo(), productos, cajaAbierta(), failingDispatcher{})

	resp, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		MetodoPagoID: uuid.NewString(),
		Items:        []dto.ItemVentaRequest{{ProductoID: taladro.ID.String(), Cantidad: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "completada", resp.Estado)
}

func TestAnularVentaReponeStock(t *testing.T) {
	sierra := &model.Producto{Nombre: "Sierra", CodigoBarras: "666", PrecioVenta: dec("45"), Stock: 6, StockMinimo: 1, Activo: true}
	productos := newStubProductoRepo(sierra)
	ventas := newStubVentaRepo()
	svc := NewVentaService(ventas, productos, cajaAbierta(), &spyDispatcher{})

	resp, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		MetodoPagoID: uuid.NewString(),
		Items:        []dto.ItemVentaRequest{{ProductoID: sierra.ID.String(), Cantidad: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, 4, sierra.Stock)

	ventaID, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Anular(context.Background(), ventaID, "cliente se arrepintió"))

	assert.Equal(t, 6, sierra.Stock)
	assert.Equal(t, "anulada", ventas.ventas[ventaID].Estado)

	err = svc.Anular(context.Background(), ventaID, "de nuevo")
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestAnularVentaInexistente(t *testing.T) {
	svc := NewVentaService(newStubVentaRepo(), newStubProductoRepo(), cajaAbierta(), &spyDispatcher{})
	err := svc.Anular(context.Background(), uuid.New(), "motivo")
	assert.ErrorIs(t, err, ErrNotFound)
}
