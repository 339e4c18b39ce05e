package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/model"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory CajaRepository ─────────────────────────────────────────────────
// Asignar/Liberar reproduce the store-level compare-and-swap under a mutex so
// the concurrency tests exercise the same one-winner semantics as Postgres.

type stubCajaRepo struct {
	mu      sync.Mutex
	cajas   map[uuid.UUID]*model.Caja
	cierres []model.CierreCaja
}

var _ repository.CajaRepository = (*stubCajaRepo)(nil)

func newStubCajaRepo(cajas ...*model.Caja) *stubCajaRepo {
	r := &stubCajaRepo{cajas: make(map[uuid.UUID]*model.Caja)}
	for _, c := range cajas {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		r.cajas[c.ID] = c
	}
	return r
}

func (r *stubCajaRepo) DB() *gorm.DB { return nil }

func (r *stubCajaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caja, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cajas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCajaRepo) FindByIDTx(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Caja, error) {
	return r.FindByID(ctx, id)
}

func (r *stubCajaRepo) ListDisponibles(_ context.Context) ([]model.Caja, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Caja
	for _, c := range r.cajas {
		if c.UsuarioAsignadoID == nil && c.Activa {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCajaRepo) FindAsignadaAUsuario(_ context.Context, _ *gorm.DB, usuarioID uuid.UUID) (*model.Caja, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.cajas {
		if c.UsuarioAsignadoID != nil && *c.UsuarioAsignadoID == usuarioID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubCajaRepo) Asignar(_ context.Context, _ *gorm.DB, cajaID, usuarioID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cajas[cajaID]
	if !ok || c.UsuarioAsignadoID != nil || !c.Activa {
		return false, nil
	}
	uid := usuarioID
	c.UsuarioAsignadoID = &uid
	return true, nil
}

func (r *stubCajaRepo) Liberar(_ context.Context, _ *gorm.DB, cajaID, usuarioID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cajas[cajaID]
	if !ok || c.UsuarioAsignadoID == nil || *c.UsuarioAsignadoID != usuarioID {
		return false, nil
	}
	c.UsuarioAsignadoID = nil
	return true, nil
}

func (r *stubCajaRepo) CreateCierre(_ context.Context, _ *gorm.DB, cierre *model.CierreCaja) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cierre.ID == uuid.Nil {
		cierre.ID = uuid.New()
	}
	cierre.CreatedAt = time.Now()
	r.cierres = append(r.cierres, *cierre)
	return nil
}

func (r *stubCajaRepo) ListCierres(_ context.Context, page, limit int) ([]model.CierreCaja, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.CierreCaja(nil), r.cierres...), int64(len(r.cierres)), nil
}

// ── In-memory sales ledger (only the day sums matter here) ───────────────────

type stubVentaLedger struct {
	sums map[string]decimal.Decimal
}

var _ repository.VentaRepository = (*stubVentaLedger)(nil)

func (r *stubVentaLedger) Create(_ context.Context, _ *gorm.DB, _ *model.Venta) error { return nil }
func (r *stubVentaLedger) FindByID(_ context.Context, _ uuid.UUID) (*model.Venta, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubVentaLedger) UpdateEstadoTx(_ *gorm.DB, _ uuid.UUID, _ string) error { return nil }
func (r *stubVentaLedger) NextCodigoFactura(_ context.Context, _ *gorm.DB) (string, error) {
	return "F-00000001", nil
}
func (r *stubVentaLedger) SumDelDiaPorTipoPago(_ context.Context, _ uuid.UUID, _ time.Time) (map[string]decimal.Decimal, error) {
	if r.sums == nil {
		return map[string]decimal.Decimal{}, nil
	}
	return r.sums, nil
}
func (r *stubVentaLedger) DB() *gorm.DB { return nil }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Tests ────────────────────────────────────────────────────────────────────

func TestAbrirCaja(t *testing.T) {
	caja := &model.Caja{Nombre: "Caja 1", SucursalID: uuid.New(), SaldoInicial: dec("1000"), Activa: true}
	repo := newStubCajaRepo(caja)
	svc := NewCajaService(repo, &stubVentaLedger{})

	usuario := uuid.New()
	resp, err := svc.Abrir(context.Background(), caja.ID, usuario)
	require.NoError(t, err)
	assert.Equal(t, caja.ID.String(), resp.CajaID)
	assert.Equal(t, usuario.String(), resp.UsuarioID)
	assert.True(t, resp.SaldoInicial.Equal(dec("1000")))
}

func TestAbrirCajaInexistente(t *testing.T) {
	repo := newStubCajaRepo()
	svc := NewCajaService(repo, &stubVentaLedger{})

	_, err := svc.Abrir(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAbrirCajaYaAsignada(t *testing.T) {
	titular := uuid.New()
	caja := &model.Caja{Nombre: "Caja 1", SucursalID: uuid.New(), UsuarioAsignadoID: &titular, Activa: true}
	repo := newStubCajaRepo(caja)
	svc := NewCajaService(repo, &stubVentaLedger{})

	_, err := svc.Abrir(context.Background(), caja.ID, uuid.New())
	assert.ErrorIs(t, err, ErrCajaAsignada)
}

func TestAbrirConSesionExistente(t *testing.T) {
	usuario := uuid.New()
	ocupada := &model.Caja{Nombre: "Caja 1", SucursalID: uuid.New(), UsuarioAsignadoID: &usuario, Activa: true}
	libre := &model.Caja{Nombre: "Caja 2", SucursalID: uuid.New(), Activa: true}
	repo := newStubCajaRepo(ocupada, libre)
	svc := NewCajaService(repo, &stubVentaLedger{})

	_, err := svc.Abrir(context.Background(), libre.ID, usuario)
	assert.ErrorIs(t, err, ErrSesionExistente)
}

// Two cashiers racing for the same register: exactly one claim wins.
func TestAbrirCajaConcurrente(t *testing.T) {
	caja := &model.Caja{Nombre: "Caja 1", SucursalID: uuid.New(), Activa: true}
	repo := newStubCajaRepo(caja)
	svc := NewCajaService(repo, &stubVentaLedger{})

	const n = 10
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Abrir(context.Background(), caja.ID, uuid.New())
		}(i)
	}
	wg.Wait()

	exitos, conflictos := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			exitos++
		case assert.ErrorIs(t, err, ErrCajaAsignada):
			conflictos++
		}
	}
	assert.Equal(t, 1, exitos)
	assert.Equal(t, n-1, conflictos)
}

func TestCerrarCajaCuadrada(t *testing.T) {
	usuario := uuid.New()
	caja := &model.Caja{
		Nombre:            "Caja 1",
		SucursalID:        uuid.New(),
		UsuarioAsignadoID: &usuario,
		SaldoInicial:      dec("1000"),
		Activa:            true,
	}
	repo := newStubCajaRepo(caja)
	ledger := &stubVentaLedger{sums: map[string]decimal.Decimal{
		"efectivo": dec("450"),
		"tarjeta":  dec("300"),
	}}
	svc := NewCajaService(repo, ledger)

	resp, err := svc.Cerrar(context.Background(), caja.ID, usuario, dec("1450"))
	require.NoError(t, err)

	assert.True(t, resp.EfectivoEsperado.Equal(dec("1450")), "esperado = saldo inicial + ventas en efectivo")
	assert.True(t, resp.Diferencia.IsZero())
	assert.Equal(t, "cuadrada", resp.Clasificacion)
	assert.True(t, resp.TotalVentas.Equal(dec("750")))

	// cierre persisted and register released atomically
	require.Len(t, repo.cierres, 1)
	assert.Nil(t, repo.cajas[caja.ID].UsuarioAsignadoID)
}

func TestCerrarCajaFaltante(t *testing.T) {
	usuario := uuid.New()
	caja := &model.Caja{
		Nombre:            "Caja 1",
		SucursalID:        uuid.New(),
		UsuarioAsignadoID: &usuario,
		SaldoInicial:      dec("1000"),
		Activa:            true,
	}
	repo := newStubCajaRepo(caja)
	ledger := &stubVentaLedger{sums: map[string]decimal.Decimal{"efectivo": dec("450")}}
	svc := NewCajaService(repo, ledger)

	resp, err := svc.Cerrar(context.Background(), caja.ID, usuario, dec("1430"))
	require.NoError(t, err)
	assert.True(t, resp.Diferencia.Equal(dec("-20")))
	assert.Equal(t, "faltante", resp.Clasificacion)
}

func TestCerrarCajaSobrante(t *testing.T) {
	usuario := uuid.New()
	caja := &model.Caja{
		Nombre:            "Caja 1",
		SucursalID:        uuid.New(),
		UsuarioAsignadoID: &usuario,
		SaldoInicial:      dec("500"),
		Activa:            true,
	}
	repo := newStubCajaRepo(caja)
	svc := NewCajaService(repo, &stubVentaLedger{})

	resp, err := svc.Cerrar(context.Background(), caja.ID, usuario, dec("510.50"))
	require.NoError(t, err)
	assert.True(t, resp.Diferencia.Equal(dec("10.50")))
	assert.Equal(t, "sobrante", resp.Clasificacion)
}

func TestCerrarCajaAjena(t *testing.T) {
	titular := uuid.New()
	caja := &model.Caja{Nombre: "Caja 1", SucursalID: uuid.New(), UsuarioAsignadoID: &titular, Activa: true}
	repo := newStubCajaRepo(caja)
	svc := NewCajaService(repo, &stubVentaLedger{})

	_, err := svc.Cerrar(context.Background(), caja.ID, uuid.New(), dec("100"))
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, repo.cierres)
}

func TestCerrarCajaLibre(t *testing.T) {
	caja := &model.Caja{Nombre: "Caja 1", SucursalID: uuid.New(), Activa: true}
	repo := newStubCajaRepo(caja)
	svc := NewCajaService(repo, &stubVentaLedger{})

	_, err := svc.Cerrar(context.Background(), caja.ID, uuid.New(), dec("100"))
	assert.ErrorIs(t, err, ErrCajaLibre)
}

func TestVentasDelDiaParticionPorTipo(t *testing.T) {
	ledger := &stubVentaLedger{sums: map[string]decimal.Decimal{
		"efectivo":      dec("100.50"),
		"tarjeta":       dec("200"),
		"transferencia": dec("50"),
		"qr":            dec("30"),
	}}
	svc := NewCajaService(newStubCajaRepo(), ledger)

	resp, err := svc.VentasDelDia(context.Background(), uuid.New(), time.Now())
	require.NoError(t, err)
	assert.True(t, resp.Efectivo.Equal(dec("100.50")))
	assert.True(t, resp.Tarjeta.Equal(dec("200")))
	assert.True(t, resp.Transferencia.Equal(dec("50")))
	assert.True(t, resp.Otro.Equal(dec("30")), "unknown payment types land in otro")
	assert.True(t, resp.Total.Equal(dec("380.50")))
}

func TestClasificarDiferencia(t *testing.T) {
	assert.Equal(t, "cuadrada", clasificarDiferencia(dec("0")))
	assert.Equal(t, "cuadrada", clasificarDiferencia(dec("0.009")))
	assert.Equal(t, "cuadrada", clasificarDiferencia(dec("-0.009")))
	assert.Equal(t, "sobrante", clasificarDiferencia(dec("0.01")))
	assert.Equal(t, "faltante", clasificarDiferencia(dec("-0.01")))
}
