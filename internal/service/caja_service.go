package service

import (
	"context"
	"errors"
	"time"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/dto"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/model"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CajaService serializes access to the register pool: one cashier per caja,
// closed with an auditable cierre that releases the register in the same
// transaction.
type CajaService interface {
	ListarDisponibles(ctx context.Context) ([]dto.CajaResponse, error)
	Abrir(ctx context.Context, cajaID, usuarioID uuid.UUID) (*dto.SesionCajaResponse, error)
	VentasDelDia(ctx context.Context, usuarioID uuid.UUID, fecha time.Time) (*dto.VentasDelDiaResponse, error)
	Cerrar(ctx context.Context, cajaID, usuarioID uuid.UUID, efectivoContado decimal.Decimal) (*dto.CierreCajaResponse, error)
	Historial(ctx context.Context, page, limit int) ([]dto.CierreCajaResponse, int64, error)
	// CajaDeUsuario is called by VentaService to verify the cashier holds an
	// open session before recording a sale. Returns nil, nil when none.
	CajaDeUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Caja, error)
}

type cajaService struct {
	repo      repository.CajaRepository
	ventaRepo repository.VentaRepository
}

func NewCajaService(repo repository.CajaRepository, ventaRepo repository.VentaRepository) CajaService {
	return &cajaService{repo: repo, ventaRepo: ventaRepo}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *cajaService) ListarDisponibles(ctx context.Context) ([]dto.CajaResponse, error) {
	cajas, err := s.repo.ListDisponibles(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CajaResponse, 0, len(cajas))
	for _, c := range cajas {
		resp = append(resp, dto.CajaResponse{
			ID:           c.ID.String(),
			Nombre:       c.Nombre,
			SucursalID:   c.SucursalID.String(),
			SaldoInicial: c.SaldoInicial,
			Disponible:   true,
		})
	}
	return resp, nil
}

// ── Abrir ─────────────────────────────────────────────────────────────────────
// Claim. The assignment flag is a mutex stored as a database row: the repo
// performs UPDATE ... WHERE usuario_asignado_id IS NULL and reports whether
// exactly one row changed. Two concurrent claims on the same caja get one
// success and one ErrCajaAsignada — never two sessions.

func (s *cajaService) Abrir(ctx context.Context, cajaID, usuarioID uuid.UUID) (*dto.SesionCajaResponse, error) {
	var caja *model.Caja

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		otra, err := s.repo.FindAsignadaAUsuario(ctx, tx, usuarioID)
		if err != nil {
			return err
		}
		if otra != nil {
			return ErrSesionExistente
		}

		c, err := s.repo.FindByID(ctx, cajaID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		ok, err := s.repo.Asignar(ctx, tx, cajaID, usuarioID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCajaAsignada
		}

		c.UsuarioAsignadoID = &usuarioID
		caja = c
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// saldo_inicial is copied from the register's configured opening balance
	return &dto.SesionCajaResponse{
		CajaID:       caja.ID.String(),
		Nombre:       caja.Nombre,
		UsuarioID:    usuarioID.String(),
		SaldoInicial: caja.SaldoInicial,
		AbiertaEn:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// ── VentasDelDia ──────────────────────────────────────────────────────────────
// Pure projection over the sales ledger: the user's completed sales for the
// calendar day, keyed by payment type. Feeds the expected-cash calculation.

func (s *cajaService) VentasDelDia(ctx context.Context, usuarioID uuid.UUID, fecha time.Time) (*dto.VentasDelDiaResponse, error) {
	sums, err := s.ventaRepo.SumDelDiaPorTipoPago(ctx, usuarioID, fecha)
	if err != nil {
		return nil, err
	}
	resp := &dto.VentasDelDiaResponse{
		Efectivo:      montoDe(sums, "efectivo"),
		Tarjeta:       montoDe(sums, "tarjeta"),
		Transferencia: montoDe(sums, "transferencia"),
	}
	otro := decimal.Zero
	for tipo, monto := range sums {
		switch tipo {
		case "efectivo", "tarjeta", "transferencia":
		default:
			otro = otro.Add(monto)
		}
	}
	resp.Otro = otro
	resp.Total = resp.Efectivo.Add(resp.Tarjeta).Add(resp.Transferencia).Add(resp.Otro)
	return resp, nil
}

func montoDe(sums map[string]decimal.Decimal, tipo string) decimal.Decimal {
	if m, ok := sums[tipo]; ok {
		return m
	}
	return decimal.Zero
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// Close. Runs as one transaction: row-locked holder check, expected-cash
// arithmetic, cierre insert, release. A register is never left closed without
// release or released without its cierre.
//
//	efectivo_esperado = saldo_inicial + ventas_efectivo − devoluciones_efectivo
//	diferencia        = efectivo_contado − efectivo_esperado
//
// devoluciones_efectivo is always zero under the current rule set (exchanges
// never move cash) but stays in the formula and the record.

func (s *cajaService) Cerrar(ctx context.Context, cajaID, usuarioID uuid.UUID, efectivoContado decimal.Decimal) (*dto.CierreCajaResponse, error) {
	var cierre model.CierreCaja

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		caja, err := s.repo.FindByIDTx(ctx, tx, cajaID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if caja.UsuarioAsignadoID == nil {
			return ErrCajaLibre
		}
		if *caja.UsuarioAsignadoID != usuarioID {
			return ErrForbidden
		}

		sums, err := s.ventaRepo.SumDelDiaPorTipoPago(ctx, usuarioID, time.Now())
		if err != nil {
			return err
		}
		totalVentas := decimal.Zero
		for _, monto := range sums {
			totalVentas = totalVentas.Add(monto)
		}
		ventasEfectivo := montoDe(sums, "efectivo")
		devolucionesEfectivo := decimal.Zero

		esperado := caja.SaldoInicial.Add(ventasEfectivo).Sub(devolucionesEfectivo)
		diferencia := efectivoContado.Sub(esperado)

		cierre = model.CierreCaja{
			CajaID:            cajaID,
			UsuarioID:         usuarioID,
			SaldoInicial:      caja.SaldoInicial,
			TotalVentas:       totalVentas,
			TotalDevoluciones: devolucionesEfectivo,
			TotalNeto:         totalVentas.Sub(devolucionesEfectivo),
			EfectivoEsperado:  esperado,
			EfectivoContado:   efectivoContado,
			Diferencia:        diferencia,
			Clasificacion:     clasificarDiferencia(diferencia),
		}
		if err := s.repo.CreateCierre(ctx, tx, &cierre); err != nil {
			return err
		}

		ok, err := s.repo.Liberar(ctx, tx, cajaID, usuarioID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCajaLibre
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return cierreToResponse(&cierre), nil
}

func (s *cajaService) Historial(ctx context.Context, page, limit int) ([]dto.CierreCajaResponse, int64, error) {
	cierres, total, err := s.repo.ListCierres(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.CierreCajaResponse, 0, len(cierres))
	for i := range cierres {
		resp = append(resp, *cierreToResponse(&cierres[i]))
	}
	return resp, total, nil
}

func (s *cajaService) CajaDeUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Caja, error) {
	return s.repo.FindAsignadaAUsuario(ctx, s.repo.DB(), usuarioID)
}

func cierreToResponse(c *model.CierreCaja) *dto.CierreCajaResponse {
	return &dto.CierreCajaResponse{
		ID:                c.ID.String(),
		CajaID:            c.CajaID.String(),
		UsuarioID:         c.UsuarioID.String(),
		SaldoInicial:      c.SaldoInicial,
		TotalVentas:       c.TotalVentas,
		TotalDevoluciones: c.TotalDevoluciones,
		TotalNeto:         c.TotalNeto,
		EfectivoEsperado:  c.EfectivoEsperado,
		EfectivoContado:   c.EfectivoContado,
		Diferencia:        c.Diferencia,
		Clasificacion:     c.Clasificacion,
		CreadoEn:          c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
