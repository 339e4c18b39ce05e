package service

import (
	"context"
	"fmt"
	"time"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/dto"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/repository"

	"github.com/shopspring/decimal"
)

const topLimitDefault = 20

// ReporteService answers period queries over the sales/purchases ledger.
// All aggregates are read-only and idempotent; no locking, no retries.
type ReporteService interface {
	ResumenVentas(ctx context.Context, rango repository.RangoFechas) (*dto.ResumenVentasResponse, error)
	ResumenCompras(ctx context.Context, rango repository.RangoFechas) (*dto.ResumenComprasResponse, error)
	Inventario(ctx context.Context) (*dto.InventarioResponse, error)
	BajoStock(ctx context.Context) ([]dto.AlertaStockItem, error)
	ContarBajoStock(ctx context.Context) (*dto.BajoStockConteoResponse, error)
	TopProductos(ctx context.Context, rango repository.RangoFechas, limit int) ([]dto.TopProductoItem, error)
	TopClientes(ctx context.Context, rango repository.RangoFechas, limit int) ([]dto.TopClienteItem, error)
}

type reporteService struct {
	repo         repository.ReporteRepository
	productoRepo repository.ProductoRepository
}

func NewReporteService(repo repository.ReporteRepository, productoRepo repository.ProductoRepository) ReporteService {
	return &reporteService{repo: repo, productoRepo: productoRepo}
}

// ParseRango builds an inclusive date range from optional "2006-01-02" bounds.
// An empty string leaves that side open; "hasta" is stretched to the end of
// its day so the range is inclusive.
func ParseRango(desde, hasta string) (repository.RangoFechas, error) {
	var rango repository.RangoFechas
	if desde != "" {
		t, err := time.Parse("2006-01-02", desde)
		if err != nil {
			return rango, fmt.Errorf("%w: fecha desde inválida (use AAAA-MM-DD)", ErrValidacion)
		}
		rango.Desde = &t
	}
	if hasta != "" {
		t, err := time.Parse("2006-01-02", hasta)
		if err != nil {
			return rango, fmt.Errorf("%w: fecha hasta inválida (use AAAA-MM-DD)", ErrValidacion)
		}
		finDeDia := t.Add(24*time.Hour - time.Nanosecond)
		rango.Hasta = &finDeDia
	}
	if rango.Desde != nil && rango.Hasta != nil && rango.Hasta.Before(*rango.Desde) {
		return rango, fmt.Errorf("%w: el rango de fechas está invertido", ErrValidacion)
	}
	return rango, nil
}

func (s *reporteService) ResumenVentas(ctx context.Context, rango repository.RangoFechas) (*dto.ResumenVentasResponse, error) {
	row, err := s.repo.ResumenVentas(ctx, rango)
	if err != nil {
		return nil, err
	}
	ticket := decimal.Zero
	if row.Cantidad > 0 {
		ticket = row.Total.Div(decimal.NewFromInt(row.Cantidad)).Round(2)
	}
	return &dto.ResumenVentasResponse{
		Cantidad:       row.Cantidad,
		Total:          row.Total,
		TicketPromedio: ticket,
	}, nil
}

func (s *reporteService) ResumenCompras(ctx context.Context, rango repository.RangoFechas) (*dto.ResumenComprasResponse, error) {
	row, err := s.repo.ResumenCompras(ctx, rango)
	if err != nil {
		return nil, err
	}
	return &dto.ResumenComprasResponse{Cantidad: row.Cantidad, Total: row.Total}, nil
}

func (s *reporteService) Inventario(ctx context.Context) (*dto.InventarioResponse, error) {
	row, err := s.repo.Inventario(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.InventarioResponse{
		Productos:  row.Productos,
		Unidades:   row.Unidades,
		ValorCosto: row.ValorCosto,
		ValorVenta: row.ValorVenta,
	}, nil
}

func (s *reporteService) BajoStock(ctx context.Context) ([]dto.AlertaStockItem, error) {
	productos, err := s.productoRepo.ListBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertaStockItem, 0, len(productos))
	for _, p := range productos {
		estado := "bajo stock"
		if p.Stock == 0 {
			estado = "agotado"
		}
		items = append(items, dto.AlertaStockItem{
			ProductoID:   p.ID.String(),
			Nombre:       p.Nombre,
			CodigoBarras: p.CodigoBarras,
			Stock:        p.Stock,
			StockMinimo:  p.StockMinimo,
			Estado:       estado,
		})
	}
	return items, nil
}

func (s *reporteService) ContarBajoStock(ctx context.Context) (*dto.BajoStockConteoResponse, error) {
	agotados, bajos, err := s.productoRepo.ContarBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.BajoStockConteoResponse{Agotados: agotados, BajoStock: bajos}, nil
}

// ── TopProductos ──────────────────────────────────────────────────────────────
// Invoice lines carry no date: resolve the parent-sale window into factura ids
// first. An empty id set means "no sales in this period" and must return an
// empty result — running the aggregate anyway would silently answer with the
// all-time ranking.

func (s *reporteService) TopProductos(ctx context.Context, rango repository.RangoFechas, limit int) ([]dto.TopProductoItem, error) {
	if limit < 1 || limit > 100 {
		limit = topLimitDefault
	}

	var rows []repository.TopProductoRow
	if rango.Desde == nil && rango.Hasta == nil {
		var err error
		rows, err = s.repo.TopProductos(ctx, nil, limit)
		if err != nil {
			return nil, err
		}
	} else {
		facturaIDs, err := s.repo.FacturaIDsEnRango(ctx, rango)
		if err != nil {
			return nil, err
		}
		if len(facturaIDs) == 0 {
			return []dto.TopProductoItem{}, nil
		}
		rows, err = s.repo.TopProductos(ctx, facturaIDs, limit)
		if err != nil {
			return nil, err
		}
	}

	items := make([]dto.TopProductoItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.TopProductoItem{
			ProductoID: r.ProductoID.String(),
			Nombre:     r.Nombre,
			Unidades:   r.Unidades,
			Ingresos:   r.Ingresos,
		})
	}
	return items, nil
}

func (s *reporteService) TopClientes(ctx context.Context, rango repository.RangoFechas, limit int) ([]dto.TopClienteItem, error) {
	if limit < 1 || limit > 100 {
		limit = topLimitDefault
	}

	var rows []repository.TopClienteRow
	if rango.Desde == nil && rango.Hasta == nil {
		var err error
		rows, err = s.repo.TopClientes(ctx, nil, limit)
		if err != nil {
			return nil, err
		}
	} else {
		ventaIDs, err := s.repo.VentaIDsEnRango(ctx, rango)
		if err != nil {
			return nil, err
		}
		if len(ventaIDs) == 0 {
			return []dto.TopClienteItem{}, nil
		}
		rows, err = s.repo.TopClientes(ctx, ventaIDs, limit)
		if err != nil {
			return nil, err
		}
	}

	items := make([]dto.TopClienteItem, 0, len(rows))
	for _, r := range rows {
		ticket := decimal.Zero
		if r.Compras > 0 {
			ticket = r.TotalGasto.Div(decimal.NewFromInt(r.Compras)).Round(2)
		}
		items = append(items, dto.TopClienteItem{
			ClienteID:      r.ClienteID.String(),
			Nombre:         r.Nombre,
			Compras:        r.Compras,
			TotalGasto:     r.TotalGasto,
			TicketPromedio: ticket,
		})
	}
	return items, nil
}
