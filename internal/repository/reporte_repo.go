package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RangoFechas is an optionally open-ended inclusive date range. A nil bound
// means unrestricted on that side; both nil means full history.
type RangoFechas struct {
	Desde *time.Time
	Hasta *time.Time
}

// aplicarRango adds the range predicate for col. Both bounds inclusive.
func aplicarRango(q *gorm.DB, col string, r RangoFechas) *gorm.DB {
	switch {
	case r.Desde != nil && r.Hasta != nil:
		return q.Where(col+" BETWEEN ? AND ?", *r.Desde, *r.Hasta)
	case r.Desde != nil:
		return q.Where(col+" >= ?", *r.Desde)
	case r.Hasta != nil:
		return q.Where(col+" <= ?", *r.Hasta)
	}
	return q
}

type ResumenVentasRow struct {
	Cantidad int64
	Total    decimal.Decimal
}

type ResumenComprasRow struct {
	Cantidad int64
	Total    decimal.Decimal
}

type InventarioRow struct {
	Productos  int64
	Unidades   int64
	ValorCosto decimal.Decimal
	ValorVenta decimal.Decimal
}

type TopProductoRow struct {
	ProductoID uuid.UUID
	Nombre     string
	Unidades   int64
	Ingresos   decimal.Decimal
}

type TopClienteRow struct {
	ClienteID  uuid.UUID
	Nombre     string
	Compras    int64
	TotalGasto decimal.Decimal
}

// ReporteRepository is the read-only projection layer. Invoice lines carry no
// date of their own, so line-item aggregates (top productos) first resolve the
// parent-sale window into an id set; the caller short-circuits when that set
// is empty instead of running an unbounded aggregate.
type ReporteRepository interface {
	ResumenVentas(ctx context.Context, rango RangoFechas) (*ResumenVentasRow, error)
	ResumenCompras(ctx context.Context, rango RangoFechas) (*ResumenComprasRow, error)
	Inventario(ctx context.Context) (*InventarioRow, error)
	FacturaIDsEnRango(ctx context.Context, rango RangoFechas) ([]uuid.UUID, error)
	VentaIDsEnRango(ctx context.Context, rango RangoFechas) ([]uuid.UUID, error)
	TopProductos(ctx context.Context, facturaIDs []uuid.UUID, limit int) ([]TopProductoRow, error)
	TopClientes(ctx context.Context, ventaIDs []uuid.UUID, limit int) ([]TopClienteRow, error)
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

func (r *reporteRepo) ResumenVentas(ctx context.Context, rango RangoFechas) (*ResumenVentasRow, error) {
	var row ResumenVentasRow
	q := r.db.WithContext(ctx).
		Table("ventas").
		Select("COUNT(*) AS cantidad, COALESCE(SUM(total), 0) AS total").
		Where("estado = 'completada'")
	err := aplicarRango(q, "created_at", rango).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *reporteRepo) ResumenCompras(ctx context.Context, rango RangoFechas) (*ResumenComprasRow, error) {
	var row ResumenComprasRow
	q := r.db.WithContext(ctx).
		Table("compras").
		Select("COUNT(*) AS cantidad, COALESCE(SUM(total), 0) AS total")
	err := aplicarRango(q, "created_at", rango).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *reporteRepo) Inventario(ctx context.Context) (*InventarioRow, error) {
	var row InventarioRow
	err := r.db.WithContext(ctx).
		Table("productos").
		Select(`COUNT(*) AS productos,
			COALESCE(SUM(stock), 0) AS unidades,
			COALESCE(SUM(stock * precio_compra), 0) AS valor_costo,
			COALESCE(SUM(stock * precio_venta), 0) AS valor_venta`).
		Where("activo = true").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *reporteRepo) FacturaIDsEnRango(ctx context.Context, rango RangoFechas) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	q := r.db.WithContext(ctx).
		Table("facturas f").
		Select("f.id").
		Joins("JOIN ventas v ON v.id = f.venta_id").
		Where("v.estado = 'completada'")
	err := aplicarRango(q, "v.created_at", rango).Scan(&ids).Error
	return ids, err
}

func (r *reporteRepo) VentaIDsEnRango(ctx context.Context, rango RangoFechas) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	q := r.db.WithContext(ctx).
		Table("ventas").
		Select("id").
		Where("estado = 'completada' AND cliente_id IS NOT NULL")
	err := aplicarRango(q, "created_at", rango).Scan(&ids).Error
	return ids, err
}

func (r *reporteRepo) TopProductos(ctx context.Context, facturaIDs []uuid.UUID, limit int) ([]TopProductoRow, error) {
	var rows []TopProductoRow
	q := r.db.WithContext(ctx).
		Table("detalle_facturas df").
		Select(`df.producto_id,
			p.nombre,
			COALESCE(SUM(df.cantidad), 0) AS unidades,
			COALESCE(SUM(df.cantidad * df.precio_unitario), 0) AS ingresos`).
		Joins("JOIN productos p ON p.id = df.producto_id").
		Group("df.producto_id, p.nombre").
		Order("unidades DESC").
		Limit(limit)
	if facturaIDs != nil {
		q = q.Where("df.factura_id IN ?", facturaIDs)
	}
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *reporteRepo) TopClientes(ctx context.Context, ventaIDs []uuid.UUID, limit int) ([]TopClienteRow, error) {
	var rows []TopClienteRow
	q := r.db.WithContext(ctx).
		Table("ventas v").
		Select(`v.cliente_id,
			c.nombre,
			COUNT(*) AS compras,
			COALESCE(SUM(v.total), 0) AS total_gasto`).
		Joins("JOIN clientes c ON c.id = v.cliente_id").
		Where("v.cliente_id IS NOT NULL").
		Group("v.cliente_id, c.nombre").
		Order("compras DESC").
		Limit(limit)
	if ventaIDs != nil {
		q = q.Where("v.id IN ?", ventaIDs)
	}
	err := q.Scan(&rows).Error
	return rows, err
}
