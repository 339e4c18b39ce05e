package dto

import "github.com/shopspring/decimal"

type ResumenVentasResponse struct {
	Cantidad       int64           `json:"cantidad"`
	Total          decimal.Decimal `json:"total"`
	TicketPromedio decimal.Decimal `json:"ticket_promedio"`
}

type ResumenComprasResponse struct {
	Cantidad int64           `json:"cantidad"`
	Total    decimal.Decimal `json:"total"`
}

type InventarioResponse struct {
	Productos  int64           `json:"productos"`
	Unidades   int64           `json:"unidades"`
	ValorCosto decimal.Decimal `json:"valor_costo"`
	ValorVenta decimal.Decimal `json:"valor_venta"`
}

// AlertaStockItem classifies a product against its minimum.
// Estado: "agotado" (stock 0) | "bajo stock" (0 < stock ≤ mínimo)
type AlertaStockItem struct {
	ProductoID   string `json:"producto_id"`
	Nombre       string `json:"nombre"`
	CodigoBarras string `json:"codigo_barras"`
	Stock        int    `json:"stock"`
	StockMinimo  int    `json:"stock_minimo"`
	Estado       string `json:"estado"`
}

// BajoStockConteoResponse is the count-only variant for dashboard widgets.
type BajoStockConteoResponse struct {
	Agotados  int64 `json:"agotados"`
	BajoStock int64 `json:"bajo_stock"`
}

type TopProductoItem struct {
	ProductoID string          `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Unidades   int64           `json:"unidades"`
	Ingresos   decimal.Decimal `json:"ingresos"`
}

type TopClienteItem struct {
	ClienteID  string          `json:"cliente_id"`
	Nombre     string          `json:"nombre"`
	Compras    int64           `json:"compras"`
	TotalGasto decimal.Decimal `json:"total_gasto"`
	// TicketPromedio = TotalGasto / Compras, derived at read time
	TicketPromedio decimal.Decimal `json:"ticket_promedio"`
}
