package dto

import "github.com/shopspring/decimal"

type LineaDevolucionRequest struct {
	ProductoID     string          `json:"producto_id"     validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
}

type CrearDevolucionRequest struct {
	VentaID          string                   `json:"venta_id"          validate:"required,uuid"`
	LineasDevueltas  []LineaDevolucionRequest `json:"lineas_devueltas"  validate:"required,min=1,dive"`
	LineasEntregadas []LineaDevolucionRequest `json:"lineas_entregadas" validate:"required,min=1,dive"`
}

type LineaDevolucionResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto,omitempty"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

type DevolucionResponse struct {
	ID               string                    `json:"id"`
	VentaID          string                    `json:"venta_id"`
	UsuarioID        string                    `json:"usuario_id"`
	LineasDevueltas  []LineaDevolucionResponse `json:"lineas_devueltas"`
	LineasEntregadas []LineaDevolucionResponse `json:"lineas_entregadas"`
	TotalDevuelto    decimal.Decimal           `json:"total_devuelto"`
	TotalCambiado    decimal.Decimal           `json:"total_cambiado"`
	Diferencia       decimal.Decimal           `json:"diferencia"`
	CreadoEn         string                    `json:"creado_en"`
}
