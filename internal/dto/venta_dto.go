package dto

import "github.com/shopspring/decimal"

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,gt=0"`
}

type RegistrarVentaRequest struct {
	ClienteID    *string            `json:"cliente_id"     validate:"omitempty,uuid"`
	MetodoPagoID string             `json:"metodo_pago_id" validate:"required,uuid"`
	Items        []ItemVentaRequest `json:"items"          validate:"required,min=1,dive"`
}

type AnularVentaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=3"`
}

type ItemVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto,omitempty"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID            string              `json:"id"`
	CodigoFactura string              `json:"codigo_factura"`
	UsuarioID     string              `json:"usuario_id"`
	ClienteID     *string             `json:"cliente_id,omitempty"`
	MetodoPagoID  string              `json:"metodo_pago_id"`
	Items         []ItemVentaResponse `json:"items"`
	Total         decimal.Decimal     `json:"total"`
	Estado        string              `json:"estado"`
	CreadoEn      string              `json:"creado_en"`
}
