package dto

import "github.com/shopspring/decimal"

type ItemCompraRequest struct {
	ProductoID     string          `json:"producto_id"     validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
}

type RegistrarCompraRequest struct {
	ProveedorID string              `json:"proveedor_id" validate:"required,uuid"`
	Items       []ItemCompraRequest `json:"items"        validate:"required,min=1,dive"`
}

type CompraResponse struct {
	ID          string          `json:"id"`
	ProveedorID string          `json:"proveedor_id"`
	UsuarioID   string          `json:"usuario_id"`
	Total       decimal.Decimal `json:"total"`
	CreadoEn    string          `json:"creado_en"`
}
