package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CerrarCajaRequest struct {
	EfectivoContado decimal.Decimal `json:"efectivo_contado" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CajaResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	SucursalID   string          `json:"sucursal_id"`
	SaldoInicial decimal.Decimal `json:"saldo_inicial"`
	Disponible   bool            `json:"disponible"`
}

// SesionCajaResponse describes a freshly claimed register session.
type SesionCajaResponse struct {
	CajaID       string          `json:"caja_id"`
	Nombre       string          `json:"nombre"`
	UsuarioID    string          `json:"usuario_id"`
	SaldoInicial decimal.Decimal `json:"saldo_inicial"`
	AbiertaEn    string          `json:"abierta_en"`
}

// VentasDelDiaResponse partitions the user's sales of the day by payment type.
// Used to compute expected cash before a cierre; never persisted.
type VentasDelDiaResponse struct {
	Efectivo      decimal.Decimal `json:"efectivo"`
	Tarjeta       decimal.Decimal `json:"tarjeta"`
	Transferencia decimal.Decimal `json:"transferencia"`
	Otro          decimal.Decimal `json:"otro"`
	Total         decimal.Decimal `json:"total"`
}

type CierreCajaResponse struct {
	ID                string          `json:"id"`
	CajaID            string          `json:"caja_id"`
	UsuarioID         string          `json:"usuario_id"`
	SaldoInicial      decimal.Decimal `json:"saldo_inicial"`
	TotalVentas       decimal.Decimal `json:"total_ventas"`
	TotalDevoluciones decimal.Decimal `json:"total_devoluciones"`
	TotalNeto         decimal.Decimal `json:"total_neto"`
	EfectivoEsperado  decimal.Decimal `json:"efectivo_esperado"`
	EfectivoContado   decimal.Decimal `json:"efectivo_contado"`
	Diferencia        decimal.Decimal `json:"diferencia"`
	Clasificacion     string          `json:"clasificacion"` // cuadrada | sobrante | faltante
	CreadoEn          string          `json:"creado_en"`
}
