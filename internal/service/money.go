package service

import "github.com/shopspring/decimal"

// toleranciaMoneda is the single rounding tolerance for every monetary
// comparison in this subsystem. Variance classification and the return
// balance check both derive from this constant — never compare money ad hoc.
var toleranciaMoneda = decimal.RequireFromString("0.01")

// montoCuadrado reports whether d is zero within tolerance (|d| < 0.01).
func montoCuadrado(d decimal.Decimal) bool {
	return d.Abs().LessThan(toleranciaMoneda)
}

// clasificarDiferencia buckets a cierre variance for reporting.
// Returns "cuadrada" | "sobrante" | "faltante". Classification never blocks
// the close; it only labels the record.
func clasificarDiferencia(d decimal.Decimal) string {
	switch {
	case montoCuadrado(d):
		return "cuadrada"
	case d.IsPositive():
		return "sobrante"
	default:
		return "faltante"
	}
}
