package service

import "errors"

// Domain errors surfaced to operators. Handlers map each sentinel to an HTTP
// status (see handler/helpers.go); messages name the violated invariant so
// cashiers can self-correct without calling a supervisor.
var (
	// ErrNotFound — the referenced caja/venta/devolución does not exist.
	ErrNotFound = errors.New("recurso no encontrado")

	// ErrForbidden — the acting user is not the holder of the session.
	ErrForbidden = errors.New("solo el usuario asignado puede operar esta caja")

	// ErrCajaAsignada — Claim on a register already held by another user.
	ErrCajaAsignada = errors.New("la caja ya está asignada a otro usuario")

	// ErrSesionExistente — the user already holds an open register session.
	ErrSesionExistente = errors.New("el usuario ya tiene una caja asignada")

	// ErrCajaLibre — Close on a register with no open session.
	ErrCajaLibre = errors.New("la caja no tiene una sesión abierta")

	// ErrSinCaja — the user tried to record a sale without claiming a register.
	ErrSinCaja = errors.New("el usuario no tiene una caja asignada")

	// ErrDevolucionDuplicada — the sale already has a registered return.
	ErrDevolucionDuplicada = errors.New("la venta ya tiene una devolución registrada")

	// ErrReembolsoEfectivo — exchange goods worth less than the returned goods.
	ErrReembolsoEfectivo = errors.New("no se devuelve dinero: el valor del cambio debe cubrir el valor devuelto")

	// ErrValorExcedido — exchange goods worth more than the returned goods.
	ErrValorExcedido = errors.New("el valor del cambio excede lo devuelto: registre una venta aparte por la diferencia")

	// ErrValidacion — malformed or missing input.
	ErrValidacion = errors.New("datos inválidos")

	// ErrStockInsuficiente — a sale line exceeds the available stock.
	ErrStockInsuficiente = errors.New("stock insuficiente para el producto solicitado")
)
