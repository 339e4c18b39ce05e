package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Devolucion is a merchandise-for-merchandise exchange against a prior sale.
// The store never refunds cash: TotalCambiado must cover TotalDevuelto within
// the money tolerance. The unique index on VentaID enforces at most one
// devolucion per venta at the store level, so two concurrent requests cannot
// both insert.
//
// Stock is intentionally NOT adjusted for either side of the exchange; manual
// stock correction happens elsewhere.
type Devolucion struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	UsuarioID      uuid.UUID       `gorm:"type:uuid;not null"`
	TotalDevuelto  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalCambiado  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Diferencia     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time       `gorm:"index"`

	Venta  *Venta            `gorm:"foreignKey:VentaID"`
	Lineas []LineaDevolucion `gorm:"foreignKey:DevolucionID"`
}

// LineaDevolucion is one line of a devolucion.
// Tipo: "devuelto" (goods coming back) | "entregado" (exchange goods going out)
type LineaDevolucion struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DevolucionID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo           string    `gorm:"type:varchar(10);not null"`
	ProductoID     uuid.UUID `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}
