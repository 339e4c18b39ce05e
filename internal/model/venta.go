package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is a completed point-of-sale transaction.
// Estado: "completada" | "pendiente" | "anulada"
// A venta has at most one Devolucion (unique index on devoluciones.venta_id).
type Venta struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoFactura string     `gorm:"uniqueIndex;not null"`
	UsuarioID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClienteID     *uuid.UUID `gorm:"type:uuid;index"`
	MetodoPagoID  uuid.UUID  `gorm:"type:uuid;not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado        string          `gorm:"type:varchar(20);not null;default:'completada'"`
	CreatedAt     time.Time       `gorm:"index"`

	Usuario    *Usuario    `gorm:"foreignKey:UsuarioID"`
	Cliente    *Cliente    `gorm:"foreignKey:ClienteID"`
	MetodoPago *MetodoPago `gorm:"foreignKey:MetodoPagoID"`
	Factura    *Factura    `gorm:"foreignKey:VentaID"`
}

// Factura is the billing projection of a Venta (1:1).
type Factura struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Impuestos decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Detalles []DetalleFactura `gorm:"foreignKey:FacturaID"`
}

// DetalleFactura is an invoice line. Lines deliberately carry no timestamp of
// their own: every temporal filter must resolve through the parent Venta's
// CreatedAt (see reporte_repo).
type DetalleFactura struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FacturaID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}
