package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Producto is a catalog item. Stock is mutated by compras (increment) and
// ventas (decrement); dropping to StockMinimo or below triggers a best-effort
// low-stock alert.
type Producto struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoBarras string          `gorm:"uniqueIndex;not null"`
	Nombre       string          `gorm:"index;not null"`
	Categoria    string          `gorm:"not null"`
	PrecioCompra decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioVenta  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock        int             `gorm:"not null;default:0"`
	StockMinimo  int             `gorm:"not null;default:5"`
	Activo       bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BeforeSave enforces that products are never priced below cost.
func (p *Producto) BeforeSave(_ *gorm.DB) error {
	if p.PrecioVenta.LessThan(p.PrecioCompra) {
		return errors.New("el precio de venta no puede ser menor al precio de compra")
	}
	if p.Stock < 0 || p.StockMinimo < 0 {
		return errors.New("el stock no puede ser negativo")
	}
	return nil
}
