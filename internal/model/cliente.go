package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is an optional customer attached to a venta.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Documento *string   `gorm:"uniqueIndex"`
	CreatedAt time.Time
}

// MetodoPago classifies how a venta was paid.
// Tipo: "efectivo" | "tarjeta" | "transferencia" | "otro" — the cierre de caja
// only counts "efectivo" toward expected cash.
type MetodoPago struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"not null"`
	Tipo   string    `gorm:"type:varchar(20);not null;index"`
	Activo bool      `gorm:"not null;default:true"`
}
