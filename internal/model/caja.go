package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caja is a physical cash register. UsuarioAsignadoID is the exclusivity flag:
// nil means the register is free, otherwise exactly one user operates it.
// Claim/release always go through a compare-and-swap UPDATE on this column —
// never a read-then-write.
type Caja struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre            string     `gorm:"not null"`
	SucursalID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	UsuarioAsignadoID *uuid.UUID `gorm:"type:uuid;index"`
	// SaldoInicial is the configured opening balance copied into each session
	SaldoInicial decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Activa       bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	UsuarioAsignado *Usuario `gorm:"foreignKey:UsuarioAsignadoID"`
}

// CierreCaja is the end-of-day reconciliation record. Created exactly once per
// session, in the same transaction that releases the register.
// Clasificacion: "cuadrada" | "sobrante" | "faltante"
type CierreCaja struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CajaID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	UsuarioID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaldoInicial       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalVentas        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalDevoluciones  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalNeto          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EfectivoEsperado   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EfectivoContado    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Diferencia         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Clasificacion      string          `gorm:"type:varchar(20);not null"`
	CreatedAt          time.Time

	Caja    *Caja    `gorm:"foreignKey:CajaID"`
	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}
