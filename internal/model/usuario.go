package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario is an already-authenticated system user. Token issuance and password
// handling live in the identity service; this backend only trusts the claims.
// Rol: "cajero" | "supervisor" | "administrador"
type Usuario struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre     string     `gorm:"not null"`
	Rol        string     `gorm:"type:varchar(20);not null"`
	SucursalID *uuid.UUID `gorm:"type:uuid;index"`
	Activo     bool       `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Sucursal is a branch of the chain.
type Sucursal struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Direccion string
	CreatedAt time.Time
}

// Proveedor is a supplier (managed by the catalog CRUD, referenced here by compras).
type Proveedor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
}
