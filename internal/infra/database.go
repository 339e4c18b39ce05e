package infra

import (
	"fmt"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate,
// then applies the idempotent SQL patches GORM cannot express (the invoice
// code sequence).
//
// TranslateError turns driver unique-violation errors into
// gorm.ErrDuplicatedKey, which the devolución service relies on to detect a
// concurrent duplicate return.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Sucursal{},
		&model.Usuario{},
		&model.Cliente{},
		&model.MetodoPago{},
		&model.Proveedor{},
		&model.Producto{},
		&model.Caja{},
		&model.CierreCaja{},
		&model.Venta{},
		&model.Factura{},
		&model.DetalleFactura{},
		&model.Devolucion{},
		&model.LineaDevolucion{},
		&model.Compra{},
		&model.DetalleCompra{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate does not cover.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`CREATE SEQUENCE IF NOT EXISTS ventas_codigo_factura_seq`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return err
		}
	}
	return nil
}
