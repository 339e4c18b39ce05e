package repository

import (
	"context"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DevolucionRepository interface {
	// Create inserts the devolucion with its lines. The unique index on
	// venta_id makes a concurrent duplicate surface as gorm.ErrDuplicatedKey.
	Create(ctx context.Context, tx *gorm.DB, d *model.Devolucion) error
	ExistsByVentaID(ctx context.Context, tx *gorm.DB, ventaID uuid.UUID) (bool, error)
	FindByVentaID(ctx context.Context, ventaID uuid.UUID) (*model.Devolucion, error)
	ListRecientes(ctx context.Context, limit int) ([]model.Devolucion, error)
	DB() *gorm.DB
}

type devolucionRepo struct{ db *gorm.DB }

func NewDevolucionRepository(db *gorm.DB) DevolucionRepository { return &devolucionRepo{db: db} }

func (r *devolucionRepo) DB() *gorm.DB { return r.db }

func (r *devolucionRepo) Create(ctx context.Context, tx *gorm.DB, d *model.Devolucion) error {
	return tx.WithContext(ctx).Create(d).Error
}

func (r *devolucionRepo) ExistsByVentaID(ctx context.Context, tx *gorm.DB, ventaID uuid.UUID) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.Devolucion{}).
		Where("venta_id = ?", ventaID).
		Count(&count).Error
	return count > 0, err
}

func (r *devolucionRepo) FindByVentaID(ctx context.Context, ventaID uuid.UUID) (*model.Devolucion, error) {
	var d model.Devolucion
	err := r.db.WithContext(ctx).
		Preload("Lineas.Producto").
		First(&d, "venta_id = ?", ventaID).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *devolucionRepo) ListRecientes(ctx context.Context, limit int) ([]model.Devolucion, error) {
	var devs []model.Devolucion
	err := r.db.WithContext(ctx).
		Preload("Lineas").
		Order("created_at DESC").
		Limit(limit).
		Find(&devs).Error
	return devs, err
}
