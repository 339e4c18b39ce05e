package repository

import (
	"context"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error)
	// DescontarStock decrements stock iff enough units remain; the guard lives
	// in the WHERE clause so concurrent sales cannot oversell.
	DescontarStock(tx *gorm.DB, id uuid.UUID, cantidad int) (bool, error)
	ReponerStock(tx *gorm.DB, id uuid.UUID, cantidad int) error
	// ListBajoStock returns active products at or below their minimum, stock ascending.
	ListBajoStock(ctx context.Context) ([]model.Producto, error)
	// ContarBajoStock is the count-only variant for dashboard widgets.
	ContarBajoStock(ctx context.Context) (agotados, bajos int64, err error)
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := tx.First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) DescontarStock(tx *gorm.DB, id uuid.UUID, cantidad int) (bool, error) {
	res := tx.Model(&model.Producto{}).
		Where("id = ? AND stock >= ?", id, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	return res.RowsAffected == 1, res.Error
}

func (r *productoRepo) ReponerStock(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	return tx.Model(&model.Producto{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", cantidad)).Error
}

func (r *productoRepo) ListBajoStock(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("activo = true AND stock <= stock_minimo").
		Order("stock ASC").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) ContarBajoStock(ctx context.Context) (agotados, bajos int64, err error) {
	base := r.db.WithContext(ctx).Model(&model.Producto{}).Where("activo = true")
	if err = base.Session(&gorm.Session{}).Where("stock = 0").Count(&agotados).Error; err != nil {
		return 0, 0, err
	}
	err = base.Session(&gorm.Session{}).Where("stock > 0 AND stock <= stock_minimo").Count(&bajos).Error
	return agotados, bajos, err
}
