package repository

import (
	"context"
	"errors"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CajaRepository owns the register pool and its cierre records. Asignar and
// Liberar are compare-and-swap updates: the WHERE clause is the guard and the
// affected-row count is the verdict, so two concurrent claims on the same
// register can never both succeed.
type CajaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error)
	// FindByIDTx fetches the register row-locked inside tx (SELECT ... FOR UPDATE).
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Caja, error)
	ListDisponibles(ctx context.Context) ([]model.Caja, error)
	FindAsignadaAUsuario(ctx context.Context, tx *gorm.DB, usuarioID uuid.UUID) (*model.Caja, error)
	// Asignar claims the register for usuarioID iff it is currently free.
	// Returns false when the CAS matched no row (already claimed).
	Asignar(ctx context.Context, tx *gorm.DB, cajaID, usuarioID uuid.UUID) (bool, error)
	// Liberar releases the register iff usuarioID is the current holder.
	Liberar(ctx context.Context, tx *gorm.DB, cajaID, usuarioID uuid.UUID) (bool, error)
	CreateCierre(ctx context.Context, tx *gorm.DB, cierre *model.CierreCaja) error
	ListCierres(ctx context.Context, page, limit int) ([]model.CierreCaja, int64, error)
	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

func (r *cajaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) ListDisponibles(ctx context.Context) ([]model.Caja, error) {
	var cajas []model.Caja
	err := r.db.WithContext(ctx).
		Where("usuario_asignado_id IS NULL AND activa = true").
		Order("nombre ASC").
		Find(&cajas).Error
	return cajas, err
}

func (r *cajaRepo) FindAsignadaAUsuario(ctx context.Context, tx *gorm.DB, usuarioID uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := tx.WithContext(ctx).Where("usuario_asignado_id = ?", usuarioID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) Asignar(ctx context.Context, tx *gorm.DB, cajaID, usuarioID uuid.UUID) (bool, error) {
	res := tx.WithContext(ctx).Model(&model.Caja{}).
		Where("id = ? AND usuario_asignado_id IS NULL AND activa = true", cajaID).
		Update("usuario_asignado_id", usuarioID)
	return res.RowsAffected == 1, res.Error
}

func (r *cajaRepo) Liberar(ctx context.Context, tx *gorm.DB, cajaID, usuarioID uuid.UUID) (bool, error) {
	res := tx.WithContext(ctx).Model(&model.Caja{}).
		Where("id = ? AND usuario_asignado_id = ?", cajaID, usuarioID).
		Update("usuario_asignado_id", nil)
	return res.RowsAffected == 1, res.Error
}

func (r *cajaRepo) CreateCierre(ctx context.Context, tx *gorm.DB, cierre *model.CierreCaja) error {
	return tx.WithContext(ctx).Create(cierre).Error
}

func (r *cajaRepo) ListCierres(ctx context.Context, page, limit int) ([]model.CierreCaja, int64, error) {
	var cierres []model.CierreCaja
	var total int64

	q := r.db.WithContext(ctx).Model(&model.CierreCaja{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Caja").Preload("Usuario").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&cierres).Error
	return cierres, total, err
}
