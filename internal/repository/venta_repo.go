package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	NextCodigoFactura(ctx context.Context, tx *gorm.DB) (string, error)
	// SumDelDiaPorTipoPago totals the user's completed sales for the calendar
	// day of fecha, keyed by payment-method type (efectivo/tarjeta/...).
	SumDelDiaPorTipoPago(ctx context.Context, usuarioID uuid.UUID, fecha time.Time) (map[string]decimal.Decimal, error)
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Factura.Detalles.Producto").
		Preload("MetodoPago").
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *ventaRepo) NextCodigoFactura(ctx context.Context, tx *gorm.DB) (string, error) {
	// Postgres sequence keeps invoice codes unique under concurrent sales.
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('ventas_codigo_factura_seq')").Scan(&num).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("F-%08d", num), nil
}

func (r *ventaRepo) SumDelDiaPorTipoPago(ctx context.Context, usuarioID uuid.UUID, fecha time.Time) (map[string]decimal.Decimal, error) {
	type row struct {
		Tipo  string
		Total decimal.Decimal
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("ventas v").
		Select("mp.tipo, COALESCE(SUM(v.total), 0) AS total").
		Joins("JOIN metodo_pagos mp ON mp.id = v.metodo_pago_id").
		Where("v.usuario_id = ? AND v.estado = 'completada' AND DATE(v.created_at) = DATE(?)", usuarioID, fecha).
		Group("mp.tipo").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sums := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		sums[r.Tipo] = r.Total
	}
	return sums, nil
}
