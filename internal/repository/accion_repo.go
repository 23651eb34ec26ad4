package repository

import (
	"context"

	"barstock/internal/dto"
	"barstock/internal/model"

	"gorm.io/gorm"
)

// AccionRepository escribe y consulta el historial append-only de acciones.
// No existe Update ni Delete a propósito.
type AccionRepository interface {
	Crear(ctx context.Context, a *model.AccionProducto) error
	Listar(ctx context.Context, filter dto.AccionFilter) ([]model.AccionProducto, error)
}

type accionRepo struct{ db *gorm.DB }

func NewAccionRepository(db *gorm.DB) AccionRepository { return &accionRepo{db: db} }

func (r *accionRepo) Crear(ctx context.Context, a *model.AccionProducto) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *accionRepo) Listar(ctx context.Context, filter dto.AccionFilter) ([]model.AccionProducto, error) {
	q := r.db.WithContext(ctx).Model(&model.AccionProducto{})

	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if filter.Actor != "" {
		q = q.Where("actor = ?", filter.Actor)
	}
	if filter.ProductoID != nil {
		q = q.Where("producto_id = ?", *filter.ProductoID)
	}
	if filter.Desde != nil {
		q = q.Where("created_at >= ?", *filter.Desde)
	}
	if filter.Hasta != nil {
		q = q.Where("created_at <= ?", *filter.Hasta)
	}

	limit := filter.Limit
	if limit < 1 || limit > 500 {
		limit = 100
	}

	var acciones []model.AccionProducto
	err := q.Order("created_at DESC").Limit(limit).Find(&acciones).Error
	return acciones, err
}
