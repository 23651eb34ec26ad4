package repository

import (
	"context"

	"barstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DistribuidorRepository interface {
	Crear(ctx context.Context, d *model.Distribuidor) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Distribuidor, error)
	Listar(ctx context.Context) ([]model.Distribuidor, error)
	Actualizar(ctx context.Context, d *model.Distribuidor) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type distribuidorRepo struct{ db *gorm.DB }

func NewDistribuidorRepository(db *gorm.DB) DistribuidorRepository {
	return &distribuidorRepo{db: db}
}

func (r *distribuidorRepo) Crear(ctx context.Context, d *model.Distribuidor) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *distribuidorRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Distribuidor, error) {
	var d model.Distribuidor
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *distribuidorRepo) Listar(ctx context.Context) ([]model.Distribuidor, error) {
	var list []model.Distribuidor
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *distribuidorRepo) Actualizar(ctx context.Context, d *model.Distribuidor) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *distribuidorRepo) Eliminar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Distribuidor{}, "id = ?", id).Error
}
