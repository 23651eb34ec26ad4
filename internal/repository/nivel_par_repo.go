package repository

import (
	"context"

	"barstock/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NivelParRepository interface {
	// Guardar hace upsert por producto_id: crea la fila si no existe y pisa
	// el objetivo si ya hay una.
	Guardar(ctx context.Context, productoID uuid.UUID, objetivo decimal.Decimal) (*model.NivelPar, error)
	ObtenerPorProducto(ctx context.Context, productoID uuid.UUID) (*model.NivelPar, error)
	Listar(ctx context.Context) ([]model.NivelPar, error)
	Eliminar(ctx context.Context, productoID uuid.UUID) error
}

type nivelParRepo struct{ db *gorm.DB }

func NewNivelParRepository(db *gorm.DB) NivelParRepository { return &nivelParRepo{db: db} }

func (r *nivelParRepo) Guardar(ctx context.Context, productoID uuid.UUID, objetivo decimal.Decimal) (*model.NivelPar, error) {
	np := &model.NivelPar{ProductoID: productoID, Objetivo: objetivo}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "producto_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"objetivo", "updated_at"}),
	}).Create(np).Error
	if err != nil {
		return nil, err
	}
	return np, nil
}

func (r *nivelParRepo) ObtenerPorProducto(ctx context.Context, productoID uuid.UUID) (*model.NivelPar, error) {
	var np model.NivelPar
	err := r.db.WithContext(ctx).Where("producto_id = ?", productoID).First(&np).Error
	if err != nil {
		return nil, err
	}
	return &np, nil
}

func (r *nivelParRepo) Listar(ctx context.Context) ([]model.NivelPar, error) {
	var list []model.NivelPar
	err := r.db.WithContext(ctx).Find(&list).Error
	return list, err
}

func (r *nivelParRepo) Eliminar(ctx context.Context, productoID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.NivelPar{}, "producto_id = ?", productoID).Error
}
