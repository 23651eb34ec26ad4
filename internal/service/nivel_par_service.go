package service

import (
	"context"
	"errors"

	"barstock/internal/dto"
	"barstock/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNivelParNoEncontrado = errors.New("nivel par no encontrado")

// NivelParService administra los objetivos de reposición por producto.
// Un producto sin nivel par nunca entra en un pedido.
type NivelParService interface {
	Guardar(ctx context.Context, productoID uuid.UUID, objetivo decimal.Decimal) (*dto.NivelParResponse, error)
	Listar(ctx context.Context) ([]dto.NivelParResponse, error)
	Eliminar(ctx context.Context, productoID uuid.UUID) error
}

type nivelParService struct {
	repo         repository.NivelParRepository
	productoRepo repository.ProductoRepository
}

func NewNivelParService(repo repository.NivelParRepository, productoRepo repository.ProductoRepository) NivelParService {
	return &nivelParService{repo: repo, productoRepo: productoRepo}
}

func (s *nivelParService) Guardar(ctx context.Context, productoID uuid.UUID, objetivo decimal.Decimal) (*dto.NivelParResponse, error) {
	if objetivo.IsNegative() {
		return nil, errors.New("el objetivo no puede ser negativo")
	}
	if _, err := s.productoRepo.ObtenerPorID(ctx, productoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}

	np, err := s.repo.Guardar(ctx, productoID, objetivo)
	if err != nil {
		return nil, err
	}
	return &dto.NivelParResponse{ProductoID: np.ProductoID, Objetivo: np.Objetivo}, nil
}

func (s *nivelParService) Listar(ctx context.Context) ([]dto.NivelParResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.NivelParResponse, 0, len(list))
	for _, np := range list {
		result = append(result, dto.NivelParResponse{ProductoID: np.ProductoID, Objetivo: np.Objetivo})
	}
	return result, nil
}

func (s *nivelParService) Eliminar(ctx context.Context, productoID uuid.UUID) error {
	if _, err := s.repo.ObtenerPorProducto(ctx, productoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNivelParNoEncontrado
		}
		return err
	}
	return s.repo.Eliminar(ctx, productoID)
}
