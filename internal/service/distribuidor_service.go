package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"barstock/internal/dto"
	"barstock/internal/model"
	"barstock/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DistribuidorService interface {
	Crear(ctx context.Context, req dto.CrearDistribuidorRequest) (*dto.DistribuidorResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.DistribuidorResponse, error)
	Listar(ctx context.Context) ([]dto.DistribuidorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearDistribuidorRequest) (*dto.DistribuidorResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type distribuidorService struct {
	repo         repository.DistribuidorRepository
	productoRepo repository.ProductoRepository
}

func NewDistribuidorService(repo repository.DistribuidorRepository, productoRepo repository.ProductoRepository) DistribuidorService {
	return &distribuidorService{repo: repo, productoRepo: productoRepo}
}

// NormalizarTelefono deja sólo dígitos y el + inicial si lo había:
// "+54 9 11 4444-5555" → "+5491144445555". Vacío si no quedan dígitos.
func NormalizarTelefono(tel string) string {
	var b strings.Builder
	for i, r := range tel {
		if i == 0 && r == '+' {
			b.WriteRune(r)
			continue
		}
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 || (b.Len() == 1 && strings.HasPrefix(b.String(), "+")) {
		return ""
	}
	return b.String()
}

func mapDistribuidor(d model.Distribuidor) dto.DistribuidorResponse {
	return dto.DistribuidorResponse{ID: d.ID, Nombre: d.Nombre, Telefono: d.Telefono, Email: d.Email}
}

func (s *distribuidorService) Crear(ctx context.Context, req dto.CrearDistribuidorRequest) (*dto.DistribuidorResponse, error) {
	d := &model.Distribuidor{Nombre: req.Nombre, Email: req.Email}
	if req.Telefono != nil {
		if tel := NormalizarTelefono(*req.Telefono); tel != "" {
			d.Telefono = &tel
		}
	}
	if err := s.repo.Crear(ctx, d); err != nil {
		return nil, err
	}
	resp := mapDistribuidor(*d)
	return &resp, nil
}

func (s *distribuidorService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.DistribuidorResponse, error) {
	d, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("distribuidor no encontrado")
		}
		return nil, err
	}
	resp := mapDistribuidor(*d)
	return &resp, nil
}

func (s *distribuidorService) Listar(ctx context.Context) ([]dto.DistribuidorResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.DistribuidorResponse, 0, len(list))
	for _, d := range list {
		result = append(result, mapDistribuidor(d))
	}
	return result, nil
}

func (s *distribuidorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearDistribuidorRequest) (*dto.DistribuidorResponse, error) {
	d, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("distribuidor no encontrado")
		}
		return nil, err
	}

	d.Nombre = req.Nombre
	d.Email = req.Email
	d.Telefono = nil
	if req.Telefono != nil {
		if tel := NormalizarTelefono(*req.Telefono); tel != "" {
			d.Telefono = &tel
		}
	}

	if err := s.repo.Actualizar(ctx, d); err != nil {
		return nil, err
	}
	resp := mapDistribuidor(*d)
	return &resp, nil
}

// Eliminar anula primero la referencia en los productos (nunca cascadea) y
// recién después borra el distribuidor.
func (s *distribuidorService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("distribuidor no encontrado")
		}
		return err
	}
	if err := s.productoRepo.QuitarDistribuidor(ctx, id); err != nil {
		return err
	}
	return s.repo.Eliminar(ctx, id)
}
