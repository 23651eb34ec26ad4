package service

import (
	"context"
	"errors"
	"fmt"

	"barstock/internal/cache"
	"barstock/internal/dto"
	"barstock/internal/repository"

	"github.com/rs/zerolog/log"
)

// CatalogoService entrega el catálogo completo (categorías + productos) con
// write-through al espejo de Redis. Cada carga exitosa desde Postgres pisa el
// snapshot; si Postgres no responde, se sirve el último snapshot marcado como
// stale. Si tampoco hay snapshot, el error original de la base sube tal cual.
type CatalogoService interface {
	Obtener(ctx context.Context) (*dto.CatalogoResponse, error)
	Refrescar(ctx context.Context) error
}

type catalogoService struct {
	categoriaRepo repository.CategoriaRepository
	productoRepo  repository.ProductoRepository
	espejo        *cache.Espejo
}

func NewCatalogoService(categoriaRepo repository.CategoriaRepository, productoRepo repository.ProductoRepository, espejo *cache.Espejo) CatalogoService {
	return &catalogoService{categoriaRepo: categoriaRepo, productoRepo: productoRepo, espejo: espejo}
}

func (s *catalogoService) Obtener(ctx context.Context) (*dto.CatalogoResponse, error) {
	snap, err := s.cargarDeBase(ctx)
	if err != nil {
		// Base caída: último snapshot como fallback de sólo lectura.
		viejo, cacheErr := s.espejo.Cargar(ctx)
		if cacheErr != nil {
			if errors.Is(cacheErr, cache.ErrSinSnapshot) {
				return nil, fmt.Errorf("catálogo: %w", err)
			}
			log.Error().Err(cacheErr).Msg("catálogo: espejo ilegible")
			return nil, fmt.Errorf("catálogo: %w", err)
		}
		log.Warn().Err(err).Time("guardado_en", viejo.GuardadoEn).Msg("catálogo servido desde el espejo")
		guardadoEn := viejo.GuardadoEn
		return &dto.CatalogoResponse{
			Categorias: viejo.Categorias,
			Productos:  viejo.Productos,
			Stale:      true,
			GuardadoEn: &guardadoEn,
		}, nil
	}

	// Write-through: el espejo se actualiza en cada lectura exitosa. Una
	// falla del espejo no afecta la respuesta.
	if err := s.espejo.Guardar(ctx, snap); err != nil {
		log.Error().Err(err).Msg("catálogo: no se pudo actualizar el espejo")
	}

	return &dto.CatalogoResponse{
		Categorias: snap.Categorias,
		Productos:  snap.Productos,
	}, nil
}

// Refrescar fuerza una re-espejada del catálogo. La usa el cron periódico
// para que el snapshot no envejezca aunque nadie consulte el catálogo.
func (s *catalogoService) Refrescar(ctx context.Context) error {
	snap, err := s.cargarDeBase(ctx)
	if err != nil {
		return err
	}
	return s.espejo.Guardar(ctx, snap)
}

func (s *catalogoService) cargarDeBase(ctx context.Context) (*dto.CatalogoSnapshot, error) {
	categorias, err := s.categoriaRepo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	productos, err := s.productoRepo.Listar(ctx, dto.ProductoFilter{})
	if err != nil {
		return nil, err
	}

	snap := &dto.CatalogoSnapshot{
		Categorias: make([]dto.CategoriaResponse, 0, len(categorias)),
		Productos:  make([]dto.ProductoResponse, 0, len(productos)),
	}
	for _, c := range categorias {
		snap.Categorias = append(snap.Categorias, mapCategoria(c))
	}
	for _, p := range productos {
		snap.Productos = append(snap.Productos, dto.MapProducto(p))
	}
	return snap, nil
}
