package service

import (
	"context"
	"encoding/json"

	"barstock/internal/dto"
	"barstock/internal/model"
	"barstock/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	limiteHistorialGeneral  = 100
	limiteHistorialProducto = 50
)

// AccionService es el registro de auditoría de mutaciones sobre productos.
//
// Las escrituras son best-effort: la operación primaria (congelar, borrar,
// reordenar) ya se aplicó cuando se registra, y una falla del log jamás la
// revierte ni la hace fallar. El error se reporta por el canal operativo
// (zerolog) y nada más.
type AccionService interface {
	Registrar(ctx context.Context, productoID uuid.UUID, tipo, actor string, metadata map[string]interface{})
	RegistrarGrupo(ctx context.Context, tipo, actor string, metadata map[string]interface{})
	Historial(ctx context.Context, filter dto.AccionFilter) ([]dto.AccionResponse, error)
	HistorialProducto(ctx context.Context, productoID uuid.UUID) ([]dto.AccionResponse, error)
}

type accionService struct {
	repo repository.AccionRepository
}

func NewAccionService(repo repository.AccionRepository) AccionService {
	return &accionService{repo: repo}
}

func (s *accionService) Registrar(ctx context.Context, productoID uuid.UUID, tipo, actor string, metadata map[string]interface{}) {
	s.escribir(ctx, &productoID, tipo, actor, metadata)
}

// RegistrarGrupo registra una acción grupal (reordenar, escenarios) con
// sujeto NULL; los ids afectados van dentro de metadata.
func (s *accionService) RegistrarGrupo(ctx context.Context, tipo, actor string, metadata map[string]interface{}) {
	s.escribir(ctx, nil, tipo, actor, metadata)
}

func (s *accionService) escribir(ctx context.Context, productoID *uuid.UUID, tipo, actor string, metadata map[string]interface{}) {
	var raw json.RawMessage
	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err != nil {
			log.Error().Err(err).Str("tipo", tipo).Msg("accion: metadata no serializable")
		} else {
			raw = b
		}
	}

	a := &model.AccionProducto{
		ProductoID: productoID,
		Tipo:       tipo,
		Actor:      actor,
		Metadata:   raw,
	}
	if err := s.repo.Crear(ctx, a); err != nil {
		log.Error().Err(err).
			Str("tipo", tipo).
			Str("actor", actor).
			Msg("accion: no se pudo registrar (la operacion primaria NO se revierte)")
	}
}

func (s *accionService) Historial(ctx context.Context, filter dto.AccionFilter) ([]dto.AccionResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = limiteHistorialGeneral
	}
	acciones, err := s.repo.Listar(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]dto.AccionResponse, 0, len(acciones))
	for _, a := range acciones {
		result = append(result, dto.MapAccion(a))
	}
	return result, nil
}

func (s *accionService) HistorialProducto(ctx context.Context, productoID uuid.UUID) ([]dto.AccionResponse, error) {
	return s.Historial(ctx, dto.AccionFilter{
		ProductoID: &productoID,
		Limit:      limiteHistorialProducto,
	})
}
