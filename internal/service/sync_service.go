package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"barstock/internal/dto"
	"barstock/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// MaxBatchSize es el tope de entradas por llamada al procedimiento remoto.
const MaxBatchSize = 1000

// ErrSinDatosValidos se devuelve cuando llegaron entradas pero ninguna
// sobrevivió la validación: no se hace ninguna llamada remota.
var ErrSinDatosValidos = errors.New("ningún producto válido para sincronizar")

// SyncService reconcilia un conjunto de conteos editados contra la base,
// tolerando fallas parciales.
//
// Pipeline: validar/normalizar → partir en lotes de MaxBatchSize → despachar
// todos los lotes en paralelo (los lotes tocan ids disjuntos, el orden de
// finalización no importa) → agregar conteos y errores por registro.
//
// Nunca reintenta solo: re-ejecutar con el mismo payload es idempotente y
// queda a criterio del llamador.
type SyncService interface {
	BulkSync(ctx context.Context, actor string, edits []dto.ProductoEdit) (*dto.SyncResult, error)
}

type syncService struct {
	repo repository.ProductoRepository
}

func NewSyncService(repo repository.ProductoRepository) SyncService {
	return &syncService{repo: repo}
}

func (s *syncService) BulkSync(ctx context.Context, actor string, edits []dto.ProductoEdit) (*dto.SyncResult, error) {
	inicio := time.Now()

	// Conjunto vacío: éxito trivial, cero llamadas de red.
	if len(edits) == 0 {
		return &dto.SyncResult{Exito: true, DuracionMs: time.Since(inicio).Milliseconds()}, nil
	}

	validados, errores := normalizar(edits)
	if len(validados) == 0 {
		return nil, ErrSinDatosValidos
	}

	res := &dto.SyncResult{
		Total:     len(validados),
		Invalidos: len(edits) - len(validados),
		Errores:   errores,
	}

	lotes := partir(validados, MaxBatchSize)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		fatal error
	)
	for _, lote := range lotes {
		wg.Add(1)
		go func(lote []dto.CantidadesLote) {
			defer wg.Done()
			r, err := s.repo.BulkActualizarCantidades(ctx, lote)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// Falla total del lote (red/procedimiento). Se conserva lo
				// agregado de los lotes que sí terminaron; no hay rollback.
				fatal = err
				res.Errores = append(res.Errores, dto.ErrorRegistro{Error: err.Error()})
				return
			}
			res.Actualizados += r.UpdatedCount
			res.Fallidos += r.FailedCount
			res.Errores = append(res.Errores, r.Errors...)
		}(lote)
	}
	wg.Wait()

	if fatal != nil {
		// Todo lo no confirmado cuenta como fallido.
		res.Fallidos = res.Total - res.Actualizados
		res.Exito = false
	} else {
		res.Exito = res.Fallidos == 0
	}
	res.DuracionMs = time.Since(inicio).Milliseconds()

	log.Info().
		Str("actor", actor).
		Int("total", res.Total).
		Int("actualizados", res.Actualizados).
		Int("fallidos", res.Fallidos).
		Int("invalidos", res.Invalidos).
		Int64("duracion_ms", res.DuracionMs).
		Msg("bulk sync")

	return res, nil
}

// normalizar valida cada entrada y la convierte a su forma canónica.
// Reglas: id obligatorio; cantidades numéricas (número JSON o string
// numérico), ausente/null vale cero; cualquier otra cosa descarta la entrada
// entera y la cuenta como inválida.
func normalizar(edits []dto.ProductoEdit) ([]dto.CantidadesLote, []dto.ErrorRegistro) {
	validados := make([]dto.CantidadesLote, 0, len(edits))
	var errores []dto.ErrorRegistro

	for _, e := range edits {
		if e.ID == "" {
			errores = append(errores, dto.ErrorRegistro{Error: "entrada sin id"})
			continue
		}

		b1, ok1 := aDecimal(e.CantidadBarra1)
		b2, ok2 := aDecimal(e.CantidadBarra2)
		cam, ok3 := aDecimal(e.CantidadCamara)
		if !ok1 || !ok2 || !ok3 {
			errores = append(errores, dto.ErrorRegistro{ID: e.ID, Error: "cantidad no numérica"})
			continue
		}

		validados = append(validados, dto.CantidadesLote{
			ID:             e.ID,
			CantidadBarra1: b1,
			CantidadBarra2: b2,
			CantidadCamara: cam,
		})
	}
	return validados, errores
}

// aDecimal tolera los tipos con los que el cliente puede mandar un conteo.
// nil (campo ausente o null) normaliza a cero.
func aDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, true
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case decimal.Decimal:
		return n, true
	default:
		return decimal.Zero, false
	}
}

// partir corta la lista en lotes consecutivos de a lo sumo tam entradas,
// preservando el orden relativo original.
func partir(entradas []dto.CantidadesLote, tam int) [][]dto.CantidadesLote {
	var lotes [][]dto.CantidadesLote
	for i := 0; i < len(entradas); i += tam {
		fin := i + tam
		if fin > len(entradas) {
			fin = len(entradas)
		}
		lotes = append(lotes, entradas[i:fin])
	}
	return lotes
}
