package worker

import (
	"context"
	"encoding/json"
	"time"

	"barstock/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueOrdenes = "jobs:ordenes"

	// MaxOrdenRetries es el tope de reintentos antes de mandar el job a la
	// DLQ. El reintento es por re-encolado: el job vuelve al final de la
	// cola con attempts+1.
	MaxOrdenRetries = 3
)

// Job es el sobre genérico de toda tarea asíncrona.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// OrdenJobPayload es el trabajo de despachar un pedido por mail.
type OrdenJobPayload struct {
	Orden *dto.OrdenResponse `json:"orden"`
	Email string             `json:"email"`
}

// Dispatcher encola tareas asíncronas en listas de Redis.
// El pool de workers las saca con BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EncolarOrden empuja el despacho de un pedido a Redis. Implementa
// service.ColaOrdenes.
func (d *Dispatcher) EncolarOrden(ctx context.Context, orden *dto.OrdenResponse, email string) error {
	return d.enqueue(ctx, QueueOrdenes, "orden", OrdenJobPayload{Orden: orden, Email: email})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool lanza numWorkers goroutines consumiendo la cola de
// pedidos. Cada goroutine bloquea en BRPOP, cero CPU en reposo.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, ordenes *OrdenWorker) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, ordenes)
	}
	log.Info().Msgf("worker pool iniciado con %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, ordenes *OrdenWorker) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d apagándose", id)
			return
		default:
			// Pop bloqueante: espera hasta 5s y vuelve a chequear ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueOrdenes).Result()
			if err != nil {
				continue // timeout o contexto cancelado
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, result[0], result[1], ordenes)
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, queue, raw string, ordenes *OrdenWorker) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("job ilegible")
		return
	}

	var err error
	switch job.Type {
	case "orden":
		err = ordenes.Process(ctx, job.Payload)
	default:
		log.Warn().Str("type", job.Type).Msg("tipo de job desconocido")
		return
	}
	if err == nil {
		return
	}

	job.Attempts++
	if job.Attempts >= MaxOrdenRetries {
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
		return
	}

	// Re-encolar al final para no bloquear la cola con un job que falla.
	encoded, mErr := json.Marshal(job)
	if mErr != nil {
		log.Error().Err(mErr).Msg("re-encolar: serializar job")
		return
	}
	if pErr := rdb.LPush(ctx, queue, encoded).Err(); pErr != nil {
		log.Error().Err(pErr).Msg("re-encolar: push")
		return
	}
	log.Warn().
		Str("type", job.Type).
		Int("attempts", job.Attempts).
		Err(err).
		Msg("job falló, re-encolado")
}
