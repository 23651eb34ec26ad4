package worker

// orden_worker.go
// Despacha pedidos de reposición por mail: genera el PDF del pedido y lo
// manda al distribuidor a través del circuit breaker de SMTP. Un error
// devuelto acá dispara el re-encolado del pool (y eventualmente la DLQ).

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"barstock/internal/infra"

	"github.com/rs/zerolog/log"
)

type OrdenWorker struct {
	mailer      *infra.Mailer
	cb          *infra.CircuitBreaker
	storagePath string
}

func NewOrdenWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, storagePath string) *OrdenWorker {
	return &OrdenWorker{mailer: mailer, cb: cb, storagePath: storagePath}
}

// Process genera el PDF y manda el mail. El payload malformado no se
// reintenta: no va a mejorar en el segundo intento.
func (w *OrdenWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload OrdenJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("orden_worker: payload inválido")
		return nil
	}
	if payload.Email == "" || payload.Orden == nil {
		log.Warn().Msg("orden_worker: payload incompleto, descartado")
		return nil
	}

	pdfPath, err := infra.GenerateOrdenPDF(payload.Orden, w.storagePath)
	if err != nil {
		return fmt.Errorf("orden_worker: generar PDF: %w", err)
	}

	subject := fmt.Sprintf("Pedido de reposición — %s", payload.Orden.Distribuidor)
	err = w.cb.Execute(func() error {
		return w.mailer.SendOrden(payload.Email, subject, payload.Orden.Mensaje, pdfPath)
	})
	if err != nil {
		if errors.Is(err, infra.ErrCircuitOpen) {
			log.Warn().Str("to", payload.Email).Msg("orden_worker: circuit breaker abierto")
		}
		return fmt.Errorf("orden_worker: enviar: %w", err)
	}

	log.Info().
		Str("to", payload.Email).
		Str("distribuidor", payload.Orden.Distribuidor).
		Int("items", len(payload.Orden.Items)).
		Msg("orden_worker: pedido enviado")
	return nil
}
