package worker

// snapshot_cron.go
// Goroutine de fondo que re-espeja el catálogo en Redis cada cierto tiempo,
// para que el snapshot de fallback no envejezca aunque nadie consulte el
// catálogo. Respeta el contexto para el apagado ordenado.

import (
	"context"
	"time"

	"barstock/internal/service"

	"github.com/rs/zerolog/log"
)

// StartSnapshotCron lanza el refresco periódico del espejo del catálogo.
// interval <= 0 desactiva el cron.
func StartSnapshotCron(ctx context.Context, catalogo service.CatalogoService, interval time.Duration) {
	if interval <= 0 {
		log.Info().Msg("snapshot_cron: desactivado")
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("snapshot_cron: iniciado")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("snapshot_cron: apagándose")
				return
			case <-ticker.C:
				if err := catalogo.Refrescar(ctx); err != nil {
					// El snapshot viejo sigue sirviendo; sólo se loguea.
					log.Error().Err(err).Msg("snapshot_cron: refrescar espejo")
					continue
				}
				log.Debug().Msg("snapshot_cron: espejo actualizado")
			}
		}
	}()
}
