package service

import (
	"context"
	"fmt"
	"time"

	"barstock/internal/dto"
	"barstock/internal/model"
	"barstock/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// flagsEscenario son los escenarios corribles. Cada uno nombra un flag
// booleano del producto: conteo semanal (rojo), revisión completa (verde),
// archivo de freezer largo (amarillo).
var flagsEscenario = map[string]bool{
	"rojo":     true,
	"verde":    true,
	"amarillo": true,
}

// EscenarioService implementa los barridos de congelado masivo.
//
// Correr el escenario F particiona el catálogo completo por F (NULL cuenta
// como false: sin flag explícito, se congela) y emite dos transiciones
// grupales secuenciales: congelar el grupo sin flag, descongelar el grupo con
// flag. No hay transacción entre ambas ni rollback: si la segunda falla, el
// estado parcial queda visible y re-ejecutar converge, porque los productos
// que ya están en el estado destino no cambian.
type EscenarioService interface {
	Ejecutar(ctx context.Context, flag, actor string) (*dto.EscenarioResult, error)
	DetenerTodos(ctx context.Context, actor string) (*dto.EscenarioResult, error)
}

type escenarioService struct {
	repo     repository.ProductoRepository
	acciones AccionService
	notif    Notificador
}

func NewEscenarioService(repo repository.ProductoRepository, acciones AccionService, notif Notificador) EscenarioService {
	return &escenarioService{repo: repo, acciones: acciones, notif: notif}
}

func (s *escenarioService) Ejecutar(ctx context.Context, flag, actor string) (*dto.EscenarioResult, error) {
	if !flagsEscenario[flag] {
		return nil, fmt.Errorf("escenario desconocido: %q", flag)
	}

	flags, err := s.repo.ListarFlags(ctx, flag)
	if err != nil {
		return nil, fmt.Errorf("escenario %s: leer flags: %w", flag, err)
	}

	var conFlag, sinFlag []uuid.UUID
	for _, f := range flags {
		if f.Valor {
			conFlag = append(conFlag, f.ID)
		} else {
			sinFlag = append(sinFlag, f.ID)
		}
	}

	// Grupo vacío = no-op, no error. CongelarGrupo/DescongelarGrupo ya
	// cortan con len==0, el orden congelar→descongelar queda fijo igual.
	if err := s.repo.CongelarGrupo(ctx, sinFlag, actor, time.Now()); err != nil {
		return nil, fmt.Errorf("escenario %s: congelar grupo sin flag: %w", flag, err)
	}
	if err := s.repo.DescongelarGrupo(ctx, conFlag); err != nil {
		// El grupo congelado ya quedó aplicado; se reporta y el llamador
		// re-ejecuta para converger.
		return nil, fmt.Errorf("escenario %s: descongelar grupo con flag: %w", flag, err)
	}

	s.acciones.RegistrarGrupo(ctx, model.AccionEscenario, actor, map[string]interface{}{
		"flag":           flag,
		"activos":        len(conFlag),
		"congelados":     len(sinFlag),
		"ids_congelados": sinFlag,
	})

	if s.notif != nil {
		s.notif.Difundir(EventoEstado{
			Tipo:       model.AccionEscenario,
			Flag:       flag,
			Activos:    len(conFlag),
			Congelados: len(sinFlag),
		})
	}

	log.Info().
		Str("flag", flag).
		Str("actor", actor).
		Int("activos", len(conFlag)).
		Int("congelados", len(sinFlag)).
		Msg("escenario ejecutado")

	return &dto.EscenarioResult{
		Exito:      true,
		Flag:       flag,
		Activos:    len(conFlag),
		Congelados: len(sinFlag),
	}, nil
}

// DetenerTodos descongela el catálogo completo sin particionar: un solo
// UPDATE agrupado que limpia congelado y metadata y restaura visibilidades.
func (s *escenarioService) DetenerTodos(ctx context.Context, actor string) (*dto.EscenarioResult, error) {
	n, err := s.repo.DescongelarTodos(ctx)
	if err != nil {
		return nil, fmt.Errorf("detener escenarios: %w", err)
	}

	s.acciones.RegistrarGrupo(ctx, model.AccionEscenarioStop, actor, map[string]interface{}{
		"descongelados": n,
	})

	if s.notif != nil {
		s.notif.Difundir(EventoEstado{Tipo: model.AccionEscenarioStop, Activos: int(n)})
	}

	log.Info().Str("actor", actor).Int64("descongelados", n).Msg("escenarios detenidos")

	return &dto.EscenarioResult{Exito: true, Activos: int(n)}, nil
}
