package service

import (
	"context"
	"testing"

	"barstock/internal/dto"
	"barstock/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrarGrupoSinSujeto(t *testing.T) {
	repo := &stubAccionRepo{}
	svc := NewAccionService(repo)

	svc.RegistrarGrupo(context.Background(), model.AccionReordenar, "encargada", map[string]interface{}{
		"total": 3,
	})

	require.Len(t, repo.acciones, 1)
	assert.Nil(t, repo.acciones[0].ProductoID)
	assert.Equal(t, "encargada", repo.acciones[0].Actor)
	assert.JSONEq(t, `{"total":3}`, string(repo.acciones[0].Metadata))
}

func TestRegistrarNoPropagaFallasDelLog(t *testing.T) {
	repo := &stubAccionRepo{failAll: true}
	svc := NewAccionService(repo)

	// Best-effort: no hay error que devolver ni pánico que esperar.
	svc.Registrar(context.Background(), uuid.New(), model.AccionCongelar, "encargada", nil)

	assert.Empty(t, repo.acciones)
}

func TestHistorialFiltraYLimita(t *testing.T) {
	repo := &stubAccionRepo{}
	svc := NewAccionService(repo)
	pid := uuid.New()

	svc.Registrar(context.Background(), pid, model.AccionCongelar, "ana", nil)
	svc.Registrar(context.Background(), pid, model.AccionDescongelar, "beto", nil)
	svc.RegistrarGrupo(context.Background(), model.AccionEscenario, "ana", nil)

	porTipo, err := svc.Historial(context.Background(), dto.AccionFilter{Tipo: model.AccionCongelar})
	require.NoError(t, err)
	require.Len(t, porTipo, 1)
	assert.Equal(t, "ana", porTipo[0].Actor)

	porActor, err := svc.Historial(context.Background(), dto.AccionFilter{Actor: "ana"})
	require.NoError(t, err)
	assert.Len(t, porActor, 2)

	// El filtro por producto nunca devuelve acciones grupales.
	porProducto, err := svc.HistorialProducto(context.Background(), pid)
	require.NoError(t, err)
	assert.Len(t, porProducto, 2)
	for _, a := range porProducto {
		require.NotNil(t, a.ProductoID)
		assert.Equal(t, pid, *a.ProductoID)
	}
}
