package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"barstock/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkSyncVacioEsExitoTrivial(t *testing.T) {
	repo := newStubProductoRepo()
	svc := NewSyncService(repo)

	res, err := svc.BulkSync(context.Background(), "encargado", nil)

	require.NoError(t, err)
	assert.True(t, res.Exito)
	assert.Equal(t, 0, res.Total)
	assert.Empty(t, repo.lotes, "un payload vacío no debe tocar la base")
}

func TestBulkSyncDescartaEntradasInvalidas(t *testing.T) {
	repo := newStubProductoRepo()
	svc := NewSyncService(repo)

	edits := []dto.ProductoEdit{
		{ID: "a1", CantidadBarra1: float64(3), CantidadBarra2: "2.5", CantidadCamara: nil},
		{ID: "", CantidadBarra1: float64(1)},                 // sin id
		{ID: "a2", CantidadBarra1: "doce"},                   // string no numérico
		{ID: "a3", CantidadBarra1: []string{"1"}},            // tipo imposible
		{ID: "a4", CantidadBarra1: nil, CantidadCamara: nil}, // todo null → ceros
	}

	res, err := svc.BulkSync(context.Background(), "encargado", edits)

	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 3, res.Invalidos)
	assert.Equal(t, 2, res.Actualizados)
	assert.True(t, res.Exito, "los inválidos descartados no hacen fallar el lote")
	assert.Len(t, res.Errores, 3)

	require.Len(t, repo.lotes, 1)
	lote := repo.lotes[0]
	require.Len(t, lote, 2)
	assert.Equal(t, "a1", lote[0].ID)
	assert.True(t, lote[0].CantidadBarra2.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, lote[0].CantidadCamara.IsZero(), "null normaliza a cero")
	assert.Equal(t, "a4", lote[1].ID)
}

func TestBulkSyncEsIdempotente(t *testing.T) {
	repo := newStubProductoRepo()
	svc := NewSyncService(repo)
	edits := []dto.ProductoEdit{
		{ID: "a1", CantidadBarra1: float64(3)},
		{ID: "a2", CantidadBarra2: "1.5"},
	}

	primero, err := svc.BulkSync(context.Background(), "encargado", edits)
	require.NoError(t, err)
	segundo, err := svc.BulkSync(context.Background(), "encargado", edits)
	require.NoError(t, err)

	assert.Equal(t, primero.Actualizados, segundo.Actualizados)
	assert.Equal(t, primero.Total, segundo.Total)
	require.Len(t, repo.lotes, 2)
	assert.Equal(t, repo.lotes[0], repo.lotes[1], "mismo payload, mismo lote normalizado")
}

func TestBulkSyncSinSobrevivientes(t *testing.T) {
	repo := newStubProductoRepo()
	svc := NewSyncService(repo)

	edits := []dto.ProductoEdit{
		{ID: "", CantidadBarra1: float64(1)},
		{ID: "x", CantidadBarra1: "no"},
	}

	_, err := svc.BulkSync(context.Background(), "encargado", edits)

	require.ErrorIs(t, err, ErrSinDatosValidos)
	assert.Empty(t, repo.lotes, "sin datos válidos no hay llamada remota")
}

func TestBulkSyncParteEnLotesDeATope(t *testing.T) {
	repo := newStubProductoRepo()
	svc := NewSyncService(repo)

	edits := make([]dto.ProductoEdit, 0, 2500)
	for i := 0; i < 2500; i++ {
		edits = append(edits, dto.ProductoEdit{ID: fmt.Sprintf("p%04d", i), CantidadBarra1: float64(i)})
	}

	res, err := svc.BulkSync(context.Background(), "encargado", edits)

	require.NoError(t, err)
	assert.True(t, res.Exito)
	assert.Equal(t, 2500, res.Actualizados)

	require.Len(t, repo.lotes, 3, "2500 entradas → ceil(2500/1000) lotes")
	total := 0
	for _, lote := range repo.lotes {
		assert.LessOrEqual(t, len(lote), MaxBatchSize)
		total += len(lote)
	}
	assert.Equal(t, 2500, total)
}

func TestBulkSyncAgregaFallasPorRegistro(t *testing.T) {
	repo := newStubProductoRepo()
	repo.bulkFn = func(lote []dto.CantidadesLote) (*dto.ResultadoLote, error) {
		res := &dto.ResultadoLote{}
		for _, e := range lote {
			if e.ID == "b2" {
				res.FailedCount++
				res.Errors = append(res.Errors, dto.ErrorRegistro{ID: e.ID, Error: "producto inexistente"})
				continue
			}
			res.UpdatedCount++
		}
		return res, nil
	}
	svc := NewSyncService(repo)

	edits := []dto.ProductoEdit{
		{ID: "b1", CantidadBarra1: float64(1)},
		{ID: "b2", CantidadBarra1: float64(2)},
		{ID: "b3", CantidadBarra1: float64(3)},
	}

	res, err := svc.BulkSync(context.Background(), "encargado", edits)

	require.NoError(t, err)
	assert.False(t, res.Exito)
	assert.Equal(t, 2, res.Actualizados)
	assert.Equal(t, 1, res.Fallidos)
	require.Len(t, res.Errores, 1)
	assert.Equal(t, "b2", res.Errores[0].ID)
}

func TestBulkSyncFallaTotalDeUnLote(t *testing.T) {
	repo := newStubProductoRepo()
	repo.bulkFn = func(lote []dto.CantidadesLote) (*dto.ResultadoLote, error) {
		for _, e := range lote {
			if strings.HasPrefix(e.ID, "p1") {
				return nil, errors.New("conexión perdida")
			}
		}
		return &dto.ResultadoLote{UpdatedCount: len(lote)}, nil
	}
	svc := NewSyncService(repo)

	// Tres lotes; el del medio (ids p1xxx) explota entero.
	edits := make([]dto.ProductoEdit, 0, 2100)
	for i := 0; i < 2100; i++ {
		edits = append(edits, dto.ProductoEdit{ID: fmt.Sprintf("p%04d", i), CantidadBarra1: float64(1)})
	}

	res, err := svc.BulkSync(context.Background(), "encargado", edits)

	require.NoError(t, err, "la falla de un lote se reporta en el resultado, no como error")
	assert.False(t, res.Exito)
	assert.Equal(t, 2100, res.Total)
	assert.Equal(t, res.Total-res.Actualizados, res.Fallidos, "lo no confirmado cuenta como fallido")
	assert.Greater(t, res.Actualizados, 0, "los lotes que terminaron se conservan")
}

func TestADecimal(t *testing.T) {
	casos := []struct {
		nombre string
		in     any
		want   string
		ok     bool
	}{
		{"nil es cero", nil, "0", true},
		{"float", float64(2.5), "2.5", true},
		{"entero", 7, "7", true},
		{"string numérico", "12.75", "12.75", true},
		{"string con basura", "12x", "", false},
		{"bool", true, "", false},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			d, ok := aDecimal(c.in)
			assert.Equal(t, c.ok, ok)
			if c.ok {
				assert.True(t, d.Equal(decimal.RequireFromString(c.want)), "got %s", d)
			}
		})
	}
}

func TestPartirPreservaOrden(t *testing.T) {
	entradas := make([]dto.CantidadesLote, 5)
	for i := range entradas {
		entradas[i].ID = fmt.Sprintf("p%d", i)
	}

	lotes := partir(entradas, 2)

	require.Len(t, lotes, 3)
	assert.Equal(t, "p0", lotes[0][0].ID)
	assert.Equal(t, "p4", lotes[2][0].ID)
	assert.Len(t, lotes[2], 1)

	assert.Nil(t, partir(nil, 2))
}
