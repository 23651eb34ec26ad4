package service

import (
	"context"
	"testing"

	"barstock/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardarNivelParEsUpsert(t *testing.T) {
	nRepo := newStubNivelParRepo()
	pRepo := newStubProductoRepo()
	p := pRepo.agregar(&model.Producto{Nombre: "Fernet"})
	svc := NewNivelParService(nRepo, pRepo)
	ctx := context.Background()

	primero, err := svc.Guardar(ctx, p.ID, decimal.RequireFromString("6"))
	require.NoError(t, err)
	assert.True(t, primero.Objetivo.Equal(decimal.RequireFromString("6")))

	segundo, err := svc.Guardar(ctx, p.ID, decimal.RequireFromString("10"))
	require.NoError(t, err)
	assert.True(t, segundo.Objetivo.Equal(decimal.RequireFromString("10")))

	list, err := svc.Listar(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1, "a lo sumo un nivel por producto")
}

func TestGuardarNivelParValida(t *testing.T) {
	svc := NewNivelParService(newStubNivelParRepo(), newStubProductoRepo())
	ctx := context.Background()

	_, err := svc.Guardar(ctx, uuid.New(), decimal.RequireFromString("-1"))
	assert.Error(t, err, "objetivo negativo")

	_, err = svc.Guardar(ctx, uuid.New(), decimal.RequireFromString("5"))
	assert.ErrorIs(t, err, ErrProductoNoEncontrado)
}

func TestEliminarNivelParInexistente(t *testing.T) {
	svc := NewNivelParService(newStubNivelParRepo(), newStubProductoRepo())

	err := svc.Eliminar(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrNivelParNoEncontrado)
}
