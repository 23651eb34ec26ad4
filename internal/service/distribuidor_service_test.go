package service

import (
	"context"
	"testing"

	"barstock/internal/dto"
	"barstock/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizarTelefono(t *testing.T) {
	casos := []struct{ in, want string }{
		{"+54 9 11 4444-5555", "+5491144445555"},
		{"011 4444 5555", "01144445555"},
		{"(011) 4444-5555", "01144445555"},
		{"sin teléfono", ""},
		{"+", ""},
		{"", ""},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, NormalizarTelefono(c.in), "entrada %q", c.in)
	}
}

func TestCrearDistribuidorNormalizaTelefono(t *testing.T) {
	svc := NewDistribuidorService(newStubDistribuidorRepo(), newStubProductoRepo())

	tel := "+54 11 5555-0000"
	resp, err := svc.Crear(context.Background(), dto.CrearDistribuidorRequest{Nombre: "Bebidas del Sur", Telefono: &tel})

	require.NoError(t, err)
	require.NotNil(t, resp.Telefono)
	assert.Equal(t, "+541155550000", *resp.Telefono)
}

func TestEliminarDistribuidorDesvinculaProductos(t *testing.T) {
	dRepo := newStubDistribuidorRepo()
	pRepo := newStubProductoRepo()
	svc := NewDistribuidorService(dRepo, pRepo)
	ctx := context.Background()

	d := &model.Distribuidor{Nombre: "Bebidas del Sur"}
	require.NoError(t, dRepo.Crear(ctx, d))
	p := pRepo.agregar(&model.Producto{Nombre: "Fernet", DistribuidorID: &d.ID})

	require.NoError(t, svc.Eliminar(ctx, d.ID))

	// El producto sobrevive con la referencia en NULL; nada cascadea.
	assert.Nil(t, p.DistribuidorID)
	_, err := dRepo.ObtenerPorID(ctx, d.ID)
	assert.Error(t, err)
}
