package service

import (
	"context"
	"testing"

	"barstock/internal/dto"
	"barstock/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func armarOrdenService(t *testing.T) (*stubDistribuidorRepo, *stubProductoRepo, *stubNivelParRepo, *stubCola, OrdenService, uuid.UUID) {
	t.Helper()
	dRepo := newStubDistribuidorRepo()
	pRepo := newStubProductoRepo()
	nRepo := newStubNivelParRepo()
	cola := &stubCola{}

	tel := "+5491144445555"
	d := &model.Distribuidor{Nombre: "Bebidas del Sur", Telefono: &tel}
	require.NoError(t, dRepo.Crear(context.Background(), d))

	return dRepo, pRepo, nRepo, cola, NewOrdenService(dRepo, pRepo, nRepo, cola), d.ID
}

func conStock(b1, b2, cam string) (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	return decimal.RequireFromString(b1), decimal.RequireFromString(b2), decimal.RequireFromString(cam)
}

func TestGenerarOrdenCalculaFaltantes(t *testing.T) {
	_, pRepo, nRepo, _, svc, did := armarOrdenService(t)
	ctx := context.Background()

	b1, b2, cam := conStock("2", "1", "3") // total 6
	bajo := pRepo.agregar(&model.Producto{
		Nombre: "Fernet", DistribuidorID: &did, UnidadMedida: "botella",
		CantidadBarra1: b1, CantidadBarra2: b2, CantidadCamara: cam,
	})
	lleno := pRepo.agregar(&model.Producto{
		Nombre: "Gin", DistribuidorID: &did,
		CantidadCamara: decimal.RequireFromString("20"),
	})
	sinPar := pRepo.agregar(&model.Producto{Nombre: "Ron", DistribuidorID: &did})
	congelado := pRepo.agregar(&model.Producto{
		Nombre: "Vermut", DistribuidorID: &did, Congelado: true,
		CantidadCamara: decimal.RequireFromString("1"),
	})

	nRepo.niveles[bajo.ID] = decimal.RequireFromString("10")
	nRepo.niveles[lleno.ID] = decimal.RequireFromString("10")
	nRepo.niveles[congelado.ID] = decimal.RequireFromString("4")
	_ = sinPar

	orden, err := svc.Generar(ctx, did)

	require.NoError(t, err)
	assert.Equal(t, "Bebidas del Sur", orden.Distribuidor)
	require.Len(t, orden.Items, 2, "sin par no se pide; por encima del par tampoco")

	porNombre := make(map[string]dto.OrdenItem, len(orden.Items))
	for _, it := range orden.Items {
		porNombre[it.Nombre] = it
	}

	it := porNombre["Fernet"]
	assert.True(t, it.Faltante.Equal(decimal.RequireFromString("4")), "faltante = objetivo - total: got %s", it.Faltante)
	assert.Equal(t, "botella", it.Unidad)

	// El congelado es visibilidad, no stock: cuenta igual.
	it = porNombre["Vermut"]
	assert.True(t, it.Faltante.Equal(decimal.RequireFromString("3")))

	assert.Contains(t, orden.Mensaje, "Bebidas del Sur")
	assert.Contains(t, orden.Mensaje, "- Fernet: 4 botella")
	assert.Contains(t, orden.Mensaje, "Total: 2 productos")
}

func TestGenerarOrdenDistribuidorInexistente(t *testing.T) {
	_, _, _, _, svc, _ := armarOrdenService(t)

	_, err := svc.Generar(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrDistribuidorNoEncontrado)
}

func TestEnviarOrdenRechazaPedidoVacio(t *testing.T) {
	_, pRepo, nRepo, cola, svc, did := armarOrdenService(t)
	p := pRepo.agregar(&model.Producto{
		Nombre: "Gin", DistribuidorID: &did,
		CantidadCamara: decimal.RequireFromString("20"),
	})
	nRepo.niveles[p.ID] = decimal.RequireFromString("10")

	_, err := svc.Enviar(context.Background(), did, dto.EnviarOrdenRequest{Email: "pedidos@sur.com"})

	require.Error(t, err)
	assert.Empty(t, cola.encoladas, "un pedido vacío no se encola")
}

func TestEnviarOrdenEncola(t *testing.T) {
	_, pRepo, nRepo, cola, svc, did := armarOrdenService(t)
	p := pRepo.agregar(&model.Producto{Nombre: "Fernet", DistribuidorID: &did})
	nRepo.niveles[p.ID] = decimal.RequireFromString("6")

	orden, err := svc.Enviar(context.Background(), did, dto.EnviarOrdenRequest{Email: "pedidos@sur.com"})

	require.NoError(t, err)
	require.Len(t, orden.Items, 1)
	assert.Equal(t, []string{"pedidos@sur.com"}, cola.encoladas)
}
