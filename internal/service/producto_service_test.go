package service

import (
	"context"
	"encoding/json"
	"testing"

	"barstock/internal/dto"
	"barstock/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoProductoService(repo *stubProductoRepo, acciones *stubAccionRepo, notif Notificador) ProductoService {
	return NewProductoService(repo, NewAccionService(acciones), notif)
}

func TestCrearProductoVaAlFinal(t *testing.T) {
	repo := newStubProductoRepo()
	repo.agregar(&model.Producto{Nombre: "Gin", OrdenVisual: 7})
	svc := nuevoProductoService(repo, &stubAccionRepo{}, nil)

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{Nombre: "Vermut"})

	require.NoError(t, err)
	assert.Equal(t, 8, resp.OrdenVisual, "los nuevos van después del máximo actual")
	assert.Equal(t, "unidad", resp.UnidadMedida)
	assert.True(t, resp.VisibleBarra1)
	assert.True(t, resp.VisibleBarra2)
	assert.False(t, resp.Congelado)
}

func TestCongelarProducto(t *testing.T) {
	repo := newStubProductoRepo()
	p := repo.agregar(&model.Producto{
		Nombre:         "Fernet",
		VisibleBarra1:  true,
		VisibleBarra2:  true,
		CantidadBarra1: decimal.RequireFromString("3"),
	})
	acciones := &stubAccionRepo{}
	notif := &stubNotificador{}
	svc := nuevoProductoService(repo, acciones, notif)

	res, err := svc.Congelar(context.Background(), p.ID, "encargada", dto.CongelarRequest{})

	require.NoError(t, err)
	assert.True(t, res.Exito)
	assert.True(t, p.Congelado)
	require.NotNil(t, p.CongeladoPor)
	assert.Equal(t, "encargada", *p.CongeladoPor)
	assert.NotNil(t, p.CongeladoEn)
	assert.False(t, p.VisibleBarra1, "ocultar default en ambas barras")
	assert.False(t, p.VisibleBarra2)

	require.Len(t, acciones.acciones, 1)
	a := acciones.acciones[0]
	assert.Equal(t, model.AccionCongelar, a.Tipo)
	require.NotNil(t, a.ProductoID)
	assert.Equal(t, p.ID, *a.ProductoID)
	var meta map[string]any
	require.NoError(t, json.Unmarshal(a.Metadata, &meta))
	previas := meta["cantidades_previas"].(map[string]any)
	assert.Equal(t, "3", previas["barra1"], "el log guarda las cantidades previas al congelado")

	require.Len(t, notif.eventos, 1)
	assert.Equal(t, model.AccionCongelar, notif.eventos[0].Tipo)
}

func TestCongelarRespetaOcultamientoParcial(t *testing.T) {
	repo := newStubProductoRepo()
	p := repo.agregar(&model.Producto{Nombre: "Aperol", VisibleBarra1: true, VisibleBarra2: true})
	svc := nuevoProductoService(repo, &stubAccionRepo{}, nil)

	no := false
	_, err := svc.Congelar(context.Background(), p.ID, "encargada", dto.CongelarRequest{OcultarBarra2: &no})

	require.NoError(t, err)
	assert.False(t, p.VisibleBarra1)
	assert.True(t, p.VisibleBarra2, "ocultar_barra2=false deja la barra 2 visible")
}

func TestCongelarYaCongeladoNoEscribe(t *testing.T) {
	repo := newStubProductoRepo()
	p := repo.agregar(&model.Producto{Nombre: "Cynar", Congelado: true})
	acciones := &stubAccionRepo{}
	svc := nuevoProductoService(repo, acciones, nil)

	res, err := svc.Congelar(context.Background(), p.ID, "encargada", dto.CongelarRequest{})

	require.NoError(t, err, "el rechazo por estado no es un error")
	assert.False(t, res.Exito)
	assert.True(t, res.YaCongelado)
	assert.Empty(t, acciones.acciones, "un rechazo no deja rastro en el historial")
	assert.Empty(t, repo.eventos, "un rechazo no emite UPDATE")
}

func TestDescongelarRestauraVisibilidades(t *testing.T) {
	repo := newStubProductoRepo()
	actor := "barrido"
	p := repo.agregar(&model.Producto{Nombre: "Campari", Congelado: true, CongeladoPor: &actor})
	svc := nuevoProductoService(repo, &stubAccionRepo{}, nil)

	res, err := svc.Descongelar(context.Background(), p.ID, "encargada")

	require.NoError(t, err)
	assert.True(t, res.Exito)
	assert.False(t, p.Congelado)
	assert.Nil(t, p.CongeladoEn)
	assert.Nil(t, p.CongeladoPor)
	assert.True(t, p.VisibleBarra1)
	assert.True(t, p.VisibleBarra2)
}

func TestDescongelarNoCongelado(t *testing.T) {
	repo := newStubProductoRepo()
	p := repo.agregar(&model.Producto{Nombre: "Gancia"})
	svc := nuevoProductoService(repo, &stubAccionRepo{}, nil)

	res, err := svc.Descongelar(context.Background(), p.ID, "encargada")

	require.NoError(t, err)
	assert.False(t, res.Exito)
	assert.True(t, res.NoCongelado)
}

func TestProductoNoEncontrado(t *testing.T) {
	svc := nuevoProductoService(newStubProductoRepo(), &stubAccionRepo{}, nil)

	_, err := svc.Congelar(context.Background(), uuid.New(), "encargada", dto.CongelarRequest{})
	assert.ErrorIs(t, err, ErrProductoNoEncontrado)

	_, err = svc.ObtenerPorID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProductoNoEncontrado)

	err = svc.Eliminar(context.Background(), uuid.New(), "admin")
	assert.ErrorIs(t, err, ErrProductoNoEncontrado)
}

func TestEliminarRegistraSnapshotAntesDeBorrar(t *testing.T) {
	repo := newStubProductoRepo()
	p := repo.agregar(&model.Producto{Nombre: "Malbec", CantidadCamara: decimal.RequireFromString("12")})
	acciones := &stubAccionRepo{eventos: &repo.eventos}
	svc := nuevoProductoService(repo, acciones, nil)

	err := svc.Eliminar(context.Background(), p.ID, "admin")

	require.NoError(t, err)
	_, err = repo.ObtenerPorID(context.Background(), p.ID)
	assert.Error(t, err, "la fila ya no existe")

	// El snapshot entra al historial ANTES de emitir el borrado.
	require.Equal(t, []string{"accion:eliminar", "eliminar"}, repo.eventos)

	require.Len(t, acciones.acciones, 1)
	var meta map[string]any
	require.NoError(t, json.Unmarshal(acciones.acciones[0].Metadata, &meta))
	snapshot := meta["snapshot"].(map[string]any)
	assert.Equal(t, "Malbec", snapshot["nombre"])
	assert.Equal(t, "12", snapshot["cantidad_camara"])
}

func TestReordenarAplicaPorRegistroSinRollback(t *testing.T) {
	repo := newStubProductoRepo()
	a := repo.agregar(&model.Producto{Nombre: "Gin", OrdenVisual: 1})
	b := repo.agregar(&model.Producto{Nombre: "Ron", OrdenVisual: 2})
	c := repo.agregar(&model.Producto{Nombre: "Vodka", OrdenVisual: 3})
	repo.failActualizarOrden[b.ID] = true
	acciones := &stubAccionRepo{}
	svc := nuevoProductoService(repo, acciones, nil)

	res, err := svc.Reordenar(context.Background(), dto.ReordenarRequest{Items: []dto.ReordenarItem{
		{ID: a.ID.String(), OrdenVisual: 30},
		{ID: b.ID.String(), OrdenVisual: 20},
		{ID: "no-es-uuid", OrdenVisual: 15},
		{ID: c.ID.String(), OrdenVisual: 10},
	}}, "encargada")

	require.NoError(t, err)
	assert.False(t, res.Exito)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 2, res.Actualizados)
	assert.Equal(t, 2, res.Fallidos)
	assert.Equal(t, []uuid.UUID{b.ID}, res.IDsFallidos)

	// Lo aplicado queda; lo fallido conserva su orden anterior.
	assert.Equal(t, 30, a.OrdenVisual)
	assert.Equal(t, 2, b.OrdenVisual)
	assert.Equal(t, 10, c.OrdenVisual)

	// Una sola acción grupal con el agregado.
	require.Len(t, acciones.acciones, 1)
	assert.Equal(t, model.AccionReordenar, acciones.acciones[0].Tipo)
	assert.Nil(t, acciones.acciones[0].ProductoID)
}
