package service

// Stubs en memoria de los repositorios, para testear los servicios sin base.
// Registran las llamadas que los tests necesitan verificar (orden de
// operaciones, lotes despachados, acciones escritas).

import (
	"context"
	"sync"
	"time"

	"barstock/internal/dto"
	"barstock/internal/model"
	"barstock/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── ProductoRepository ────────────────────────────────────────────────────────

type stubProductoRepo struct {
	mu        sync.Mutex
	productos map[uuid.UUID]*model.Producto

	// Secuencia de eventos para verificar orden (ej: log antes del borrado)
	eventos []string

	// Inyección de fallas
	failActualizarOrden  map[uuid.UUID]bool
	failCongelarGrupo    error
	failDescongelarGrupo error

	// BulkActualizarCantidades: función inyectable + lotes capturados
	bulkFn func(lote []dto.CantidadesLote) (*dto.ResultadoLote, error)
	lotes  [][]dto.CantidadesLote
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{
		productos:           make(map[uuid.UUID]*model.Producto),
		failActualizarOrden: make(map[uuid.UUID]bool),
	}
}

func (r *stubProductoRepo) agregar(p *model.Producto) *model.Producto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.UnidadMedida == "" {
		p.UnidadMedida = "unidad"
	}
	r.productos[p.ID] = p
	return p
}

func (r *stubProductoRepo) Crear(_ context.Context, p *model.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agregar(p)
	return nil
}

func (r *stubProductoRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *stubProductoRepo) Listar(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Producto
	for _, p := range r.productos {
		result = append(result, *p)
	}
	return result, nil
}

func (r *stubProductoRepo) Actualizar(_ context.Context, p *model.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) ActualizarCampos(_ context.Context, id uuid.UUID, campos map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.eventos = append(r.eventos, "actualizar_campos")
	if v, ok := campos["congelado"]; ok {
		p.Congelado = v.(bool)
	}
	if v, ok := campos["congelado_en"]; ok {
		if v == nil {
			p.CongeladoEn = nil
		} else {
			t := v.(time.Time)
			p.CongeladoEn = &t
		}
	}
	if v, ok := campos["congelado_por"]; ok {
		if v == nil {
			p.CongeladoPor = nil
		} else {
			s := v.(string)
			p.CongeladoPor = &s
		}
	}
	if v, ok := campos["visible_barra1"]; ok {
		p.VisibleBarra1 = v.(bool)
	}
	if v, ok := campos["visible_barra2"]; ok {
		p.VisibleBarra2 = v.(bool)
	}
	return nil
}

func (r *stubProductoRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.productos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.eventos = append(r.eventos, "eliminar")
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) ListarPorDistribuidor(_ context.Context, distribuidorID uuid.UUID) ([]model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Producto
	for _, p := range r.productos {
		if p.DistribuidorID != nil && *p.DistribuidorID == distribuidorID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubProductoRepo) QuitarDistribuidor(_ context.Context, distribuidorID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.productos {
		if p.DistribuidorID != nil && *p.DistribuidorID == distribuidorID {
			p.DistribuidorID = nil
		}
	}
	return nil
}

func (r *stubProductoRepo) MaxOrdenVisual(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	max := 0
	for _, p := range r.productos {
		if p.OrdenVisual > max {
			max = p.OrdenVisual
		}
	}
	return max, nil
}

func (r *stubProductoRepo) ActualizarOrden(_ context.Context, id uuid.UUID, orden int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failActualizarOrden[id] {
		return gorm.ErrInvalidTransaction
	}
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.OrdenVisual = orden
	return nil
}

func (r *stubProductoRepo) ListarFlags(_ context.Context, flag string) ([]repository.ProductoFlag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var flags []repository.ProductoFlag
	for _, p := range r.productos {
		var valor bool
		switch flag {
		case "rojo":
			valor = p.Rojo
		case "verde":
			valor = p.Verde
		case "amarillo":
			valor = p.Amarillo
		}
		flags = append(flags, repository.ProductoFlag{ID: p.ID, Nombre: p.Nombre, Valor: valor})
	}
	return flags, nil
}

func (r *stubProductoRepo) CongelarGrupo(_ context.Context, ids []uuid.UUID, actor string, en time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCongelarGrupo != nil {
		return r.failCongelarGrupo
	}
	if len(ids) == 0 {
		return nil
	}
	for _, id := range ids {
		if p, ok := r.productos[id]; ok {
			p.Congelado = true
			p.CongeladoEn = &en
			p.CongeladoPor = &actor
			p.VisibleBarra1 = false
			p.VisibleBarra2 = false
		}
	}
	return nil
}

func (r *stubProductoRepo) DescongelarGrupo(_ context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDescongelarGrupo != nil {
		return r.failDescongelarGrupo
	}
	for _, id := range ids {
		if p, ok := r.productos[id]; ok {
			p.Congelado = false
			p.CongeladoEn = nil
			p.CongeladoPor = nil
			p.VisibleBarra1 = true
			p.VisibleBarra2 = true
		}
	}
	return nil
}

func (r *stubProductoRepo) DescongelarTodos(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.productos {
		p.Congelado = false
		p.CongeladoEn = nil
		p.CongeladoPor = nil
		p.VisibleBarra1 = true
		p.VisibleBarra2 = true
		n++
	}
	return n, nil
}

func (r *stubProductoRepo) BulkActualizarCantidades(_ context.Context, lote []dto.CantidadesLote) (*dto.ResultadoLote, error) {
	r.mu.Lock()
	r.lotes = append(r.lotes, lote)
	fn := r.bulkFn
	r.mu.Unlock()

	if fn != nil {
		return fn(lote)
	}
	return &dto.ResultadoLote{UpdatedCount: len(lote)}, nil
}

// ── AccionRepository ──────────────────────────────────────────────────────────

type stubAccionRepo struct {
	mu       sync.Mutex
	acciones []model.AccionProducto
	eventos  *[]string // comparte la secuencia del stubProductoRepo si se setea
	failAll  bool
}

func (r *stubAccionRepo) Crear(_ context.Context, a *model.AccionProducto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return gorm.ErrInvalidDB
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	r.acciones = append(r.acciones, *a)
	if r.eventos != nil {
		*r.eventos = append(*r.eventos, "accion:"+a.Tipo)
	}
	return nil
}

func (r *stubAccionRepo) Listar(_ context.Context, filter dto.AccionFilter) ([]model.AccionProducto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.AccionProducto
	for _, a := range r.acciones {
		if filter.Tipo != "" && a.Tipo != filter.Tipo {
			continue
		}
		if filter.Actor != "" && a.Actor != filter.Actor {
			continue
		}
		if filter.ProductoID != nil {
			if a.ProductoID == nil || *a.ProductoID != *filter.ProductoID {
				continue
			}
		}
		result = append(result, a)
	}
	return result, nil
}

// ── DistribuidorRepository ────────────────────────────────────────────────────

type stubDistribuidorRepo struct {
	distribuidores map[uuid.UUID]*model.Distribuidor
}

func newStubDistribuidorRepo() *stubDistribuidorRepo {
	return &stubDistribuidorRepo{distribuidores: make(map[uuid.UUID]*model.Distribuidor)}
}

func (r *stubDistribuidorRepo) Crear(_ context.Context, d *model.Distribuidor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.distribuidores[d.ID] = d
	return nil
}

func (r *stubDistribuidorRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Distribuidor, error) {
	d, ok := r.distribuidores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (r *stubDistribuidorRepo) Listar(_ context.Context) ([]model.Distribuidor, error) {
	var result []model.Distribuidor
	for _, d := range r.distribuidores {
		result = append(result, *d)
	}
	return result, nil
}

func (r *stubDistribuidorRepo) Actualizar(_ context.Context, d *model.Distribuidor) error {
	r.distribuidores[d.ID] = d
	return nil
}

func (r *stubDistribuidorRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	delete(r.distribuidores, id)
	return nil
}

// ── NivelParRepository ────────────────────────────────────────────────────────

type stubNivelParRepo struct {
	niveles map[uuid.UUID]decimal.Decimal
}

func newStubNivelParRepo() *stubNivelParRepo {
	return &stubNivelParRepo{niveles: make(map[uuid.UUID]decimal.Decimal)}
}

func (r *stubNivelParRepo) Guardar(_ context.Context, productoID uuid.UUID, objetivo decimal.Decimal) (*model.NivelPar, error) {
	r.niveles[productoID] = objetivo
	return &model.NivelPar{ProductoID: productoID, Objetivo: objetivo}, nil
}

func (r *stubNivelParRepo) ObtenerPorProducto(_ context.Context, productoID uuid.UUID) (*model.NivelPar, error) {
	obj, ok := r.niveles[productoID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.NivelPar{ProductoID: productoID, Objetivo: obj}, nil
}

func (r *stubNivelParRepo) Listar(_ context.Context) ([]model.NivelPar, error) {
	var result []model.NivelPar
	for id, obj := range r.niveles {
		result = append(result, model.NivelPar{ProductoID: id, Objetivo: obj})
	}
	return result, nil
}

func (r *stubNivelParRepo) Eliminar(_ context.Context, productoID uuid.UUID) error {
	delete(r.niveles, productoID)
	return nil
}

// ── Notificador ───────────────────────────────────────────────────────────────

type stubNotificador struct {
	mu      sync.Mutex
	eventos []EventoEstado
}

func (n *stubNotificador) Difundir(evento EventoEstado) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.eventos = append(n.eventos, evento)
}

// ── ColaOrdenes ───────────────────────────────────────────────────────────────

type stubCola struct {
	encoladas []string // emails destino
	fail      error
}

func (c *stubCola) EncolarOrden(_ context.Context, _ *dto.OrdenResponse, email string) error {
	if c.fail != nil {
		return c.fail
	}
	c.encoladas = append(c.encoladas, email)
	return nil
}
