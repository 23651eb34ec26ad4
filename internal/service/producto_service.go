package service

import (
	"context"
	"errors"
	"time"

	"barstock/internal/dto"
	"barstock/internal/model"
	"barstock/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProductoNoEncontrado = errors.New("producto no encontrado")

// ProductoService maneja el CRUD del catálogo y la máquina de estados
// activo ⇄ congelado de cada producto.
//
// Orden de las operaciones mutantes: primero el cambio de estado (operación
// de registro), después el log. La única excepción es Eliminar, que registra
// el snapshot completo ANTES de borrar: el historial tiene que sobrevivir a
// la fila. Una falla del log nunca revierte ni hace fallar la primaria.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)

	Congelar(ctx context.Context, id uuid.UUID, actor string, req dto.CongelarRequest) (*dto.CongelarResult, error)
	Descongelar(ctx context.Context, id uuid.UUID, actor string) (*dto.CongelarResult, error)
	Eliminar(ctx context.Context, id uuid.UUID, actor string) error
	Reordenar(ctx context.Context, req dto.ReordenarRequest, actor string) (*dto.ReordenarResult, error)
}

type productoService struct {
	repo     repository.ProductoRepository
	acciones AccionService
	notif    Notificador
}

func NewProductoService(repo repository.ProductoRepository, acciones AccionService, notif Notificador) ProductoService {
	return &productoService{repo: repo, acciones: acciones, notif: notif}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	p := &model.Producto{
		Nombre:        req.Nombre,
		Presentacion:  req.Presentacion,
		Empresa:       req.Empresa,
		UnidadMedida:  req.UnidadMedida,
		Rojo:          req.Rojo,
		Verde:         req.Verde,
		Amarillo:      req.Amarillo,
		VisibleBarra1: true,
		VisibleBarra2: true,
	}
	if p.UnidadMedida == "" {
		p.UnidadMedida = "unidad"
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, errors.New("categoria_id inválido")
		}
		p.CategoriaID = &cid
	}
	if req.DistribuidorID != nil {
		did, err := uuid.Parse(*req.DistribuidorID)
		if err != nil {
			return nil, errors.New("distribuidor_id inválido")
		}
		p.DistribuidorID = &did
	}

	// Los productos nuevos van al final; los huecos de orden no se compactan.
	max, err := s.repo.MaxOrdenVisual(ctx)
	if err != nil {
		return nil, err
	}
	p.OrdenVisual = max + 1

	if err := s.repo.Crear(ctx, p); err != nil {
		return nil, err
	}
	resp := dto.MapProducto(*p)
	return &resp, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	resp := dto.MapProducto(*p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.Listar(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		result = append(result, dto.MapProducto(p))
	}
	return result, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Presentacion != nil {
		p.Presentacion = *req.Presentacion
	}
	if req.Empresa != nil {
		p.Empresa = req.Empresa
	}
	if req.UnidadMedida != nil {
		p.UnidadMedida = *req.UnidadMedida
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, errors.New("categoria_id inválido")
		}
		p.CategoriaID = &cid
	}
	if req.DistribuidorID != nil {
		did, err := uuid.Parse(*req.DistribuidorID)
		if err != nil {
			return nil, errors.New("distribuidor_id inválido")
		}
		p.DistribuidorID = &did
	}
	if req.Rojo != nil {
		p.Rojo = *req.Rojo
	}
	if req.Verde != nil {
		p.Verde = *req.Verde
	}
	if req.Amarillo != nil {
		p.Amarillo = *req.Amarillo
	}
	if req.CantidadBarra1 != nil {
		p.CantidadBarra1 = *req.CantidadBarra1
	}
	if req.CantidadBarra2 != nil {
		p.CantidadBarra2 = *req.CantidadBarra2
	}
	if req.CantidadCamara != nil {
		p.CantidadCamara = *req.CantidadCamara
	}

	if err := s.repo.Actualizar(ctx, p); err != nil {
		return nil, err
	}
	resp := dto.MapProducto(*p)
	return &resp, nil
}

// Congelar pasa un producto de activo a congelado. Rechaza sin escribir si ya
// está congelado. La visibilidad por barra es la negación de los flags de
// ocultamiento, ambos default true; estado y visibilidades van en un único
// UPDATE para sostener el invariante.
func (s *productoService) Congelar(ctx context.Context, id uuid.UUID, actor string, req dto.CongelarRequest) (*dto.CongelarResult, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	if p.Congelado {
		return &dto.CongelarResult{Exito: false, YaCongelado: true, Detalle: "el producto ya está congelado"}, nil
	}

	ocultar1, ocultar2 := true, true
	if req.OcultarBarra1 != nil {
		ocultar1 = *req.OcultarBarra1
	}
	if req.OcultarBarra2 != nil {
		ocultar2 = *req.OcultarBarra2
	}

	ahora := time.Now()
	err = s.repo.ActualizarCampos(ctx, id, map[string]interface{}{
		"congelado":      true,
		"congelado_en":   ahora,
		"congelado_por":  actor,
		"visible_barra1": !ocultar1,
		"visible_barra2": !ocultar2,
	})
	if err != nil {
		return nil, err
	}

	s.acciones.Registrar(ctx, id, model.AccionCongelar, actor, map[string]interface{}{
		"nombre":         p.Nombre,
		"ocultar_barra1": ocultar1,
		"ocultar_barra2": ocultar2,
		"cantidades_previas": map[string]string{
			"barra1": p.CantidadBarra1.String(),
			"barra2": p.CantidadBarra2.String(),
			"camara": p.CantidadCamara.String(),
		},
	})

	if s.notif != nil {
		s.notif.Difundir(EventoEstado{Tipo: model.AccionCongelar, ProductoID: &id})
	}
	return &dto.CongelarResult{Exito: true}, nil
}

// Descongelar es la transición inversa: rechaza si el producto no está
// congelado, limpia la metadata de congelado y restaura ambas visibilidades.
func (s *productoService) Descongelar(ctx context.Context, id uuid.UUID, actor string) (*dto.CongelarResult, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	if !p.Congelado {
		return &dto.CongelarResult{Exito: false, NoCongelado: true, Detalle: "el producto no está congelado"}, nil
	}

	err = s.repo.ActualizarCampos(ctx, id, map[string]interface{}{
		"congelado":      false,
		"congelado_en":   nil,
		"congelado_por":  nil,
		"visible_barra1": true,
		"visible_barra2": true,
	})
	if err != nil {
		return nil, err
	}

	s.acciones.Registrar(ctx, id, model.AccionDescongelar, actor, map[string]interface{}{
		"nombre": p.Nombre,
	})

	if s.notif != nil {
		s.notif.Difundir(EventoEstado{Tipo: model.AccionDescongelar, ProductoID: &id})
	}
	return &dto.CongelarResult{Exito: true}, nil
}

// Eliminar borra definitivamente (sin soft-delete) desde cualquier estado.
// El snapshot completo se registra ANTES de emitir el borrado; si el borrado
// después falla, el log queda como intento fallido y la fila sigue viva.
func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID, actor string) error {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductoNoEncontrado
		}
		return err
	}

	s.acciones.Registrar(ctx, id, model.AccionEliminar, actor, map[string]interface{}{
		"snapshot": dto.MapProducto(*p),
	})

	if err := s.repo.Eliminar(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductoNoEncontrado
		}
		return err
	}

	if s.notif != nil {
		s.notif.Difundir(EventoEstado{Tipo: model.AccionEliminar, ProductoID: &id})
	}
	return nil
}

// Reordenar aplica los índices de orden uno por registro, sin transacción
// entre ellos y en cualquier orden. Las fallas parciales se reportan pero lo
// ya aplicado no se revierte. Se registra UNA acción grupal con el agregado.
func (s *productoService) Reordenar(ctx context.Context, req dto.ReordenarRequest, actor string) (*dto.ReordenarResult, error) {
	res := &dto.ReordenarResult{Total: len(req.Items)}

	var afectados []uuid.UUID
	for _, item := range req.Items {
		id, err := uuid.Parse(item.ID)
		if err != nil {
			res.Fallidos++
			continue
		}
		if err := s.repo.ActualizarOrden(ctx, id, item.OrdenVisual); err != nil {
			res.Fallidos++
			res.IDsFallidos = append(res.IDsFallidos, id)
			continue
		}
		res.Actualizados++
		afectados = append(afectados, id)
	}
	res.Exito = res.Fallidos == 0

	meta := map[string]interface{}{
		"total":        res.Total,
		"actualizados": res.Actualizados,
		"fallidos":     res.Fallidos,
		"ids":          afectados,
	}
	if req.CategoriaID != nil {
		meta["categoria_id"] = *req.CategoriaID
	}
	s.acciones.RegistrarGrupo(ctx, model.AccionReordenar, actor, meta)

	return res, nil
}
