package dto

import (
	"time"

	"barstock/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre         string  `json:"nombre"          validate:"required,min=1,max=150"`
	Presentacion   string  `json:"presentacion"    validate:"max=100"`
	CategoriaID    *string `json:"categoria_id"    validate:"omitempty,uuid"`
	Empresa        *string `json:"empresa"         validate:"omitempty,max=150"`
	DistribuidorID *string `json:"distribuidor_id" validate:"omitempty,uuid"`
	UnidadMedida   string  `json:"unidad_medida"   validate:"omitempty,max=30"`
	Rojo           bool    `json:"rojo"`
	Verde          bool    `json:"verde"`
	Amarillo       bool    `json:"amarillo"`
}

type ActualizarProductoRequest struct {
	Nombre         *string          `json:"nombre"          validate:"omitempty,min=1,max=150"`
	Presentacion   *string          `json:"presentacion"    validate:"omitempty,max=100"`
	CategoriaID    *string          `json:"categoria_id"    validate:"omitempty,uuid"`
	Empresa        *string          `json:"empresa"         validate:"omitempty,max=150"`
	DistribuidorID *string          `json:"distribuidor_id" validate:"omitempty,uuid"`
	UnidadMedida   *string          `json:"unidad_medida"   validate:"omitempty,max=30"`
	Rojo           *bool            `json:"rojo"`
	Verde          *bool            `json:"verde"`
	Amarillo       *bool            `json:"amarillo"`
	CantidadBarra1 *decimal.Decimal `json:"cantidad_barra1"`
	CantidadBarra2 *decimal.Decimal `json:"cantidad_barra2"`
	CantidadCamara *decimal.Decimal `json:"cantidad_camara"`
}

// ProductoFilter son los filtros del listado de catálogo.
type ProductoFilter struct {
	CategoriaID    string // uuid en texto, vacío = todas
	DistribuidorID string
	Nombre         string // búsqueda ILIKE
	Congelado      string // "true" | "false" | "" (todos)
	Barra          int    // 1 o 2 limita a visibles en esa barra; 0 = sin filtro
}

// CongelarRequest lleva las opciones de ocultamiento por barra.
// Ambas default true: congelar un producto lo esconde de las dos barras
// salvo pedido explícito en contrario.
type CongelarRequest struct {
	OcultarBarra1 *bool `json:"ocultar_barra1"`
	OcultarBarra2 *bool `json:"ocultar_barra2"`
}

type ReordenarItem struct {
	ID          string `json:"id"           validate:"required,uuid"`
	OrdenVisual int    `json:"orden_visual" validate:"min=0"`
}

type ReordenarRequest struct {
	Items       []ReordenarItem `json:"items"        validate:"required,min=1,dive"`
	CategoriaID *string         `json:"categoria_id" validate:"omitempty,uuid"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID             uuid.UUID       `json:"id"`
	Nombre         string          `json:"nombre"`
	Presentacion   string          `json:"presentacion,omitempty"`
	CategoriaID    *uuid.UUID      `json:"categoria_id,omitempty"`
	CantidadBarra1 decimal.Decimal `json:"cantidad_barra1"`
	CantidadBarra2 decimal.Decimal `json:"cantidad_barra2"`
	CantidadCamara decimal.Decimal `json:"cantidad_camara"`
	OrdenVisual    int             `json:"orden_visual"`
	Rojo           bool            `json:"rojo"`
	Verde          bool            `json:"verde"`
	Amarillo       bool            `json:"amarillo"`
	Congelado      bool            `json:"congelado"`
	CongeladoEn    *time.Time      `json:"congelado_en,omitempty"`
	CongeladoPor   *string         `json:"congelado_por,omitempty"`
	VisibleBarra1  bool            `json:"visible_barra1"`
	VisibleBarra2  bool            `json:"visible_barra2"`
	Empresa        *string         `json:"empresa,omitempty"`
	DistribuidorID *uuid.UUID      `json:"distribuidor_id,omitempty"`
	UnidadMedida   string          `json:"unidad_medida"`
}

// MapProducto convierte el modelo a su respuesta pública.
func MapProducto(p model.Producto) ProductoResponse {
	return ProductoResponse{
		ID:             p.ID,
		Nombre:         p.Nombre,
		Presentacion:   p.Presentacion,
		CategoriaID:    p.CategoriaID,
		CantidadBarra1: p.CantidadBarra1,
		CantidadBarra2: p.CantidadBarra2,
		CantidadCamara: p.CantidadCamara,
		OrdenVisual:    p.OrdenVisual,
		Rojo:           p.Rojo,
		Verde:          p.Verde,
		Amarillo:       p.Amarillo,
		Congelado:      p.Congelado,
		CongeladoEn:    p.CongeladoEn,
		CongeladoPor:   p.CongeladoPor,
		VisibleBarra1:  p.VisibleBarra1,
		VisibleBarra2:  p.VisibleBarra2,
		Empresa:        p.Empresa,
		DistribuidorID: p.DistribuidorID,
		UnidadMedida:   p.UnidadMedida,
	}
}

// CongelarResult reporta el resultado de congelar/descongelar un producto.
// YaCongelado / NoCongelado distinguen el rechazo por estado del error real.
type CongelarResult struct {
	Exito       bool   `json:"exito"`
	YaCongelado bool   `json:"ya_congelado,omitempty"`
	NoCongelado bool   `json:"no_congelado,omitempty"`
	Detalle     string `json:"detalle,omitempty"`
}

type ReordenarResult struct {
	Exito        bool        `json:"exito"`
	Total        int         `json:"total"`
	Actualizados int         `json:"actualizados"`
	Fallidos     int         `json:"fallidos"`
	IDsFallidos  []uuid.UUID `json:"ids_fallidos,omitempty"`
}
