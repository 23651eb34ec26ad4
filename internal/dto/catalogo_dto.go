package dto

import "time"

// CatalogoSnapshot es la foto completa del catálogo que se espeja en Redis
// después de cada carga exitosa y sirve de fallback cuando Postgres no
// responde. Última escritura gana; nunca se trata como autoritativa.
type CatalogoSnapshot struct {
	Categorias []CategoriaResponse `json:"categorias"`
	Productos  []ProductoResponse  `json:"productos"`
	GuardadoEn time.Time           `json:"guardado_en"`
}

// CatalogoResponse marca si los datos salieron del espejo (stale) o de la
// base. GuardadoEn sólo viene cuando Stale=true.
type CatalogoResponse struct {
	Categorias []CategoriaResponse `json:"categorias"`
	Productos  []ProductoResponse  `json:"productos"`
	Stale      bool                `json:"stale"`
	GuardadoEn *time.Time          `json:"guardado_en,omitempty"`
}
