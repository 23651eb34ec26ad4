package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto representa un ítem del inventario del bar con cantidades por
// ubicación (barra 1, barra 2 y cámara de frío).
//
// Los flags Rojo/Verde/Amarillo marcan a qué barrido pertenece el producto:
// conteo semanal, revisión completa y archivo de freezer largo. Un escenario
// congela todo lo que NO lleva su flag y descongela lo que sí lo lleva.
//
// Invariante de congelado: Congelado=true implica ambas visibilidades en
// false; Congelado=false implica ambas en true. Los cambios de estado se
// aplican en un único UPDATE para no dejar estados intermedios.
type Producto struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string     `gorm:"index;not null"`
	Presentacion string     // descriptor de envase/volumen, ej. "botella 750ml"
	CategoriaID  *uuid.UUID `gorm:"type:uuid;index"`

	CantidadBarra1 decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CantidadBarra2 decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CantidadCamara decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	// OrdenVisual es la clave de ordenamiento en pantalla. Única por catálogo
	// pero no necesariamente contigua (el reordenamiento deja huecos).
	OrdenVisual int `gorm:"not null;default:0;index"`

	Rojo     bool `gorm:"not null;default:false"`
	Verde    bool `gorm:"not null;default:false"`
	Amarillo bool `gorm:"not null;default:false"`

	Congelado     bool `gorm:"not null;default:false"`
	CongeladoEn   *time.Time
	CongeladoPor  *string
	VisibleBarra1 bool `gorm:"not null;default:true"`
	VisibleBarra2 bool `gorm:"not null;default:true"`

	// Datos comerciales opcionales
	Empresa        *string
	DistribuidorID *uuid.UUID `gorm:"type:uuid;index"`
	UnidadMedida   string     `gorm:"not null;default:'unidad'"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Categoria    *Categoria    `gorm:"foreignKey:CategoriaID"`
	Distribuidor *Distribuidor `gorm:"foreignKey:DistribuidorID"`
}

// CantidadTotal suma las tres ubicaciones. Se compara contra el nivel par
// para calcular faltantes de pedido.
func (p *Producto) CantidadTotal() decimal.Decimal {
	return p.CantidadBarra1.Add(p.CantidadBarra2).Add(p.CantidadCamara)
}
