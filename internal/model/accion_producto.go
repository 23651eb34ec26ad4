package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Tipos de acción registrados en el historial.
const (
	AccionCongelar      = "congelar"
	AccionDescongelar   = "descongelar"
	AccionEliminar      = "eliminar"
	AccionReordenar     = "reordenar"
	AccionEscenario     = "escenario"
	AccionEscenarioStop = "escenario_stop"
)

// AccionProducto es el registro de auditoría de toda mutación de estado sobre
// productos. Append-only: nunca se actualiza ni se borra.
//
// ProductoID es nullable a propósito: las acciones grupales (reordenar,
// escenarios) se registran con sujeto NULL y la lista de ids afectados dentro
// de Metadata. Sin FK hacia productos: el historial debe sobrevivir al borrado
// del producto que lo originó.
type AccionProducto struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID *uuid.UUID `gorm:"type:uuid;index"`
	Tipo       string     `gorm:"not null;index"`
	Actor      string     `gorm:"not null;index"`
	// Metadata es un payload abierto por tipo: cantidades previas, flags de
	// ocultamiento, conteos afectados, snapshot pre-borrado, etc.
	Metadata  json.RawMessage `gorm:"type:jsonb"`
	CreatedAt time.Time       `gorm:"index"`
}

func (AccionProducto) TableName() string { return "acciones_producto" }
