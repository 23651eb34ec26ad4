package dto

import (
	"encoding/json"
	"time"

	"barstock/internal/model"

	"github.com/google/uuid"
)

// AccionFilter combina predicados con AND; los campos vacíos no filtran.
type AccionFilter struct {
	Tipo       string
	Actor      string
	ProductoID *uuid.UUID
	Desde      *time.Time
	Hasta      *time.Time
	Limit      int
}

type AccionResponse struct {
	ID         uuid.UUID       `json:"id"`
	ProductoID *uuid.UUID      `json:"producto_id,omitempty"`
	Tipo       string          `json:"tipo"`
	Actor      string          `json:"actor"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func MapAccion(a model.AccionProducto) AccionResponse {
	return AccionResponse{
		ID:         a.ID,
		ProductoID: a.ProductoID,
		Tipo:       a.Tipo,
		Actor:      a.Actor,
		Metadata:   a.Metadata,
		CreatedAt:  a.CreatedAt,
	}
}
