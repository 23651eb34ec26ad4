package dto

import "github.com/google/uuid"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CrearCategoriaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=100"`
	Orden  int    `json:"orden"  validate:"min=0"`
}

type ActualizarCategoriaRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=2,max=100"`
	Orden  *int    `json:"orden"  validate:"omitempty,min=0"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CategoriaResponse struct {
	ID     uuid.UUID `json:"id"`
	Nombre string    `json:"nombre"`
	Orden  int       `json:"orden"`
}
