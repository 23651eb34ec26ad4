package dto

import "github.com/google/uuid"

type CrearDistribuidorRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,min=2,max=150"`
	Telefono *string `json:"telefono" validate:"omitempty,max=30"`
	Email    *string `json:"email"    validate:"omitempty,email"`
}

type DistribuidorResponse struct {
	ID       uuid.UUID `json:"id"`
	Nombre   string    `json:"nombre"`
	Telefono *string   `json:"telefono,omitempty"`
	Email    *string   `json:"email,omitempty"`
}
