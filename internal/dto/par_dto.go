package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GuardarNivelParRequest struct {
	Objetivo decimal.Decimal `json:"objetivo" validate:"required"`
}

type NivelParResponse struct {
	ProductoID uuid.UUID       `json:"producto_id"`
	Objetivo   decimal.Decimal `json:"objetivo"`
}
