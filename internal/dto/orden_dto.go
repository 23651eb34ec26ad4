package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrdenItem es una línea del pedido: producto con stock por debajo de su par.
type OrdenItem struct {
	ProductoID uuid.UUID       `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Unidad     string          `json:"unidad"`
	Actual     decimal.Decimal `json:"actual"`
	Objetivo   decimal.Decimal `json:"objetivo"`
	Faltante   decimal.Decimal `json:"faltante"`
}

// OrdenResponse es el pedido listo para mandar al distribuidor: el texto del
// mensaje más el teléfono normalizado (la UI lo abre en WhatsApp).
type OrdenResponse struct {
	DistribuidorID uuid.UUID   `json:"distribuidor_id"`
	Distribuidor   string      `json:"distribuidor"`
	Telefono       *string     `json:"telefono,omitempty"`
	Items          []OrdenItem `json:"items"`
	Mensaje        string      `json:"mensaje"`
}

type EnviarOrdenRequest struct {
	Email string `json:"email" validate:"required,email"`
}
