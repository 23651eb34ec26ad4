package model

import (
	"time"

	"github.com/google/uuid"
)

// Categoria agrupa productos del catálogo (vinos, aperitivos, cervezas, etc.).
type Categoria struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Orden     int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName fija el plural correcto en español.
func (Categoria) TableName() string { return "categorias" }
