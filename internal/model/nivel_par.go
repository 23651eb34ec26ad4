package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NivelPar define el stock total objetivo de un producto. A lo sumo una fila
// por producto; las escrituras son upsert (crear si no existe, si no pisar).
type NivelPar struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Objetivo   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (NivelPar) TableName() string { return "niveles_par" }
