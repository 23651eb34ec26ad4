package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario del sistema con acceso por rol.
// Rol: "bartender" | "encargado" | "administrador"
//   - bartender: carga conteos de stock
//   - encargado: además congela/descongela, reordena y corre escenarios
//   - administrador: además gestiona usuarios, categorías y distribuidores
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
