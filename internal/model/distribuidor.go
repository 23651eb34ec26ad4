package model

import (
	"time"

	"github.com/google/uuid"
)

// Distribuidor es el proveedor al que se le envían los pedidos de reposición.
// Al eliminarlo, los productos que lo referencian quedan con distribuidor_id
// en NULL; nunca se borran en cascada.
type Distribuidor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Telefono  *string   // normalizado a dígitos con prefijo internacional
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Productos []Producto `gorm:"foreignKey:DistribuidorID"`
}

func (Distribuidor) TableName() string { return "distribuidores" }
