package service

import "github.com/google/uuid"

// EventoEstado es lo que se difunde a las pantallas de estación cuando
// cambia el estado congelado de uno o más productos.
type EventoEstado struct {
	Tipo       string     `json:"tipo"` // congelar | descongelar | eliminar | escenario | escenario_stop
	ProductoID *uuid.UUID `json:"producto_id,omitempty"`
	Flag       string     `json:"flag,omitempty"`
	Activos    int        `json:"activos,omitempty"`
	Congelados int        `json:"congelados,omitempty"`
}

// Notificador difunde eventos de estado a los clientes conectados.
// La implementación real es el hub de websockets; los servicios toleran nil.
type Notificador interface {
	Difundir(evento EventoEstado)
}
