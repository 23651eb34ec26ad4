// Package ws mantiene el hub de websockets para las pantallas de estación:
// cada barra deja una conexión abierta y recibe los eventos de congelado,
// eliminación y escenarios a medida que ocurren.
package ws

import (
	"net/http"
	"sync"

	"barstock/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type cliente struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *cliente) writeJSON(value any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(value)
}

// Hub difunde eventos de estado a todos los clientes conectados.
// Implementa service.Notificador.
type Hub struct {
	jwtSecret string

	mu       sync.RWMutex
	clientes map[*cliente]struct{}
}

func NewHub(jwtSecret string) *Hub {
	return &Hub{
		jwtSecret: jwtSecret,
		clientes:  make(map[*cliente]struct{}),
	}
}

// Difundir manda el evento a todas las pantallas. Una conexión que falla al
// escribir se cierra y se olvida; el resto sigue recibiendo.
func (h *Hub) Difundir(evento service.EventoEstado) {
	h.mu.RLock()
	clientes := make([]*cliente, 0, len(h.clientes))
	for c := range h.clientes {
		clientes = append(clientes, c)
	}
	h.mu.RUnlock()

	for _, c := range clientes {
		if err := c.writeJSON(evento); err != nil {
			_ = c.conn.Close()
			h.mu.Lock()
			delete(h.clientes, c)
			h.mu.Unlock()
		}
	}
}

// HandleEstaciones atiende GET /v1/ws/estaciones. Los navegadores no pueden
// setear headers en el handshake, así que el JWT viaja como query param.
func (h *Hub) HandleEstaciones(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if !h.validarToken(c.Query("token")) {
		_ = conn.WriteJSON(map[string]any{"tipo": "error", "detalle": "no autorizado"})
		return
	}

	cl := &cliente{conn: conn}
	h.mu.Lock()
	h.clientes[cl] = struct{}{}
	total := len(h.clientes)
	h.mu.Unlock()
	log.Debug().Int("conectados", total).Msg("ws: estación conectada")

	defer func() {
		h.mu.Lock()
		delete(h.clientes, cl)
		h.mu.Unlock()
	}()

	cerrado := make(chan struct{})
	go func() {
		defer close(cerrado)
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	select {
	case <-cerrado:
	case <-c.Request.Context().Done():
	}
}

func (h *Hub) validarToken(tokenStr string) bool {
	if tokenStr == "" {
		return false
	}
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(h.jwtSecret), nil
	})
	return err == nil && token.Valid
}
