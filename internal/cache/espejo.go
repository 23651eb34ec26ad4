// Package cache implementa el espejo local del catálogo: la última foto
// cargada con éxito se escribe a Redis y sirve de fallback de sólo lectura
// cuando Postgres no responde. Última escritura gana; nunca es autoritativo.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"barstock/internal/dto"

	"github.com/redis/go-redis/v9"
)

const claveSnapshot = "catalogo:snapshot"

// ErrSinSnapshot indica que nunca hubo una carga exitosa que espejar.
var ErrSinSnapshot = errors.New("espejo: no hay snapshot guardado")

// Espejo guarda y recupera el snapshot del catálogo.
type Espejo struct {
	rdb *redis.Client
}

func NewEspejo(rdb *redis.Client) *Espejo { return &Espejo{rdb: rdb} }

// Guardar escribe el snapshot sin TTL: un espejo viejo sigue siendo mejor
// que ninguno cuando la base está caída.
func (e *Espejo) Guardar(ctx context.Context, snap *dto.CatalogoSnapshot) error {
	snap.GuardadoEn = time.Now().UTC()
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return e.rdb.Set(ctx, claveSnapshot, b, 0).Err()
}

// Cargar lee el último snapshot. Devuelve ErrSinSnapshot si no existe.
func (e *Espejo) Cargar(ctx context.Context) (*dto.CatalogoSnapshot, error) {
	b, err := e.rdb.Get(ctx, claveSnapshot).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSinSnapshot
	}
	if err != nil {
		return nil, err
	}
	var snap dto.CatalogoSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
