package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"barstock/internal/dto"
	"barstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoFlag es la proyección mínima que necesita el barrido de escenarios:
// id, nombre (para el log) y el valor del flag elegido.
type ProductoFlag struct {
	ID     uuid.UUID
	Nombre string
	Valor  bool
}

// columnasFlag whitelistea los nombres de columna interpolables en la
// consulta de flags. Todo lo que no esté acá se rechaza antes de armar SQL.
var columnasFlag = map[string]string{
	"rojo":     "rojo",
	"verde":    "verde",
	"amarillo": "amarillo",
}

// ProductoRepository define el contrato de acceso a datos de productos.
// Los servicios dependen de esta interfaz, no de la implementación GORM,
// para poder testearse con stubs en memoria.
type ProductoRepository interface {
	Crear(ctx context.Context, p *model.Producto) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error)
	Actualizar(ctx context.Context, p *model.Producto) error
	ActualizarCampos(ctx context.Context, id uuid.UUID, campos map[string]interface{}) error
	Eliminar(ctx context.Context, id uuid.UUID) error
	ListarPorDistribuidor(ctx context.Context, distribuidorID uuid.UUID) ([]model.Producto, error)
	QuitarDistribuidor(ctx context.Context, distribuidorID uuid.UUID) error
	MaxOrdenVisual(ctx context.Context) (int, error)

	// ActualizarOrden escribe el índice de orden de UN producto. El
	// reordenamiento masivo emite una llamada por registro, en cualquier
	// orden, sin transacción que las abarque.
	ActualizarOrden(ctx context.Context, id uuid.UUID, orden int) error

	// ListarFlags devuelve todo el catálogo con COALESCE(flag,false):
	// un flag NULL heredado cuenta como false y cae en el grupo a congelar.
	ListarFlags(ctx context.Context, flag string) ([]ProductoFlag, error)

	// CongelarGrupo y DescongelarGrupo son los dos UPDATE agrupados del
	// barrido. Cada uno es atómico sobre su conjunto de ids; no hay
	// transacción que abarque a los dos, re-ejecutar converge.
	CongelarGrupo(ctx context.Context, ids []uuid.UUID, actor string, en time.Time) error
	DescongelarGrupo(ctx context.Context, ids []uuid.UUID) error
	DescongelarTodos(ctx context.Context) (int64, error)

	// BulkActualizarCantidades invoca el procedimiento bulk_update_cantidades
	// con un lote de a lo sumo 1000 entradas y devuelve el conteo de
	// actualizados/fallidos con los errores por registro.
	BulkActualizarCantidades(ctx context.Context, lote []dto.CantidadesLote) (*dto.ResultadoLote, error)
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Crear(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) Listar(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	q := r.db.WithContext(ctx).Model(&model.Producto{})

	if filter.CategoriaID != "" {
		q = q.Where("categoria_id = ?", filter.CategoriaID)
	}
	if filter.DistribuidorID != "" {
		q = q.Where("distribuidor_id = ?", filter.DistribuidorID)
	}
	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	switch filter.Congelado {
	case "true":
		q = q.Where("congelado = true")
	case "false":
		q = q.Where("congelado = false")
	}
	switch filter.Barra {
	case 1:
		q = q.Where("visible_barra1 = true")
	case 2:
		q = q.Where("visible_barra2 = true")
	}

	var productos []model.Producto
	err := q.Order("orden_visual ASC, nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Actualizar(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) ActualizarCampos(ctx context.Context, id uuid.UUID, campos map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Updates(campos)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productoRepo) Eliminar(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Producto{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productoRepo) ListarPorDistribuidor(ctx context.Context, distribuidorID uuid.UUID) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("distribuidor_id = ?", distribuidorID).
		Order("orden_visual ASC").
		Find(&productos).Error
	return productos, err
}

// QuitarDistribuidor anula la referencia en todos los productos del
// distribuidor. Se llama antes de borrarlo; nunca hay borrado en cascada.
func (r *productoRepo) QuitarDistribuidor(ctx context.Context, distribuidorID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("distribuidor_id = ?", distribuidorID).
		Update("distribuidor_id", nil).Error
}

func (r *productoRepo) MaxOrdenVisual(ctx context.Context) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Select("MAX(orden_visual)").Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}

func (r *productoRepo) ActualizarOrden(ctx context.Context, id uuid.UUID, orden int) error {
	res := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ?", id).
		Update("orden_visual", orden)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productoRepo) ListarFlags(ctx context.Context, flag string) ([]ProductoFlag, error) {
	col, ok := columnasFlag[flag]
	if !ok {
		return nil, fmt.Errorf("flag desconocido: %q", flag)
	}
	var flags []ProductoFlag
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Select("id", "nombre", fmt.Sprintf("COALESCE(%s, false) AS valor", col)).
		Scan(&flags).Error
	return flags, err
}

func (r *productoRepo) CongelarGrupo(ctx context.Context, ids []uuid.UUID, actor string, en time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"congelado":      true,
			"congelado_en":   en,
			"congelado_por":  actor,
			"visible_barra1": false,
			"visible_barra2": false,
		}).Error
}

func (r *productoRepo) DescongelarGrupo(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"congelado":      false,
			"congelado_en":   nil,
			"congelado_por":  nil,
			"visible_barra1": true,
			"visible_barra2": true,
		}).Error
}

func (r *productoRepo) DescongelarTodos(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("1 = 1").
		Updates(map[string]interface{}{
			"congelado":      false,
			"congelado_en":   nil,
			"congelado_por":  nil,
			"visible_barra1": true,
			"visible_barra2": true,
		})
	return res.RowsAffected, res.Error
}

func (r *productoRepo) BulkActualizarCantidades(ctx context.Context, lote []dto.CantidadesLote) (*dto.ResultadoLote, error) {
	payload, err := json.Marshal(lote)
	if err != nil {
		return nil, fmt.Errorf("bulk: serializar lote: %w", err)
	}

	var raw []byte
	row := r.db.WithContext(ctx).
		Raw("SELECT bulk_update_cantidades(?::jsonb)", string(payload)).Row()
	if err := row.Scan(&raw); err != nil {
		return nil, fmt.Errorf("bulk: procedimiento: %w", err)
	}

	var res dto.ResultadoLote
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("bulk: respuesta ilegible: %w", err)
	}
	return &res, nil
}
