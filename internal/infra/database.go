package infra

import (
	"fmt"

	"barstock/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase abre la conexión GORM sobre pgx, corre AutoMigrate y después
// aplica los parches SQL idempotentes que GORM no puede expresar: la función
// bulk_update_cantidades y los índices parciales del historial.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Categoria{},
		&model.Distribuidor{},
		&model.Producto{},
		&model.AccionProducto{},
		&model.NivelPar{},
		&model.Usuario{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// bulkUpdateCantidadesSQL instala el procedimiento de actualización masiva de
// conteos. Recibe un arreglo jsonb de {id, cantidad_barra1, cantidad_barra2,
// cantidad_camara} (acotado al tamaño de lote por el llamador) y devuelve
// {updated_count, failed_count, errors}. Cada registro falla o entra por
// separado: un id inexistente o un casteo inválido no tumba el lote.
const bulkUpdateCantidadesSQL = `
CREATE OR REPLACE FUNCTION bulk_update_cantidades(actualizaciones jsonb)
RETURNS jsonb AS $$
DECLARE
  item jsonb;
  actualizados int := 0;
  fallidos int := 0;
  errores jsonb := '[]'::jsonb;
BEGIN
  FOR item IN SELECT * FROM jsonb_array_elements(actualizaciones) LOOP
    BEGIN
      UPDATE productos
         SET cantidad_barra1 = (item->>'cantidad_barra1')::numeric,
             cantidad_barra2 = (item->>'cantidad_barra2')::numeric,
             cantidad_camara = (item->>'cantidad_camara')::numeric,
             updated_at = now()
       WHERE id = (item->>'id')::uuid;
      IF FOUND THEN
        actualizados := actualizados + 1;
      ELSE
        fallidos := fallidos + 1;
        errores := errores || jsonb_build_array(
          jsonb_build_object('id', item->>'id', 'error', 'producto no encontrado'));
      END IF;
    EXCEPTION WHEN OTHERS THEN
      fallidos := fallidos + 1;
      errores := errores || jsonb_build_array(
        jsonb_build_object('id', item->>'id', 'error', SQLERRM));
    END;
  END LOOP;
  RETURN jsonb_build_object(
    'updated_count', actualizados,
    'failed_count', fallidos,
    'errors', errores);
END;
$$ LANGUAGE plpgsql;
`

// applySchemaPatches corre DDL idempotente que AutoMigrate no maneja.
// Re-ejecutar sobre un esquema ya parchado es un no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"función bulk_update_cantidades", bulkUpdateCantidadesSQL},
		// Índice parcial para la consulta de historial por producto:
		// las filas grupales (producto_id NULL) no aportan a esa consulta.
		{"índice parcial acciones por producto", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_acciones_producto_sujeto') THEN
    CREATE INDEX idx_acciones_producto_sujeto
        ON acciones_producto (producto_id, created_at DESC)
        WHERE producto_id IS NOT NULL;
  END IF;
END $$`},
		// FK con SET NULL explícito: borrar un distribuidor anula la
		// referencia en productos, nunca cascadea.
		{"fk productos→distribuidores on delete set null", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_productos_distribuidor_set_null') THEN
    ALTER TABLE productos
      ADD CONSTRAINT fk_productos_distribuidor_set_null
      FOREIGN KEY (distribuidor_id) REFERENCES distribuidores(id) ON DELETE SET NULL;
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
