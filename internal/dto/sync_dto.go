package dto

import "github.com/shopspring/decimal"

// ProductoEdit es una entrada del guardado masivo de conteos. Las cantidades
// llegan sin tipar (el cliente manda lo que haya en el input): número, string
// numérico o null. La validación del reconciliador decide qué entra.
type ProductoEdit struct {
	ID             string `json:"id"`
	CantidadBarra1 any    `json:"cantidad_barra1"`
	CantidadBarra2 any    `json:"cantidad_barra2"`
	CantidadCamara any    `json:"cantidad_camara"`
}

// CantidadesLote es una entrada ya validada y normalizada, lista para el
// procedimiento bulk_update_cantidades. Nunca lleva cantidades nulas: lo
// ausente se normalizó a cero.
type CantidadesLote struct {
	ID             string          `json:"id"`
	CantidadBarra1 decimal.Decimal `json:"cantidad_barra1"`
	CantidadBarra2 decimal.Decimal `json:"cantidad_barra2"`
	CantidadCamara decimal.Decimal `json:"cantidad_camara"`
}

// ResultadoLote es la respuesta del procedimiento remoto para UN lote.
type ResultadoLote struct {
	UpdatedCount int             `json:"updated_count"`
	FailedCount  int             `json:"failed_count"`
	Errors       []ErrorRegistro `json:"errors"`
}

// ErrorRegistro identifica un registro rechazado y el motivo.
type ErrorRegistro struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

// SyncResult agrega el resultado de todos los lotes de un BulkSync.
// Exito es true sólo si Fallidos == 0 y ningún lote explotó entero.
type SyncResult struct {
	Exito        bool            `json:"exito"`
	Total        int             `json:"total"`
	Actualizados int             `json:"actualizados"`
	Fallidos     int             `json:"fallidos"`
	Invalidos    int             `json:"invalidos,omitempty"`
	Errores      []ErrorRegistro `json:"errores,omitempty"`
	DuracionMs   int64           `json:"duracion_ms"`
}

type SyncRequest struct {
	Productos []ProductoEdit `json:"productos"`
}
