// Package apierror define la envoltura estándar de errores de la API.
// Todo error que llega al cliente pasa por acá para no filtrar detalles
// internos (stack traces, errores de DB, etc.).
package apierror

// APIError es el sobre canónico para toda respuesta 4xx/5xx.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError agrupa errores por campo.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
