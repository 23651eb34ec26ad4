package infra

import (
	"errors"
	"sync"
	"time"
)

// ── Circuit Breaker ───────────────────────────────────────────────────────────
// Implementación genérica del patrón (Closed → Open → Half-Open). Evita
// martillar el servidor SMTP cuando está caído: los envíos de pedidos fallan
// rápido y el worker los manda a la DLQ en lugar de reintentar en caliente.
//
// Estados:
//   - Closed:    operación normal, las llamadas pasan
//   - Open:      todo falla inmediatamente (fast-fail)
//   - Half-Open: se deja pasar una llamada de prueba

// CBState representa el estado actual del circuit breaker.
type CBState int

const (
	CBClosed   CBState = iota // normal, las llamadas fluyen
	CBOpen                    // disparado, fast-fail
	CBHalfOpen                // probando, una llamada permitida
)

// String devuelve el nombre legible del estado (para health y logs).
func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen se devuelve cuando Execute corre con el CB abierto.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig agrupa los parámetros ajustables.
type CircuitBreakerConfig struct {
	FailureThreshold int           // fallas consecutivas para abrir (default: 5)
	SuccessThreshold int           // éxitos consecutivos en half-open para cerrar (default: 2)
	OpenTimeout      time.Duration // cuánto permanecer abierto antes de probar (default: 60s)
}

// DefaultCBConfig devuelve defaults razonables para el CB de SMTP.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      60 * time.Second,
	}
}

// CircuitBreaker implementa el patrón con transiciones thread-safe.
type CircuitBreaker struct {
	mu               sync.Mutex
	state            CBState
	failureCount     int
	successCount     int
	lastFailureTime  time.Time
	failureThreshold int
	successThreshold int
	openTimeout      time.Duration
}

// NewCircuitBreaker crea un CB en estado Closed.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 2
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 60 * time.Second
	}
	return &CircuitBreaker{
		state:            CBClosed,
		failureThreshold: cfg.FailureThreshold,
		successThreshold: cfg.SuccessThreshold,
		openTimeout:      cfg.OpenTimeout,
	}
}

// State devuelve el estado actual (seguro para lecturas concurrentes).
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	// Auto-transición open → half-open al vencer el timeout
	if cb.state == CBOpen && time.Since(cb.lastFailureTime) >= cb.openTimeout {
		cb.state = CBHalfOpen
		cb.successCount = 0
	}
	return cb.state
}

// Execute corre fn a través del circuit breaker.
// Devuelve ErrCircuitOpen inmediatamente si el CB está abierto.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	state := cb.State()

	if state == CBOpen {
		return ErrCircuitOpen
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.onFailure()
		return err
	}
	cb.onSuccess()
	return nil
}

// onFailure registra una falla (llamar bajo lock).
func (cb *CircuitBreaker) onFailure() {
	cb.failureCount++
	cb.lastFailureTime = time.Now()

	switch cb.state {
	case CBClosed:
		if cb.failureCount >= cb.failureThreshold {
			cb.state = CBOpen
			cb.successCount = 0
		}
	case CBHalfOpen:
		// Falló la prueba, vuelta a open
		cb.state = CBOpen
		cb.failureCount = 0
	}
}

// onSuccess registra un éxito (llamar bajo lock).
func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case CBClosed:
		cb.failureCount = 0
	case CBHalfOpen:
		cb.successCount++
		if cb.successCount >= cb.successThreshold {
			cb.state = CBClosed
			cb.failureCount = 0
			cb.successCount = 0
		}
	}
}
