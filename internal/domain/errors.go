package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrInvalidState    = errors.New("operación inválida para el estado actual")
	ErrEmptyItems      = errors.New("debe contener al menos un ítem")
	ErrUnknownItem     = errors.New("el ítem no pertenece al documento")
	ErrPositionNotFound = errors.New("posición no encontrada")
	ErrOwnershipMismatch = errors.New("la posición no pertenece al cliente")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrOrderNotReady     = errors.New("la orden no está preparada")
	ErrOrderAlreadyDispatched = errors.New("la orden ya está asignada a otro despacho")
	ErrBlockedByReferences    = errors.New("no se puede eliminar: tiene referencias asociadas")
)

// InsufficientStockError detalla un faltante de stock en una posición:
// cuánto se solicitó y cuánto había disponible.
type InsufficientStockError struct {
	CodigoProducto string
	PosicionID     string
	Solicitado     int
	Disponible     int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %s en la posición %s: solicitado %d, disponible %d",
		e.CodigoProducto, e.PosicionID, e.Solicitado, e.Disponible)
}

// Unwrap permite detectar el error con errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
