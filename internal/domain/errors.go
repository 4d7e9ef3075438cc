package domain

import (
	"errors"
	"fmt"
)

// Clases de error de dominio (sin dependencias externas).
var (
	ErrInvalidInput = errors.New("entrada inválida")
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrInternal     = errors.New("error interno")
)

// Errores concretos del cumplimiento de órdenes; cada uno pertenece a una clase.
var (
	ErrNilRequest            = NewError(ErrInvalidInput, "la solicitud es obligatoria")
	ErrInvalidAmount         = NewError(ErrInvalidInput, "la cantidad debe ser mayor que cero")
	ErrProductNotFound       = NewError(ErrNotFound, "producto no encontrado")
	ErrWarehouseNotFound     = NewError(ErrNotFound, "bodega no encontrada")
	ErrOrderNotFound         = NewError(ErrNotFound, "no hay orden que coincida")
	ErrOrderAlreadyFulfilled = NewError(ErrConflict, "la orden ya fue cumplida")
	ErrPriceUnavailable      = NewError(ErrInternal, "no se pudo obtener el precio del producto")
)

// kindError es un error con mensaje propio que pertenece a una clase (errors.Is(err, clase)).
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// NewError crea un error con el mensaje msg perteneciente a la clase kind.
func NewError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Códigos externos de cada clase de error.
const (
	KindInvalidArgument = "INVALID_ARGUMENT"
	KindNotFound        = "NOT_FOUND"
	KindConflict        = "CONFLICT"
	KindInternal        = "INTERNAL"
)

// Kind clasifica err en una de las cuatro clases. Cualquier error no reconocido es INTERNAL.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidArgument
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindInternal
	}
}

// Internal envuelve un error de infraestructura como ErrInternal conservando la causa.
func Internal(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
}
