package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio del libro de inventario (sin dependencias externas).
var (
	ErrNotFound          = errors.New("producto no encontrado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrValidationFailed  = errors.New("validación fallida")
	ErrConnectionClosed  = errors.New("conexión de almacenamiento cerrada")
	ErrStorageFailure    = errors.New("falla de almacenamiento")
	ErrUnauthorized      = errors.New("no autorizado")
)

// StorageError envuelve la causa original de una falla de I/O o de transacción.
// errors.Is(err, ErrStorageFailure) es verdadero y errors.Unwrap devuelve la causa.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorageFailure.Error(), e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is permite comparar contra ErrStorageFailure sin perder la causa.
func (e *StorageError) Is(target error) bool { return target == ErrStorageFailure }

// Storage construye un StorageError. Devuelve nil si err es nil; los errores de dominio
// (NotFound, InsufficientStock, ...) se propagan sin envolver.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomainError(err) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsDomainError indica si err pertenece a la taxonomía del dominio.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrConnectionClosed) ||
		errors.Is(err, ErrStorageFailure)
}

// Validation devuelve un error que envuelve ErrValidationFailed con el detalle del campo.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}
