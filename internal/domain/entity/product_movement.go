package entity

import (
	"fmt"
	"time"
)

// MovementType dirección de un movimiento del libro.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementIncoming MovementType = "INCOMING" // entrada
	MovementOutgoing MovementType = "OUTGOING" // salida
)

// Notas generadas por el motor del libro.
const (
	NoteInitialStock = "Initial stock entry"
)

// AdjustmentNote nota para un ajuste de cantidad por edición del producto.
func AdjustmentNote(units int) string {
	return fmt.Sprintf("Stock adjusted by %d units", units)
}

// ParseMovementType valida un tipo recibido como texto.
func ParseMovementType(s string) (MovementType, bool) {
	switch MovementType(s) {
	case MovementIncoming, MovementOutgoing:
		return MovementType(s), true
	}
	return "", false
}

// ProductMovement asiento inmutable del libro: dirección + magnitud + motivo + fecha.
// ProductID no es llave foránea: los movimientos sobreviven al borrado del producto.
type ProductMovement struct {
	ID        int64
	ProductID int64
	Quantity  int // magnitud absoluta, siempre > 0
	Date      time.Time
	Type      MovementType
	Notes     string
}

// Signed devuelve la cantidad con signo (entrada +, salida -).
func (m *ProductMovement) Signed() int {
	if m.Type == MovementOutgoing {
		return -m.Quantity
	}
	return m.Quantity
}
