package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el libro de movimientos.
// Solo agrega y consulta: los movimientos no se modifican ni se borran.
type MovementRepository interface {
	// Create agrega el movimiento y asigna movement.ID.
	Create(ctx context.Context, movement *entity.ProductMovement) error
	// ListByProduct ordena por fecha descendente.
	ListByProduct(ctx context.Context, productID int64) ([]*entity.ProductMovement, error)
	// List filtra por tipo; movementType vacío devuelve todos. Orden por fecha descendente.
	List(ctx context.Context, movementType entity.MovementType) ([]*entity.ProductMovement, error)
}
