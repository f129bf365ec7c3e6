package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las implementaciones se atan a la conexión o a una transacción abierta.
type ProductRepository interface {
	// Create inserta el producto y asigna product.ID.
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// Update devuelve la cantidad de filas afectadas.
	Update(ctx context.Context, product *entity.Product) (int64, error)
	// Delete devuelve la cantidad de filas afectadas.
	Delete(ctx context.Context, id int64) (int64, error)
	// List devuelve todos los productos, más recientes primero.
	List(ctx context.Context) ([]*entity.Product, error)
}
