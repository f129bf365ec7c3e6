package postgres

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, quantity, date, type, notes`

// MovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx). Solo INSERT y SELECT.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create agrega un movimiento al libro.
func (r *MovementRepo) Create(ctx context.Context, m *entity.ProductMovement) error {
	query := `
		INSERT INTO product_movement (product_id, quantity, date, type, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, m.ProductID, m.Quantity, m.Date, string(m.Type), m.Notes).Scan(&m.ID)
	if err != nil {
		return storageErr("insert movement", err)
	}
	return nil
}

// ListByProduct movimientos de un producto, más recientes primero.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.ProductMovement, error) {
	return r.query(ctx, "list movements by product",
		`SELECT `+movementColumns+` FROM product_movement WHERE product_id = $1 ORDER BY date DESC, id DESC`,
		productID)
}

// List movimientos de todos los productos; movementType vacío = todos.
func (r *MovementRepo) List(ctx context.Context, movementType entity.MovementType) ([]*entity.ProductMovement, error) {
	if movementType == "" {
		return r.query(ctx, "list movements",
			`SELECT `+movementColumns+` FROM product_movement ORDER BY date DESC, id DESC`)
	}
	return r.query(ctx, "list movements by type",
		`SELECT `+movementColumns+` FROM product_movement WHERE type = $1 ORDER BY date DESC, id DESC`,
		string(movementType))
}

func (r *MovementRepo) query(ctx context.Context, op, query string, args ...any) ([]*entity.ProductMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	list := make([]*entity.ProductMovement, 0)
	for rows.Next() {
		var (
			m            entity.ProductMovement
			movementType string
		)
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Quantity, &m.Date, &movementType, &m.Notes); err != nil {
			return nil, storageErr("scan movement", err)
		}
		m.Type = entity.MovementType(movementType)
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return list, nil
}
