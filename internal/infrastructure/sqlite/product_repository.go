package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, quantity, price, category, created_at`

// ProductRepo implementación del puerto ProductRepository sobre SQLite (usable con db o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar db o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserta el producto y asigna el ID generado.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO product (name, description, quantity, price, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.Quantity, p.Price.String(), p.Category, toUnixNano(p.CreatedAt),
	)
	if err != nil {
		return domain.Storage("insert product", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Storage("insert product id", err)
	}
	p.ID = id
	return nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+productColumns+` FROM product WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Storage("get product", err)
	}
	return p, nil
}

// Update actualiza los campos editables. created_at nunca se reescribe.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE product SET name = ?, description = ?, quantity = ?, price = ?, category = ?
		WHERE id = ?`,
		p.Name, p.Description, p.Quantity, p.Price.String(), p.Category, p.ID,
	)
	if err != nil {
		return 0, domain.Storage("update product", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, domain.Storage("update product rows", err)
	}
	return n, nil
}

// Delete elimina el producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM product WHERE id = ?`, id)
	if err != nil {
		return 0, domain.Storage("delete product", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, domain.Storage("delete product rows", err)
	}
	return n, nil
}

// List devuelve todos los productos, más recientes primero.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+productColumns+` FROM product ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, domain.Storage("list products", err)
	}
	defer rows.Close()

	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Storage("scan product", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("list products", err)
	}
	return list, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var (
		p         entity.Product
		createdAt int64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Quantity, &p.Price, &p.Category, &createdAt); err != nil {
		return nil, err
	}
	p.CreatedAt = fromUnixNano(createdAt)
	return &p, nil
}
