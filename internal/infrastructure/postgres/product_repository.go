package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, quantity, price, category, created_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y asigna el ID generado por la secuencia.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO product (name, description, quantity, price, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.Name, p.Description, p.Quantity, p.Price, p.Category, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return storageErr("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get product", err)
	}
	return p, nil
}

// Update actualiza los campos editables. created_at no se modifica.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) (int64, error) {
	query := `
		UPDATE product SET name = $2, description = $3, quantity = $4, price = $5, category = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Description, p.Quantity, p.Price, p.Category)
	if err != nil {
		return 0, storageErr("update product", err)
	}
	return cmd.RowsAffected(), nil
}

// Delete elimina la fila del producto; los movimientos no se tocan.
func (r *ProductRepo) Delete(ctx context.Context, id int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM product WHERE id = $1`, id)
	if err != nil {
		return 0, storageErr("delete product", err)
	}
	return cmd.RowsAffected(), nil
}

// List devuelve todos los productos, más recientes primero.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM product ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, storageErr("list products", err)
	}
	defer rows.Close()

	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, storageErr("scan product", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list products", err)
	}
	return list, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Quantity, &p.Price, &p.Category, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// storageErr envuelve el error del driver; las violaciones de CHECK indican la restricción.
func storageErr(op string, err error) error {
	if isCheckViolation(err) {
		op = fmt.Sprintf("%s (restricción %s)", op, constraintName(err))
	}
	return domain.Storage(op, err)
}
