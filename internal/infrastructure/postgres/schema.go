package postgres

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// Sin framework de migraciones: CREATE IF NOT EXISTS al abrir.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS product (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT          NOT NULL,
		description TEXT          NOT NULL DEFAULT '',
		quantity    INTEGER       NOT NULL CHECK (quantity >= 0),
		price       NUMERIC(14,4) NOT NULL CHECK (price >= 0),
		category    TEXT          NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ   NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS product_movement (
		id         BIGSERIAL PRIMARY KEY,
		product_id BIGINT      NOT NULL,
		quantity   INTEGER     NOT NULL CHECK (quantity > 0),
		date       TIMESTAMPTZ NOT NULL,
		type       TEXT        NOT NULL CHECK (type IN ('INCOMING', 'OUTGOING')),
		notes      TEXT        NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_product_movement_product ON product_movement (product_id, date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_product_movement_date ON product_movement (date DESC)`,
}

// EnsureSchema crea las tablas del libro si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return domain.Storage("create schema", err)
		}
	}
	return nil
}
