// Package sqlite implementa el almacenamiento local del libro sobre un archivo SQLite
// (driver puro Go modernc.org/sqlite). Un solo escritor, una sola conexión abierta.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
	_ "modernc.org/sqlite"
)

var _ inventory.Store = (*Store)(nil)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS product (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT    NOT NULL,
		description TEXT    NOT NULL DEFAULT '',
		quantity    INTEGER NOT NULL CHECK (quantity >= 0),
		price       TEXT    NOT NULL,
		category    TEXT    NOT NULL DEFAULT '',
		created_at  INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS product_movement (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL,
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		date       INTEGER NOT NULL,
		type       TEXT    NOT NULL CHECK (type IN ('INCOMING', 'OUTGOING')),
		notes      TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_product_movement_product ON product_movement (product_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_product_movement_date ON product_movement (date)`,
}

// layout consultas que fallan si un archivo trae tablas con el mismo nombre y otras columnas
// (los nombres de tabla en SQLite no distinguen mayúsculas).
var layout = []string{
	`SELECT id, name, description, quantity, price, category, created_at FROM product LIMIT 0`,
	`SELECT id, product_id, quantity, date, type, notes FROM product_movement LIMIT 0`,
}

// Store conexión al archivo SQLite con ciclo de vida explícito (Close / Reopen).
// Las operaciones toman el candado de lectura; Close toma el de escritura, por lo que
// espera a que terminen las operaciones en curso.
type Store struct {
	path string
	log  *logger.Logger

	mu sync.RWMutex
	db *sql.DB
}

// Open abre (o crea) el archivo de base de datos y asegura las tablas.
func Open(ctx context.Context, path string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{path: path, log: log.Component("sqlite")}
	db, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	s.db = db
	s.log.Info().Str("path", path).Msg("base de datos abierta")
	return s, nil
}

func (s *Store) connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", s.path))
	if err != nil {
		return nil, domain.Storage("open sqlite", err)
	}
	// Un solo escritor local: una conexión evita SQLITE_BUSY entre conexiones del mismo proceso.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, domain.Storage("ping sqlite", err)
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, domain.Storage("create schema", err)
		}
	}
	for _, q := range layout {
		rows, err := db.QueryContext(ctx, q)
		if err != nil {
			_ = db.Close()
			return nil, domain.Storage("check schema", err)
		}
		_ = rows.Close()
	}
	return db, nil
}

// Path ruta del archivo de base de datos.
func (s *Store) Path() string { return s.path }

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (s *Store) Run(ctx context.Context, fn inventory.RepoFunc) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return domain.ErrConnectionClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Storage("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewProductRepository(tx), NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.Storage("commit transaction", err)
	}
	return nil
}

// Read ejecuta fn con repos atados a la conexión, sin transacción.
func (s *Store) Read(ctx context.Context, fn inventory.RepoFunc) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return domain.ErrConnectionClosed
	}
	return fn(NewProductRepository(s.db), NewMovementRepository(s.db))
}

// Close espera las operaciones en curso y cierra la conexión. Cerrar dos veces no es error.
func (s *Store) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return domain.Storage("close sqlite", err)
	}
	s.log.Info().Str("path", s.path).Msg("conexión cerrada")
	return nil
}

// Reopen vuelve a abrir la conexión sobre el mismo archivo (no-op si está abierta).
func (s *Store) Reopen(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return nil
	}
	db, err := s.connect(ctx)
	if err != nil {
		return err
	}
	s.db = db
	s.log.Info().Str("path", s.path).Msg("conexión reabierta")
	return nil
}

// IsOpen indica si la conexión está disponible.
func (s *Store) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db != nil
}
