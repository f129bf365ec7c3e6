package postgres

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

var _ inventory.Store = (*Store)(nil)

// Querier es satisfecho por *pgxpool.Pool y pgx.Tx; los repos funcionan con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store almacenamiento del libro sobre PostgreSQL (modo servidor).
// Mismo ciclo de vida que el backend SQLite: Close espera las operaciones en curso.
type Store struct {
	cfg config.DBConfig
	log *logger.Logger

	mu   sync.RWMutex
	pool *pgxpool.Pool
}

// Open crea el pool y asegura las tablas.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{cfg: cfg, log: log.Component("postgres")}
	pool, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	s.pool = pool
	s.log.Info().Str("host", cfg.Host).Str("db", cfg.DBName).Msg("pool PostgreSQL abierto")
	return s, nil
}

func (s *Store) connect(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := NewPool(ctx, s.cfg)
	if err != nil {
		return nil, domain.Storage("open postgres", err)
	}
	if err := EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Path vacío: PostgreSQL no es un backend de archivo (sin respaldo por copia).
func (s *Store) Path() string { return "" }

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (s *Store) Run(ctx context.Context, fn inventory.RepoFunc) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pool == nil {
		return domain.ErrConnectionClosed
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.Storage("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx), NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Storage("commit transaction", err)
	}
	return nil
}

// Read ejecuta fn con repos atados al pool, sin transacción.
func (s *Store) Read(ctx context.Context, fn inventory.RepoFunc) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pool == nil {
		return domain.ErrConnectionClosed
	}
	return fn(NewProductRepository(s.pool), NewMovementRepository(s.pool))
}

// Close espera las operaciones en curso y cierra el pool.
func (s *Store) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool == nil {
		return nil
	}
	s.pool.Close()
	s.pool = nil
	s.log.Info().Msg("pool PostgreSQL cerrado")
	return nil
}

// Reopen vuelve a crear el pool (no-op si está abierto).
func (s *Store) Reopen(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool != nil {
		return nil
	}
	pool, err := s.connect(ctx)
	if err != nil {
		return err
	}
	s.pool = pool
	s.log.Info().Msg("pool PostgreSQL reabierto")
	return nil
}
