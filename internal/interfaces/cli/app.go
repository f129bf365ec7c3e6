// Package cli implementa los comandos de la línea de comandos (cobra) y el navegador
// interactivo del listado.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/backup"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/export"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/metrics"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/inventario-ledger/pkg/closer"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// App dependencias ya construidas para un comando.
type App struct {
	Config  *config.Config
	Log     *logger.Logger
	Store   inventory.Store
	Ledger  *inventory.LedgerService
	Metrics *metrics.Registry
	Exports *export.Service
	Backup  *backup.Service // nil con PostgreSQL
	Closer  *closer.Closer
}

// Bootstrap abre el almacenamiento configurado y arma los servicios.
// Los recursos quedan registrados en App.Closer.
func Bootstrap(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	cl := closer.New(5 * time.Second)

	var (
		store inventory.Store
		err   error
	)
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		store, err = postgres.Open(ctx, cfg.DB, log)
	case config.DriverSQLite:
		store, err = sqlite.Open(ctx, cfg.DB.Path, log)
	default:
		err = fmt.Errorf("driver de almacenamiento desconocido %q", cfg.DB.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("abrir almacenamiento: %w", err)
	}
	cl.Add("store", store.Close)

	reg := metrics.New()
	ledger := inventory.NewLedgerService(store, reg, log)

	app := &App{
		Config:  cfg,
		Log:     log,
		Store:   store,
		Ledger:  ledger,
		Metrics: reg,
		Exports: export.NewService(ledger, cfg.Files.ExportDir, log),
		Closer:  cl,
	}
	if cfg.DB.Driver == config.DriverSQLite {
		app.Backup = backup.NewService(store, cfg.Files.BackupDir, log)
	}
	return app, nil
}

// Close libera los recursos registrados.
func (a *App) Close(ctx context.Context) error {
	return a.Closer.Close(ctx)
}
