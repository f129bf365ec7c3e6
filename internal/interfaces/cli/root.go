package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// BuildInfo versión inyectada por el binario.
type BuildInfo struct {
	Version   string
	BuildTime string
}

// options flags globales que pisan la configuración del entorno.
type options struct {
	dbPath   string
	driver   string
	logLevel string
	build    BuildInfo
}

// NewRootCommand construye el comando raíz con todos los subcomandos.
func NewRootCommand(build BuildInfo) *cobra.Command {
	opts := &options{build: build}

	cmd := &cobra.Command{
		Use:   "inventario",
		Short: "Inventario con libro de movimientos",
		Long: `inventario registra productos y cada cambio de stock como un movimiento
inmutable, de modo que la cantidad actual siempre se puede conciliar con el historial.

Incluye una API HTTP (serve), comandos para operar el libro, un navegador
interactivo del listado (browse), exportación a Excel/PDF y respaldo del archivo.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Archivo SQLite (pisa DB_PATH)")
	cmd.PersistentFlags().StringVar(&opts.driver, "driver", "", "Almacenamiento: sqlite | postgres (pisa DB_DRIVER)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Nivel de log (pisa LOG_LEVEL)")

	cmd.AddCommand(
		newServeCommand(opts),
		newProductCommand(opts),
		newMovementsCommand(opts),
		newBrowseCommand(opts),
		newExportCommand(opts),
		newBackupCommand(opts),
		newRestoreCommand(opts),
		newTokenCommand(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Muestra la versión",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "inventario version %s (build: %s)\n", opts.build.Version, opts.build.BuildTime)
			},
		},
	)
	return cmd
}

// loadConfig lee el entorno y aplica los flags globales.
func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.dbPath != "" {
		cfg.DB.Path = o.dbPath
	}
	if o.driver != "" {
		cfg.DB.Driver = o.driver
	}
	if o.logLevel != "" {
		cfg.App.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *options) newLogger(cfg *config.Config, w io.Writer) *logger.Logger {
	return logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: w})
}

// run abre la aplicación, ejecuta fn y cierra los recursos.
func (o *options) run(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	log := o.newLogger(cfg, cmd.ErrOrStderr())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := Bootstrap(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("cerrar recursos")
		}
	}()
	return fn(ctx, app)
}
