package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ledger/internal/infrastructure/export"
	httpRouter "github.com/jhoicas/inventario-ledger/internal/interfaces/http"
)

func newServeCommand(opts *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				if addr == "" {
					addr = app.Config.HTTP.Addr()
				}
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()
				return serve(ctx, app, addr)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Dirección de escucha (por defecto HTTP_HOST:HTTP_PORT)")
	return cmd
}

// NewHTTPApp arma la aplicación Fiber con todas las rutas.
func NewHTTPApp(app *App) *fiber.App {
	cfg := app.Config
	deps := httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		Ledger:    app.Ledger,
		Exports:   app.Exports,
		XLSX:      export.NewXLSXExporter(),
		PDF:       export.NewPDFExporter(cfg.App.Name),
		Backup:    app.Backup,
		Metrics:   app.Metrics,
		Log:       app.Log,
		JWTSecret: cfg.JWT.Secret,
		PageSize:  cfg.Listing.PageSize,
		PageSizes: cfg.Listing.PageSizes,
	}
	fiberApp := httpRouter.NewApp(deps)

	// Swagger UI en /docs cuando hay un archivo de especificación.
	if cfg.HTTP.SwaggerFile != "" {
		fiberApp.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	}

	httpRouter.Router(fiberApp, deps)
	return fiberApp
}

// serve escucha hasta que ctx termina; el apagado pasa por el Closer (servidor antes que store).
func serve(ctx context.Context, app *App, addr string) error {
	fiberApp := NewHTTPApp(app)
	app.Closer.Add("http", fiberApp.ShutdownWithContext)

	if app.Config.JWT.Secret == "" {
		app.Log.Warn().Msg("JWT_SECRET vacío: la API acepta solicitudes sin token (modo local)")
	}

	errCh := make(chan error, 1)
	go func() {
		app.Log.Info().Str("addr", addr).Str("driver", app.Config.DB.Driver).Msg("servidor HTTP escuchando")
		errCh <- fiberApp.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		app.Log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		return nil
	}
}
