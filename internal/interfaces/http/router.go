package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/backup"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/export"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/metrics"
	"github.com/jhoicas/inventario-ledger/pkg/jwt"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	Ledger    *inventory.LedgerService
	Exports   *export.Service
	XLSX      export.Exporter
	PDF       export.Exporter
	Backup    *backup.Service // nil con almacenamiento PostgreSQL
	Metrics   *metrics.Registry
	Log       *logger.Logger
	JWTSecret string
	PageSize  int
	PageSizes []int
}

// NewApp crea la aplicación Fiber con recover y el log de solicitudes.
func NewApp(deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               deps.AppName,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(fiber.Map{"code": "HTTP_ERROR", "message": fe.Message})
			}
			return respondError(c, err)
		},
	})
	app.Use(recover.New())

	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	var observer RequestObserver
	if deps.Metrics != nil {
		observer = deps.Metrics
	}
	app.Use(RequestLogger(log.Component("http"), observer))
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	// Bearer Token cuando hay JWT_SECRET; sin secreto la API es local.
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	read := RequireScope(jwt.ScopeRead)
	write := RequireScope(jwt.ScopeWrite)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Ledger, deps.PageSize, deps.PageSizes)
	products.Get("/", read, productHandler.List)
	products.Post("/", write, productHandler.Create)
	products.Get("/:id", read, productHandler.GetByID)
	products.Put("/:id", write, productHandler.Update)
	products.Delete("/:id", write, productHandler.Delete)
	products.Post("/:id/duplicate", write, productHandler.Duplicate)
	products.Post("/:id/outputs", write, productHandler.RegisterOutput)
	products.Get("/:id/movements", read, productHandler.History)
	products.Get("/:id/reconciliation", read, productHandler.Reconcile)

	movementHandler := NewMovementHandler(deps.Ledger)
	api.Get("/movements", read, movementHandler.List)

	dashboardHandler := NewDashboardHandler(deps.Ledger)
	api.Get("/dashboard", read, dashboardHandler.Summary)

	if deps.Exports != nil {
		exportHandler := NewExportHandler(deps.Exports, deps.XLSX, deps.PDF)
		api.Get("/export/products.xlsx", read, exportHandler.XLSX)
		api.Get("/export/products.pdf", read, exportHandler.PDF)
	}

	admin := api.Group("/admin", write)
	adminHandler := NewAdminHandler(deps.Backup)
	admin.Post("/backup", adminHandler.Backup)
	admin.Post("/restore", adminHandler.Restore)
}
