package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// RepoFunc recibe repositorios atados a la misma conexión o transacción.
type RepoFunc func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y ninguna escritura queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn RepoFunc) error
}

// Store es el almacenamiento del libro: transacciones, lecturas y ciclo de vida de la conexión.
// Toda operación sobre una conexión cerrada falla con domain.ErrConnectionClosed.
type Store interface {
	TxRunner
	// Read ejecuta lecturas fuera de transacción.
	Read(ctx context.Context, fn RepoFunc) error
	// Close espera a que terminen las operaciones en curso y cierra la conexión.
	Close(ctx context.Context) error
	// Reopen vuelve a abrir la conexión (no-op si ya está abierta).
	Reopen(ctx context.Context) error
	// Path ubicación del archivo de base de datos; vacío si el backend no es de archivo.
	Path() string
}

// Metrics recibe los eventos del libro (implementación Prometheus en infrastructure/metrics).
type Metrics interface {
	MovementRecorded(movementType entity.MovementType, quantity int)
	OutputRejected(reason string)
}

type nopMetrics struct{}

func (nopMetrics) MovementRecorded(entity.MovementType, int) {}
func (nopMetrics) OutputRejected(string)                   {}
