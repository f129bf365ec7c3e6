package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// LedgerService es el motor del libro de inventario: cada cambio de cantidad produce
// exactamente un movimiento, y producto + movimiento se escriben en la misma transacción.
type LedgerService struct {
	store   Store
	metrics Metrics
	log     *logger.Logger
}

// NewLedgerService construye el servicio. metrics y log pueden ser nil.
func NewLedgerService(store Store, metrics Metrics, log *logger.Logger) *LedgerService {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerService{
		store:   store,
		metrics: metrics,
		log:     log.Component("ledger"),
	}
}

// SaveProduct crea (ID == 0) o actualiza un producto y devuelve su ID.
//
// Creación: fija CreatedAt, inserta y registra el saldo inicial como INCOMING
// "Initial stock entry". Con cantidad inicial 0 no se registra movimiento (la magnitud debe ser > 0).
//
// Actualización: carga el producto guardado; si la cantidad cambió agrega un movimiento por la
// diferencia ("Stock adjusted by N units") y luego actualiza la fila. CreatedAt no se modifica.
func (s *LedgerService) SaveProduct(ctx context.Context, product *entity.Product) (int64, error) {
	if product == nil {
		return 0, domain.Validation("producto requerido")
	}
	if err := product.Validate(); err != nil {
		return 0, err
	}
	if product.IsNew() {
		return s.create(ctx, product)
	}
	if err := s.update(ctx, product); err != nil {
		return 0, err
	}
	return product.ID, nil
}

func (s *LedgerService) create(ctx context.Context, product *entity.Product) (int64, error) {
	now := time.Now()
	var opening *entity.ProductMovement

	err := s.store.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		product.CreatedAt = now
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if product.Quantity == 0 {
			return nil
		}
		opening = &entity.ProductMovement{
			ProductID: product.ID,
			Quantity:  product.Quantity,
			Date:      now,
			Type:      entity.MovementIncoming,
			Notes:     entity.NoteInitialStock,
		}
		return movRepo.Create(ctx, opening)
	})
	if err != nil {
		// Rollback: el producto no existe, no debe conservar la identidad asignada.
		product.ID = 0
		product.CreatedAt = time.Time{}
		return 0, err
	}

	s.recorded(opening)
	s.log.Info().Int64("product_id", product.ID).Int("quantity", product.Quantity).Msg("producto creado")
	return product.ID, nil
}

func (s *LedgerService) update(ctx context.Context, product *entity.Product) error {
	now := time.Now()
	var (
		adjustment *entity.ProductMovement
		createdAt  time.Time
	)

	err := s.store.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		existing, err := productRepo.GetByID(ctx, product.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("%w: id %d", domain.ErrNotFound, product.ID)
		}
		createdAt = existing.CreatedAt

		if diff := product.Quantity - existing.Quantity; diff != 0 {
			adjustment = adjustmentMovement(product.ID, diff, now)
			if err := movRepo.Create(ctx, adjustment); err != nil {
				return err
			}
		}

		toStore := *product
		toStore.CreatedAt = createdAt
		n, err := productRepo.Update(ctx, &toStore)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: id %d", domain.ErrNotFound, product.ID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	product.CreatedAt = createdAt
	s.recorded(adjustment)
	return nil
}

// adjustmentMovement: positivo como INCOMING, negativo como OUTGOING, siempre con magnitud absoluta.
func adjustmentMovement(productID int64, diff int, now time.Time) *entity.ProductMovement {
	movementType := entity.MovementIncoming
	if diff < 0 {
		movementType = entity.MovementOutgoing
		diff = -diff
	}
	return &entity.ProductMovement{
		ProductID: productID,
		Quantity:  diff,
		Date:      now,
		Type:      movementType,
		Notes:     entity.AdjustmentNote(diff),
	}
}

// RegisterOutput registra una salida deliberada de stock (distinta de editar la cantidad).
// En una sola transacción: carga el producto, verifica stock, descuenta, persiste y agrega
// el movimiento OUTGOING. Cualquier falla deja producto y libro sin cambios.
func (s *LedgerService) RegisterOutput(ctx context.Context, productID int64, quantity int, notes string) error {
	if quantity <= 0 {
		return domain.Validation("la cantidad de salida debe ser mayor que cero")
	}
	now := time.Now()
	var movement *entity.ProductMovement

	err := s.store.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		product, err := productRepo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: id %d", domain.ErrNotFound, productID)
		}
		if product.Quantity < quantity {
			return fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, product.Quantity, quantity)
		}

		product.Quantity -= quantity
		if _, err := productRepo.Update(ctx, product); err != nil {
			return err
		}

		movement = &entity.ProductMovement{
			ProductID: productID,
			Quantity:  quantity,
			Date:      now,
			Type:      entity.MovementOutgoing,
			Notes:     notes,
		}
		return movRepo.Create(ctx, movement)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			s.metrics.OutputRejected("insufficient_stock")
			s.log.Warn().Int64("product_id", productID).Int("quantity", quantity).Msg("salida rechazada por stock insuficiente")
		}
		return err
	}

	s.recorded(movement)
	return nil
}

// DeleteProduct elimina solo la fila del producto. Sus movimientos se conservan como historial.
func (s *LedgerService) DeleteProduct(ctx context.Context, id int64) error {
	err := s.store.Run(ctx, func(productRepo repository.ProductRepository, _ repository.MovementRepository) error {
		n, err := productRepo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info().Int64("product_id", id).Msg("producto eliminado, movimientos conservados")
	return nil
}

// DuplicateProduct crea un producto nuevo con los datos de id y el sufijo " (Copy)".
// Pasa por el flujo de creación, por lo que registra su propio saldo inicial.
func (s *LedgerService) DuplicateProduct(ctx context.Context, id int64) (*entity.Product, error) {
	original, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	copied := &entity.Product{
		Name:        original.Name + " (Copy)",
		Description: original.Description,
		Quantity:    original.Quantity,
		Price:       original.Price,
		Category:    original.Category,
	}
	if _, err := s.SaveProduct(ctx, copied); err != nil {
		return nil, err
	}
	return copied, nil
}

func (s *LedgerService) recorded(m *entity.ProductMovement) {
	if m == nil {
		return
	}
	s.metrics.MovementRecorded(m.Type, m.Quantity)
	s.log.Debug().
		Int64("product_id", m.ProductID).
		Str("type", string(m.Type)).
		Int("quantity", m.Quantity).
		Str("notes", m.Notes).
		Msg("movimiento registrado")
}
