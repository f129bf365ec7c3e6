package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProductHistory vista tipada de un producto con sus movimientos (más recientes primero).
type ProductHistory struct {
	Product   *entity.Product
	Movements []*entity.ProductMovement
}

// Reconciliation compara el saldo del libro con la cantidad actual del producto.
type Reconciliation struct {
	ProductID     int64
	Quantity      int
	Incoming      int
	Outgoing      int
	LedgerBalance int
	Consistent    bool
}

// Summary totales del tablero.
type Summary struct {
	Products      int
	Units         int
	StockValue    decimal.Decimal
	Categories    int
	IncomingCount int
	OutgoingCount int
}

// GetProduct obtiene un producto por ID.
func (s *LedgerService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	var product *entity.Product
	err := s.store.Read(ctx, func(productRepo repository.ProductRepository, _ repository.MovementRepository) error {
		p, err := productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
		}
		product = p
		return nil
	})
	return product, err
}

// ListProducts devuelve todos los productos sin filtrar (más recientes primero).
// Es la instantánea del listado y la fuente de la exportación.
func (s *LedgerService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	err := s.store.Read(ctx, func(productRepo repository.ProductRepository, _ repository.MovementRepository) error {
		var err error
		list, err = productRepo.List(ctx)
		return err
	})
	return list, err
}

// GetMovementsForProduct movimientos de un producto, más recientes primero.
// Funciona también para productos borrados (movimientos huérfanos).
func (s *LedgerService) GetMovementsForProduct(ctx context.Context, productID int64) ([]*entity.ProductMovement, error) {
	var list []*entity.ProductMovement
	err := s.store.Read(ctx, func(_ repository.ProductRepository, movRepo repository.MovementRepository) error {
		var err error
		list, err = movRepo.ListByProduct(ctx, productID)
		return err
	})
	return list, err
}

// GetAllMovements movimientos de todos los productos; typeFilter vacío devuelve todos los tipos.
func (s *LedgerService) GetAllMovements(ctx context.Context, typeFilter string) ([]*entity.ProductMovement, error) {
	var movementType entity.MovementType
	if typeFilter != "" {
		t, ok := entity.ParseMovementType(typeFilter)
		if !ok {
			return nil, domain.Validation("tipo de movimiento desconocido: %q", typeFilter)
		}
		movementType = t
	}
	var list []*entity.ProductMovement
	err := s.store.Read(ctx, func(_ repository.ProductRepository, movRepo repository.MovementRepository) error {
		var err error
		list, err = movRepo.List(ctx, movementType)
		return err
	})
	return list, err
}

// ProductHistory devuelve el producto y su historial en una sola lectura.
func (s *LedgerService) ProductHistory(ctx context.Context, id int64) (*ProductHistory, error) {
	out := &ProductHistory{}
	err := s.store.Read(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		p, err := productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
		}
		out.Product = p
		out.Movements, err = movRepo.ListByProduct(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reconcile suma el libro del producto (INCOMING +, OUTGOING -) y lo compara con su cantidad.
func (s *LedgerService) Reconcile(ctx context.Context, id int64) (*Reconciliation, error) {
	history, err := s.ProductHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	r := &Reconciliation{ProductID: id, Quantity: history.Product.Quantity}
	for _, m := range history.Movements {
		switch m.Type {
		case entity.MovementIncoming:
			r.Incoming += m.Quantity
		case entity.MovementOutgoing:
			r.Outgoing += m.Quantity
		}
	}
	r.LedgerBalance = r.Incoming - r.Outgoing
	r.Consistent = r.LedgerBalance == r.Quantity
	if !r.Consistent {
		s.log.Warn().Int64("product_id", id).Int("quantity", r.Quantity).Int("ledger", r.LedgerBalance).Msg("libro descuadrado")
	}
	return r, nil
}

// Summary calcula los totales del tablero.
func (s *LedgerService) Summary(ctx context.Context) (*Summary, error) {
	var (
		products  []*entity.Product
		movements []*entity.ProductMovement
	)
	err := s.store.Read(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		var err error
		if products, err = productRepo.List(ctx); err != nil {
			return err
		}
		movements, err = movRepo.List(ctx, "")
		return err
	})
	if err != nil {
		return nil, err
	}

	sum := &Summary{Products: len(products), StockValue: decimal.Zero}
	categories := make(map[string]struct{})
	for _, p := range products {
		sum.Units += p.Quantity
		sum.StockValue = sum.StockValue.Add(p.TotalValue())
		categories[p.DisplayCategory()] = struct{}{}
	}
	sum.Categories = len(categories)
	for _, m := range movements {
		if m.Type == entity.MovementIncoming {
			sum.IncomingCount++
		} else {
			sum.OutgoingCount++
		}
	}
	return sum, nil
}
