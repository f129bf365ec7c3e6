package inventory_test

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/sqlite"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "inventory.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func newLedger(t *testing.T) (*inventory.LedgerService, *sqlite.Store) {
	t.Helper()
	store := newStore(t)
	return inventory.NewLedgerService(store, nil, nil), store
}

func bolt() *entity.Product {
	return &entity.Product{Name: "Bolt", Quantity: 100, Price: decimal.RequireFromString("0.50")}
}

func mustCreate(t *testing.T, ledger *inventory.LedgerService, p *entity.Product) int64 {
	t.Helper()
	id, err := ledger.SaveProduct(context.Background(), p)
	require.NoError(t, err)
	require.NotZero(t, id)
	return id
}

// failingMovements falla al agregar al libro.
type failingMovements struct{ repository.MovementRepository }

func (failingMovements) Create(context.Context, *entity.ProductMovement) error {
	return errors.New("disco lleno")
}

// failingProducts falla al actualizar la fila del producto.
type failingProducts struct{ repository.ProductRepository }

func (failingProducts) Update(context.Context, *entity.Product) (int64, error) {
	return 0, errors.New("disco lleno")
}

// faultyStore inyecta fallas dentro de la transacción real.
type faultyStore struct {
	*sqlite.Store
	failMovement bool
	failUpdate   bool
}

func (s *faultyStore) Run(ctx context.Context, fn inventory.RepoFunc) error {
	return s.Store.Run(ctx, func(p repository.ProductRepository, m repository.MovementRepository) error {
		if s.failMovement {
			m = failingMovements{m}
		}
		if s.failUpdate {
			p = failingProducts{p}
		}
		return fn(p, m)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// SaveProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestSaveProduct_CreacionRegistraSaldoInicial(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)

	p := bolt()
	id := mustCreate(t, ledger, p)
	assert.Equal(t, id, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	movs, err := ledger.GetMovementsForProduct(ctx, id)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementIncoming, movs[0].Type)
	assert.Equal(t, 100, movs[0].Quantity)
	assert.Equal(t, "Initial stock entry", movs[0].Notes)
}

func TestSaveProduct_CreacionConCantidadCeroNoRegistraMovimiento(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)

	id := mustCreate(t, ledger, &entity.Product{Name: "Vacío", Price: decimal.Zero})

	movs, err := ledger.GetMovementsForProduct(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, movs)

	rec, err := ledger.Reconcile(ctx, id)
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
}

func TestSaveProduct_ActualizacionSinCambioDeCantidadNoAgregaMovimiento(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)
	p := bolt()
	id := mustCreate(t, ledger, p)
	createdAt := p.CreatedAt

	edit := &entity.Product{ID: id, Name: "Bolt M8", Description: "acero", Quantity: 100, Price: decimal.RequireFromString("0.75"), Category: "Hardware"}
	_, err := ledger.SaveProduct(ctx, edit)
	require.NoError(t, err)

	got, err := ledger.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Bolt M8", got.Name)
	assert.Equal(t, "Hardware", got.Category)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("0.75")))
	assert.True(t, got.CreatedAt.Equal(createdAt), "CreatedAt se fija una sola vez")
	assert.True(t, edit.CreatedAt.Equal(createdAt))

	movs, err := ledger.GetMovementsForProduct(ctx, id)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestSaveProduct_AjustesDeCantidad(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)
	p := bolt()
	id := mustCreate(t, ledger, p)

	p.Quantity = 120
	_, err := ledger.SaveProduct(ctx, p)
	require.NoError(t, err)
	p.Quantity = 90
	_, err = ledger.SaveProduct(ctx, p)
	require.NoError(t, err)

	movs, err := ledger.GetMovementsForProduct(ctx, id)
	require.NoError(t, err)
	require.Len(t, movs, 3)

	assert.Equal(t, entity.MovementOutgoing, movs[0].Type)
	assert.Equal(t, 30, movs[0].Quantity)
	assert.Equal(t, "Stock adjusted by 30 units", movs[0].Notes)

	assert.Equal(t, entity.MovementIncoming, movs[1].Type)
	assert.Equal(t, 20, movs[1].Quantity)
	assert.Equal(t, "Stock adjusted by 20 units", movs[1].Notes)
}

func TestSaveProduct_ActualizacionDeProductoInexistente(t *testing.T) {
	ledger, _ := newLedger(t)

	_, err := ledger.SaveProduct(context.Background(), &entity.Product{ID: 42, Name: "Fantasma", Quantity: 1, Price: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveProduct_Validaciones(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()

	cases := map[string]*entity.Product{
		"nombre vacío":      {Name: "  ", Quantity: 1, Price: decimal.Zero},
		"cantidad negativa": {Name: "x", Quantity: -1, Price: decimal.Zero},
		"precio negativo":   {Name: "x", Quantity: 1, Price: decimal.NewFromInt(-1)},
		"nil":               nil,
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ledger.SaveProduct(ctx, p)
			assert.ErrorIs(t, err, domain.ErrValidationFailed)
		})
	}
}

func TestSaveProduct_FallaDelLibroRevierteLaCreacion(t *testing.T) {
	ctx := context.Background()
	store := &faultyStore{Store: newStore(t), failMovement: true}
	ledger := inventory.NewLedgerService(store, nil, nil)

	p := bolt()
	_, err := ledger.SaveProduct(ctx, p)
	require.Error(t, err)
	assert.Zero(t, p.ID, "el ID asignado se descarta con el rollback")

	list, err := ledger.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSaveProduct_FallaAlActualizarNoDejaMovimiento(t *testing.T) {
	ctx := context.Background()
	store := &faultyStore{Store: newStore(t)}
	ledger := inventory.NewLedgerService(store, nil, nil)
	p := bolt()
	id := mustCreate(t, ledger, p)

	store.failUpdate = true
	p.Quantity = 10
	_, err := ledger.SaveProduct(ctx, p)
	require.Error(t, err)

	got, err := ledger.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Quantity)
	movs, err := ledger.GetMovementsForProduct(ctx, id)
	require.NoError(t, err)
	assert.Len(t, movs, 1, "el ajuste se revierte junto con la actualización")
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterOutput
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterOutput_EscenarioBolt(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)
	id := mustCreate(t, ledger, bolt())

	require.NoError(t, ledger.RegisterOutput(ctx, id, 30, "order #1"))

	got, err := ledger.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 70, got.Quantity)

	movs, err := ledger.GetMovementsForProduct(ctx, id)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementOutgoing, movs[0].Type)
	assert.Equal(t, 30, movs[0].Quantity)
	assert.Equal(t, "order #1", movs[0].Notes)

	err = ledger.RegisterOutput(ctx, id, 1000, "too much")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err = ledger.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 70, got.Quantity)
	movs, err = ledger.GetMovementsForProduct(ctx, id)
	require.NoError(t, err)
	assert.Len(t, movs, 2)
}

func TestRegisterOutput_TodoElStockEsValido(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)
	id := mustCreate(t, ledger, bolt())

	require.NoError(t, ledger.RegisterOutput(ctx, id, 100, "liquidación"))
	got, err := ledger.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, got.Quantity)
}

func TestRegisterOutput_Errores(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)
	id := mustCreate(t, ledger, bolt())

	assert.ErrorIs(t, ledger.RegisterOutput(ctx, id, 0, "x"), domain.ErrValidationFailed)
	assert.ErrorIs(t, ledger.RegisterOutput(ctx, id, -5, "x"), domain.ErrValidationFailed)
	assert.ErrorIs(t, ledger.RegisterOutput(ctx, 999, 1, "x"), domain.ErrNotFound)
}

func TestRegisterOutput_FallaDelLibroRevierteElDescuento(t *testing.T) {
	ctx := context.Background()
	store := &faultyStore{Store: newStore(t)}
	ledger := inventory.NewLedgerService(store, nil, nil)
	id := mustCreate(t, ledger, bolt())

	store.failMovement = true
	err := ledger.RegisterOutput(ctx, id, 10, "x")
	require.Error(t, err)

	got, err := ledger.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Quantity)
}

// La suma con signo del libro coincide con la cantidad final para cualquier secuencia.
func TestLedger_SumaDelLibroIgualCantidad(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)
	rng := rand.New(rand.NewSource(7))

	p := &entity.Product{Name: "Tornillo", Quantity: 1 + rng.Intn(50), Price: decimal.NewFromInt(1)}
	id := mustCreate(t, ledger, p)

	for i := 0; i < 60; i++ {
		if rng.Intn(2) == 0 {
			p.Quantity = rng.Intn(200)
			_, err := ledger.SaveProduct(ctx, p)
			require.NoError(t, err)
			continue
		}
		q := 1 + rng.Intn(40)
		err := ledger.RegisterOutput(ctx, id, q, "salida")
		if err != nil {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			continue
		}
		p.Quantity -= q
	}

	got, err := ledger.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, p.Quantity, got.Quantity)

	movs, err := ledger.GetMovementsForProduct(ctx, id)
	require.NoError(t, err)
	sum := 0
	for _, m := range movs {
		assert.Positive(t, m.Quantity)
		sum += m.Signed()
	}
	assert.Equal(t, got.Quantity, sum)

	rec, err := ledger.Reconcile(ctx, id)
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	assert.Equal(t, sum, rec.LedgerBalance)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado, consultas y ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteProduct_ConservaMovimientos(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)
	id := mustCreate(t, ledger, bolt())
	require.NoError(t, ledger.RegisterOutput(ctx, id, 5, "x"))

	require.NoError(t, ledger.DeleteProduct(ctx, id))

	_, err := ledger.GetProduct(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	movs, err := ledger.GetMovementsForProduct(ctx, id)
	require.NoError(t, err)
	assert.Len(t, movs, 2, "los movimientos huérfanos se conservan")

	assert.ErrorIs(t, ledger.DeleteProduct(ctx, id), domain.ErrNotFound)
}

func TestGetAllMovements_FiltroPorTipo(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)
	a := mustCreate(t, ledger, bolt())
	mustCreate(t, ledger, &entity.Product{Name: "Nut", Quantity: 3, Price: decimal.Zero})
	require.NoError(t, ledger.RegisterOutput(ctx, a, 1, "x"))

	all, err := ledger.GetAllMovements(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Date.After(all[i-1].Date), "orden por fecha descendente")
	}

	out, err := ledger.GetAllMovements(ctx, "OUTGOING")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, a, out[0].ProductID)

	_, err = ledger.GetAllMovements(ctx, "SIDEWAYS")
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestDuplicateProduct(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)
	id := mustCreate(t, ledger, &entity.Product{Name: "Widget", Quantity: 4, Price: decimal.NewFromInt(2), Category: "Tools"})

	dup, err := ledger.DuplicateProduct(ctx, id)
	require.NoError(t, err)
	assert.NotEqual(t, id, dup.ID)
	assert.Equal(t, "Widget (Copy)", dup.Name)
	assert.Equal(t, "Tools", dup.Category)

	movs, err := ledger.GetMovementsForProduct(ctx, dup.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.NoteInitialStock, movs[0].Notes)

	_, err = ledger.DuplicateProduct(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductHistoryYSummary(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)
	id := mustCreate(t, ledger, bolt())
	mustCreate(t, ledger, &entity.Product{Name: "Nut", Quantity: 10, Price: decimal.RequireFromString("0.25")})
	require.NoError(t, ledger.RegisterOutput(ctx, id, 30, "order #1"))

	h, err := ledger.ProductHistory(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Bolt", h.Product.Name)
	assert.Len(t, h.Movements, 2)

	_, err = ledger.ProductHistory(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	sum, err := ledger.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Products)
	assert.Equal(t, 80, sum.Units)
	assert.True(t, sum.StockValue.Equal(decimal.RequireFromString("37.5")), sum.StockValue.String())
	assert.Equal(t, 1, sum.Categories, "ambos sin categoría")
	assert.Equal(t, 2, sum.IncomingCount)
	assert.Equal(t, 1, sum.OutgoingCount)
}

func TestLedger_ConexionCerrada(t *testing.T) {
	ctx := context.Background()
	ledger, store := newLedger(t)
	id := mustCreate(t, ledger, bolt())

	require.NoError(t, store.Close(ctx))
	_, err := ledger.SaveProduct(ctx, bolt())
	assert.ErrorIs(t, err, domain.ErrConnectionClosed)
	assert.ErrorIs(t, ledger.RegisterOutput(ctx, id, 1, "x"), domain.ErrConnectionClosed)
	_, err = ledger.ListProducts(ctx)
	assert.ErrorIs(t, err, domain.ErrConnectionClosed)

	require.NoError(t, store.Reopen(ctx))
	got, err := ledger.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Quantity)
}
