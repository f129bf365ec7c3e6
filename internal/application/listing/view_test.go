package listing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-ledger/internal/application/listing"
)

func TestView_Navegacion(t *testing.T) {
	v := listing.NewView(10)
	assert.Equal(t, listing.StateIdle, v.State())

	page := v.Load(products(25))
	assert.Equal(t, listing.StatePaginated, v.State())
	assert.Equal(t, 1, page.Page)

	assert.Equal(t, 1, v.Previous().Page, "no-op en la primera página")
	assert.Equal(t, 2, v.Next().Page)
	assert.Equal(t, 3, v.Last().Page)
	assert.Equal(t, 3, v.Next().Page, "no-op en la última página")
	assert.Len(t, v.Current().Items, 5)
	assert.Equal(t, 1, v.First().Page)
	assert.Equal(t, 3, v.GoTo(9).Page)
}

func TestView_FiltrosAjustanPagina(t *testing.T) {
	v := listing.NewView(10)
	v.Load(products(25))
	v.Last()

	// "1" coincide con Item 01, 10..19 y 21: 12 resultados, 2 páginas. La página 3 se ajusta a 2.
	page := v.SetSearch("1")
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.Page)

	page = v.ClearFilters()
	assert.Equal(t, 2, page.Page, "mantiene la página al quitar filtros")
	assert.Equal(t, 3, page.TotalPages)

	page = v.SetPageSize(5)
	assert.Equal(t, 1, page.Page, "cambiar el tamaño vuelve a la primera página")
	assert.Equal(t, 5, page.TotalPages)
	assert.Equal(t, 5, v.PageSize())
}

func TestView_TamanoDePaginaEnorme(t *testing.T) {
	v := listing.NewView(10)
	v.Load(products(2))

	page := v.SetPageSize(math.MaxInt)
	assert.Equal(t, 1, page.TotalPages)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 1, v.Last().Page)
}

func TestView_Categorias(t *testing.T) {
	v := listing.NewView(0)
	v.Load(catalog())
	assert.Equal(t, []string{"All", "Hardware", "No category", "Tools"}, v.Categories())
	assert.Equal(t, "All", v.Category())

	page := v.SetCategory("Hardware")
	assert.Equal(t, []int64{2, 3}, ids(page.Items))

	page = v.SetCategory("")
	assert.Equal(t, "All", v.Category())
	assert.Equal(t, 5, page.TotalItems)

	v.SetCategory("Tools")
	v.Load(catalog()[1:])
	assert.Equal(t, "All", v.Category(), "recargar vuelve a todas las categorías")
	assert.Equal(t, []string{"All", "Hardware", "No category"}, v.Categories())
}
