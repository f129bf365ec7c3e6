// Package listing calcula la vista filtrada y paginada del catálogo a partir de una
// instantánea de productos. Son funciones puras: no consultan el almacenamiento.
package listing

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

const (
	// AllCategories entrada sintética que desactiva el filtro de categoría.
	AllCategories = "All"
	// DefaultPageSize tamaño de página cuando no se indica uno válido.
	DefaultPageSize = 10
)

// Query parámetros de una consulta sobre la instantánea.
type Query struct {
	Search   string
	Category string
	Page     int // 1-based
	PageSize int
}

// Page resultado de aplicar una Query.
type Page struct {
	Items       []*entity.Product
	Page        int
	PageSize    int
	TotalPages  int
	TotalItems  int
	HasPrevious bool
	HasNext     bool
}

// Categories devuelve "All" seguido de las categorías distintas de la instantánea, en orden
// ascendente. Las categorías vacías se presentan como "No category".
func Categories(snapshot []*entity.Product) []string {
	seen := make(map[string]struct{}, len(snapshot))
	distinct := make([]string, 0, len(snapshot))
	for _, p := range snapshot {
		c := p.DisplayCategory()
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		distinct = append(distinct, c)
	}
	sort.Strings(distinct)
	return append([]string{AllCategories}, distinct...)
}

// Filter aplica búsqueda y categoría (combinadas con AND). La búsqueda es una subcadena sin
// distinguir mayúsculas sobre nombre, descripción o categoría. Conserva el orden de entrada.
// Los espacios solo cuentan para decidir si un filtro está vacío: un término no vacío se busca
// tal cual y la categoría se compara exacta.
func Filter(snapshot []*entity.Product, search, category string) []*entity.Product {
	// cases.Caser no es seguro entre goroutines: uno por llamada.
	fold := cases.Fold()
	var term string
	if strings.TrimSpace(search) != "" {
		term = fold.String(search)
	}
	if strings.TrimSpace(category) == "" {
		category = ""
	}

	out := make([]*entity.Product, 0, len(snapshot))
	for _, p := range snapshot {
		if !matchesCategory(p, category) {
			continue
		}
		if term != "" && !matchesSearch(fold, p, term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesCategory(p *entity.Product, category string) bool {
	switch category {
	case "", AllCategories:
		return true
	case entity.NoCategoryLabel:
		return strings.TrimSpace(p.Category) == ""
	}
	return p.Category == category
}

func matchesSearch(fold cases.Caser, p *entity.Product, term string) bool {
	for _, field := range [...]string{p.Name, p.Description, p.Category} {
		if field != "" && strings.Contains(fold.String(field), term) {
			return true
		}
	}
	return false
}

// TotalPages max(1, ceil(count/pageSize)).
func TotalPages(count, pageSize int) int {
	pageSize = normalizePageSize(pageSize)
	if count <= 0 {
		return 1
	}
	// Sin sumar pageSize a count: con tamaños muy grandes la suma desborda.
	return (count-1)/pageSize + 1
}

// ClampPage lleva page al rango [1, totalPages]. Una página fuera de rango queda en la última,
// no vuelve a la primera.
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate corta items en la página pedida, ajustada al rango válido.
func Paginate(items []*entity.Product, page, pageSize int) Page {
	pageSize = normalizePageSize(pageSize)
	total := TotalPages(len(items), pageSize)
	page = ClampPage(page, total)

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page{
		Items:       items[start:end:end],
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  total,
		TotalItems:  len(items),
		HasPrevious: page > 1,
		HasNext:     page < total,
	}
}

// Apply filtra y pagina la instantánea.
func Apply(snapshot []*entity.Product, q Query) Page {
	return Paginate(Filter(snapshot, q.Search, q.Category), q.Page, q.PageSize)
}

func normalizePageSize(pageSize int) int {
	if pageSize <= 0 {
		return DefaultPageSize
	}
	return pageSize
}
