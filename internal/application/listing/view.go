package listing

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// State etapa de la vista.
type State int

const (
	StateIdle State = iota
	StateFiltering
	StatePaginated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFiltering:
		return "filtering"
	case StatePaginated:
		return "paginated"
	}
	return "unknown"
}

// View mantiene búsqueda, categoría y página sobre una instantánea cargada.
// Cada evento recalcula de forma síncrona. No es segura para uso concurrente:
// pertenece a una sola goroutine (la del navegador interactivo).
type View struct {
	snapshot   []*entity.Product
	categories []string
	filtered   []*entity.Product

	search   string
	category string
	page     int
	pageSize int

	state   State
	current Page
}

// NewView crea una vista vacía con el tamaño de página indicado.
func NewView(pageSize int) *View {
	return &View{
		category:   AllCategories,
		page:       1,
		pageSize:   normalizePageSize(pageSize),
		categories: []string{AllCategories},
		current:    Page{Page: 1, PageSize: normalizePageSize(pageSize), TotalPages: 1},
	}
}

// Load reemplaza la instantánea, recalcula las categorías y vuelve a "All".
// Conserva búsqueda y página (ajustada al nuevo total).
func (v *View) Load(snapshot []*entity.Product) Page {
	v.snapshot = snapshot
	v.categories = Categories(snapshot)
	v.category = AllCategories
	return v.refilter()
}

// SetSearch cambia el texto de búsqueda y mantiene la página actual (ajustada).
func (v *View) SetSearch(search string) Page {
	v.search = search
	return v.refilter()
}

// SetCategory cambia el filtro de categoría y mantiene la página actual (ajustada).
func (v *View) SetCategory(category string) Page {
	if category == "" {
		category = AllCategories
	}
	v.category = category
	return v.refilter()
}

// SetPageSize cambia el tamaño de página y vuelve a la primera.
func (v *View) SetPageSize(pageSize int) Page {
	v.pageSize = normalizePageSize(pageSize)
	v.page = 1
	return v.refilter()
}

// ClearFilters quita búsqueda y categoría.
func (v *View) ClearFilters() Page {
	v.search = ""
	v.category = AllCategories
	return v.refilter()
}

func (v *View) First() Page { return v.goTo(1) }

// Previous no hace nada en la primera página.
func (v *View) Previous() Page {
	if v.page <= 1 {
		return v.current
	}
	return v.goTo(v.page - 1)
}

// Next no hace nada en la última página.
func (v *View) Next() Page {
	if v.page >= v.current.TotalPages {
		return v.current
	}
	return v.goTo(v.page + 1)
}

func (v *View) Last() Page { return v.goTo(v.current.TotalPages) }

// GoTo salta a una página (ajustada al rango válido).
func (v *View) GoTo(page int) Page { return v.goTo(page) }

func (v *View) Current() Page        { return v.current }
func (v *View) Categories() []string { return v.categories }
func (v *View) Search() string       { return v.search }
func (v *View) Category() string     { return v.category }
func (v *View) PageSize() int        { return v.pageSize }
func (v *View) State() State         { return v.state }

func (v *View) refilter() Page {
	v.state = StateFiltering
	v.filtered = Filter(v.snapshot, v.search, v.category)
	return v.paginate()
}

func (v *View) goTo(page int) Page {
	v.page = page
	return v.paginate()
}

func (v *View) paginate() Page {
	v.current = Paginate(v.filtered, v.page, v.pageSize)
	v.page = v.current.Page
	v.state = StatePaginated
	return v.current
}
