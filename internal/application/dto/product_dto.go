package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// SaveProductRequest entrada para crear o editar un producto.
// En la edición Quantity es la nueva cantidad; la diferencia queda en el libro.
type SaveProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
}

// ToEntity construye el producto; id 0 = nuevo.
func (r SaveProductRequest) ToEntity(id int64) *entity.Product {
	return &entity.Product{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Quantity:    r.Quantity,
		Price:       r.Price,
		Category:    r.Category,
	}
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category"`
	DisplayCategory string          `json:"display_category"`
	TotalValue      decimal.Decimal `json:"total_value"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewProductResponse mapea la entidad a la respuesta.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Quantity:        p.Quantity,
		Price:           p.Price,
		Category:        p.Category,
		DisplayCategory: p.DisplayCategory(),
		TotalValue:      p.TotalValue(),
		CreatedAt:       p.CreatedAt,
	}
}

// NewProductResponses mapea una lista; nunca devuelve nil.
func NewProductResponses(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, NewProductResponse(p))
	}
	return out
}

// ProductListResponse página del listado con las categorías disponibles.
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Page       PageResponse      `json:"page"`
	Categories []string          `json:"categories"`
	PageSizes  []int             `json:"page_sizes"`
}
