package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// NoCategoryLabel etiqueta de presentación para productos sin categoría. Nunca se persiste.
const NoCategoryLabel = "No category"

// Product representa un artículo del inventario.
// Quantity es el saldo actual; cada cambio queda registrado como ProductMovement.
type Product struct {
	ID          int64 // 0 = nuevo, lo asigna el almacenamiento
	Name        string
	Description string
	Quantity    int
	Price       decimal.Decimal
	Category    string
	CreatedAt   time.Time // se fija una sola vez, en la primera inserción
}

// IsNew indica si el producto aún no fue persistido.
func (p *Product) IsNew() bool { return p.ID == 0 }

// Validate aplica las reglas de captura: nombre no vacío, cantidad y precio no negativos.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return domain.Validation("el nombre es requerido")
	}
	if p.Quantity < 0 {
		return domain.Validation("la cantidad no puede ser negativa")
	}
	if p.Price.IsNegative() {
		return domain.Validation("el precio no puede ser negativo")
	}
	return nil
}

// DisplayCategory devuelve la categoría para mostrar; vacía se presenta como "No category".
func (p *Product) DisplayCategory() string {
	if strings.TrimSpace(p.Category) == "" {
		return NoCategoryLabel
	}
	return p.Category
}

// TotalValue valor del stock: cantidad × precio.
func (p *Product) TotalValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
