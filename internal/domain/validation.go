package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseQuantity interpreta la cantidad capturada por el usuario: entero >= 0.
func ParseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, Validation("la cantidad es requerida")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, Validation("cantidad no numérica: %q", s)
	}
	if n < 0 {
		return 0, Validation("la cantidad no puede ser negativa")
	}
	return n, nil
}

// ParsePrice interpreta el precio: decimal >= 0 con a lo sumo un separador decimal ('.').
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, Validation("el precio es requerido")
	}
	if strings.Count(s, ".") > 1 {
		return decimal.Zero, Validation("precio con más de un separador decimal: %q", s)
	}
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, Validation("precio no numérico: %q", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, Validation("precio no numérico: %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, Validation("el precio no puede ser negativo")
	}
	return d, nil
}
