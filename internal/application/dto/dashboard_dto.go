package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	Products      int             `json:"products"`
	Units         int             `json:"units"`         // suma de cantidades
	StockValue    decimal.Decimal `json:"stock_value"`   // suma de cantidad × precio
	Categories    int             `json:"categories"`    // incluye "No category"
	IncomingCount int             `json:"incoming_count"`
	OutgoingCount int             `json:"outgoing_count"`
}
