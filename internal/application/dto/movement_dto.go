package dto

import (
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// RegisterOutputRequest salida de stock.
type RegisterOutputRequest struct {
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

// MovementResponse asiento del libro.
type MovementResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Signed    int       `json:"signed_quantity"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes"`
}

// NewMovementResponses mapea una lista; nunca devuelve nil.
func NewMovementResponses(list []*entity.ProductMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      string(m.Type),
			Quantity:  m.Quantity,
			Signed:    m.Signed(),
			Date:      m.Date,
			Notes:     m.Notes,
		})
	}
	return out
}

// ProductHistoryResponse producto con su historial de movimientos.
type ProductHistoryResponse struct {
	Product   ProductResponse    `json:"product"`
	Movements []MovementResponse `json:"movements"`
}

// ReconciliationResponse saldo del libro frente a la cantidad del producto.
type ReconciliationResponse struct {
	ProductID     int64 `json:"product_id"`
	Quantity      int   `json:"quantity"`
	Incoming      int   `json:"incoming"`
	Outgoing      int   `json:"outgoing"`
	LedgerBalance int   `json:"ledger_balance"`
	Consistent    bool  `json:"consistent"`
}
