package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

// DashboardHandler totales del inventario.
type DashboardHandler struct {
	ledger *inventory.LedgerService
}

func NewDashboardHandler(ledger *inventory.LedgerService) *DashboardHandler {
	return &DashboardHandler{ledger: ledger}
}

// Summary godoc
// @Summary      Totales del inventario
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	s, err := h.ledger.Summary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DashboardSummaryDTO{
		Products:      s.Products,
		Units:         s.Units,
		StockValue:    s.StockValue,
		Categories:    s.Categories,
		IncomingCount: s.IncomingCount,
		OutgoingCount: s.OutgoingCount,
	})
}
