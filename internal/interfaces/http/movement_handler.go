package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

// MovementHandler consultas del libro completo.
type MovementHandler struct {
	ledger *inventory.LedgerService
}

func NewMovementHandler(ledger *inventory.LedgerService) *MovementHandler {
	return &MovementHandler{ledger: ledger}
}

// List godoc
// @Summary      Movimientos de todos los productos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        type  query  string  false  "INCOMING u OUTGOING; vacío = todos"
// @Success      200   {array}   dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	list, err := h.ledger.GetAllMovements(c.UserContext(), c.Query("type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewMovementResponses(list))
}
