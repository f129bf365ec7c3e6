package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/backup"
)

// AdminHandler respaldo y restauración del archivo de base de datos.
type AdminHandler struct {
	backup *backup.Service
}

// NewAdminHandler construye el handler. svc nil = backend sin respaldo por archivo.
func NewAdminHandler(svc *backup.Service) *AdminHandler {
	return &AdminHandler{backup: svc}
}

// Backup godoc
// @Summary      Crear respaldo de la base de datos
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.BackupResponse
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/admin/backup [post]
func (h *AdminHandler) Backup(c *fiber.Ctx) error {
	if h.backup == nil {
		return respondError(c, backup.ErrUnsupported)
	}
	path, err := h.backup.Create(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BackupResponse{Path: path})
}

// Restore godoc
// @Summary      Restaurar la base de datos desde un respaldo
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.RestoreRequest  true  "Ruta del respaldo"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/admin/restore [post]
func (h *AdminHandler) Restore(c *fiber.Ctx) error {
	if h.backup == nil {
		return respondError(c, backup.ErrUnsupported)
	}
	var in dto.RestoreRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if strings.TrimSpace(in.Path) == "" {
		return respondError(c, domain.Validation("path es requerido"))
	}
	if err := h.backup.Restore(c.UserContext(), in.Path); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
