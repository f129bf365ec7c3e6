package http

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/infrastructure/export"
)

// ExportHandler descarga del inventario completo.
type ExportHandler struct {
	svc  *export.Service
	xlsx export.Exporter
	pdf  export.Exporter
}

func NewExportHandler(svc *export.Service, xlsx, pdf export.Exporter) *ExportHandler {
	return &ExportHandler{svc: svc, xlsx: xlsx, pdf: pdf}
}

// XLSX godoc
// @Summary      Exportar inventario a Excel
// @Tags         export
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/export/products.xlsx [get]
func (h *ExportHandler) XLSX(c *fiber.Ctx) error { return h.send(c, h.xlsx) }

// PDF godoc
// @Summary      Exportar inventario a PDF
// @Tags         export
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/export/products.pdf [get]
func (h *ExportHandler) PDF(c *fiber.Ctx) error { return h.send(c, h.pdf) }

func (h *ExportHandler) send(c *fiber.Ctx, ex export.Exporter) error {
	var buf bytes.Buffer
	if err := h.svc.Export(c.UserContext(), &buf, ex); err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, ex.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, export.FileName(ex.Extension(), time.Now())))
	return c.Send(buf.Bytes())
}
