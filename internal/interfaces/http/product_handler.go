package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/listing"
)

// maxPageSize tope del tamaño de página pedido por query.
const maxPageSize = 100

// ProductHandler maneja las peticiones HTTP de productos y su libro.
type ProductHandler struct {
	ledger    *inventory.LedgerService
	pageSize  int
	pageSizes []int
}

// NewProductHandler construye el handler. pageSize es el tamaño por defecto del listado.
func NewProductHandler(ledger *inventory.LedgerService, pageSize int, pageSizes []int) *ProductHandler {
	if pageSize <= 0 {
		pageSize = listing.DefaultPageSize
	}
	return &ProductHandler{ledger: ledger, pageSize: pageSize, pageSizes: pageSizes}
}

// List godoc
// @Summary      Listar productos (búsqueda, categoría y paginación)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        search     query  string  false  "Texto a buscar en nombre, descripción o categoría"
// @Param        category   query  string  false  "Categoría exacta; All o vacío = todas"
// @Param        page       query  int     false  "Página (1-based)"  default(1)
// @Param        page_size  query  int     false  "Tamaño de página"  default(10)
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	snapshot, err := h.ledger.ListProducts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	pageSize := c.QueryInt("page_size", h.pageSize)
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	page := listing.Apply(snapshot, listing.Query{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Page:     c.QueryInt("page", 1),
		PageSize: pageSize,
	})
	return c.JSON(dto.ProductListResponse{
		Items: dto.NewProductResponses(page.Items),
		Page: dto.PageResponse{
			Page:        page.Page,
			PageSize:    page.PageSize,
			TotalPages:  page.TotalPages,
			TotalItems:  page.TotalItems,
			HasPrevious: page.HasPrevious,
			HasNext:     page.HasNext,
		},
		Categories: listing.Categories(snapshot),
		PageSizes:  h.pageSizes,
	})
}

// Create godoc
// @Summary      Crear producto (registra el saldo inicial en el libro)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	product := in.ToEntity(0)
	if _, err := h.ledger.SaveProduct(c.UserContext(), product); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductResponse(product))
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return respondError(c, err)
	}
	product, err := h.ledger.GetProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductResponse(product))
}

// Update godoc
// @Summary      Editar producto (un cambio de cantidad queda como ajuste en el libro)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.SaveProductRequest  true  "Datos del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SaveProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	product := in.ToEntity(id)
	if _, err := h.ledger.SaveProduct(c.UserContext(), product); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductResponse(product))
}

// Delete godoc
// @Summary      Eliminar producto (los movimientos se conservan)
// @Tags         products
// @Security     Bearer
// @Param        id   path  int  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.ledger.DeleteProduct(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Duplicate godoc
// @Summary      Duplicar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      201  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/duplicate [post]
func (h *ProductHandler) Duplicate(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return respondError(c, err)
	}
	copied, err := h.ledger.DuplicateProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductResponse(copied))
}

// RegisterOutput godoc
// @Summary      Registrar salida de stock
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.RegisterOutputRequest  true  "Cantidad y notas"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/outputs [post]
func (h *ProductHandler) RegisterOutput(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.RegisterOutputRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ctx := c.UserContext()
	if err := h.ledger.RegisterOutput(ctx, id, in.Quantity, in.Notes); err != nil {
		return respondError(c, err)
	}
	product, err := h.ledger.GetProduct(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductResponse(product))
}

// History godoc
// @Summary      Historial de movimientos de un producto
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *ProductHandler) History(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return respondError(c, err)
	}
	history, err := h.ledger.ProductHistory(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProductHistoryResponse{
		Product:   dto.NewProductResponse(history.Product),
		Movements: dto.NewMovementResponses(history.Movements),
	})
}

// Reconcile godoc
// @Summary      Conciliar el libro con la cantidad del producto
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ReconciliationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/reconciliation [get]
func (h *ProductHandler) Reconcile(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return respondError(c, err)
	}
	r, err := h.ledger.Reconcile(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReconciliationResponse{
		ProductID:     r.ProductID,
		Quantity:      r.Quantity,
		Incoming:      r.Incoming,
		Outgoing:      r.Outgoing,
		LedgerBalance: r.LedgerBalance,
		Consistent:    r.Consistent,
	})
}
