package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/application/orders"
)

// OrdersHandler pedidos del vendedor (agente).
type OrdersHandler struct {
	uc *orders.UseCase
}

// NewOrdersHandler construye el handler.
func NewOrdersHandler(uc *orders.UseCase) *OrdersHandler {
	return &OrdersHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "product_name, category, size, fit, quantity, unit_price"
// @Success      201  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	sellerID := GetUserID(c)
	if sellerID == "" {
		return unauthorized(c)
	}
	var in dto.CreateOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), sellerID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Pedidos del vendedor autenticado
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrdersHandler) ListMine(c *fiber.Ctx) error {
	sellerID := GetUserID(c)
	if sellerID == "" {
		return unauthorized(c)
	}
	list, err := h.uc.ListMine(c.Context(), sellerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// ListAll godoc
// @Summary      Pedidos de todos los vendedores
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders/all [get]
func (h *OrdersHandler) ListAll(c *fiber.Ctx) error {
	list, err := h.uc.ListAll(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Delete godoc
// @Summary      Eliminar un pedido propio
// @Tags         orders
// @Security     Bearer
// @Param        id  path  string  true  "ID del pedido"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrdersHandler) Delete(c *fiber.Ctx) error {
	sellerID := GetUserID(c)
	if sellerID == "" {
		return unauthorized(c)
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.Context(), sellerID, id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Purchases godoc
// @Summary      Compras hechas sobre los pedidos del vendedor
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LotResponse
// @Router       /api/orders/purchases [get]
func (h *OrdersHandler) Purchases(c *fiber.Ctx) error {
	sellerID := GetUserID(c)
	if sellerID == "" {
		return unauthorized(c)
	}
	list, err := h.uc.Purchases(c.Context(), sellerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// NameAvailable godoc
// @Summary      ¿El vendedor puede usar este nombre de producto?
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        product_name  query  string  true  "Nombre del producto"
// @Success      200  {object}  map[string]bool
// @Router       /api/orders/name-available [get]
func (h *OrdersHandler) NameAvailable(c *fiber.Ctx) error {
	sellerID := GetUserID(c)
	if sellerID == "" {
		return unauthorized(c)
	}
	ok, err := h.uc.ProductNameAvailable(c.Context(), sellerID, c.Query("product_name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"available": ok})
}
