package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/application/purchasing"
)

// PurchasingHandler compras del admin sobre los pedidos abiertos de los vendedores.
type PurchasingHandler struct {
	uc *purchasing.PurchaseUseCase
}

// NewPurchasingHandler construye el handler.
func NewPurchasingHandler(uc *purchasing.PurchaseUseCase) *PurchasingHandler {
	return &PurchasingHandler{uc: uc}
}

// ListOrders godoc
// @Summary      Pedidos abiertos de todos los vendedores
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/purchasing/orders [get]
func (h *PurchasingHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.uc.ListOrders(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewOrderResponses(orders))
}

// Purchase godoc
// @Summary      Comprar (total o parcialmente) un pedido
// @Description  key acepta el order_id lógico o el ID del documento. Un fallo al actualizar el pedido
// @Description  o la comisión después de crear el lote se informa como partial_success.
// @Tags         purchasing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        key   path  string                    true  "order_id o ID"
// @Param        body  body  dto.PurchaseOrderRequest  true  "quantity"
// @Success      201  {object}  dto.PurchaseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchasing/orders/{key}/purchase [post]
func (h *PurchasingHandler) Purchase(c *fiber.Ctx) error {
	adminID := GetUserID(c)
	if adminID == "" {
		return unauthorized(c)
	}
	key := c.Params("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "key es requerido"})
	}
	var in dto.PurchaseOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Purchase(c.Context(), purchasing.PurchaseInput{
		AdminID:  adminID,
		OrderKey: key,
		Quantity: in.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveOrder godoc
// @Summary      Eliminar un pedido
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Param        key  path  string  true  "order_id o ID"
// @Success      200  {object}  dto.Outcome
// @Router       /api/purchasing/orders/{key} [delete]
func (h *PurchasingHandler) RemoveOrder(c *fiber.Ctx) error {
	out, err := h.uc.RemoveOrder(c.Context(), c.Params("key"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
