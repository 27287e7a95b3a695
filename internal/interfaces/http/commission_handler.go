package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"

	"github.com/jhoicas/lotes-api/internal/application/commission"
	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/application/live"
	"github.com/jhoicas/lotes-api/pkg/jwt"
)

// CommissionHandler cifras de comisión: en vivo por pedido y acumulado persistido por vendedor.
type CommissionHandler struct {
	uc     *commission.UseCase
	source live.Source
	log    zerolog.Logger
}

// NewCommissionHandler construye el handler. source alimenta el stream por pedido (cambios en lotes).
func NewCommissionHandler(uc *commission.UseCase, source live.Source, log zerolog.Logger) *CommissionHandler {
	return &CommissionHandler{uc: uc, source: source, log: log}
}

// OrderTotals godoc
// @Summary      Total vendido y comisión de un pedido
// @Description  Se recalcula desde las compras del pedido; si no hay compras admin se usan todas.
// @Tags         commission
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "order_id"
// @Success      200  {object}  dto.OrderCommissionResponse
// @Router       /api/commission/orders/{id} [get]
func (h *CommissionHandler) OrderTotals(c *fiber.Ctx) error {
	out, err := h.uc.OrderTotals(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StreamOrderTotals godoc
// @Summary      Cifras del pedido en vivo (SSE)
// @Tags         commission
// @Security     Bearer
// @Produce      text/event-stream
// @Param        id  path  string  true  "order_id"
// @Success      200  {string}  string  "SSE stream"
// @Router       /api/commission/orders/{id}/stream [get]
func (h *CommissionHandler) StreamOrderTotals(c *fiber.Ctx) error {
	orderID := utils.CopyString(c.Params("id"))
	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	log := h.log.With().Str("order", orderID).Logger()
	return streamView(c, h.source, func(ctx context.Context) (*dto.OrderCommissionResponse, error) {
		return h.uc.OrderTotals(ctx, orderID)
	}, log)
}

// AgentSummary godoc
// @Summary      Comisión acumulada de un vendedor
// @Description  Un agente solo puede consultar su propio acumulado.
// @Tags         commission
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del vendedor"
// @Success      200  {object}  dto.AgentCommissionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/commission/agents/{id} [get]
func (h *CommissionHandler) AgentSummary(c *fiber.Ctx) error {
	sellerID := c.Params("id")
	if GetRole(c) == jwt.RoleAgent && GetUserID(c) != sellerID {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puede consultar su propia comisión"})
	}
	out, err := h.uc.AgentSummary(c.Context(), sellerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
