package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/application/live"
	"github.com/jhoicas/lotes-api/internal/application/sales"
)

// SalesHandler tablero de ventas y reporte PDF.
type SalesHandler struct {
	uc     *sales.DashboardUseCase
	source live.Source
	log    zerolog.Logger
}

// NewSalesHandler construye el handler. source emite un cambio por cada venta registrada.
func NewSalesHandler(uc *sales.DashboardUseCase, source live.Source, log zerolog.Logger) *SalesHandler {
	return &SalesHandler{uc: uc, source: source, log: log}
}

// Dashboard godoc
// @Summary      Tablero de ventas
// @Description  Ingresos por categoría, top 5 de productos y últimas transacciones.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Transacciones recientes (por defecto SALES_RECENT_LIMIT)"
// @Success      200  {object}  dto.SalesDashboardResponse
// @Router       /api/sales/dashboard [get]
func (h *SalesHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), queryLimit(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StreamDashboard godoc
// @Summary      Tablero de ventas en vivo (SSE)
// @Tags         sales
// @Security     Bearer
// @Produce      text/event-stream
// @Success      200  {string}  string  "SSE stream"
// @Router       /api/sales/dashboard/stream [get]
func (h *SalesHandler) StreamDashboard(c *fiber.Ctx) error {
	limit := queryLimit(c)
	return streamView(c, h.source, func(ctx context.Context) (*dto.SalesDashboardResponse, error) {
		return h.uc.Dashboard(ctx, limit)
	}, h.log)
}

// Report godoc
// @Summary      Descargar reporte de ventas
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary  "PDF"
// @Router       /api/sales/report.pdf [get]
func (h *SalesHandler) Report(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.DownloadReport(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// queryLimit lee ?limit=; vacío, inválido o no positivo deja el valor por defecto del caso de uso.
func queryLimit(c *fiber.Ctx) int {
	if n := c.QueryInt("limit", 0); n > 0 {
		return n
	}
	return 0
}
