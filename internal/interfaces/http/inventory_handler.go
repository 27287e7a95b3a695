package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/application/inventory"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	domaininv "github.com/jhoicas/lotes-api/internal/domain/inventory"
)

// InventoryHandler maneja la vista agregada de lotes y su consumo (solo admin).
type InventoryHandler struct {
	uc *inventory.BatchingUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.BatchingUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ListProducts godoc
// @Summary      Productos agregados
// @Description  Agrupa los lotes vigentes por nombre y aplica la búsqueda de texto y el código escaneado.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría"
// @Param        q         query  string  false  "Texto a buscar"
// @Param        field     query  string  false  "name | serial | size | category"
// @Param        code      query  string  false  "Código escaneado"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/products [get]
func (h *InventoryHandler) ListProducts(c *fiber.Ctx) error {
	snap, err := h.uc.Fetch(c.Context(), c.Query("category"))
	if err != nil {
		return writeError(c, err)
	}
	products := domaininv.Filter(snap.Products(), domaininv.Query{
		Text:        c.Query("q"),
		Field:       domaininv.ParseSearchField(c.Query("field")),
		ScannedCode: c.Query("code"),
	})
	return c.JSON(dto.NewProductListResponse(snap, products))
}

// Categories godoc
// @Summary      Stock comprado por categoría
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CategoryStockResponse
// @Router       /api/inventory/categories [get]
func (h *InventoryHandler) Categories(c *fiber.Ctx) error {
	rows, err := h.uc.CategoryBreakdown(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewCategoryStockResponses(rows))
}

// Remove godoc
// @Summary      Retirar unidades de un producto
// @Description  Descuenta del lote más reciente hacia el más antiguo; los lotes agotados se eliminan.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RemoveProductRequest  true  "product_name, quantity, reason"
// @Success      200  {object}  dto.ConsumptionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/remove [post]
func (h *InventoryHandler) Remove(c *fiber.Ctx) error {
	var in dto.RemoveProductRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	snap, err := h.uc.Fetch(c.Context(), in.Category)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Remove(c.Context(), snap, in.ProductName, in.Quantity, in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sell godoc
// @Summary      Vender unidades de un producto
// @Description  Consume lotes como Remove y registra la venta en la misma transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SellProductRequest  true  "product_name, quantity, unit_price, buyer_name"
// @Success      200  {object}  dto.ConsumptionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/sell [post]
func (h *InventoryHandler) Sell(c *fiber.Ctx) error {
	var in dto.SellProductRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	snap, err := h.uc.Fetch(c.Context(), in.Category)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Sell(c.Context(), snap, inventory.SellInput{
		ProductName: in.ProductName,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		BuyerName:   in.BuyerName,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateInfo godoc
// @Summary      Editar nombre, serie, categoría y talla de un producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProductInfoRequest  true  "product_name y nuevos valores"
// @Success      200  {object}  dto.Outcome
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/info [put]
func (h *InventoryHandler) UpdateInfo(c *fiber.Ctx) error {
	var in dto.UpdateProductInfoRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	snap, err := h.uc.Fetch(c.Context(), "")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateProductInfo(c.Context(), snap, in.ProductName, entity.LotInfo{
		ProductName:  in.NewName,
		SerialNumber: strings.TrimSpace(in.SerialNumber),
		Category:     strings.TrimSpace(in.Category),
		Size:         strings.TrimSpace(in.Size),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
