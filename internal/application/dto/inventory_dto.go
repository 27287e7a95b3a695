package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/inventory"
)

// LotResponse lote (compra) expuesto por el API.
type LotResponse struct {
	ID              string          `json:"id"`
	OrderID         string          `json:"order_id"`
	SellerID        string          `json:"seller_id"`
	AdminID         string          `json:"admin_id,omitempty"`
	ProductName     string          `json:"product_name"`
	Category        string          `json:"category"`
	Size            string          `json:"size"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	SerialNumber    string          `json:"serial_number,omitempty"`
	PurchasedAt     time.Time       `json:"purchased_at"`
	IsAdminPurchase bool            `json:"is_admin_purchase"`
}

// NewLotResponse convierte la entidad.
func NewLotResponse(l *entity.Lot) LotResponse {
	return LotResponse{
		ID:              l.ID,
		OrderID:         l.OrderID,
		SellerID:        l.SellerID,
		AdminID:         l.AdminID,
		ProductName:     l.ProductName,
		Category:        l.Category,
		Size:            l.Size,
		Quantity:        l.Quantity,
		UnitPrice:       l.UnitPrice,
		TotalCost:       l.TotalCost,
		SerialNumber:    l.SerialNumber,
		PurchasedAt:     l.PurchasedAt,
		IsAdminPurchase: l.IsAdminPurchase,
	}
}

// NewLotResponses convierte una lista de entidades.
func NewLotResponses(lots []*entity.Lot) []LotResponse {
	out := make([]LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, NewLotResponse(l))
	}
	return out
}

// AggregatedProductResponse tarjeta de producto agregado.
type AggregatedProductResponse struct {
	ProductName     string          `json:"product_name"`
	Category        string          `json:"category"`
	Size            string          `json:"size"`
	SerialNumber    string          `json:"serial_number,omitempty"`
	OrderID         string          `json:"order_id,omitempty"`
	LotID           string          `json:"lot_id"`
	TotalQuantity   int             `json:"total_quantity"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	AverageUnitCost decimal.Decimal `json:"average_unit_cost"`
	NewestPurchase  time.Time       `json:"newest_purchase"`
	LotCount        int             `json:"lot_count"`
}

// ProductListResponse respuesta de GET /api/inventory/products.
type ProductListResponse struct {
	Total    int                         `json:"total"`
	Products []AggregatedProductResponse `json:"products"`
}

// CategoryStockResponse cantidad comprada por categoría.
type CategoryStockResponse struct {
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
	Lots     int    `json:"lots"`
}

// NewProductListResponse arma la respuesta con el costo promedio calculado sobre los lotes del snapshot.
func NewProductListResponse(snap *inventory.Snapshot, products []entity.AggregatedProduct) ProductListResponse {
	out := make([]AggregatedProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, AggregatedProductResponse{
			ProductName:     p.ProductName,
			Category:        p.Category,
			Size:            p.Size,
			SerialNumber:    p.RepresentativeSerial,
			OrderID:         p.RepresentativeOrderID,
			LotID:           p.RepresentativeLotID,
			TotalQuantity:   p.TotalQuantity,
			TotalCost:       p.TotalCost,
			UnitPrice:       p.RepresentativeUnitPrice,
			AverageUnitCost: inventory.AverageUnitCost(snap.LotsFor(p.ProductName)),
			NewestPurchase:  p.NewestPurchase,
			LotCount:        p.LotCount,
		})
	}
	return ProductListResponse{Total: len(out), Products: out}
}

// NewCategoryStockResponses convierte el desglose por categoría.
func NewCategoryStockResponses(rows []inventory.CategoryStock) []CategoryStockResponse {
	out := make([]CategoryStockResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, CategoryStockResponse{Category: r.Category, Quantity: r.Quantity, Lots: r.Lots})
	}
	return out
}

// RemoveProductRequest body para POST /api/inventory/products/remove.
type RemoveProductRequest struct {
	ProductName string `json:"product_name" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
	Reason      string `json:"reason,omitempty" validate:"max=500"`
	Category    string `json:"category,omitempty"`
}

// SellProductRequest body para POST /api/inventory/products/sell.
type SellProductRequest struct {
	ProductName string          `json:"product_name" validate:"required"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	BuyerName   string          `json:"buyer_name" validate:"max=200"`
	Category    string          `json:"category,omitempty"`
}

// UpdateProductInfoRequest body para PUT /api/inventory/products/info.
type UpdateProductInfoRequest struct {
	ProductName  string `json:"product_name" validate:"required"`
	NewName      string `json:"new_name" validate:"required"`
	SerialNumber string `json:"serial_number"`
	Category     string `json:"category"`
	Size         string `json:"size"`
}

// LotMutationResponse cambio aplicado a un lote por un consumo.
type LotMutationResponse struct {
	LotID       string `json:"lot_id"`
	PreviousQty int    `json:"previous_quantity"`
	NewQty      int    `json:"new_quantity"`
	Deducted    int    `json:"deducted"`
	Deleted     bool   `json:"deleted"`
}

// ConsumptionResponse resultado de remover o vender stock.
type ConsumptionResponse struct {
	Outcome
	ProductName string                `json:"product_name"`
	Requested   int                   `json:"requested"`
	LotsTouched []LotMutationResponse `json:"lots_touched"`
	Sale        *SaleResponse         `json:"sale,omitempty"`
}
