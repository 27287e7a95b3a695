package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// SaleResponse entrada del libro de ventas.
type SaleResponse struct {
	ID          string          `json:"id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	BuyerName   string          `json:"buyer_name"`
	Total       decimal.Decimal `json:"total"`
	SoldAt      time.Time       `json:"sold_at"`
}

// NewSaleResponse convierte la entidad.
func NewSaleResponse(s *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:          s.ID,
		ProductName: s.ProductName,
		Category:    s.Category,
		UnitPrice:   s.UnitPrice,
		Quantity:    s.Quantity,
		BuyerName:   s.BuyerName,
		Total:       s.Total,
		SoldAt:      s.SoldAt,
	}
}

// CategoryRevenueDTO ingreso por categoría.
type CategoryRevenueDTO struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// TopProductDTO producto más vendido.
type TopProductDTO struct {
	Name    string          `json:"name"`
	Units   int             `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SalesDashboardResponse tablero de ventas del admin.
type SalesDashboardResponse struct {
	CategoryRevenue    []CategoryRevenueDTO `json:"category_revenue"`
	TopProducts        []TopProductDTO      `json:"top_products"`
	RecentTransactions []SaleResponse       `json:"recent_transactions"`
	TotalRevenue       decimal.Decimal      `json:"total_revenue"`
	TotalUnits         int                  `json:"total_units"`
	GeneratedAt        time.Time            `json:"generated_at"`
}
