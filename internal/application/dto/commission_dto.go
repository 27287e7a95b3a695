package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderCommissionResponse cifra en vivo recalculada desde las compras del pedido.
type OrderCommissionResponse struct {
	OrderID       string          `json:"order_id"`
	TotalSold     decimal.Decimal `json:"total_sold"`
	Commission    decimal.Decimal `json:"commission"`
	PurchaseCount int             `json:"purchase_count"`
	UsedFallback  bool            `json:"used_fallback,omitempty"`
}

// CommissionRecordResponse registro de auditoría.
type CommissionRecordResponse struct {
	ID               string          `json:"id"`
	SaleAmount       decimal.Decimal `json:"sale_amount"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	Type             string          `json:"type"`
	CreatedAt        time.Time       `json:"created_at"`
}

// AgentCommissionResponse total acumulado persistido del vendedor y su historial.
type AgentCommissionResponse struct {
	SellerID        string                     `json:"seller_id"`
	Name            string                     `json:"name"`
	TotalCommission decimal.Decimal            `json:"total_commission"`
	Records         []CommissionRecordResponse `json:"records"`
}
