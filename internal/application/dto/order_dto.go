package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	ProductName string          `json:"product_name" validate:"required,max=200"`
	Category    string          `json:"category" validate:"max=100"`
	Size        string          `json:"size" validate:"max=50"`
	Fit         string          `json:"fit" validate:"max=50"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// OrderResponse pedido expuesto por el API.
type OrderResponse struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"order_id"`
	SellerID    string          `json:"seller_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Size        string          `json:"size"`
	Fit         string          `json:"fit"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewOrderResponse convierte la entidad.
func NewOrderResponse(o *entity.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		OrderID:     o.OrderID,
		SellerID:    o.SellerID,
		ProductName: o.ProductName,
		Category:    o.Category,
		Size:        o.Size,
		Fit:         o.Fit,
		Quantity:    o.Quantity,
		UnitPrice:   o.UnitPrice,
		CreatedAt:   o.CreatedAt,
	}
}

// NewOrderResponses convierte una lista de entidades.
func NewOrderResponses(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}

// PurchaseOrderRequest body para POST /api/purchasing/orders/:key/purchase.
type PurchaseOrderRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// PurchaseResponse resultado de comprar (total o parcialmente) un pedido.
type PurchaseResponse struct {
	Outcome
	OrderKey          string            `json:"order_key"`
	State             entity.OrderState `json:"state"`
	RemainingQuantity int               `json:"remaining_quantity"`
	Lot               LotResponse       `json:"lot"`
}
