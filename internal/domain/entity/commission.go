package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionTypeAdminPurchase comisión generada cuando el admin compra un pedido del vendedor.
const CommissionTypeAdminPurchase = "admin_purchase"

// CommissionRecord registro de auditoría de una comisión; nunca se modifica.
type CommissionRecord struct {
	ID               string
	SellerID         string
	SaleAmount       decimal.Decimal
	CommissionAmount decimal.Decimal
	CommissionRate   decimal.Decimal
	Type             string
	CreatedAt        time.Time
}
