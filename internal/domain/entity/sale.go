package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale entrada inmutable del libro de ventas.
type Sale struct {
	ID          string
	ProductName string
	Category    string
	UnitPrice   decimal.Decimal
	Quantity    int
	BuyerName   string
	Total       decimal.Decimal
	SoldAt      time.Time
}
