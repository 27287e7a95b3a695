package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Agent vendedor con su comisión acumulada (total persistido usado en reportes).
type Agent struct {
	ID              string
	Name            string
	Email           string
	TotalCommission decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
