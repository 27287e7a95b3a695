package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AggregatedProduct vista derivada (no persistida) de todos los lotes vigentes con el mismo nombre.
// Los campos representativos provienen del lote más reciente.
type AggregatedProduct struct {
	ProductName             string
	Category                string
	Size                    string
	RepresentativeSerial    string
	RepresentativeOrderID   string
	RepresentativeLotID     string
	TotalQuantity           int
	TotalCost               decimal.Decimal
	RepresentativeUnitPrice decimal.Decimal
	NewestPurchase          time.Time
	IsAdminPurchase         bool
	LotCount                int
}
