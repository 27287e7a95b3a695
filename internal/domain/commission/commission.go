// Package commission reglas de comisión del vendedor: tasa fija del 10 %.
package commission

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// Rate tasa de comisión fija en todo el sistema.
var Rate = decimal.RequireFromString("0.10")

// Amount comisión correspondiente a saleAmount.
func Amount(saleAmount decimal.Decimal) decimal.Decimal {
	return saleAmount.Mul(Rate)
}

// OrderTotals cifra recalculada por pedido a partir de las compras que lo referencian.
// Es independiente del total acumulado persistido en el vendedor y puede divergir de él.
type OrderTotals struct {
	OrderID       string
	TotalSold     decimal.Decimal
	Commission    decimal.Decimal
	PurchaseCount int
	// UsedFallback indica que no había compras admin y se usaron todas las compras.
	UsedFallback bool
}

// ComputeOrderTotals suma TotalCost de las compras admin del pedido y aplica Rate.
// Si hay compras pero ninguna es admin, suma todas.
func ComputeOrderTotals(orderID string, purchases []*entity.Lot) OrderTotals {
	out := OrderTotals{OrderID: orderID, TotalSold: decimal.Zero, Commission: decimal.Zero}

	admin := make([]*entity.Lot, 0, len(purchases))
	all := make([]*entity.Lot, 0, len(purchases))
	for _, p := range purchases {
		if p == nil || p.OrderID != orderID {
			continue
		}
		all = append(all, p)
		if p.IsAdminPurchase {
			admin = append(admin, p)
		}
	}

	counted := admin
	if len(admin) == 0 && len(all) > 0 {
		counted = all
		out.UsedFallback = true
	}
	for _, p := range counted {
		out.TotalSold = out.TotalSold.Add(p.TotalCost)
	}
	out.PurchaseCount = len(counted)
	out.Commission = Amount(out.TotalSold)
	return out
}
