package inventory

import "github.com/shopspring/decimal"

// WeightedUnitCost costo promedio ponderado al sumar un lote al stock acumulado.
// NuevoCosto = ((CantActual * CostoActual) + (CantLote * CostoLote)) / (CantActual + CantLote)
func WeightedUnitCost(qtyActual, costoActual, qtyLote, costoLote decimal.Decimal) decimal.Decimal {
	sum := qtyActual.Add(qtyLote)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := qtyActual.Mul(costoActual).Add(qtyLote.Mul(costoLote))
	return num.Div(sum)
}
