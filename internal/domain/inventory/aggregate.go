// Package inventory contiene el motor puro de agregación, consumo y búsqueda de lotes.
// Nada aquí accede a red ni a estado compartido: todo opera sobre los datos recibidos.
package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// UncategorizedLabel categoría usada cuando un lote no tiene categoría.
const UncategorizedLabel = "Uncategorized"

// Snapshot resultado de una agregación: la lista de productos y el índice
// productName → lotes (más reciente primero) que respalda cada tarjeta.
// Pertenece al caller; se reconstruye completo en cada lectura, nunca se parchea.
type Snapshot struct {
	products []entity.AggregatedProduct
	index    map[string][]*entity.Lot
}

// Products devuelve los productos agregados ordenados por compra más reciente (desc).
func (s *Snapshot) Products() []entity.AggregatedProduct {
	if s == nil {
		return nil
	}
	out := make([]entity.AggregatedProduct, len(s.products))
	copy(out, s.products)
	return out
}

// LotsFor devuelve los lotes que respaldan la tarjeta productName en orden canónico (más reciente primero).
func (s *Snapshot) LotsFor(productName string) []*entity.Lot {
	if s == nil {
		return nil
	}
	lots := s.index[productName]
	out := make([]*entity.Lot, len(lots))
	copy(out, lots)
	return out
}

// Product busca la tarjeta agregada por nombre exacto.
func (s *Snapshot) Product(productName string) (entity.AggregatedProduct, bool) {
	if s == nil {
		return entity.AggregatedProduct{}, false
	}
	for _, p := range s.products {
		if p.ProductName == productName {
			return p, true
		}
	}
	return entity.AggregatedProduct{}, false
}

// Aggregate agrupa los lotes vigentes por productName (exacto, sensible a mayúsculas).
// Si category no está vacío se filtra aquí, en el cliente, para no exigir un índice compuesto al store.
// Los lotes agotados (Quantity <= 0) se descartan.
func Aggregate(lots []*entity.Lot, category string) *Snapshot {
	index := make(map[string][]*entity.Lot)
	var names []string
	for _, l := range lots {
		if l == nil || l.Exhausted() {
			continue
		}
		if category != "" && l.Category != category {
			continue
		}
		if _, ok := index[l.ProductName]; !ok {
			names = append(names, l.ProductName)
		}
		index[l.ProductName] = append(index[l.ProductName], l)
	}

	products := make([]entity.AggregatedProduct, 0, len(index))
	for _, name := range names {
		group := index[name]
		sortNewestFirst(group)
		products = append(products, summarize(name, group))
	}

	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if !a.NewestPurchase.Equal(b.NewestPurchase) {
			return a.NewestPurchase.After(b.NewestPurchase)
		}
		return a.ProductName < b.ProductName
	})

	return &Snapshot{products: products, index: index}
}

// sortNewestFirst orden canónico usado por el motor de consumo; desempata por ID para ser determinista.
func sortNewestFirst(lots []*entity.Lot) {
	sort.SliceStable(lots, func(i, j int) bool {
		if !lots[i].PurchasedAt.Equal(lots[j].PurchasedAt) {
			return lots[i].PurchasedAt.After(lots[j].PurchasedAt)
		}
		return lots[i].ID < lots[j].ID
	})
}

func summarize(name string, group []*entity.Lot) entity.AggregatedProduct {
	head := group[0]
	totalQty := 0
	totalCost := decimal.Zero
	for _, l := range group {
		totalQty += l.Quantity
		totalCost = totalCost.Add(l.TotalCost)
	}
	return entity.AggregatedProduct{
		ProductName:             name,
		Category:                head.Category,
		Size:                    head.Size,
		RepresentativeSerial:    head.SerialNumber,
		RepresentativeOrderID:   head.OrderID,
		RepresentativeLotID:     head.ID,
		TotalQuantity:           totalQty,
		TotalCost:               totalCost,
		RepresentativeUnitPrice: head.UnitPrice,
		NewestPurchase:          head.PurchasedAt,
		IsAdminPurchase:         head.IsAdminPurchase,
		LotCount:                len(group),
	}
}

// AverageUnitCost costo unitario promedio ponderado por la cantidad vigente de cada lote.
func AverageUnitCost(lots []*entity.Lot) decimal.Decimal {
	qty := decimal.Zero
	cost := decimal.Zero
	for _, l := range lots {
		if l.Exhausted() {
			continue
		}
		lotQty := decimal.NewFromInt(int64(l.Quantity))
		cost = WeightedUnitCost(qty, cost, lotQty, l.UnitPrice)
		qty = qty.Add(lotQty)
	}
	return cost
}

// CategoryStock cantidad total de compras admin por categoría.
type CategoryStock struct {
	Category string
	Quantity int
	Lots     int
}

// CategoryBreakdown agrupa lotes por categoría (vacía → Uncategorized) y suma cantidades.
// Orden: mayor cantidad primero, luego nombre.
func CategoryBreakdown(lots []*entity.Lot) []CategoryStock {
	byCat := make(map[string]*CategoryStock)
	for _, l := range lots {
		if l == nil {
			continue
		}
		cat := l.Category
		if cat == "" {
			cat = UncategorizedLabel
		}
		cs, ok := byCat[cat]
		if !ok {
			cs = &CategoryStock{Category: cat}
			byCat[cat] = cs
		}
		cs.Quantity += l.Quantity
		cs.Lots++
	}
	out := make([]CategoryStock, 0, len(byCat))
	for _, cs := range byCat {
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Category < out[j].Category
	})
	return out
}
