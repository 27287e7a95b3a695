// Package sales agregaciones del libro de ventas para el tablero del admin.
package sales

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// TopProductsLimit cantidad de productos en el ranking.
const TopProductsLimit = 5

const uncategorized = "Uncategorized"

// CategoryRevenue ingreso total por categoría.
type CategoryRevenue struct {
	Category string
	Revenue  decimal.Decimal
}

// TopProduct producto con unidades e ingreso acumulados.
type TopProduct struct {
	Name    string
	Units   int
	Revenue decimal.Decimal
}

// Summary tablero calculado sobre un conjunto de ventas.
type Summary struct {
	CategoryRevenue []CategoryRevenue
	TopProducts     []TopProduct
	Recent          []*entity.Sale
	TotalRevenue    decimal.Decimal
	TotalUnits      int
}

// Revenue ingreso de una venta: unitPrice * quantity.
func Revenue(s *entity.Sale) decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// Summarize calcula ingreso por categoría (desc), top 5 por unidades y luego ingreso,
// y las recentLimit ventas más recientes (mínimo 1). Montos redondeados a 2 decimales.
func Summarize(list []*entity.Sale, recentLimit int) Summary {
	out := Summary{TotalRevenue: decimal.Zero}
	if recentLimit < 1 {
		recentLimit = 1
	}

	byCategory := map[string]decimal.Decimal{}
	type agg struct {
		units   int
		revenue decimal.Decimal
	}
	byProduct := map[string]*agg{}

	for _, s := range list {
		if s == nil || s.ProductName == "" {
			continue
		}
		rev := Revenue(s)
		cat := s.Category
		if cat == "" {
			cat = uncategorized
		}
		byCategory[cat] = byCategory[cat].Add(rev)

		a, ok := byProduct[s.ProductName]
		if !ok {
			a = &agg{revenue: decimal.Zero}
			byProduct[s.ProductName] = a
		}
		a.units += max(0, s.Quantity)
		a.revenue = a.revenue.Add(rev)

		out.TotalRevenue = out.TotalRevenue.Add(rev)
		out.TotalUnits += max(0, s.Quantity)
	}
	out.TotalRevenue = out.TotalRevenue.Round(2)

	for cat, rev := range byCategory {
		out.CategoryRevenue = append(out.CategoryRevenue, CategoryRevenue{Category: cat, Revenue: rev.Round(2)})
	}
	sort.Slice(out.CategoryRevenue, func(i, j int) bool {
		a, b := out.CategoryRevenue[i], out.CategoryRevenue[j]
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.Category < b.Category
	})

	for name, a := range byProduct {
		out.TopProducts = append(out.TopProducts, TopProduct{Name: name, Units: a.units, Revenue: a.revenue.Round(2)})
	}
	sort.Slice(out.TopProducts, func(i, j int) bool {
		a, b := out.TopProducts[i], out.TopProducts[j]
		if a.Units != b.Units {
			return a.Units > b.Units
		}
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.Name < b.Name
	})
	if len(out.TopProducts) > TopProductsLimit {
		out.TopProducts = out.TopProducts[:TopProductsLimit]
	}

	recent := make([]*entity.Sale, 0, len(list))
	for _, s := range list {
		if s != nil && s.ProductName != "" {
			recent = append(recent, s)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].SoldAt.After(recent[j].SoldAt) })
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	out.Recent = recent
	return out
}
