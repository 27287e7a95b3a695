package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/inventory"
)

func lot(id, name, category string, qty int, ts int64) *entity.Lot {
	price := decimal.NewFromInt(10)
	return &entity.Lot{
		ID:              id,
		OrderID:         "ord-" + id,
		ProductName:     name,
		Category:        category,
		Size:            "M",
		Quantity:        qty,
		UnitPrice:       price,
		TotalCost:       price.Mul(decimal.NewFromInt(int64(qty))),
		SerialNumber:    "SER-" + id,
		PurchasedAt:     time.UnixMilli(ts),
		IsAdminPurchase: true,
	}
}

func TestAggregate_TotalIgualSumaDeLotes(t *testing.T) {
	lots := []*entity.Lot{
		lot("a", "Blue Shirt", "Shirts", 5, 100),
		lot("b", "Blue Shirt", "Shirts", 3, 200),
		lot("c", "Red Pants", "Pants", 7, 150),
		lot("d", "Red Pants", "Pants", 0, 300),
	}

	snap := inventory.Aggregate(lots, "")
	products := snap.Products()
	require.Len(t, products, 2)

	for _, p := range products {
		sum := 0
		for _, l := range snap.LotsFor(p.ProductName) {
			sum += l.Quantity
		}
		assert.Equal(t, sum, p.TotalQuantity, "total de %s debe ser la suma de sus lotes", p.ProductName)
	}
}

func TestAggregate_OrdenYCamposRepresentativos(t *testing.T) {
	lots := []*entity.Lot{
		lot("a", "Blue Shirt", "Shirts", 5, 100),
		lot("b", "Blue Shirt", "Shirts", 3, 200),
		lot("c", "Red Pants", "Pants", 7, 150),
	}

	products := inventory.Aggregate(lots, "").Products()
	require.Len(t, products, 2)

	// Blue Shirt tiene el lote más reciente (200) → primero
	assert.Equal(t, "Blue Shirt", products[0].ProductName)
	assert.Equal(t, 8, products[0].TotalQuantity)
	assert.True(t, products[0].TotalCost.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, "SER-b", products[0].RepresentativeSerial)
	assert.Equal(t, "ord-b", products[0].RepresentativeOrderID)
	assert.Equal(t, time.UnixMilli(200), products[0].NewestPurchase)
	assert.Equal(t, 2, products[0].LotCount)
	assert.Equal(t, "Red Pants", products[1].ProductName)
}

func TestAggregate_LotesDelGrupoMasRecientePrimero(t *testing.T) {
	lots := []*entity.Lot{
		lot("a", "X", "", 5, 100),
		lot("b", "X", "", 3, 300),
		lot("c", "X", "", 1, 200),
	}

	group := inventory.Aggregate(lots, "").LotsFor("X")
	require.Len(t, group, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{group[0].ID, group[1].ID, group[2].ID})
}

func TestAggregate_DescartaAgotadosYFiltraCategoria(t *testing.T) {
	lots := []*entity.Lot{
		lot("a", "Blue Shirt", "Shirts", 5, 100),
		lot("b", "Red Pants", "Pants", 2, 200),
		lot("c", "Green Shirt", "Shirts", 0, 300),
	}

	products := inventory.Aggregate(lots, "Shirts").Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Blue Shirt", products[0].ProductName)
	assert.Empty(t, inventory.Aggregate(lots, "Shirts").LotsFor("Green Shirt"))
}

func TestAggregate_AgrupaPorNombreExacto(t *testing.T) {
	lots := []*entity.Lot{
		lot("a", "shirt", "", 1, 100),
		lot("b", "Shirt", "", 1, 100),
	}
	assert.Len(t, inventory.Aggregate(lots, "").Products(), 2)
}

func TestAggregate_Idempotente(t *testing.T) {
	lots := []*entity.Lot{
		lot("a", "X", "", 5, 100),
		lot("b", "Y", "", 3, 100),
		lot("c", "X", "", 2, 100),
	}
	first := inventory.Aggregate(lots, "")
	second := inventory.Aggregate(lots, "")

	assert.Equal(t, first.Products(), second.Products())
	assert.Equal(t, first.LotsFor("X"), second.LotsFor("X"))
}

func TestSnapshot_NilEsVacio(t *testing.T) {
	var snap *inventory.Snapshot
	assert.Empty(t, snap.Products())
	assert.Empty(t, snap.LotsFor("X"))
	_, ok := snap.Product("X")
	assert.False(t, ok)
}

func TestAverageUnitCost_PonderaPorCantidadVigente(t *testing.T) {
	a := lot("a", "X", "", 1, 100)
	a.UnitPrice = decimal.NewFromInt(10)
	b := lot("b", "X", "", 3, 200)
	b.UnitPrice = decimal.NewFromInt(20)

	avg := inventory.AverageUnitCost([]*entity.Lot{a, b})
	assert.True(t, avg.Equal(decimal.NewFromFloat(17.5)), "got %s", avg)
}

func TestCategoryBreakdown(t *testing.T) {
	lots := []*entity.Lot{
		lot("a", "Blue Shirt", "Shirts", 5, 100),
		lot("b", "Red Shirt", "Shirts", 2, 100),
		lot("c", "Cap", "", 9, 100),
	}

	out := inventory.CategoryBreakdown(lots)
	require.Len(t, out, 2)
	assert.Equal(t, inventory.CategoryStock{Category: "Uncategorized", Quantity: 9, Lots: 1}, out[0])
	assert.Equal(t, inventory.CategoryStock{Category: "Shirts", Quantity: 7, Lots: 2}, out[1])
}
