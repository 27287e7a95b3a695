package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
	"github.com/jhoicas/lotes-api/internal/infrastructure/memory"
)

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func seedLots(t *testing.T, s *memory.Store, lots ...*entity.Lot) {
	t.Helper()
	for _, l := range lots {
		require.NoError(t, s.Lots().Create(context.Background(), l))
	}
}

func lot(id, name string, qty int, hoursAgo int) *entity.Lot {
	return &entity.Lot{
		ID:              id,
		OrderID:         "ord-" + id,
		SellerID:        "agent-1",
		ProductName:     name,
		Category:        "Camisas",
		Quantity:        qty,
		UnitPrice:       decimal.NewFromInt(10),
		TotalCost:       decimal.NewFromInt(int64(qty * 10)),
		PurchasedAt:     base.Add(-time.Duration(hoursAgo) * time.Hour),
		IsAdminPurchase: true,
	}
}

func newUseCase(s *memory.Store) *BatchingUseCase {
	uc := NewBatchingUseCase(s, s.Lots(), zerolog.Nop())
	uc.now = func() time.Time { return base }
	return uc
}

func quantities(t *testing.T, s *memory.Store) map[string]int {
	t.Helper()
	lots, err := s.Lots().List(context.Background(), repository.LotFilter{})
	require.NoError(t, err)
	out := map[string]int{}
	for _, l := range lots {
		out[l.ID] = l.Quantity
	}
	return out
}

func TestRemove_ConsumeMasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	// L1 (antiguo, 5) y L2 (reciente, 3): pedir 4 agota L2 y deja L1 en 4.
	seedLots(t, s, lot("L1", "Camisa", 5, 48), lot("L2", "Camisa", 3, 1))
	uc := newUseCase(s)

	snap, err := uc.Fetch(ctx, "")
	require.NoError(t, err)
	res, err := uc.Remove(ctx, snap, "Camisa", 4, "merma")
	require.NoError(t, err)
	assert.Equal(t, "success", string(res.Status))
	require.Len(t, res.LotsTouched, 2)
	assert.Equal(t, "L2", res.LotsTouched[0].LotID)
	assert.True(t, res.LotsTouched[0].Deleted)

	assert.Equal(t, map[string]int{"L1": 4}, quantities(t, s))
}

func TestRemove_ValidaAntesDeEscribir(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedLots(t, s, lot("L1", "Camisa", 2, 1))
	uc := newUseCase(s)
	snap, _ := uc.Fetch(ctx, "")

	_, err := uc.Remove(ctx, snap, "Camisa", 0, "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Remove(ctx, snap, "Camisa", 3, "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Remove(ctx, snap, "Pantalón", 1, "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, map[string]int{"L1": 2}, quantities(t, s))
}

func TestRemove_SnapshotDesactualizadoFallaSinAplicar(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedLots(t, s, lot("L1", "Camisa", 5, 2), lot("L2", "Camisa", 3, 1))
	uc := newUseCase(s)
	snap, _ := uc.Fetch(ctx, "")

	// Otro actor consume 6 unidades después de mostrar el snapshot.
	require.NoError(t, s.Lots().UpdateQuantity(ctx, "L1", 1))
	require.NoError(t, s.Lots().Delete(ctx, "L2"))

	_, err := uc.Remove(ctx, snap, "Camisa", 4, "")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, map[string]int{"L1": 1}, quantities(t, s))
}

func TestSell_RegistraVentaEnLaMismaTransaccion(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedLots(t, s, lot("L1", "Camisa", 5, 2))
	uc := newUseCase(s)
	snap, _ := uc.Fetch(ctx, "")

	res, err := uc.Sell(ctx, snap, SellInput{ProductName: "Camisa", Quantity: 2, UnitPrice: decimal.NewFromInt(25), BuyerName: " Ana "})
	require.NoError(t, err)
	require.NotNil(t, res.Sale)
	assert.Equal(t, 2, res.Sale.Quantity)
	assert.True(t, decimal.NewFromInt(50).Equal(res.Sale.Total))
	assert.Equal(t, "Ana", res.Sale.BuyerName)
	assert.Equal(t, "Camisas", res.Sale.Category)

	sales, err := s.Sales().List(ctx, repository.SaleQuery{})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, map[string]int{"L1": 3}, quantities(t, s))
}

func TestSell_FalloDelLibroRevierteElConsumo(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedLots(t, s, lot("L1", "Camisa", 5, 2))
	uc := newUseCase(s)
	snap, _ := uc.Fetch(ctx, "")

	s.FailOn("sales.append", errors.New("sin conexión"))
	_, err := uc.Sell(ctx, snap, SellInput{ProductName: "Camisa", Quantity: 2, UnitPrice: decimal.NewFromInt(25)})
	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, map[string]int{"L1": 5}, quantities(t, s))
}

func TestSell_PrecioNegativo(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedLots(t, s, lot("L1", "Camisa", 5, 2))
	uc := newUseCase(s)
	snap, _ := uc.Fetch(ctx, "")

	_, err := uc.Sell(ctx, snap, SellInput{ProductName: "Camisa", Quantity: 1, UnitPrice: decimal.NewFromInt(-1)})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConsumo_ConcurrenteNuncaSobreconsume(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedLots(t, s, lot("L1", "Camisa", 3, 2), lot("L2", "Camisa", 2, 1))
	uc := newUseCase(s)
	snap, _ := uc.Fetch(ctx, "")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Remove(ctx, snap, "Camisa", 4, "")
		}(i)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			failed++
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, map[string]int{"L1": 1}, quantities(t, s))
}

func TestUpdateProductInfo_RenombraTodosLosLotes(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedLots(t, s, lot("L1", "Camisa", 5, 2), lot("L2", "Camisa", 3, 1), lot("L3", "Jean", 1, 1))
	uc := newUseCase(s)
	snap, _ := uc.Fetch(ctx, "")

	out, err := uc.UpdateProductInfo(ctx, snap, "Camisa", entity.LotInfo{ProductName: "Camisa Oxford", Category: "Camisas", Size: "M", SerialNumber: "CAM-1"})
	require.NoError(t, err)
	assert.Equal(t, "success", string(out.Status))

	snap, _ = uc.Fetch(ctx, "")
	p, ok := snap.Product("Camisa Oxford")
	require.True(t, ok)
	assert.Equal(t, 8, p.TotalQuantity)
	_, ok = snap.Product("Camisa")
	assert.False(t, ok)
}

func TestUpdateProductInfo_SinLotes(t *testing.T) {
	uc := newUseCase(memory.NewStore())
	_, err := uc.UpdateProductInfo(context.Background(), nil, "Camisa", entity.LotInfo{ProductName: "X"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryBreakdown_SoloComprasAdmin(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	other := lot("L3", "Jean", 7, 1)
	other.IsAdminPurchase = false
	seedLots(t, s, lot("L1", "Camisa", 5, 2), other)
	uc := newUseCase(s)

	got, err := uc.CategoryBreakdown(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].Quantity)
}
