package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

func newLot(id string, qty int) *entity.Lot {
	return &entity.Lot{ID: id, ProductName: "Camisa", Category: "Camisas", Quantity: qty, UnitPrice: decimal.NewFromInt(10), PurchasedAt: time.Unix(int64(qty), 0)}
}

func TestStore_RunRollbackNoPublicaCambios(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Lots().Create(ctx, newLot("a", 5)))

	boom := errors.New("boom")
	err := s.Run(ctx, func(lotRepo repository.LotRepository, saleRepo repository.SaleRepository) error {
		require.NoError(t, lotRepo.UpdateQuantity(ctx, "a", 1))
		require.NoError(t, saleRepo.Append(ctx, &entity.Sale{ID: "s1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	lots, err := s.Lots().List(ctx, repository.LotFilter{})
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, 5, lots[0].Quantity)
	sales, err := s.Sales().List(ctx, repository.SaleQuery{})
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestStore_RunCommit(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Lots().Create(ctx, newLot("a", 5)))

	err := s.Run(ctx, func(lotRepo repository.LotRepository, _ repository.SaleRepository) error {
		return lotRepo.Delete(ctx, "a")
	})
	require.NoError(t, err)

	lots, err := s.Lots().List(ctx, repository.LotFilter{})
	require.NoError(t, err)
	assert.Empty(t, lots)
}

func TestStore_UpdateInfoTodoONada(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Lots().Create(ctx, newLot("a", 5)))

	err := s.Lots().UpdateInfo(ctx, []string{"a", "missing"}, entity.LotInfo{ProductName: "Nuevo"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	lots, _ := s.Lots().List(ctx, repository.LotFilter{})
	assert.Equal(t, "Camisa", lots[0].ProductName)
}

func TestStore_CombinacionDePedidoUnica(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	o := &entity.Order{ID: "1", OrderID: "1", SellerID: "v", ProductName: "P", Category: "C", Size: "M", Fit: "Slim", Quantity: 1}
	require.NoError(t, s.Orders().Create(ctx, o))

	dup := *o
	dup.ID, dup.OrderID = "2", "2"
	require.ErrorIs(t, s.Orders().Create(ctx, &dup), domain.ErrDuplicate)

	dup.Fit = "Regular"
	require.NoError(t, s.Orders().Create(ctx, &dup))
}

func TestStore_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Lots().Create(ctx, newLot("a", 5)))

	lots, _ := s.Lots().List(ctx, repository.LotFilter{})
	lots[0].Quantity = 99

	again, _ := s.Lots().List(ctx, repository.LotFilter{})
	assert.Equal(t, 5, again[0].Quantity)
}

func TestStore_FallosInyectados(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("sin conexión")
	s.FailOn("orders.delete", boom)
	require.ErrorIs(t, s.Orders().Delete(ctx, []string{"x"}), boom)

	s.ClearFailures()
	require.NoError(t, s.Orders().Delete(ctx, []string{"x"}))
}

func TestFeed_AvisaTrasConfirmar(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewStore()

	ch, err := s.Feed(TopicLots).Changes(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Lots().Create(ctx, newLot("a", 5)))
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no llegó aviso de cambio")
	}

	cancel()
	require.Eventually(t, func() bool {
		_, ok := <-ch
		return !ok
	}, time.Second, 10*time.Millisecond)
}
