package purchasing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lotes-api/internal/application/commission"
	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
	"github.com/jhoicas/lotes-api/internal/infrastructure/memory"
)

func setup(t *testing.T, orders ...*entity.Order) (*memory.Store, *PurchaseUseCase) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Agents().Create(ctx, &entity.Agent{ID: "agent-1", Name: "Laura", TotalCommission: decimal.Zero}))
	for _, o := range orders {
		require.NoError(t, s.Orders().Create(ctx, o))
	}
	comm := commission.NewUseCase(s.Agents(), s.Commissions(), s.Lots(), zerolog.Nop())
	uc := NewPurchaseUseCase(s, s.Orders(), comm, zerolog.Nop())
	uc.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	uc.serial = func(category, orderID string) string { return "SER-" + orderID }
	return s, uc
}

func order(id, orderID string, qty int) *entity.Order {
	return &entity.Order{ID: id, OrderID: orderID, SellerID: "agent-1", ProductName: "Camisa " + id, Category: "Camisas", Size: "M", Fit: "Slim", Quantity: qty, UnitPrice: decimal.NewFromInt(20)}
}

func commissionTotal(t *testing.T, s *memory.Store) decimal.Decimal {
	t.Helper()
	a, err := s.Agents().GetByID(context.Background(), "agent-1")
	require.NoError(t, err)
	return a.TotalCommission
}

func TestPurchase_Parcial(t *testing.T) {
	ctx := context.Background()
	s, uc := setup(t, order("o1", "o1", 10))

	res, err := uc.Purchase(ctx, PurchaseInput{AdminID: "admin", OrderKey: "o1", Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, "success", string(res.Status))
	assert.Equal(t, entity.OrderStatePartiallyFulfilled, res.State)
	assert.Equal(t, 6, res.RemainingQuantity)
	assert.Equal(t, 4, res.Lot.Quantity)
	assert.True(t, decimal.NewFromInt(80).Equal(res.Lot.TotalCost))
	assert.Equal(t, "SER-o1", res.Lot.SerialNumber)
	assert.True(t, res.Lot.IsAdminPurchase)

	o, err := s.Orders().GetByID(ctx, "o1")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, 6, o.Quantity)
	assert.True(t, decimal.NewFromInt(8).Equal(commissionTotal(t, s)))
}

func TestPurchase_CompletaEliminaElPedido(t *testing.T) {
	ctx := context.Background()
	s, uc := setup(t, order("o1", "o1", 10))

	res, err := uc.Purchase(ctx, PurchaseInput{AdminID: "admin", OrderKey: "o1", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStateFulfilled, res.State)

	o, err := s.Orders().GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Nil(t, o)

	lots, err := s.Lots().List(ctx, repository.LotFilter{OrderID: "o1"})
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.True(t, decimal.NewFromInt(200).Equal(lots[0].TotalCost))
	assert.True(t, decimal.NewFromInt(20).Equal(commissionTotal(t, s)))
}

func TestPurchase_NoPermiteExcederLoPendiente(t *testing.T) {
	ctx := context.Background()
	s, uc := setup(t, order("o1", "o1", 3))

	_, err := uc.Purchase(ctx, PurchaseInput{OrderKey: "o1", Quantity: 4})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Purchase(ctx, PurchaseInput{OrderKey: "o1", Quantity: 0})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	lots, _ := s.Lots().List(ctx, repository.LotFilter{})
	assert.Empty(t, lots)
}

func TestPurchase_PedidoInexistente(t *testing.T) {
	_, uc := setup(t)
	_, err := uc.Purchase(context.Background(), PurchaseInput{OrderKey: "nada", Quantity: 1})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchase_ResuelvePorIDFisico(t *testing.T) {
	ctx := context.Background()
	// Pedido antiguo sin order_id lógico.
	s, uc := setup(t, order("doc-9", "", 5))

	res, err := uc.Purchase(ctx, PurchaseInput{OrderKey: "doc-9", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "doc-9", res.OrderKey)
	assert.Equal(t, "doc-9", res.Lot.OrderID)

	o, _ := s.Orders().GetByID(ctx, "doc-9")
	require.NotNil(t, o)
	assert.Equal(t, 3, o.Quantity)
}

func TestPurchase_FalloAlLimpiarPedidoEsParcialYSinComision(t *testing.T) {
	ctx := context.Background()
	s, uc := setup(t, order("o1", "o1", 10))
	s.FailOn("orders.update_quantity", errors.New("sin red"))

	res, err := uc.Purchase(ctx, PurchaseInput{OrderKey: "o1", Quantity: 4})
	require.NoError(t, err)
	assert.True(t, res.IsPartial())
	assert.Contains(t, res.Warning, "pedido")

	lots, _ := s.Lots().List(ctx, repository.LotFilter{})
	assert.Len(t, lots, 1)
	assert.True(t, commissionTotal(t, s).IsZero())
}

func TestPurchase_FalloDeComisionEsParcial(t *testing.T) {
	ctx := context.Background()
	s, uc := setup(t, order("o1", "o1", 10))
	s.FailOn("agents.get", errors.New("sin red"))

	res, err := uc.Purchase(ctx, PurchaseInput{OrderKey: "o1", Quantity: 10})
	require.NoError(t, err)
	assert.True(t, res.IsPartial())
	assert.Contains(t, res.Warning, "comisión")

	o, _ := s.Orders().GetByID(ctx, "o1")
	assert.Nil(t, o)
}

func TestPurchase_FalloAlCrearLoteNoTocaElPedido(t *testing.T) {
	ctx := context.Background()
	s, uc := setup(t, order("o1", "o1", 10))
	s.FailOn("lots.create", errors.New("sin red"))

	_, err := uc.Purchase(ctx, PurchaseInput{OrderKey: "o1", Quantity: 4})
	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)

	o, _ := s.Orders().GetByID(ctx, "o1")
	assert.Equal(t, 10, o.Quantity)
}

func TestListOrders_NormalizaOrderIDVacio(t *testing.T) {
	_, uc := setup(t, order("b", "b", 1), order("a-doc", "", 1))

	orders, err := uc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "a-doc", orders[0].OrderID)
	assert.Equal(t, "b", orders[1].OrderID)
}

func TestRemoveOrder_SinCoincidenciasEsExito(t *testing.T) {
	_, uc := setup(t)
	out, err := uc.RemoveOrder(context.Background(), "nada")
	require.NoError(t, err)
	assert.Equal(t, "success", string(out.Status))

	_, err = uc.RemoveOrder(context.Background(), " ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderResolver_PrefiereCampoLogico(t *testing.T) {
	ctx := context.Background()
	// "x" es el ID físico de un pedido y el order_id lógico de otro.
	s, _ := setup(t, order("x", "otro", 1), order("y", "x", 1))
	r := NewOrderResolver(s.Orders())

	got, err := r.Resolve(ctx, "x")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "y", got[0].ID)

	require.ErrorIs(t, r.UpdateQuantity(ctx, "nada", 1), domain.ErrNotFound)
}
