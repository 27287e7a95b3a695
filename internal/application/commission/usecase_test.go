package commission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/infrastructure/memory"
)

func setup(t *testing.T) (*memory.Store, *UseCase) {
	t.Helper()
	s := memory.NewStore()
	require.NoError(t, s.Agents().Create(context.Background(), &entity.Agent{ID: "agent-1", Name: "Laura", TotalCommission: decimal.NewFromInt(5)}))
	uc := NewUseCase(s.Agents(), s.Commissions(), s.Lots(), zerolog.Nop())
	uc.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	return s, uc
}

func TestAccrue_SumaDiezPorCientoYRegistra(t *testing.T) {
	ctx := context.Background()
	s, uc := setup(t)

	out, err := uc.Accrue(ctx, "agent-1", decimal.NewFromInt(200))
	require.NoError(t, err)
	assert.Equal(t, "success", string(out.Status))

	agent, err := s.Agents().GetByID(ctx, "agent-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(agent.TotalCommission), agent.TotalCommission.String())

	records, err := s.Commissions().ListBySeller(ctx, "agent-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, decimal.NewFromInt(20).Equal(records[0].CommissionAmount))
	assert.True(t, decimal.NewFromInt(200).Equal(records[0].SaleAmount))
	assert.Equal(t, "0.1", records[0].CommissionRate.String())
	assert.Equal(t, entity.CommissionTypeAdminPurchase, records[0].Type)
}

func TestAccrue_VendedorInexistente(t *testing.T) {
	_, uc := setup(t)
	_, err := uc.Accrue(context.Background(), "nadie", decimal.NewFromInt(10))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccrue_FalloDelRegistroEsParcial(t *testing.T) {
	ctx := context.Background()
	s, uc := setup(t)
	s.FailOn("commissions.append", errors.New("permiso denegado"))

	out, err := uc.Accrue(ctx, "agent-1", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, out.IsPartial())
	assert.NotEmpty(t, out.Warning)

	agent, _ := s.Agents().GetByID(ctx, "agent-1")
	assert.True(t, decimal.NewFromInt(15).Equal(agent.TotalCommission))
}

func TestAccrue_FalloAlActualizarTotal(t *testing.T) {
	ctx := context.Background()
	s, uc := setup(t)
	s.FailOn("agents.update_commission", errors.New("sin red"))

	_, err := uc.Accrue(ctx, "agent-1", decimal.NewFromInt(100))
	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)

	records, _ := s.Commissions().ListBySeller(ctx, "agent-1")
	assert.Empty(t, records)
}

func TestAccrue_EntradaInvalida(t *testing.T) {
	_, uc := setup(t)
	_, err := uc.Accrue(context.Background(), "", decimal.NewFromInt(10))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Accrue(context.Background(), "agent-1", decimal.NewFromInt(-1))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderTotals_SoloComprasAdmin(t *testing.T) {
	ctx := context.Background()
	s, uc := setup(t)
	require.NoError(t, s.Lots().Create(ctx, &entity.Lot{ID: "l1", OrderID: "o1", Quantity: 2, TotalCost: decimal.NewFromInt(150), IsAdminPurchase: true}))
	require.NoError(t, s.Lots().Create(ctx, &entity.Lot{ID: "l2", OrderID: "o1", Quantity: 1, TotalCost: decimal.NewFromInt(50), IsAdminPurchase: true}))
	require.NoError(t, s.Lots().Create(ctx, &entity.Lot{ID: "l3", OrderID: "o2", Quantity: 1, TotalCost: decimal.NewFromInt(999), IsAdminPurchase: true}))

	got, err := uc.OrderTotals(ctx, "o1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(got.TotalSold))
	assert.True(t, decimal.NewFromInt(20).Equal(got.Commission))
	assert.Equal(t, 2, got.PurchaseCount)
	assert.False(t, got.UsedFallback)
}

func TestAgentSummary(t *testing.T) {
	ctx := context.Background()
	_, uc := setup(t)
	_, err := uc.Accrue(ctx, "agent-1", decimal.NewFromInt(100))
	require.NoError(t, err)

	sum, err := uc.AgentSummary(ctx, "agent-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(15).Equal(sum.TotalCommission))
	assert.Len(t, sum.Records, 1)

	_, err = uc.AgentSummary(ctx, "nadie")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
