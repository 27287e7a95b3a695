package orders

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/infrastructure/memory"
)

func req(name string) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{ProductName: name, Category: "Camisas", Size: "M", Fit: "Slim", Quantity: 3, UnitPrice: decimal.NewFromInt(10)}
}

func TestCreate_CombinacionDuplicada(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	uc := NewUseCase(s.Orders(), s.Lots(), zerolog.Nop())

	created, err := uc.Create(ctx, "agent-1", req("Camisa"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, created.OrderID)

	_, err = uc.Create(ctx, "agent-1", req("Camisa"))
	require.ErrorIs(t, err, domain.ErrDuplicate)

	// Otro vendedor puede pedir la misma combinación.
	_, err = uc.Create(ctx, "agent-2", req("Camisa"))
	require.NoError(t, err)
}

func TestCreate_Validaciones(t *testing.T) {
	uc := NewUseCase(memory.NewStore().Orders(), nil, zerolog.Nop())
	bad := req("Camisa")
	bad.Quantity = 0
	_, err := uc.Create(context.Background(), "agent-1", bad)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), "agent-1", req("  "))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_SoloElDueno(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	uc := NewUseCase(s.Orders(), s.Lots(), zerolog.Nop())
	created, err := uc.Create(ctx, "agent-1", req("Camisa"))
	require.NoError(t, err)

	require.ErrorIs(t, uc.Delete(ctx, "agent-2", created.ID), domain.ErrForbidden)
	require.ErrorIs(t, uc.Delete(ctx, "agent-1", "nada"), domain.ErrNotFound)
	require.NoError(t, uc.Delete(ctx, "agent-1", created.ID))

	mine, err := uc.ListMine(ctx, "agent-1")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestProductNameAvailable(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	uc := NewUseCase(s.Orders(), s.Lots(), zerolog.Nop())
	_, err := uc.Create(ctx, "agent-1", req("Camisa"))
	require.NoError(t, err)

	ok, err := uc.ProductNameAvailable(ctx, "agent-1", "Camisa")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = uc.ProductNameAvailable(ctx, "agent-1", "Jean")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPurchases_DelVendedor(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Lots().Create(ctx, &entity.Lot{ID: "l1", SellerID: "agent-1", Quantity: 2}))
	require.NoError(t, s.Lots().Create(ctx, &entity.Lot{ID: "l2", SellerID: "agent-2", Quantity: 2}))
	uc := NewUseCase(s.Orders(), s.Lots(), zerolog.Nop())

	got, err := uc.Purchases(ctx, "agent-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "l1", got[0].ID)
}
