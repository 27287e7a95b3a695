//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/lotes-api/internal/application/commission"
	"github.com/jhoicas/lotes-api/internal/application/inventory"
	"github.com/jhoicas/lotes-api/internal/application/purchasing"
	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
	"github.com/jhoicas/lotes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/lotes-api/internal/infrastructure/seed"
	"github.com/jhoicas/lotes-api/pkg/config"
)

// setupDB levanta PostgreSQL en un contenedor, aplica las migraciones y devuelve el pool.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("lotes_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := postgres.NewMigrator(dsn, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func seedDemo(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	require.NoError(t, seed.Demo(context.Background(), seed.Targets{
		Agents: postgres.NewAgentRepository(pool),
		Orders: postgres.NewOrderRepository(pool),
		Lots:   postgres.NewLotRepository(pool),
	}, time.Now()))
}

func TestPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("requiere Docker")
	}
	pool := setupDB(t)
	seedDemo(t, pool)
	ctx := context.Background()

	t.Run("lotes ordenados por compra más reciente", func(t *testing.T) {
		lots, err := postgres.NewLotRepository(pool).List(ctx, repository.LotFilter{ProductName: "Camisa Oxford"})
		require.NoError(t, err)
		require.Len(t, lots, 2)
		assert.Equal(t, "lot-2", lots[0].ID)
		assert.False(t, lots[0].PurchasedAt.Before(lots[1].PurchasedAt))
		assert.True(t, decimal.NewFromInt(45000).Equal(lots[0].UnitPrice))
	})

	t.Run("rollback no deja cambios", func(t *testing.T) {
		runner := postgres.NewTxRunner(pool)
		boom := errors.New("boom")
		err := runner.Run(ctx, func(lots repository.LotRepository, _ repository.SaleRepository) error {
			if err := lots.UpdateQuantity(ctx, "lot-3", 1); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		lots, err := postgres.NewLotRepository(pool).GetManyForUpdate(ctx, []string{"lot-3"})
		require.NoError(t, err)
		require.Len(t, lots, 1)
		assert.Equal(t, 6, lots[0].Quantity)
	})

	t.Run("venta consume lotes y registra en el libro", func(t *testing.T) {
		uc := inventory.NewBatchingUseCase(postgres.NewTxRunner(pool), postgres.NewLotRepository(pool), zerolog.Nop())
		snap, err := uc.Fetch(ctx, "")
		require.NoError(t, err)

		out, err := uc.Sell(ctx, snap, inventory.SellInput{
			ProductName: "Camisa Oxford",
			Quantity:    5,
			UnitPrice:   decimal.NewFromInt(60000),
			BuyerName:   "Tienda Norte",
		})
		require.NoError(t, err)
		require.Len(t, out.LotsTouched, 2)

		lots, err := postgres.NewLotRepository(pool).List(ctx, repository.LotFilter{ProductName: "Camisa Oxford"})
		require.NoError(t, err)
		require.Len(t, lots, 1)
		assert.Equal(t, "lot-1", lots[0].ID)
		assert.Equal(t, 7, lots[0].Quantity)

		sales, err := postgres.NewSaleRepository(pool).List(ctx, repository.SaleQuery{})
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, "Tienda Norte", sales[0].BuyerName)
		assert.True(t, decimal.NewFromInt(300000).Equal(sales[0].Total))
	})

	t.Run("actualización de info todo o nada", func(t *testing.T) {
		repo := postgres.NewLotRepository(pool)
		err := repo.UpdateInfo(ctx, []string{"lot-3", "no-existe"}, entity.LotInfo{ProductName: "Jean Nuevo"})
		require.ErrorIs(t, err, domain.ErrNotFound)

		lots, err := repo.List(ctx, repository.LotFilter{ProductName: "Jean Clásico"})
		require.NoError(t, err)
		assert.Len(t, lots, 1)
	})

	t.Run("pedido duplicado", func(t *testing.T) {
		orders := postgres.NewOrderRepository(pool)
		existing, err := orders.GetByID(ctx, "ord-1")
		require.NoError(t, err)
		require.NotNil(t, existing)

		dup := *existing
		dup.ID = "ord-dup"
		err = orders.Create(ctx, &dup)
		require.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("cantidad de pedido inexistente", func(t *testing.T) {
		err := postgres.NewOrderRepository(pool).UpdateQuantity(ctx, []string{"no-existe"}, 1)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("compra crea lote y acredita comisión", func(t *testing.T) {
		commissionUC := commission.NewUseCase(
			postgres.NewAgentRepository(pool),
			postgres.NewCommissionRepository(pool),
			postgres.NewLotRepository(pool),
			zerolog.Nop(),
		)
		uc := purchasing.NewPurchaseUseCase(postgres.NewTxRunner(pool), postgres.NewOrderRepository(pool), commissionUC, zerolog.Nop())

		out, err := uc.Purchase(ctx, purchasing.PurchaseInput{OrderKey: "ord-3", Quantity: 2, AdminID: "admin"})
		require.NoError(t, err)
		assert.Equal(t, 3, out.RemainingQuantity)

		records, err := postgres.NewCommissionRepository(pool).ListBySeller(ctx, "agent-2")
		require.NoError(t, err)
		assert.Len(t, records, 1)

		agent, err := postgres.NewAgentRepository(pool).GetByID(ctx, "agent-2")
		require.NoError(t, err)
		require.NotNil(t, agent)
		assert.True(t, agent.TotalCommission.IsPositive())
	})

	t.Run("aviso de cambios en lotes", func(t *testing.T) {
		listenCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		feed := postgres.NewNotifier(pool, zerolog.Nop()).Feed(postgres.ChannelLots)
		changes, err := feed.Changes(listenCtx)
		require.NoError(t, err)

		require.NoError(t, postgres.NewLotRepository(pool).UpdateQuantity(ctx, "lot-3", 5))

		select {
		case _, ok := <-changes:
			assert.True(t, ok)
		case <-listenCtx.Done():
			t.Fatal("no llegó el aviso de cambios")
		}
	})
}
