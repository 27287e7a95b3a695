package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/lotes-api/internal/application/commission"
	"github.com/jhoicas/lotes-api/internal/application/inventory"
	"github.com/jhoicas/lotes-api/internal/application/live"
	"github.com/jhoicas/lotes-api/internal/application/orders"
	"github.com/jhoicas/lotes-api/internal/application/purchasing"
	"github.com/jhoicas/lotes-api/internal/application/sales"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
	"github.com/jhoicas/lotes-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/lotes-api/internal/infrastructure/pdf"
	"github.com/jhoicas/lotes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/lotes-api/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/lotes-api/internal/interfaces/http"
	"github.com/jhoicas/lotes-api/pkg/config"
	"github.com/jhoicas/lotes-api/pkg/logger"
)

// backend adaptadores de datos elegidos por STORE_DRIVER.
type backend struct {
	txRunner interface {
		inventory.TxRunner
		purchasing.TxRunner
	}
	lots        repository.LotRepository
	orders      repository.OrderRepository
	sales       repository.SaleRepository
	commissions repository.CommissionRepository
	agents      repository.AgentRepository
	lotsFeed    live.Source
	salesFeed   live.Source
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var be *backend
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		be, err = memoryBackend(ctx)
	default:
		be, err = postgresBackend(ctx, cfg, log)
	}
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("inicializar almacenamiento")
	}
	defer be.close()

	commissionUC := commission.NewUseCase(be.agents, be.commissions, be.lots, log.Zerolog())
	inventoryUC := inventory.NewBatchingUseCase(be.txRunner, be.lots, log.Zerolog())
	purchaseUC := purchasing.NewPurchaseUseCase(be.txRunner, be.orders, commissionUC, log.Zerolog())
	ordersUC := orders.NewUseCase(be.orders, be.lots, log.Zerolog())
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	salesUC := sales.NewDashboardUseCase(be.sales, pdfGenerator, cfg.Sales.RecentLimit, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		// Sin WriteTimeout: los streams SSE mantienen la respuesta abierta.
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Swagger.FilePath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.FilePath,
			Path:     "docs",
			Title:    "Lotes API",
		}))
	} else {
		log.Warn().Str("file", cfg.Swagger.FilePath).Msg("documento swagger no encontrado; /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC:  inventoryUC,
		PurchaseUC:   purchaseUC,
		OrdersUC:     ordersUC,
		CommissionUC: commissionUC,
		SalesUC:      salesUC,
		LotsFeed:     be.lotsFeed,
		SalesFeed:    be.salesFeed,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func memoryBackend(ctx context.Context) (*backend, error) {
	s := memory.NewStore()
	if err := seed.Demo(ctx, seed.Targets{Agents: s.Agents(), Orders: s.Orders(), Lots: s.Lots()}, time.Now()); err != nil {
		return nil, err
	}
	return &backend{
		txRunner:    s,
		lots:        s.Lots(),
		orders:      s.Orders(),
		sales:       s.Sales(),
		commissions: s.Commissions(),
		agents:      s.Agents(),
		lotsFeed:    s.Feed(memory.TopicLots),
		salesFeed:   s.Feed(memory.TopicSales),
		close:       func() {},
	}, nil
}

func postgresBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.DB.MigrateOnStart {
		m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Zerolog())
		if err != nil {
			return nil, err
		}
		err = m.Up()
		_ = m.Close()
		if err != nil {
			return nil, err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	notifier := postgres.NewNotifier(pool, log.Zerolog())
	return &backend{
		txRunner:    postgres.NewTxRunner(pool),
		lots:        postgres.NewLotRepository(pool),
		orders:      postgres.NewOrderRepository(pool),
		sales:       postgres.NewSaleRepository(pool),
		commissions: postgres.NewCommissionRepository(pool),
		agents:      postgres.NewAgentRepository(pool),
		lotsFeed:    notifier.Feed(postgres.ChannelLots),
		salesFeed:   notifier.Feed(postgres.ChannelSales),
		close:       pool.Close,
	}, nil
}
