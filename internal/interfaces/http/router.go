package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/lotes-api/internal/application/commission"
	"github.com/jhoicas/lotes-api/internal/application/inventory"
	"github.com/jhoicas/lotes-api/internal/application/live"
	"github.com/jhoicas/lotes-api/internal/application/orders"
	"github.com/jhoicas/lotes-api/internal/application/purchasing"
	"github.com/jhoicas/lotes-api/internal/application/sales"
	"github.com/jhoicas/lotes-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC  *inventory.BatchingUseCase
	PurchaseUC   *purchasing.PurchaseUseCase
	OrdersUC     *orders.UseCase
	CommissionUC *commission.UseCase
	SalesUC      *sales.DashboardUseCase

	// Fuentes de cambios para los streams SSE.
	LotsFeed  live.Source
	SalesFeed live.Source

	JWTSecret string
	Log       zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(jwt.RoleAdmin)
	agent := RequireRole(jwt.RoleAgent)
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleAgent)

	// Inventario por lotes (admin)
	invGroup := api.Group("/inventory", admin)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Get("/products", inventoryHandler.ListProducts)
	invGroup.Get("/categories", inventoryHandler.Categories)
	invGroup.Post("/products/remove", inventoryHandler.Remove)
	invGroup.Post("/products/sell", inventoryHandler.Sell)
	invGroup.Put("/products/info", inventoryHandler.UpdateInfo)

	// Compras sobre pedidos (admin)
	purchasingGroup := api.Group("/purchasing", admin)
	purchasingHandler := NewPurchasingHandler(deps.PurchaseUC)
	purchasingGroup.Get("/orders", purchasingHandler.ListOrders)
	purchasingGroup.Post("/orders/:key/purchase", purchasingHandler.Purchase)
	purchasingGroup.Delete("/orders/:key", purchasingHandler.RemoveOrder)

	// Pedidos del vendedor (agent). Las rutas fijas van antes de /:id.
	ordersGroup := api.Group("/orders", agent)
	ordersHandler := NewOrdersHandler(deps.OrdersUC)
	ordersGroup.Post("/", ordersHandler.Create)
	ordersGroup.Get("/", ordersHandler.ListMine)
	ordersGroup.Get("/all", ordersHandler.ListAll)
	ordersGroup.Get("/purchases", ordersHandler.Purchases)
	ordersGroup.Get("/name-available", ordersHandler.NameAvailable)
	ordersGroup.Delete("/:id", ordersHandler.Delete)

	// Comisiones (cualquier rol)
	commissionGroup := api.Group("/commission", anyRole)
	commissionHandler := NewCommissionHandler(deps.CommissionUC, deps.LotsFeed, deps.Log.With().Str("stream", "commission").Logger())
	commissionGroup.Get("/orders/:id", commissionHandler.OrderTotals)
	commissionGroup.Get("/orders/:id/stream", commissionHandler.StreamOrderTotals)
	commissionGroup.Get("/agents/:id", commissionHandler.AgentSummary)

	// Ventas (admin)
	salesGroup := api.Group("/sales", admin)
	salesHandler := NewSalesHandler(deps.SalesUC, deps.SalesFeed, deps.Log.With().Str("stream", "sales").Logger())
	salesGroup.Get("/dashboard", salesHandler.Dashboard)
	salesGroup.Get("/dashboard/stream", salesHandler.StreamDashboard)
	salesGroup.Get("/report.pdf", salesHandler.Report)
}
