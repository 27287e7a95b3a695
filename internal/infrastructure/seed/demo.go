// Package seed carga datos iniciales en cualquier backend que implemente los puertos de repositorio:
// el conjunto de demostración y la importación de lotes desde CSV.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/inventory"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// Targets repositorios destino de la carga.
type Targets struct {
	Agents repository.AgentRepository
	Orders repository.OrderRepository
	Lots   repository.LotRepository
}

// Demo carga vendedores, pedidos y lotes de ejemplo. El pedido ord-3 no tiene order_id
// lógico para poder probar la resolución por ID físico.
func Demo(ctx context.Context, t Targets, now time.Time) error {
	agents := []*entity.Agent{
		{ID: "agent-1", Name: "Laura Gómez", Email: "laura@example.com", TotalCommission: decimal.Zero, CreatedAt: now, UpdatedAt: now},
		{ID: "agent-2", Name: "Andrés Ruiz", Email: "andres@example.com", TotalCommission: decimal.Zero, CreatedAt: now, UpdatedAt: now},
	}
	for _, a := range agents {
		if err := t.Agents.Create(ctx, a); err != nil {
			return fmt.Errorf("seed agente %s: %w", a.ID, err)
		}
	}

	orders := []*entity.Order{
		{ID: "ord-1", OrderID: "ord-1", SellerID: "agent-1", ProductName: "Camisa Oxford", Category: "Camisas", Size: "M", Fit: "Slim", Quantity: 20, UnitPrice: decimal.NewFromInt(45000), CreatedAt: now.Add(-72 * time.Hour)},
		{ID: "ord-2", OrderID: "ord-2", SellerID: "agent-1", ProductName: "Jean Clásico", Category: "Pantalones", Size: "32", Fit: "Regular", Quantity: 10, UnitPrice: decimal.NewFromInt(89000), CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "ord-3", OrderID: "", SellerID: "agent-2", ProductName: "Chaqueta Denim", Category: "Chaquetas", Size: "L", Fit: "Oversize", Quantity: 5, UnitPrice: decimal.NewFromInt(120000), CreatedAt: now.Add(-24 * time.Hour)},
	}
	for _, o := range orders {
		if err := t.Orders.Create(ctx, o); err != nil {
			return fmt.Errorf("seed pedido %s: %w", o.ID, err)
		}
	}

	lots := []*entity.Lot{
		demoLot("lot-1", "ord-1", "agent-1", "Camisa Oxford", "Camisas", "M", 8, 45000, now.Add(-60*time.Hour)),
		demoLot("lot-2", "ord-1", "agent-1", "Camisa Oxford", "Camisas", "M", 4, 45000, now.Add(-36*time.Hour)),
		demoLot("lot-3", "ord-2", "agent-1", "Jean Clásico", "Pantalones", "32", 6, 89000, now.Add(-30*time.Hour)),
	}
	for _, l := range lots {
		if err := t.Lots.Create(ctx, l); err != nil {
			return fmt.Errorf("seed lote %s: %w", l.ID, err)
		}
	}
	return nil
}

func demoLot(id, orderID, sellerID, name, category, size string, qty int, price int64, at time.Time) *entity.Lot {
	unit := decimal.NewFromInt(price)
	return &entity.Lot{
		ID:              id,
		OrderID:         orderID,
		SellerID:        sellerID,
		AdminID:         "admin",
		ProductName:     name,
		Category:        category,
		Size:            size,
		Quantity:        qty,
		UnitPrice:       unit,
		TotalCost:       unit.Mul(decimal.NewFromInt(int64(qty))),
		SerialNumber:    inventory.SerialNumberWithSuffix(category, orderID, id),
		PurchasedAt:     at,
		IsAdminPurchase: true,
	}
}
