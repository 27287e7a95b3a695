package purchasing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// TxRunner ejecuta la fase transaccional de una compra: relectura del pedido y creación del lote.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		lotRepo repository.LotRepository,
	) error) error
}

// CommissionAccruer acredita la comisión del vendedor por una compra del admin.
type CommissionAccruer interface {
	Accrue(ctx context.Context, sellerID string, saleAmount decimal.Decimal) (*dto.Outcome, error)
}
