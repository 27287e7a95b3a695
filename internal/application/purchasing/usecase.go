package purchasing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/inventory"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// PurchaseUseCase flujo de compra del admin: pedido → lote → limpieza del pedido → comisión.
type PurchaseUseCase struct {
	txRunner   TxRunner
	orderRepo  repository.OrderRepository
	orders     *OrderResolver
	commission CommissionAccruer
	log        zerolog.Logger
	now        func() time.Time
	serial     func(category, orderID string) string
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	commission CommissionAccruer,
	log zerolog.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:   txRunner,
		orderRepo:  orderRepo,
		orders:     NewOrderResolver(orderRepo),
		commission: commission,
		log:        log.With().Str("component", "purchasing").Logger(),
		now:        time.Now,
		serial:     inventory.GenerateSerialNumber,
	}
}

// PurchaseInput compra de quantity unidades del pedido identificado por OrderKey.
type PurchaseInput struct {
	AdminID  string
	OrderKey string
	Quantity int
}

// ListOrders pedidos abiertos de todos los vendedores, con order_id vacío normalizado al ID físico.
func (uc *PurchaseUseCase) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := uc.orderRepo.List(ctx, "")
	if err != nil {
		return nil, domain.NewStoreError("listar pedidos", err)
	}
	for _, o := range orders {
		o.OrderID = o.Key()
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].OrderID < orders[j].OrderID })
	return orders, nil
}

// Purchase crea el lote dentro de una transacción (con el pedido releído y validado en vivo)
// y luego, fuera de ella, actualiza o elimina el pedido y acredita la comisión.
// Un fallo de esos pasos posteriores no revierte el lote: se informa como éxito parcial.
func (uc *PurchaseUseCase) Purchase(ctx context.Context, in PurchaseInput) (*dto.PurchaseResponse, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que 0", domain.ErrInvalidInput)
	}

	var (
		order *entity.Order
		lot   *entity.Lot
	)
	err := uc.txRunner.RunPurchase(ctx, func(orderRepo repository.OrderRepository, lotRepo repository.LotRepository) error {
		matches, err := resolveOrders(ctx, orderRepo, in.OrderKey)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, in.OrderKey)
		}
		order = matches[0]
		if in.Quantity > order.Quantity {
			return fmt.Errorf("%w: no se puede comprar más de la cantidad pendiente (%d)", domain.ErrInvalidInput, order.Quantity)
		}

		key := order.Key()
		lot = &entity.Lot{
			ID:              uuid.NewString(),
			OrderID:         key,
			SellerID:        order.SellerID,
			AdminID:         in.AdminID,
			ProductName:     order.ProductName,
			Category:        order.Category,
			Size:            order.Size,
			Quantity:        in.Quantity,
			UnitPrice:       order.UnitPrice,
			TotalCost:       order.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
			SerialNumber:    uc.serial(order.Category, key),
			PurchasedAt:     uc.now(),
			IsAdminPurchase: true,
		}
		return lotRepo.Create(ctx, lot)
	})
	if err != nil {
		return nil, domain.NewStoreError("crear compra", err)
	}

	key := order.Key()
	remaining := order.Quantity - in.Quantity
	state := entity.StateAfterPurchase(order.Quantity, in.Quantity)
	resp := &dto.PurchaseResponse{
		OrderKey:          key,
		State:             state,
		RemainingQuantity: remaining,
		Lot:               dto.NewLotResponse(lot),
	}
	msg := fmt.Sprintf("compra de %d unidades de %s registrada", in.Quantity, order.ProductName)
	logEvt := uc.log.With().Str("order", key).Str("lot", lot.ID).Int("quantity", in.Quantity).Logger()

	var cleanupErr error
	if state == entity.OrderStateFulfilled {
		_, cleanupErr = uc.orders.Delete(ctx, key)
	} else {
		cleanupErr = uc.orders.UpdateQuantity(ctx, key, remaining)
	}
	if cleanupErr != nil {
		logEvt.Warn().Err(cleanupErr).Msg("compra creada pero el pedido no se actualizó")
		resp.Outcome = dto.Partial(msg, "compra creada pero no se pudo actualizar el pedido: "+cleanupErr.Error())
		return resp, nil
	}

	out, err := uc.commission.Accrue(ctx, order.SellerID, lot.TotalCost)
	switch {
	case err != nil:
		logEvt.Warn().Err(err).Msg("compra completada pero la comisión falló")
		resp.Outcome = dto.Partial(msg, "compra completada pero falló la actualización de la comisión: "+err.Error())
	case out != nil && out.IsPartial():
		resp.Outcome = dto.Partial(msg, out.Warning)
	default:
		resp.Outcome = dto.Success(msg)
	}
	logEvt.Info().Str("state", string(state)).Str("total", lot.TotalCost.StringFixed(2)).Msg("compra registrada")
	return resp, nil
}

// RemoveOrder elimina el pedido (resolución por clave doble). Sin coincidencias también es éxito.
func (uc *PurchaseUseCase) RemoveOrder(ctx context.Context, key string) (*dto.Outcome, error) {
	n, err := uc.orders.Delete(ctx, key)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order", key).Int("deleted", n).Msg("pedido eliminado")
	out := dto.Success("pedido eliminado")
	return &out, nil
}
