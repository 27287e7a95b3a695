package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// UseCase gestión de pedidos del vendedor.
type UseCase struct {
	orders repository.OrderRepository
	lots   repository.LotRepository
	log    zerolog.Logger
	now    func() time.Time
}

// NewUseCase construye el caso de uso de pedidos.
func NewUseCase(orders repository.OrderRepository, lots repository.LotRepository, log zerolog.Logger) *UseCase {
	return &UseCase{
		orders: orders,
		lots:   lots,
		log:    log.With().Str("component", "orders").Logger(),
		now:    time.Now,
	}
}

// Create registra un pedido nuevo. La combinación vendedor+producto+categoría+talla+fit es única;
// la comprobación previa da un error legible y el store la garantiza ante carreras.
func (uc *UseCase) Create(ctx context.Context, sellerID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	in.ProductName = strings.TrimSpace(in.ProductName)
	if sellerID == "" || in.ProductName == "" {
		return nil, fmt.Errorf("%w: vendedor y producto son obligatorios", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que 0", domain.ErrInvalidInput)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}

	exists, err := uc.orders.ExistsCombination(ctx, sellerID, in.ProductName, in.Category, in.Size, in.Fit)
	if err != nil {
		return nil, domain.NewStoreError("validar pedido", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: ya existe un pedido de %s con la misma categoría, talla y fit", domain.ErrDuplicate, in.ProductName)
	}

	id := uuid.NewString()
	order := &entity.Order{
		ID:          id,
		OrderID:     id,
		SellerID:    sellerID,
		ProductName: in.ProductName,
		Category:    strings.TrimSpace(in.Category),
		Size:        strings.TrimSpace(in.Size),
		Fit:         strings.TrimSpace(in.Fit),
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		CreatedAt:   uc.now(),
	}
	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, domain.NewStoreError("crear pedido", err)
	}
	uc.log.Info().Str("seller", sellerID).Str("order", id).Str("product", order.ProductName).Msg("pedido creado")
	resp := dto.NewOrderResponse(order)
	return &resp, nil
}

// ListMine pedidos del vendedor.
func (uc *UseCase) ListMine(ctx context.Context, sellerID string) ([]dto.OrderResponse, error) {
	list, err := uc.orders.List(ctx, sellerID)
	if err != nil {
		return nil, domain.NewStoreError("listar pedidos", err)
	}
	return dto.NewOrderResponses(list), nil
}

// ListAll pedidos de todos los vendedores.
func (uc *UseCase) ListAll(ctx context.Context) ([]dto.OrderResponse, error) {
	return uc.ListMine(ctx, "")
}

// Delete elimina un pedido propio por su ID físico.
func (uc *UseCase) Delete(ctx context.Context, sellerID, id string) error {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return domain.NewStoreError("leer pedido", err)
	}
	if order == nil {
		return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	if order.SellerID != sellerID {
		return domain.ErrForbidden
	}
	if err := uc.orders.Delete(ctx, []string{id}); err != nil {
		return domain.NewStoreError("eliminar pedido", err)
	}
	uc.log.Info().Str("seller", sellerID).Str("order", id).Msg("pedido eliminado por el vendedor")
	return nil
}

// Purchases compras (lotes) hechas a nombre del vendedor.
func (uc *UseCase) Purchases(ctx context.Context, sellerID string) ([]dto.LotResponse, error) {
	lots, err := uc.lots.List(ctx, repository.LotFilter{SellerID: sellerID})
	if err != nil {
		return nil, domain.NewStoreError("listar compras", err)
	}
	return dto.NewLotResponses(lots), nil
}

// ProductNameAvailable indica si el vendedor aún no tiene un pedido con ese nombre de producto.
func (uc *UseCase) ProductNameAvailable(ctx context.Context, sellerID, productName string) (bool, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return false, fmt.Errorf("%w: nombre de producto vacío", domain.ErrInvalidInput)
	}
	exists, err := uc.orders.ExistsProductName(ctx, sellerID, productName)
	if err != nil {
		return false, domain.NewStoreError("validar nombre", err)
	}
	return !exists, nil
}
