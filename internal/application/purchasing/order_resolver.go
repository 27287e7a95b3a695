package purchasing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// OrderResolver resuelve un pedido por clave doble: primero el campo lógico order_id y,
// si no hay coincidencias, el identificador físico del documento. Existen pedidos antiguos
// cuyo order_id no coincide con el ID (o está vacío), por eso toda operación sobre pedidos pasa por aquí.
type OrderResolver struct {
	repo repository.OrderRepository
}

// NewOrderResolver construye el resolvedor.
func NewOrderResolver(repo repository.OrderRepository) *OrderResolver {
	return &OrderResolver{repo: repo}
}

// Resolve devuelve los pedidos que corresponden a key (vacío si ninguno).
func (r *OrderResolver) Resolve(ctx context.Context, key string) ([]*entity.Order, error) {
	return resolveOrders(ctx, r.repo, key)
}

// Delete borra todos los pedidos que correspondan a key. Que no haya ninguno no es error.
func (r *OrderResolver) Delete(ctx context.Context, key string) (int, error) {
	orders, err := resolveOrders(ctx, r.repo, key)
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		return 0, nil
	}
	if err := r.repo.Delete(ctx, ids(orders)); err != nil {
		return 0, domain.NewStoreError("eliminar pedido", err)
	}
	return len(orders), nil
}

// UpdateQuantity fija la cantidad pendiente de todos los pedidos que correspondan a key.
func (r *OrderResolver) UpdateQuantity(ctx context.Context, key string, quantity int) error {
	orders, err := resolveOrders(ctx, r.repo, key)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, key)
	}
	if err := r.repo.UpdateQuantity(ctx, ids(orders), quantity); err != nil {
		return domain.NewStoreError("actualizar pedido", err)
	}
	return nil
}

func resolveOrders(ctx context.Context, repo repository.OrderRepository, key string) ([]*entity.Order, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: id de pedido vacío", domain.ErrInvalidInput)
	}
	byField, err := repo.ListByOrderID(ctx, key)
	if err != nil {
		return nil, domain.NewStoreError("buscar pedido", err)
	}
	if len(byField) > 0 {
		return byField, nil
	}
	doc, err := repo.GetByID(ctx, key)
	if err != nil {
		return nil, domain.NewStoreError("buscar pedido", err)
	}
	if doc == nil {
		return nil, nil
	}
	return []*entity.Order{doc}, nil
}

func ids(orders []*entity.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}
