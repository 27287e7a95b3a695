package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepository)(nil)

// OrderRepository implementa repository.OrderRepository en memoria.
type OrderRepository view

func (r *OrderRepository) v() view { return view(*r) }

func sameCombination(o *entity.Order, sellerID, productName, category, size, fit string) bool {
	return o.SellerID == sellerID && o.ProductName == productName &&
		o.Category == category && o.Size == size && o.Fit == fit
}

func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.v().set("orders.create", TopicOrders, func(d *data) error {
		if _, ok := d.orders[order.ID]; ok {
			return fmt.Errorf("%w: pedido %s", domain.ErrDuplicate, order.ID)
		}
		for _, o := range d.orders {
			if sameCombination(o, order.SellerID, order.ProductName, order.Category, order.Size, order.Fit) {
				return fmt.Errorf("%w: ya existe un pedido con esa combinación", domain.ErrDuplicate)
			}
		}
		c := *order
		d.orders[order.ID] = &c
		return nil
	})
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.v().get("orders.get", func(d *data) error {
		if o, ok := d.orders[id]; ok {
			c := *o
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *OrderRepository) ListByOrderID(ctx context.Context, orderID string) ([]*entity.Order, error) {
	return r.collect("orders.list_by_order_id", func(o *entity.Order) bool { return o.OrderID == orderID })
}

func (r *OrderRepository) List(ctx context.Context, sellerID string) ([]*entity.Order, error) {
	return r.collect("orders.list", func(o *entity.Order) bool { return sellerID == "" || o.SellerID == sellerID })
}

func (r *OrderRepository) collect(op string, keep func(o *entity.Order) bool) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.v().get(op, func(d *data) error {
		for _, o := range d.orders {
			if keep(o) {
				c := *o
				out = append(out, &c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderID != out[j].OrderID {
			return out[i].OrderID < out[j].OrderID
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *OrderRepository) ExistsCombination(ctx context.Context, sellerID, productName, category, size, fit string) (bool, error) {
	found := false
	err := r.v().get("orders.exists_combination", func(d *data) error {
		for _, o := range d.orders {
			if sameCombination(o, sellerID, productName, category, size, fit) {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}

func (r *OrderRepository) ExistsProductName(ctx context.Context, sellerID, productName string) (bool, error) {
	found := false
	err := r.v().get("orders.exists_product_name", func(d *data) error {
		for _, o := range d.orders {
			if o.SellerID == sellerID && o.ProductName == productName {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}

func (r *OrderRepository) UpdateQuantity(ctx context.Context, ids []string, quantity int) error {
	return r.v().set("orders.update_quantity", TopicOrders, func(d *data) error {
		for _, id := range ids {
			if _, ok := d.orders[id]; !ok {
				return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
			}
		}
		for _, id := range ids {
			d.orders[id].Quantity = quantity
		}
		return nil
	})
}

// Delete los IDs inexistentes se ignoran.
func (r *OrderRepository) Delete(ctx context.Context, ids []string) error {
	return r.v().set("orders.delete", TopicOrders, func(d *data) error {
		for _, id := range ids {
			delete(d.orders, id)
		}
		return nil
	})
}
