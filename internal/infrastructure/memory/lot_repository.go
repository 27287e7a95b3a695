package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepository)(nil)

// LotRepository implementa repository.LotRepository en memoria.
type LotRepository view

func (r *LotRepository) v() view { return view(*r) }

func (r *LotRepository) Create(ctx context.Context, lot *entity.Lot) error {
	return r.v().set("lots.create", TopicLots, func(d *data) error {
		if _, ok := d.lots[lot.ID]; ok {
			return fmt.Errorf("%w: lote %s", domain.ErrDuplicate, lot.ID)
		}
		c := *lot
		d.lots[lot.ID] = &c
		return nil
	})
}

func (r *LotRepository) List(ctx context.Context, filter repository.LotFilter) ([]*entity.Lot, error) {
	var out []*entity.Lot
	err := r.v().get("lots.list", func(d *data) error {
		for _, l := range d.lots {
			if filter.Category != "" && l.Category != filter.Category {
				continue
			}
			if filter.SellerID != "" && l.SellerID != filter.SellerID {
				continue
			}
			if filter.ProductName != "" && l.ProductName != filter.ProductName {
				continue
			}
			if filter.OrderID != "" && l.OrderID != filter.OrderID {
				continue
			}
			if filter.AdminOnly && !l.IsAdminPurchase {
				continue
			}
			c := *l
			out = append(out, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PurchasedAt.Equal(out[j].PurchasedAt) {
			return out[i].PurchasedAt.After(out[j].PurchasedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetManyForUpdate dentro de una transacción la exclusión ya está garantizada por el store.
func (r *LotRepository) GetManyForUpdate(ctx context.Context, ids []string) ([]*entity.Lot, error) {
	var out []*entity.Lot
	err := r.v().get("lots.get_for_update", func(d *data) error {
		for _, id := range ids {
			if l, ok := d.lots[id]; ok {
				c := *l
				out = append(out, &c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *LotRepository) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	return r.v().set("lots.update_quantity", TopicLots, func(d *data) error {
		l, ok := d.lots[id]
		if !ok {
			return fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
		}
		l.Quantity = quantity
		return nil
	})
}

func (r *LotRepository) Delete(ctx context.Context, id string) error {
	return r.v().set("lots.delete", TopicLots, func(d *data) error {
		if _, ok := d.lots[id]; !ok {
			return fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
		}
		delete(d.lots, id)
		return nil
	})
}

func (r *LotRepository) UpdateInfo(ctx context.Context, ids []string, info entity.LotInfo) error {
	return r.v().set("lots.update_info", TopicLots, func(d *data) error {
		for _, id := range ids {
			if _, ok := d.lots[id]; !ok {
				return fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
			}
		}
		for _, id := range ids {
			l := d.lots[id]
			l.ProductName = info.ProductName
			l.SerialNumber = info.SerialNumber
			l.Category = info.Category
			l.Size = info.Size
		}
		return nil
	})
}
