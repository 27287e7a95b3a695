package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepository)(nil)

// SaleRepository libro de ventas en memoria.
type SaleRepository view

func (r *SaleRepository) v() view { return view(*r) }

func (r *SaleRepository) Append(ctx context.Context, sale *entity.Sale) error {
	return r.v().set("sales.append", TopicSales, func(d *data) error {
		c := *sale
		d.sales = append(d.sales, &c)
		return nil
	})
}

func (r *SaleRepository) List(ctx context.Context, q repository.SaleQuery) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.v().get("sales.list", func(d *data) error {
		for _, s := range d.sales {
			if q.Category != "" && s.Category != q.Category {
				continue
			}
			if q.ProductName != "" && s.ProductName != q.ProductName {
				continue
			}
			if q.From != nil && s.SoldAt.Before(*q.From) {
				continue
			}
			if q.To != nil && s.SoldAt.After(*q.To) {
				continue
			}
			c := *s
			out = append(out, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SoldAt.After(out[j].SoldAt) })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}
