package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

var _ repository.CommissionRepository = (*CommissionRepository)(nil)

// CommissionRepository registros de comisión en memoria.
type CommissionRepository view

func (r *CommissionRepository) v() view { return view(*r) }

func (r *CommissionRepository) Append(ctx context.Context, record *entity.CommissionRecord) error {
	return r.v().set("commissions.append", TopicCommissions, func(d *data) error {
		c := *record
		d.commissions = append(d.commissions, &c)
		return nil
	})
}

func (r *CommissionRepository) ListBySeller(ctx context.Context, sellerID string) ([]*entity.CommissionRecord, error) {
	var out []*entity.CommissionRecord
	err := r.v().get("commissions.list", func(d *data) error {
		for _, rec := range d.commissions {
			if rec.SellerID == sellerID {
				c := *rec
				out = append(out, &c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
