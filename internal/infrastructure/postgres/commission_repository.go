package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

var _ repository.CommissionRepository = (*CommissionRepo)(nil)

// CommissionRepo registros de comisión sobre PostgreSQL.
type CommissionRepo struct {
	q Querier
}

// NewCommissionRepository construye el adaptador.
func NewCommissionRepository(q Querier) *CommissionRepo {
	return &CommissionRepo{q: q}
}

func (r *CommissionRepo) Append(ctx context.Context, rec *entity.CommissionRecord) error {
	query := `
		INSERT INTO commission_records (id, seller_id, sale_amount, commission_amount, commission_rate, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.SellerID, rec.SaleAmount, rec.CommissionAmount, rec.CommissionRate, rec.Type, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert commission record: %w", err)
	}
	return nil
}

func (r *CommissionRepo) ListBySeller(ctx context.Context, sellerID string) ([]*entity.CommissionRecord, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, seller_id, sale_amount, commission_amount, commission_rate, type, created_at
		FROM commission_records WHERE seller_id = $1 ORDER BY created_at DESC`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list commission records: %w", err)
	}
	defer rows.Close()
	var out []*entity.CommissionRecord
	for rows.Next() {
		var c entity.CommissionRecord
		if err := rows.Scan(&c.ID, &c.SellerID, &c.SaleAmount, &c.CommissionAmount, &c.CommissionRate, &c.Type, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan commission record: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
