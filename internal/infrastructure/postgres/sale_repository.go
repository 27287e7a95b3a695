package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo libro de ventas sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Append agrega una venta al libro.
func (r *SaleRepo) Append(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, product_name, category, unit_price, quantity, buyer_name, total, sold_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.ProductName, sale.Category, sale.UnitPrice, sale.Quantity, sale.BuyerName, sale.Total, sale.SoldAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// List ventas filtradas, más reciente primero.
func (r *SaleRepo) List(ctx context.Context, q repository.SaleQuery) ([]*entity.Sale, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if q.Category != "" {
		add("category = $%d", q.Category)
	}
	if q.ProductName != "" {
		add("product_name = $%d", q.ProductName)
	}
	if q.From != nil {
		add("sold_at >= $%d", *q.From)
	}
	if q.To != nil {
		add("sold_at <= $%d", *q.To)
	}

	query := `SELECT id, product_name, category, unit_price, quantity, buyer_name, total, sold_at FROM sales`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY sold_at DESC, id"
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var out []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ProductName, &s.Category, &s.UnitPrice, &s.Quantity, &s.BuyerName, &s.Total, &s.SoldAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
