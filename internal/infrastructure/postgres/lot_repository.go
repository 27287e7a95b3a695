package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

const lotColumns = `id, order_id, seller_id, admin_id, product_name, category, size, quantity,
		unit_price, total_cost, serial_number, purchased_at, is_admin_purchase`

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

func scanLot(row pgx.Row) (*entity.Lot, error) {
	var l entity.Lot
	err := row.Scan(
		&l.ID, &l.OrderID, &l.SellerID, &l.AdminID, &l.ProductName, &l.Category, &l.Size, &l.Quantity,
		&l.UnitPrice, &l.TotalCost, &l.SerialNumber, &l.PurchasedAt, &l.IsAdminPurchase,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func collectLots(rows pgx.Rows) ([]*entity.Lot, error) {
	defer rows.Close()
	var out []*entity.Lot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Create inserta un lote.
func (r *LotRepo) Create(ctx context.Context, lot *entity.Lot) error {
	query := `INSERT INTO lots (` + lotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		lot.ID, lot.OrderID, lot.SellerID, lot.AdminID, lot.ProductName, lot.Category, lot.Size, lot.Quantity,
		lot.UnitPrice, lot.TotalCost, lot.SerialNumber, lot.PurchasedAt, lot.IsAdminPurchase,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: cantidad de lote inválida", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// List lista lotes con filtros opcionales, más reciente primero.
func (r *LotRepo) List(ctx context.Context, filter repository.LotFilter) ([]*entity.Lot, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if filter.SellerID != "" {
		add("seller_id = $%d", filter.SellerID)
	}
	if filter.ProductName != "" {
		add("product_name = $%d", filter.ProductName)
	}
	if filter.OrderID != "" {
		add("order_id = $%d", filter.OrderID)
	}
	if filter.AdminOnly {
		where = append(where, "is_admin_purchase")
	}

	query := `SELECT ` + lotColumns + ` FROM lots`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY purchased_at DESC, id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	lots, err := collectLots(rows)
	if err != nil {
		return nil, fmt.Errorf("scan lots: %w", err)
	}
	return lots, nil
}

// GetManyForUpdate relee y bloquea los lotes (SELECT FOR UPDATE). Orden por id para que
// transacciones concurrentes adquieran los bloqueos en el mismo orden.
func (r *LotRepo) GetManyForUpdate(ctx context.Context, ids []string) ([]*entity.Lot, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = ANY($1) ORDER BY id FOR UPDATE`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get lots for update: %w", err)
	}
	lots, err := collectLots(rows)
	if err != nil {
		return nil, fmt.Errorf("scan lots: %w", err)
	}
	return lots, nil
}

// UpdateQuantity fija la cantidad de un lote.
func (r *LotRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	tag, err := r.q.Exec(ctx, `UPDATE lots SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: cantidad de lote inválida", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update lot quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
	}
	return nil
}

// Delete elimina un lote agotado.
func (r *LotRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM lots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
	}
	return nil
}

// UpdateInfo actualiza los campos descriptivos de varios lotes en una sola sentencia:
// se aplica a todos o a ninguno.
func (r *LotRepo) UpdateInfo(ctx context.Context, ids []string, info entity.LotInfo) error {
	if len(ids) == 0 {
		return nil
	}
	query := `
		WITH target AS (
			SELECT id FROM lots WHERE id = ANY($1) FOR UPDATE
		), checked AS (
			SELECT count(*) AS n FROM target
		)
		UPDATE lots SET product_name = $2, serial_number = $3, category = $4, size = $5
		WHERE id IN (SELECT id FROM target) AND (SELECT n FROM checked) = $6`
	tag, err := r.q.Exec(ctx, query, ids, info.ProductName, info.SerialNumber, info.Category, info.Size, len(ids))
	if err != nil {
		return fmt.Errorf("update lot info: %w", err)
	}
	if tag.RowsAffected() != int64(len(ids)) {
		return fmt.Errorf("%w: algunos lotes ya no existen", domain.ErrNotFound)
	}
	return nil
}
