package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, order_id, seller_id, product_name, category, size, fit, quantity, unit_price, created_at`

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.OrderID, &o.SellerID, &o.ProductName, &o.Category, &o.Size, &o.Fit,
		&o.Quantity, &o.UnitPrice, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var out []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Create inserta un pedido. La combinación vendedor/producto/categoría/talla/fit es única (índice).
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	query := `INSERT INTO orders (` + orderColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.OrderID, order.SellerID, order.ProductName, order.Category, order.Size, order.Fit,
		order.Quantity, order.UnitPrice, order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un pedido con esa combinación", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID físico.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// ListByOrderID pedidos cuyo campo lógico order_id coincide.
func (r *OrderRepo) ListByOrderID(ctx context.Context, orderID string) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1 ORDER BY id`, orderID)
}

// List pedidos de un vendedor (o todos si sellerID está vacío) ordenados por order_id.
func (r *OrderRepo) List(ctx context.Context, sellerID string) ([]*entity.Order, error) {
	if sellerID == "" {
		return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY order_id, id`)
	}
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE seller_id = $1 ORDER BY order_id, id`, sellerID)
}

// ExistsCombination indica si el vendedor ya tiene un pedido con la combinación dada.
func (r *OrderRepo) ExistsCombination(ctx context.Context, sellerID, productName, category, size, fit string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM orders
			WHERE seller_id = $1 AND product_name = $2 AND category = $3 AND size = $4 AND fit = $5
		)`, sellerID, productName, category, size, fit).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists order combination: %w", err)
	}
	return exists, nil
}

// ExistsProductName indica si el vendedor ya tiene un pedido con ese nombre de producto.
func (r *OrderRepo) ExistsProductName(ctx context.Context, sellerID, productName string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE seller_id = $1 AND product_name = $2)`,
		sellerID, productName).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists order product name: %w", err)
	}
	return exists, nil
}

// UpdateQuantity escritura en lote: un UPDATE por pedido en un único pgx.Batch
// (fuera de una tx explícita pgx lo ejecuta en una transacción implícita).
// Los pedidos borrados entre la resolución y el batch se informan como ErrNotFound.
func (r *OrderRepo) UpdateQuantity(ctx context.Context, ids []string, quantity int) error {
	if len(ids) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(`UPDATE orders SET quantity = $2 WHERE id = $1`, id, quantity)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()

	var missing []string
	for _, id := range ids {
		tag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("update order quantity: %w", err)
		}
		if tag.RowsAffected() == 0 {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: pedidos %v", domain.ErrNotFound, missing)
	}
	return nil
}

// Delete elimina los pedidos indicados; los inexistentes se ignoran.
func (r *OrderRepo) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete orders: %w", err)
	}
	return nil
}
