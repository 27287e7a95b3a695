package repository

import (
	"context"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos de vendedores.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// GetByID busca por identificador físico del documento. nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// ListByOrderID busca por el campo lógico order_id (puede haber más de uno).
	ListByOrderID(ctx context.Context, orderID string) ([]*entity.Order, error)
	// List sellerID vacío = todos. Ordenados por order_id ascendente.
	List(ctx context.Context, sellerID string) ([]*entity.Order, error)
	ExistsCombination(ctx context.Context, sellerID, productName, category, size, fit string) (bool, error)
	ExistsProductName(ctx context.Context, sellerID, productName string) (bool, error)
	// UpdateQuantity y Delete son escrituras en lote sobre IDs físicos.
	UpdateQuantity(ctx context.Context, ids []string, quantity int) error
	Delete(ctx context.Context, ids []string) error
}
