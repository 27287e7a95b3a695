package repository

import (
	"context"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// LotFilter criterios de consulta de lotes; los campos vacíos no filtran.
// Sin Category el store devuelve los lotes ordenados por fecha de compra (desc);
// con Category el orden no está garantizado y lo resuelve el motor de agregación.
type LotFilter struct {
	Category    string
	SellerID    string
	ProductName string
	OrderID     string
	AdminOnly   bool
}

// LotRepository define el puerto de persistencia para lotes (compras).
// Usado dentro de transacciones para consumo de stock.
type LotRepository interface {
	Create(ctx context.Context, lot *entity.Lot) error
	List(ctx context.Context, filter LotFilter) ([]*entity.Lot, error)
	// GetManyForUpdate relee y bloquea los lotes indicados (SELECT FOR UPDATE).
	// Los IDs inexistentes se omiten del resultado.
	GetManyForUpdate(ctx context.Context, ids []string) ([]*entity.Lot, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
	// UpdateInfo escritura en lote: aplica info a todos los ids o a ninguno.
	UpdateInfo(ctx context.Context, ids []string, info entity.LotInfo) error
}
