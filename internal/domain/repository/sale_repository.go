package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// SaleQuery filtros del libro de ventas. Resultado ordenado por fecha de venta descendente.
type SaleQuery struct {
	Category    string
	ProductName string
	From        *time.Time
	To          *time.Time
	Limit       int // 0 = sin límite
}

// SaleRepository libro de ventas: solo se agregan entradas.
type SaleRepository interface {
	Append(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, q SaleQuery) ([]*entity.Sale, error)
}
