package repository

import (
	"context"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// CommissionRepository registros de auditoría de comisiones (inmutables).
type CommissionRepository interface {
	Append(ctx context.Context, record *entity.CommissionRecord) error
	ListBySeller(ctx context.Context, sellerID string) ([]*entity.CommissionRecord, error)
}
