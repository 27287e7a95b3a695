package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// AgentRepository vendedores y su comisión acumulada.
type AgentRepository interface {
	Create(ctx context.Context, agent *entity.Agent) error
	// GetByID nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Agent, error)
	UpdateTotalCommission(ctx context.Context, id string, total decimal.Decimal) error
}
