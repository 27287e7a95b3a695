package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

var _ repository.AgentRepository = (*AgentRepo)(nil)

// AgentRepo vendedores sobre PostgreSQL.
type AgentRepo struct {
	q Querier
}

// NewAgentRepository construye el adaptador.
func NewAgentRepository(q Querier) *AgentRepo {
	return &AgentRepo{q: q}
}

func (r *AgentRepo) Create(ctx context.Context, a *entity.Agent) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO agents (id, name, email, total_commission, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Name, a.Email, a.TotalCommission, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert agent: %w", err)
	}
	return nil
}

func (r *AgentRepo) GetByID(ctx context.Context, id string) (*entity.Agent, error) {
	var a entity.Agent
	err := r.q.QueryRow(ctx, `
		SELECT id, name, email, total_commission, created_at, updated_at
		FROM agents WHERE id = $1`, id).Scan(
		&a.ID, &a.Name, &a.Email, &a.TotalCommission, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get agent: %w", err)
	}
	return &a, nil
}

func (r *AgentRepo) UpdateTotalCommission(ctx context.Context, id string, total decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE agents SET total_commission = $2, updated_at = now() WHERE id = $1`, id, total)
	if err != nil {
		return fmt.Errorf("update agent commission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: vendedor %s", domain.ErrNotFound, id)
	}
	return nil
}
