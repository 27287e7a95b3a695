package memory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

var _ repository.AgentRepository = (*AgentRepository)(nil)

// AgentRepository vendedores en memoria.
type AgentRepository view

func (r *AgentRepository) v() view { return view(*r) }

func (r *AgentRepository) Create(ctx context.Context, agent *entity.Agent) error {
	return r.v().set("agents.create", TopicCommissions, func(d *data) error {
		if _, ok := d.agents[agent.ID]; ok {
			return fmt.Errorf("%w: vendedor %s", domain.ErrDuplicate, agent.ID)
		}
		c := *agent
		d.agents[agent.ID] = &c
		return nil
	})
}

func (r *AgentRepository) GetByID(ctx context.Context, id string) (*entity.Agent, error) {
	var out *entity.Agent
	err := r.v().get("agents.get", func(d *data) error {
		if a, ok := d.agents[id]; ok {
			c := *a
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *AgentRepository) UpdateTotalCommission(ctx context.Context, id string, total decimal.Decimal) error {
	return r.v().set("agents.update_commission", TopicCommissions, func(d *data) error {
		a, ok := d.agents[id]
		if !ok {
			return fmt.Errorf("%w: vendedor %s", domain.ErrNotFound, id)
		}
		a.TotalCommission = total
		return nil
	})
}
