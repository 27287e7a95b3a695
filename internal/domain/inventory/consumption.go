package inventory

import (
	"fmt"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// LotMutation cambio planificado sobre un lote: actualización de cantidad o borrado si se agota.
type LotMutation struct {
	LotID       string
	PreviousQty int
	NewQty      int
	Deducted    int
	Delete      bool
}

// ConsumptionPlan conjunto de mutaciones que deben aplicarse todas o ninguna.
type ConsumptionPlan struct {
	ProductName string
	Requested   int
	Available   int
	Mutations   []LotMutation
}

// PlanConsumption descuenta requested unidades recorriendo lots en el orden recibido
// (el canónico es más reciente primero). Los lotes deben reflejar cantidades vivas leídas
// dentro de la transacción. Si la suma disponible no alcanza devuelve ErrInsufficientStock
// sin plan parcial.
func PlanConsumption(productName string, lots []*entity.Lot, requested int) (*ConsumptionPlan, error) {
	if requested <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que 0", domain.ErrInvalidInput)
	}

	available := 0
	for _, l := range lots {
		if l != nil && l.Quantity > 0 {
			available += l.Quantity
		}
	}
	if available < requested {
		return nil, fmt.Errorf("%w: solo %d disponibles de %s", domain.ErrInsufficientStock, available, productName)
	}

	plan := &ConsumptionPlan{ProductName: productName, Requested: requested, Available: available}
	remaining := requested
	for _, l := range lots {
		if remaining == 0 {
			break
		}
		if l == nil || l.Quantity <= 0 {
			continue
		}
		deduct := min(remaining, l.Quantity)
		newQty := l.Quantity - deduct
		plan.Mutations = append(plan.Mutations, LotMutation{
			LotID:       l.ID,
			PreviousQty: l.Quantity,
			NewQty:      newQty,
			Deducted:    deduct,
			Delete:      newQty == 0,
		})
		remaining -= deduct
	}
	return plan, nil
}

// Consumed total de unidades descontadas por el plan.
func (p *ConsumptionPlan) Consumed() int {
	n := 0
	for _, m := range p.Mutations {
		n += m.Deducted
	}
	return n
}
