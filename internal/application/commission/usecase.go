package commission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/domain"
	domcommission "github.com/jhoicas/lotes-api/internal/domain/commission"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// UseCase acredita comisiones y expone las dos cifras que se manejan por separado:
// el total acumulado persistido del vendedor y la cifra en vivo recalculada por pedido.
type UseCase struct {
	agents  repository.AgentRepository
	records repository.CommissionRepository
	lots    repository.LotRepository
	log     zerolog.Logger
	now     func() time.Time
}

// NewUseCase construye el caso de uso de comisiones.
func NewUseCase(
	agents repository.AgentRepository,
	records repository.CommissionRepository,
	lots repository.LotRepository,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		agents:  agents,
		records: records,
		lots:    lots,
		log:     log.With().Str("component", "commission").Logger(),
		now:     time.Now,
	}
}

// Accrue suma Rate × saleAmount al total del vendedor y agrega un registro de auditoría.
// La lectura y escritura del total no son atómicas: dos acreditaciones simultáneas pueden
// perder una actualización. Si el registro falla, el total ya quedó actualizado y se
// devuelve éxito parcial.
func (uc *UseCase) Accrue(ctx context.Context, sellerID string, saleAmount decimal.Decimal) (*dto.Outcome, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: vendedor vacío", domain.ErrInvalidInput)
	}
	if saleAmount.IsNegative() {
		return nil, fmt.Errorf("%w: monto de venta negativo", domain.ErrInvalidInput)
	}

	agent, err := uc.agents.GetByID(ctx, sellerID)
	if err != nil {
		return nil, domain.NewStoreError("leer vendedor", err)
	}
	if agent == nil {
		return nil, fmt.Errorf("%w: vendedor %s", domain.ErrNotFound, sellerID)
	}

	amount := domcommission.Amount(saleAmount)
	total := agent.TotalCommission.Add(amount)
	if err := uc.agents.UpdateTotalCommission(ctx, sellerID, total); err != nil {
		return nil, domain.NewStoreError("actualizar comisión", err)
	}

	rec := &entity.CommissionRecord{
		ID:               uuid.NewString(),
		SellerID:         sellerID,
		SaleAmount:       saleAmount,
		CommissionAmount: amount,
		CommissionRate:   domcommission.Rate,
		Type:             entity.CommissionTypeAdminPurchase,
		CreatedAt:        uc.now(),
	}
	msg := fmt.Sprintf("comisión de %s acreditada", amount.StringFixed(2))
	if err := uc.records.Append(ctx, rec); err != nil {
		uc.log.Error().Err(err).Str("seller", sellerID).Msg("no se pudo crear el registro de comisión")
		out := dto.Partial(msg, "comisión actualizada pero no se pudo crear el registro")
		return &out, nil
	}

	uc.log.Info().Str("seller", sellerID).Str("amount", amount.StringFixed(2)).Str("total", total.StringFixed(2)).Msg("comisión acreditada")
	out := dto.Success(msg)
	return &out, nil
}

// OrderTotals cifra en vivo del pedido: suma de compras admin (o de todas si no hay admin) × Rate.
func (uc *UseCase) OrderTotals(ctx context.Context, orderID string) (*dto.OrderCommissionResponse, error) {
	if orderID == "" {
		return nil, fmt.Errorf("%w: id de pedido vacío", domain.ErrInvalidInput)
	}
	lots, err := uc.lots.List(ctx, repository.LotFilter{OrderID: orderID})
	if err != nil {
		return nil, domain.NewStoreError("listar compras del pedido", err)
	}
	t := domcommission.ComputeOrderTotals(orderID, lots)
	if t.UsedFallback {
		uc.log.Warn().Str("order", orderID).Msg("sin compras admin; se usan todas las compras")
	}
	return &dto.OrderCommissionResponse{
		OrderID:       t.OrderID,
		TotalSold:     t.TotalSold,
		Commission:    t.Commission,
		PurchaseCount: t.PurchaseCount,
		UsedFallback:  t.UsedFallback,
	}, nil
}

// AgentSummary total acumulado persistido del vendedor con su historial de registros.
func (uc *UseCase) AgentSummary(ctx context.Context, sellerID string) (*dto.AgentCommissionResponse, error) {
	agent, err := uc.agents.GetByID(ctx, sellerID)
	if err != nil {
		return nil, domain.NewStoreError("leer vendedor", err)
	}
	if agent == nil {
		return nil, fmt.Errorf("%w: vendedor %s", domain.ErrNotFound, sellerID)
	}
	records, err := uc.records.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, domain.NewStoreError("listar comisiones", err)
	}
	resp := &dto.AgentCommissionResponse{
		SellerID:        agent.ID,
		Name:            agent.Name,
		TotalCommission: agent.TotalCommission,
		Records:         make([]dto.CommissionRecordResponse, 0, len(records)),
	}
	for _, r := range records {
		resp.Records = append(resp.Records, dto.CommissionRecordResponse{
			ID:               r.ID,
			SaleAmount:       r.SaleAmount,
			CommissionAmount: r.CommissionAmount,
			CommissionRate:   r.CommissionRate,
			Type:             r.Type,
			CreatedAt:        r.CreatedAt,
		})
	}
	return resp, nil
}
