package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/inventory"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// BatchingUseCase consulta el inventario agregado y consume stock de forma transaccional
// (más reciente primero) con bloqueo de filas (SELECT FOR UPDATE) y Commit/Rollback.
type BatchingUseCase struct {
	txRunner TxRunner
	lotRepo  repository.LotRepository
	log      zerolog.Logger
	now      func() time.Time
}

// NewBatchingUseCase construye el caso de uso.
func NewBatchingUseCase(txRunner TxRunner, lotRepo repository.LotRepository, log zerolog.Logger) *BatchingUseCase {
	return &BatchingUseCase{
		txRunner: txRunner,
		lotRepo:  lotRepo,
		log:      log.With().Str("component", "batching").Logger(),
		now:      time.Now,
	}
}

// SellInput datos de una venta.
type SellInput struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	BuyerName   string
}

// Fetch lee todos los lotes (opcionalmente de una categoría) y devuelve la vista agregada.
// El snapshot es del llamador: las operaciones de consumo reciben el que se mostró al usuario.
func (uc *BatchingUseCase) Fetch(ctx context.Context, category string) (*inventory.Snapshot, error) {
	lots, err := uc.lotRepo.List(ctx, repository.LotFilter{Category: category})
	if err != nil {
		return nil, domain.NewStoreError("listar lotes", err)
	}
	return inventory.Aggregate(lots, category), nil
}

// Search agrega y filtra en una sola llamada.
func (uc *BatchingUseCase) Search(ctx context.Context, category string, q inventory.Query) ([]entity.AggregatedProduct, error) {
	snap, err := uc.Fetch(ctx, category)
	if err != nil {
		return nil, err
	}
	return inventory.Filter(snap.Products(), q), nil
}

// Remove descuenta stock sin registrar venta (merma, devolución, ajuste).
func (uc *BatchingUseCase) Remove(ctx context.Context, snap *inventory.Snapshot, productName string, quantity int, reason string) (*dto.ConsumptionResponse, error) {
	lots, err := uc.precheck(snap, productName, quantity)
	if err != nil {
		return nil, err
	}
	plan, err := uc.consume(ctx, productName, lots, quantity, nil)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("product", productName).
		Int("quantity", quantity).
		Str("reason", reason).
		Int("lots", len(plan.Mutations)).
		Msg("stock removido")

	return &dto.ConsumptionResponse{
		Outcome:     dto.Success(fmt.Sprintf("se removieron %d unidades de %s", quantity, productName)),
		ProductName: productName,
		Requested:   quantity,
		LotsTouched: mutationsResponse(plan),
	}, nil
}

// Sell descuenta stock y agrega una entrada al libro de ventas en la misma transacción.
// La venta registra la cantidad pedida y el precio indicado por el llamador, no el costo de los lotes.
func (uc *BatchingUseCase) Sell(ctx context.Context, snap *inventory.Snapshot, in SellInput) (*dto.ConsumptionResponse, error) {
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: el precio de venta no puede ser negativo", domain.ErrInvalidInput)
	}
	lots, err := uc.precheck(snap, in.ProductName, in.Quantity)
	if err != nil {
		return nil, err
	}

	product, _ := snap.Product(in.ProductName)
	sale := &entity.Sale{
		ID:          uuid.NewString(),
		ProductName: in.ProductName,
		Category:    product.Category,
		UnitPrice:   in.UnitPrice,
		Quantity:    in.Quantity,
		BuyerName:   strings.TrimSpace(in.BuyerName),
		Total:       in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
		SoldAt:      uc.now(),
	}
	plan, err := uc.consume(ctx, in.ProductName, lots, in.Quantity, sale)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("product", in.ProductName).
		Int("quantity", in.Quantity).
		Str("total", sale.Total.StringFixed(2)).
		Msg("venta registrada")

	saleResp := dto.NewSaleResponse(sale)
	return &dto.ConsumptionResponse{
		Outcome:     dto.Success(fmt.Sprintf("se vendieron %d unidades de %s", in.Quantity, in.ProductName)),
		ProductName: in.ProductName,
		Requested:   in.Quantity,
		LotsTouched: mutationsResponse(plan),
		Sale:        &saleResp,
	}, nil
}

// UpdateProductInfo renombra/re-etiqueta todos los lotes del producto en una sola escritura en lote.
func (uc *BatchingUseCase) UpdateProductInfo(ctx context.Context, snap *inventory.Snapshot, productName string, info entity.LotInfo) (*dto.Outcome, error) {
	info.ProductName = strings.TrimSpace(info.ProductName)
	if info.ProductName == "" {
		return nil, fmt.Errorf("%w: el nombre del producto es obligatorio", domain.ErrInvalidInput)
	}
	lots := snap.LotsFor(productName)
	if len(lots) == 0 {
		return nil, fmt.Errorf("%w: no hay lotes para actualizar", domain.ErrInvalidInput)
	}
	ids := make([]string, 0, len(lots))
	for _, l := range lots {
		ids = append(ids, l.ID)
	}
	if err := uc.lotRepo.UpdateInfo(ctx, ids, info); err != nil {
		return nil, domain.NewStoreError("actualizar lotes", err)
	}
	uc.log.Info().Str("product", productName).Str("new_name", info.ProductName).Int("lots", len(ids)).Msg("producto actualizado")
	out := dto.Success(fmt.Sprintf("%d lotes actualizados", len(ids)))
	return &out, nil
}

// CategoryBreakdown cantidades compradas por el admin agrupadas por categoría.
func (uc *BatchingUseCase) CategoryBreakdown(ctx context.Context) ([]inventory.CategoryStock, error) {
	lots, err := uc.lotRepo.List(ctx, repository.LotFilter{AdminOnly: true})
	if err != nil {
		return nil, domain.NewStoreError("listar lotes", err)
	}
	return inventory.CategoryBreakdown(lots), nil
}

// precheck valida contra el snapshot mostrado, antes de cualquier escritura.
func (uc *BatchingUseCase) precheck(snap *inventory.Snapshot, productName string, quantity int) ([]*entity.Lot, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que 0", domain.ErrInvalidInput)
	}
	lots := snap.LotsFor(productName)
	if len(lots) == 0 {
		return nil, fmt.Errorf("%w: sin stock de %s", domain.ErrInvalidInput, productName)
	}
	product, _ := snap.Product(productName)
	if quantity > product.TotalQuantity {
		return nil, fmt.Errorf("%w: solo %d disponibles de %s", domain.ErrInvalidInput, product.TotalQuantity, productName)
	}
	return lots, nil
}

// consume relee los lotes bloqueados dentro de la tx, planifica sobre cantidades vivas y aplica
// todas las mutaciones (y la venta, si hay) o ninguna.
func (uc *BatchingUseCase) consume(ctx context.Context, productName string, lots []*entity.Lot, quantity int, sale *entity.Sale) (*inventory.ConsumptionPlan, error) {
	ids := make([]string, 0, len(lots))
	for _, l := range lots {
		ids = append(ids, l.ID)
	}

	var plan *inventory.ConsumptionPlan
	err := uc.txRunner.Run(ctx, func(lotRepo repository.LotRepository, saleRepo repository.SaleRepository) error {
		live, err := lotRepo.GetManyForUpdate(ctx, ids)
		if err != nil {
			return err
		}
		p, err := inventory.PlanConsumption(productName, canonicalOrder(ids, live), quantity)
		if err != nil {
			return err
		}
		for _, m := range p.Mutations {
			if m.Delete {
				err = lotRepo.Delete(ctx, m.LotID)
			} else {
				err = lotRepo.UpdateQuantity(ctx, m.LotID, m.NewQty)
			}
			if err != nil {
				return err
			}
		}
		if sale != nil {
			if err := saleRepo.Append(ctx, sale); err != nil {
				return err
			}
		}
		plan = p
		return nil
	})
	if err != nil {
		return nil, domain.NewStoreError("consumir lotes", err)
	}
	return plan, nil
}

// canonicalOrder reordena los lotes releídos según el orden del snapshot (más reciente primero).
func canonicalOrder(ids []string, live []*entity.Lot) []*entity.Lot {
	byID := make(map[string]*entity.Lot, len(live))
	for _, l := range live {
		byID[l.ID] = l
	}
	out := make([]*entity.Lot, 0, len(live))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

func mutationsResponse(plan *inventory.ConsumptionPlan) []dto.LotMutationResponse {
	out := make([]dto.LotMutationResponse, 0, len(plan.Mutations))
	for _, m := range plan.Mutations {
		out = append(out, dto.LotMutationResponse{
			LotID:       m.LotID,
			PreviousQty: m.PreviousQty,
			NewQty:      m.NewQty,
			Deducted:    m.Deducted,
			Deleted:     m.Delete,
		})
	}
	return out
}
