package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
	"github.com/jhoicas/lotes-api/internal/domain/sales"
)

// DashboardUseCase tablero y reporte del libro de ventas.
type DashboardUseCase struct {
	sales       repository.SaleRepository
	generator   ReportGenerator
	recentLimit int
	log         zerolog.Logger
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso. recentLimit es el valor por defecto
// de transacciones recientes (mínimo 1).
func NewDashboardUseCase(saleRepo repository.SaleRepository, generator ReportGenerator, recentLimit int, log zerolog.Logger) *DashboardUseCase {
	if recentLimit < 1 {
		recentLimit = 1
	}
	return &DashboardUseCase{
		sales:       saleRepo,
		generator:   generator,
		recentLimit: recentLimit,
		log:         log.With().Str("component", "sales").Logger(),
		now:         time.Now,
	}
}

// Summary calcula el tablero sobre todo el libro. limit <= 0 usa el valor por defecto.
func (uc *DashboardUseCase) Summary(ctx context.Context, limit int) (sales.Summary, error) {
	if limit <= 0 {
		limit = uc.recentLimit
	}
	list, err := uc.sales.List(ctx, repository.SaleQuery{})
	if err != nil {
		return sales.Summary{}, domain.NewStoreError("listar ventas", err)
	}
	return sales.Summarize(list, limit), nil
}

// Dashboard tablero listo para el API.
func (uc *DashboardUseCase) Dashboard(ctx context.Context, limit int) (*dto.SalesDashboardResponse, error) {
	sum, err := uc.Summary(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toDashboardResponse(sum, uc.now()), nil
}

// DownloadReport genera el PDF del tablero y su nombre de archivo.
func (uc *DashboardUseCase) DownloadReport(ctx context.Context) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("reporte: generador no configurado")
	}
	sum, err := uc.Summary(ctx, 0)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	pdf, err := uc.generator.GenerateSalesReport(ctx, sum, now)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: %w", err)
	}
	uc.log.Info().Int("bytes", len(pdf)).Msg("reporte de ventas generado")
	return pdf, fmt.Sprintf("ventas_%s.pdf", now.Format("20060102")), nil
}

func toDashboardResponse(sum sales.Summary, now time.Time) *dto.SalesDashboardResponse {
	resp := &dto.SalesDashboardResponse{
		CategoryRevenue:    make([]dto.CategoryRevenueDTO, 0, len(sum.CategoryRevenue)),
		TopProducts:        make([]dto.TopProductDTO, 0, len(sum.TopProducts)),
		RecentTransactions: make([]dto.SaleResponse, 0, len(sum.Recent)),
		TotalRevenue:       sum.TotalRevenue,
		TotalUnits:         sum.TotalUnits,
		GeneratedAt:        now,
	}
	for _, c := range sum.CategoryRevenue {
		resp.CategoryRevenue = append(resp.CategoryRevenue, dto.CategoryRevenueDTO{Category: c.Category, Revenue: c.Revenue})
	}
	for _, p := range sum.TopProducts {
		resp.TopProducts = append(resp.TopProducts, dto.TopProductDTO{Name: p.Name, Units: p.Units, Revenue: p.Revenue})
	}
	for _, s := range sum.Recent {
		resp.RecentTransactions = append(resp.RecentTransactions, dto.NewSaleResponse(s))
	}
	return resp
}
