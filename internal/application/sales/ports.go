package sales

import (
	"context"
	"time"

	"github.com/jhoicas/lotes-api/internal/domain/sales"
)

// ReportGenerator genera el reporte de ventas en PDF.
type ReportGenerator interface {
	GenerateSalesReport(ctx context.Context, summary sales.Summary, generatedAt time.Time) ([]byte, error)
}
