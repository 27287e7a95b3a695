package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/sales"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "25.000", formatMoney("25000"))
	assert.Equal(t, "1.000.000", formatMoney("1000000"))
	assert.Equal(t, "999", formatMoney("999"))
	assert.Equal(t, "-1.500", formatMoney("-1500"))
}

func TestGenerateSalesReport(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	list := []*entity.Sale{
		{ID: "1", ProductName: "Camisa", Category: "Camisas", UnitPrice: decimal.NewFromInt(45000), Quantity: 2, BuyerName: "Ana", SoldAt: now},
	}
	summary := sales.Summarize(list, 5)

	out, err := NewMarotoPDFGenerator("Lotes").GenerateSalesReport(context.Background(), summary, now)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
