package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/inventory"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// ImportOptions formato del archivo de lotes.
type ImportOptions struct {
	Comma   rune   // separador; 0 = ','
	Latin1  bool   // archivo en ISO-8859-1 (exportaciones de Excel en español)
	AdminID string // se asigna a cada lote importado
}

// Columnas reconocidas en la cabecera (sin distinguir mayúsculas). product_name y quantity son obligatorias.
const (
	colProductName = "product_name"
	colCategory    = "category"
	colSize        = "size"
	colQuantity    = "quantity"
	colUnitPrice   = "unit_price"
	colSerial      = "serial_number"
	colOrderID     = "order_id"
	colSellerID    = "seller_id"
	colPurchasedAt = "purchased_at"
)

// ImportLots lee lotes desde CSV y los crea como compras admin. Valida todas las filas antes de
// escribir: si alguna es inválida no se crea ningún lote. Devuelve la cantidad creada.
func ImportLots(ctx context.Context, r io.Reader, opts ImportOptions, lots repository.LotRepository, now time.Time) (int, error) {
	parsed, err := ParseLots(r, opts, now)
	if err != nil {
		return 0, err
	}
	for i, l := range parsed {
		if err := lots.Create(ctx, l); err != nil {
			return i, fmt.Errorf("crear lote %s: %w", l.ProductName, err)
		}
	}
	return len(parsed), nil
}

// ParseLots convierte el CSV en lotes sin persistirlos.
func ParseLots(r io.Reader, opts ImportOptions, now time.Time) ([]*entity.Lot, error) {
	if opts.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range []string{colProductName, colQuantity} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: falta la columna %s", domain.ErrInvalidInput, required)
		}
	}

	var (
		out  []*entity.Lot
		errs []error
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		lot, err := lotFromRecord(rec, cols, opts.AdminID, now)
		if err != nil {
			errs = append(errs, fmt.Errorf("línea %d: %w", line, err))
			continue
		}
		out = append(out, lot)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return out, nil
}

func lotFromRecord(rec []string, cols map[string]int, adminID string, now time.Time) (*entity.Lot, error) {
	get := func(col string) string {
		i, ok := cols[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	name := get(colProductName)
	if name == "" {
		return nil, errors.New("product_name vacío")
	}
	qty, err := strconv.Atoi(get(colQuantity))
	if err != nil || qty <= 0 {
		return nil, fmt.Errorf("quantity inválida %q", get(colQuantity))
	}
	price := decimal.Zero
	if raw := get(colUnitPrice); raw != "" {
		price, err = parseAmount(raw)
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("unit_price inválido %q", raw)
		}
	}
	purchasedAt := now
	if raw := get(colPurchasedAt); raw != "" {
		purchasedAt, err = parseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("purchased_at inválido %q", raw)
		}
	}

	id := uuid.NewString()
	category := get(colCategory)
	orderID := get(colOrderID)
	serial := get(colSerial)
	if serial == "" {
		serial = inventory.SerialNumberWithSuffix(category, orderID, id)
	}
	return &entity.Lot{
		ID:              id,
		OrderID:         orderID,
		SellerID:        get(colSellerID),
		AdminID:         adminID,
		ProductName:     name,
		Category:        category,
		Size:            get(colSize),
		Quantity:        qty,
		UnitPrice:       price,
		TotalCost:       price.Mul(decimal.NewFromInt(int64(qty))),
		SerialNumber:    serial,
		PurchasedAt:     purchasedAt,
		IsAdminPurchase: true,
	}, nil
}

// parseAmount acepta coma decimal ("45000,50") cuando no hay punto.
func parseAmount(raw string) (decimal.Decimal, error) {
	if !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}
	return decimal.NewFromString(raw)
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
