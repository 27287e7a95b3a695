package inventory

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// SearchField campo sobre el que aplica la búsqueda de texto.
type SearchField string

const (
	FieldName     SearchField = "name"
	FieldSerial   SearchField = "serial"
	FieldSize     SearchField = "size"
	FieldCategory SearchField = "category"
)

// ParseSearchField acepta los nombres del API y las etiquetas cortas de la app móvil.
// Vacío o desconocido → FieldName.
func ParseSearchField(s string) SearchField {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "serial", "s.num", "serial_number":
		return FieldSerial
	case "size":
		return FieldSize
	case "category", "cate.":
		return FieldCategory
	default:
		return FieldName
	}
}

// Query criterios de filtrado; Text y ScannedCode se combinan con AND cuando ambos están presentes.
type Query struct {
	Text        string
	Field       SearchField
	ScannedCode string
}

// Filter filtra productos ya agregados: subcadena sin distinguir mayúsculas sobre el campo
// elegido y, si hay código escaneado, igualdad contra serie, nombre o pedido representativo.
func Filter(products []entity.AggregatedProduct, q Query) []entity.AggregatedProduct {
	folder := cases.Fold()
	text := folder.String(strings.TrimSpace(q.Text))
	code := folder.String(strings.TrimSpace(q.ScannedCode))

	out := make([]entity.AggregatedProduct, 0, len(products))
	for _, p := range products {
		if text != "" && !strings.Contains(folder.String(fieldValue(p, q.Field)), text) {
			continue
		}
		if code != "" && !matchesCode(folder, p, code) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func fieldValue(p entity.AggregatedProduct, f SearchField) string {
	switch f {
	case FieldSerial:
		return p.RepresentativeSerial
	case FieldSize:
		return p.Size
	case FieldCategory:
		return p.Category
	default:
		return p.ProductName
	}
}

func matchesCode(folder cases.Caser, p entity.AggregatedProduct, code string) bool {
	return folder.String(p.RepresentativeSerial) == code ||
		folder.String(p.ProductName) == code ||
		folder.String(p.RepresentativeOrderID) == code
}
