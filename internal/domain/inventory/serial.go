package inventory

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateSerialNumber genera "CAT-ORDE-XXXX": 3 primeras letras de la categoría,
// 4 primeras del pedido y un sufijo aleatorio de 4 caracteres. La unicidad no está garantizada.
func GenerateSerialNumber(category, orderID string) string {
	return SerialNumberWithSuffix(category, orderID, uuid.NewString())
}

// SerialNumberWithSuffix variante determinista para un sufijo dado.
func SerialNumberWithSuffix(category, orderID, suffix string) string {
	return strings.ToUpper(take(category, 3)) + "-" +
		strings.ToUpper(take(orderID, 4)) + "-" +
		strings.ToUpper(take(suffix, 4))
}

func take(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
