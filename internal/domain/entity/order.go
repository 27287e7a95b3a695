package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order es la solicitud de un vendedor para que el admin compre stock a su nombre.
// ID es el identificador físico del documento; OrderID el identificador lógico
// (históricamente pueden no coincidir, ver purchasing.OrderResolver).
type Order struct {
	ID          string
	OrderID     string
	SellerID    string
	ProductName string
	Category    string
	Size        string
	Fit         string
	Quantity    int
	UnitPrice   decimal.Decimal
	CreatedAt   time.Time
}

// Key devuelve el identificador lógico, o el físico si el lógico está vacío.
func (o *Order) Key() string {
	if o.OrderID != "" {
		return o.OrderID
	}
	return o.ID
}

// OrderState estado del flujo de compra de un pedido.
type OrderState string

const (
	OrderStateOpen               OrderState = "open"
	OrderStatePartiallyFulfilled OrderState = "partially_fulfilled"
	OrderStateFulfilled          OrderState = "fulfilled"
)

// StateAfterPurchase devuelve el estado resultante de comprar purchased unidades
// de un pedido con remaining unidades pendientes.
func StateAfterPurchase(remaining, purchased int) OrderState {
	switch {
	case purchased <= 0:
		return OrderStateOpen
	case purchased >= remaining:
		return OrderStateFulfilled
	default:
		return OrderStatePartiallyFulfilled
	}
}
