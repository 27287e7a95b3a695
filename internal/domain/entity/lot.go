package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot representa una compra de stock (un lote): la unidad atómica de consumo de inventario.
// Un lote con Quantity == 0 está agotado y se elimina, nunca se conserva.
type Lot struct {
	ID              string
	OrderID         string
	SellerID        string
	AdminID         string
	ProductName     string
	Category        string
	Size            string
	Quantity        int
	UnitPrice       decimal.Decimal
	TotalCost       decimal.Decimal
	SerialNumber    string
	PurchasedAt     time.Time
	IsAdminPurchase bool
}

// Exhausted indica si el lote ya no tiene unidades.
func (l *Lot) Exhausted() bool { return l.Quantity <= 0 }

// LotInfo campos descriptivos editables de todos los lotes de un producto.
type LotInfo struct {
	ProductName  string
	SerialNumber string
	Category     string
	Size         string
}
