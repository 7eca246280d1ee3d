package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingInfo is the buyer block captured at checkout. It is persisted on
// the order and reproduced on the receipt.
type ShippingInfo struct {
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Direccion string `json:"direccion"`
}

// Order mirrors the 'orders' table. Reference is the public identifier
// handed to the buyer; ID stays internal.
type Order struct {
	ID         uint64          `json:"id"`
	Reference  string          `json:"reference"`
	Total      decimal.Decimal `json:"total"`
	MetodoPago string          `json:"metodo_pago"`
	Shipping   ShippingInfo    `json:"shipping"`
	CreatedAt  time.Time       `json:"created_at"`
}

// OrderItem mirrors the 'order_items' table. Nombre and Precio are copied
// from the product at purchase time so later catalog edits cannot rewrite
// history.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Nombre    string          `json:"nombre"`
	Precio    decimal.Decimal `json:"precio"`
	Cantidad  int             `json:"cantidad"`
}

// Subtotal returns Precio multiplied by Cantidad.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Precio.Mul(decimal.NewFromInt(int64(i.Cantidad)))
}
