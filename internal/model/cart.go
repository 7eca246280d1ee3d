package model

import "github.com/shopspring/decimal"

// CartItem is a single client-submitted line: a product reference and the
// requested quantity. The cart itself lives client-side; the server only
// ever sees it as request payload.
type CartItem struct {
	ProductID string `json:"product_id"`
	Cantidad  int    `json:"cantidad"`
}

// CartLine is a cart item after validation against the catalog: the price
// is authoritative and Cantidad has been clamped to the available stock.
type CartLine struct {
	ProductID        string          `json:"product_id"`
	Nombre           string          `json:"nombre"`
	Precio           decimal.Decimal `json:"precio"`
	Imagen           string          `json:"imagen"`
	Categoria        string          `json:"categoria"`
	Cantidad         int             `json:"cantidad"`
	StockDisponible  uint32          `json:"stock_disponible"`
	SubtotalItem     decimal.Decimal `json:"subtotal_item"`
}

// ValidatedCart is the result of reconciling a client cart with the
// catalog. Items that reference unknown products or have no stock left are
// absent from Items.
type ValidatedCart struct {
	Items    []CartLine      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}
