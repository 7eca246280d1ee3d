// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderConfirmedItem is one purchased line inside an order event.
type OrderConfirmedItem struct {
	ProductID string `json:"product_id"`
	Nombre    string `json:"nombre"`
	Cantidad  int    `json:"cantidad"`
}

// OrderConfirmedEvent is published after a checkout transaction commits.
// It carries enough information for downstream consumers (analytics,
// fulfilment) without querying the primary database.
type OrderConfirmedEvent struct {
	OrderID     uint64               `json:"order_id"`
	Reference   string               `json:"reference"`
	Email       string               `json:"email"`
	Nombre      string               `json:"nombre"`
	Total       string               `json:"total"`
	MetodoPago  string               `json:"metodo_pago"`
	Items       []OrderConfirmedItem `json:"items"`
	ConfirmedAt string               `json:"confirmed_at"`
}
