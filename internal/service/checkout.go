// Package service orchestrates the order checkout engine: validate the
// cart, apply the coupon, commit the order with its stock decrements, then
// run the best-effort tail (receipt, email, event).
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tech-up/commerce-api/internal/cart"
	"github.com/tech-up/commerce-api/internal/coupon"
	"github.com/tech-up/commerce-api/internal/mailer"
	"github.com/tech-up/commerce-api/internal/model"
	"github.com/tech-up/commerce-api/internal/queue"
	"github.com/tech-up/commerce-api/internal/receipt"
)

// ErrEmptyCart is returned when no cart line survives validation.
var ErrEmptyCart = errors.New("empty cart")

// OrderStore commits an order together with its inventory decrements.
type OrderStore interface {
	CreateWithStockDecrement(ctx context.Context, o *model.Order, items []model.OrderItem) error
}

// EventPublisher announces committed orders to the broker.
type EventPublisher interface {
	PublishOrderConfirmed(ctx context.Context, ev queue.OrderConfirmedEvent) error
}

// CheckoutRequest is the service-level input, already validated at the
// HTTP boundary.
type CheckoutRequest struct {
	Items       []model.CartItem
	Shipping    model.ShippingInfo
	CodigoCupon string
	// ClientTotal is what the frontend believes the order costs. It is
	// advisory only: the server recomputes the total and logs a mismatch.
	ClientTotal decimal.Decimal
	MetodoPago  string
}

// CheckoutResult reports a committed order back to the handler.
type CheckoutResult struct {
	OrderID   uint64          `json:"orderId"`
	Reference string          `json:"reference"`
	Total     decimal.Decimal `json:"total"`
	Descuento decimal.Decimal `json:"descuento"`
}

// Checkout runs the order pipeline. The cart validator, stores and
// notifier are injected so the flow can be tested end to end with stubs.
type Checkout struct {
	Cart   *cart.Validator
	Orders OrderStore
	Mail   mailer.Sender
	Events EventPublisher
	Log    zerolog.Logger
}

// Process executes one checkout. The order is committed atomically with
// its stock decrements; everything after the commit (receipt, email,
// broker event) is best-effort and can never invalidate the order.
func (s *Checkout) Process(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	validated, err := s.Cart.Validate(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	if len(validated.Items) == 0 {
		return nil, ErrEmptyCart
	}

	total := validated.Subtotal
	descuento := decimal.Zero
	if req.CodigoCupon != "" {
		_, d, t, err := coupon.Resolve(req.CodigoCupon, validated.Subtotal)
		if err != nil {
			return nil, err
		}
		descuento, total = d, t
	}

	if !req.ClientTotal.IsZero() && !req.ClientTotal.Equal(total) {
		s.Log.Warn().
			Str("client_total", req.ClientTotal.String()).
			Str("server_total", total.String()).
			Msg("client total disagrees with recomputed total, using server value")
	}

	order := &model.Order{
		Reference:  uuid.NewString(),
		Total:      total,
		MetodoPago: req.MetodoPago,
		Shipping:   req.Shipping,
		CreatedAt:  time.Now().UTC(),
	}
	items := make([]model.OrderItem, len(validated.Items))
	for i, line := range validated.Items {
		items[i] = model.OrderItem{
			ProductID: line.ProductID,
			Nombre:    line.Nombre,
			Precio:    line.Precio,
			Cantidad:  line.Cantidad,
		}
	}

	if err := s.Orders.CreateWithStockDecrement(ctx, order, items); err != nil {
		return nil, err
	}

	s.notify(ctx, order, items)

	return &CheckoutResult{
		OrderID:   order.ID,
		Reference: order.Reference,
		Total:     total,
		Descuento: descuento,
	}, nil
}

// notify runs the post-commit tail. Every step logs its own failure and
// falls through to the next; a missing mail configuration is expected in
// dev and only logged at debug level.
func (s *Checkout) notify(ctx context.Context, order *model.Order, items []model.OrderItem) {
	pdf, err := receipt.Generate(receipt.Data{
		OrderID:    order.ID,
		Reference:  order.Reference,
		Fecha:      order.CreatedAt,
		MetodoPago: order.MetodoPago,
		Shipping:   order.Shipping,
		Items:      items,
		Total:      order.Total,
	})
	if err != nil {
		s.Log.Error().Err(err).Uint64("order_id", order.ID).Msg("receipt generation failed")
	} else if s.Mail != nil {
		msg := mailer.OrderConfirmation(order.Shipping.Email, order.Shipping.Nombre, order.ID, pdf)
		switch err := s.Mail.Send(ctx, msg); {
		case errors.Is(err, mailer.ErrNotConfigured):
			s.Log.Debug().Uint64("order_id", order.ID).Msg("confirmation email skipped, mailer not configured")
		case err != nil:
			s.Log.Error().Err(err).Uint64("order_id", order.ID).Msg("confirmation email failed")
		}
	}

	if s.Events != nil {
		ev := queue.OrderConfirmedEvent{
			OrderID:     order.ID,
			Reference:   order.Reference,
			Email:       order.Shipping.Email,
			Nombre:      order.Shipping.Nombre,
			Total:       order.Total.StringFixed(2),
			MetodoPago:  order.MetodoPago,
			ConfirmedAt: order.CreatedAt.Format(time.RFC3339),
		}
		for _, it := range items {
			ev.Items = append(ev.Items, queue.OrderConfirmedItem{
				ProductID: it.ProductID, Nombre: it.Nombre, Cantidad: it.Cantidad,
			})
		}
		if err := s.Events.PublishOrderConfirmed(ctx, ev); err != nil {
			s.Log.Error().Err(err).Uint64("order_id", order.ID).Msg("order event publish failed")
		}
	}
}
