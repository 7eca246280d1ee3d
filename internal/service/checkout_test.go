package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tech-up/commerce-api/internal/cart"
	"github.com/tech-up/commerce-api/internal/coupon"
	"github.com/tech-up/commerce-api/internal/mailer"
	"github.com/tech-up/commerce-api/internal/model"
	"github.com/tech-up/commerce-api/internal/queue"
	"github.com/tech-up/commerce-api/internal/repository"
)

// memStore keeps products and orders in memory and enforces the same
// conditional-decrement rule as the MySQL repository.
type memStore struct {
	stock  map[string]uint32
	prods  map[string]model.Product
	orders []*model.Order
	items  [][]model.OrderItem
}

func newMemStore(products ...model.Product) *memStore {
	m := &memStore{stock: map[string]uint32{}, prods: map[string]model.Product{}}
	for _, p := range products {
		m.prods[p.ProductID] = p
		m.stock[p.ProductID] = p.Stock
	}
	return m
}

func (m *memStore) FindByBusinessIDs(_ context.Context, ids []string) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := m.prods[id]; ok {
			p.Stock = m.stock[id]
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) CreateWithStockDecrement(_ context.Context, o *model.Order, items []model.OrderItem) error {
	// All-or-nothing, like the SQL transaction.
	for _, it := range items {
		if m.stock[it.ProductID] < uint32(it.Cantidad) {
			return fmt.Errorf("product %s: %w", it.ProductID, repository.ErrInsufficientStock)
		}
	}
	for _, it := range items {
		m.stock[it.ProductID] -= uint32(it.Cantidad)
	}
	o.ID = uint64(len(m.orders) + 1)
	m.orders = append(m.orders, o)
	m.items = append(m.items, items)
	return nil
}

type recordingMailer struct {
	msgs []mailer.Message
	err  error
}

func (r *recordingMailer) Send(_ context.Context, m mailer.Message) error {
	r.msgs = append(r.msgs, m)
	return r.err
}

type recordingEvents struct {
	events []queue.OrderConfirmedEvent
}

func (r *recordingEvents) PublishOrderConfirmed(_ context.Context, ev queue.OrderConfirmedEvent) error {
	r.events = append(r.events, ev)
	return nil
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newCheckout(store *memStore, m mailer.Sender, ev EventPublisher) *Checkout {
	return &Checkout{
		Cart:   cart.NewValidator(store, zerolog.Nop()),
		Orders: store,
		Mail:   m,
		Events: ev,
		Log:    zerolog.Nop(),
	}
}

func TestProcessEndToEnd(t *testing.T) {
	store := newMemStore(model.Product{ProductID: "P1", Nombre: "Laptop", Precio: money("100.00"), Stock: 5})
	mail := &recordingMailer{}
	events := &recordingEvents{}
	svc := newCheckout(store, mail, events)

	res, err := svc.Process(context.Background(), CheckoutRequest{
		Items:       []model.CartItem{{ProductID: "P1", Cantidad: 2}},
		Shipping:    model.ShippingInfo{Nombre: "Ana", Email: "ana@example.com", Direccion: "Calle 1"},
		CodigoCupon: "STUDENT15",
		MetodoPago:  "tarjeta",
	})
	if err != nil {
		t.Fatal(err)
	}

	// STUDENT15 on a 200.00 subtotal: discount 30, total 170.
	if !res.Total.Equal(money("170")) || !res.Descuento.Equal(money("30")) {
		t.Errorf("total/descuento = %s/%s, want 170/30", res.Total, res.Descuento)
	}
	if store.stock["P1"] != 3 {
		t.Errorf("stock after checkout = %d, want 3", store.stock["P1"])
	}
	if len(store.orders) != 1 || !store.orders[0].Total.Equal(money("170")) {
		t.Fatalf("orders = %+v", store.orders)
	}
	if res.Reference == "" || res.OrderID != 1 {
		t.Errorf("result ids = %+v", res)
	}

	// Best-effort tail ran: confirmation email with PDF plus one event.
	if len(mail.msgs) != 1 || len(mail.msgs[0].Attachments) != 1 {
		t.Fatalf("mail = %+v", mail.msgs)
	}
	if len(events.events) != 1 || events.events[0].Total != "170.00" {
		t.Fatalf("events = %+v", events.events)
	}
}

func TestProcessEmptyCart(t *testing.T) {
	store := newMemStore(model.Product{ProductID: "P3", Precio: money("10.00"), Stock: 0})
	svc := newCheckout(store, &recordingMailer{}, &recordingEvents{})

	// Only line has no stock, so validation leaves nothing to buy.
	_, err := svc.Process(context.Background(), CheckoutRequest{
		Items:    []model.CartItem{{ProductID: "P3", Cantidad: 1}},
		Shipping: model.ShippingInfo{Email: "a@b.com"},
	})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
	if len(store.orders) != 0 {
		t.Error("order created from empty cart")
	}
}

func TestProcessUnknownCoupon(t *testing.T) {
	store := newMemStore(model.Product{ProductID: "P1", Precio: money("100.00"), Stock: 5})
	svc := newCheckout(store, &recordingMailer{}, &recordingEvents{})

	_, err := svc.Process(context.Background(), CheckoutRequest{
		Items:       []model.CartItem{{ProductID: "P1", Cantidad: 1}},
		CodigoCupon: "FAKE123",
	})
	if !errors.Is(err, coupon.ErrUnknownCoupon) {
		t.Fatalf("err = %v, want ErrUnknownCoupon", err)
	}
	if store.stock["P1"] != 5 {
		t.Error("stock mutated despite failed checkout")
	}
}

func TestProcessInsufficientStockRollsBack(t *testing.T) {
	// Stock drops between validation and commit, as under a concurrent
	// checkout. The validator clamps to 5, then the store only has 1.
	store := newMemStore(model.Product{ProductID: "P1", Precio: money("100.00"), Stock: 5})
	svc := newCheckout(store, &recordingMailer{}, &recordingEvents{})

	validateThenShrink := &raceStore{memStore: store}
	svc.Cart = cart.NewValidator(validateThenShrink, zerolog.Nop())

	_, err := svc.Process(context.Background(), CheckoutRequest{
		Items:    []model.CartItem{{ProductID: "P1", Cantidad: 5}},
		Shipping: model.ShippingInfo{Email: "a@b.com"},
	})
	if !errors.Is(err, repository.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if store.stock["P1"] != 1 {
		t.Errorf("stock = %d, partial decrement leaked", store.stock["P1"])
	}
	if len(store.orders) != 0 {
		t.Error("order committed despite insufficient stock")
	}
}

// raceStore reports full stock to the validator, then shrinks it before
// the commit, simulating a lost race against another order.
type raceStore struct{ *memStore }

func (r *raceStore) FindByBusinessIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	out, err := r.memStore.FindByBusinessIDs(ctx, ids)
	r.memStore.stock["P1"] = 1
	return out, err
}

func TestProcessMailFailureDoesNotFailOrder(t *testing.T) {
	store := newMemStore(model.Product{ProductID: "P1", Precio: money("100.00"), Stock: 5})
	mail := &recordingMailer{err: errors.New("smtp down")}
	svc := newCheckout(store, mail, &recordingEvents{})

	res, err := svc.Process(context.Background(), CheckoutRequest{
		Items:    []model.CartItem{{ProductID: "P1", Cantidad: 1}},
		Shipping: model.ShippingInfo{Nombre: "Ana", Email: "ana@example.com"},
	})
	if err != nil {
		t.Fatalf("order must commit even when mail fails: %v", err)
	}
	if res.OrderID == 0 || store.stock["P1"] != 4 {
		t.Errorf("commit incomplete: %+v stock=%d", res, store.stock["P1"])
	}
}

func TestProcessClientTotalIsAdvisory(t *testing.T) {
	store := newMemStore(model.Product{ProductID: "P1", Precio: money("100.00"), Stock: 5})
	svc := newCheckout(store, &recordingMailer{}, &recordingEvents{})

	res, err := svc.Process(context.Background(), CheckoutRequest{
		Items:       []model.CartItem{{ProductID: "P1", Cantidad: 1}},
		Shipping:    model.ShippingInfo{Email: "a@b.com"},
		ClientTotal: money("1.00"), // wrong on purpose
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Total.Equal(money("100.00")) {
		t.Errorf("server total = %s, must ignore client figure", res.Total)
	}
}
