package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tech-up/commerce-api/internal/model"
)

// stubProducts serves a fixed catalog keyed by business id.
type stubProducts struct {
	byID map[string]model.Product
	err  error
}

func (s *stubProducts) FindByBusinessIDs(_ context.Context, ids []string) ([]model.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []model.Product
	for _, id := range ids {
		if p, ok := s.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func price(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func catalog() *stubProducts {
	return &stubProducts{byID: map[string]model.Product{
		"P1": {ProductID: "P1", Nombre: "Laptop", Precio: price("100.00"), Stock: 5},
		"P2": {ProductID: "P2", Nombre: "Mouse", Precio: price("25.50"), Stock: 3},
		"P3": {ProductID: "P3", Nombre: "Agotado", Precio: price("10.00"), Stock: 0},
	}}
}

func newValidator(s *stubProducts) *Validator {
	return NewValidator(s, zerolog.Nop())
}

func TestValidateClampsToStock(t *testing.T) {
	v := newValidator(catalog())
	got, err := v.Validate(context.Background(), []model.CartItem{{ProductID: "P2", Cantidad: 10}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(got.Items))
	}
	if got.Items[0].Cantidad != 3 {
		t.Errorf("cantidad = %d, want 3 (clamped to stock)", got.Items[0].Cantidad)
	}
	if !got.Subtotal.Equal(price("76.50")) {
		t.Errorf("subtotal = %s, want 76.50", got.Subtotal)
	}
}

func TestValidateDropsUnknownAndExhausted(t *testing.T) {
	v := newValidator(catalog())
	got, err := v.Validate(context.Background(), []model.CartItem{
		{ProductID: "NOPE", Cantidad: 1},
		{ProductID: "P3", Cantidad: 2},
		{ProductID: "P1", Cantidad: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 1 || got.Items[0].ProductID != "P1" {
		t.Fatalf("surviving items = %+v, want only P1", got.Items)
	}
	if !got.Subtotal.Equal(price("200.00")) {
		t.Errorf("subtotal = %s, want 200.00", got.Subtotal)
	}
}

func TestValidateMergesDuplicateLines(t *testing.T) {
	v := newValidator(catalog())
	got, err := v.Validate(context.Background(), []model.CartItem{
		{ProductID: "P1", Cantidad: 2},
		{ProductID: "P1", Cantidad: 4}, // merged request of 6 is clamped to stock 5
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 1 || got.Items[0].Cantidad != 5 {
		t.Fatalf("items = %+v, want one P1 line with cantidad 5", got.Items)
	}
}

func TestValidateEmptyAndNonPositive(t *testing.T) {
	v := newValidator(catalog())
	for _, items := range [][]model.CartItem{
		nil,
		{},
		{{ProductID: "P1", Cantidad: 0}},
		{{ProductID: "", Cantidad: 3}},
	} {
		got, err := v.Validate(context.Background(), items)
		if err != nil {
			t.Fatal(err)
		}
		if len(got.Items) != 0 || !got.Subtotal.IsZero() {
			t.Errorf("Validate(%v) = %+v, want empty cart", items, got)
		}
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	v := newValidator(catalog())
	items := []model.CartItem{{ProductID: "P1", Cantidad: 2}, {ProductID: "P2", Cantidad: 1}}

	first, err := v.Validate(context.Background(), items)
	if err != nil {
		t.Fatal(err)
	}
	second, err := v.Validate(context.Background(), items)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Subtotal.Equal(second.Subtotal) || len(first.Items) != len(second.Items) {
		t.Fatalf("re-validation diverged: %+v vs %+v", first, second)
	}
	for i := range first.Items {
		a, b := first.Items[i], second.Items[i]
		if a.ProductID != b.ProductID || a.Cantidad != b.Cantidad || !a.SubtotalItem.Equal(b.SubtotalItem) {
			t.Errorf("line %d diverged: %+v vs %+v", i, a, b)
		}
	}
}

func TestValidateStoreErrorFailsWhole(t *testing.T) {
	boom := errors.New("connection refused")
	v := newValidator(&stubProducts{err: boom})
	_, err := v.Validate(context.Background(), []model.CartItem{{ProductID: "P1", Cantidad: 1}})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped store error", err)
	}
}
