package receipt

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tech-up/commerce-api/internal/model"
)

func sampleData() Data {
	return Data{
		OrderID:    42,
		Reference:  "5f1c9f0e-0000-4000-8000-000000000000",
		Fecha:      time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		MetodoPago: "tarjeta",
		Shipping: model.ShippingInfo{
			Nombre:    "Ana López",
			Email:     "ana@example.com",
			Direccion: "Av. Universidad 123, Aguascalientes",
		},
		Items: []model.OrderItem{
			{ProductID: "P1", Nombre: "Laptop", Precio: decimal.RequireFromString("100.00"), Cantidad: 2},
			{ProductID: "P2", Nombre: "Mouse inalámbrico", Precio: decimal.RequireFromString("25.50"), Cantidad: 1},
		},
		Total: decimal.RequireFromString("225.50"),
	}
}

func TestGenerateProducesPDF(t *testing.T) {
	out, err := Generate(sampleData())
	if err != nil {
		t.Fatal(err)
	}
	if len(out) == 0 {
		t.Fatal("empty document")
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header: %q", out[:8])
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	d := sampleData()
	a, err := Generate(d)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(d)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Errorf("two renders of the same order differ in size: %d vs %d", len(a), len(b))
	}
}

func TestGenerateHandlesLongNamesAndEmptyCart(t *testing.T) {
	d := sampleData()
	d.Items = []model.OrderItem{{
		ProductID: "P9",
		Nombre:    strings.Repeat("Teclado mecánico profesional ", 5),
		Precio:    decimal.RequireFromString("999.99"),
		Cantidad:  1,
	}}
	if _, err := Generate(d); err != nil {
		t.Fatalf("long name: %v", err)
	}

	d.Items = nil
	if _, err := Generate(d); err != nil {
		t.Fatalf("no items: %v", err)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", maxNameLen+10)
	if got := truncate(long); len([]rune(got)) != maxNameLen {
		t.Errorf("truncate left %d runes, want %d", len([]rune(got)), maxNameLen)
	}
	if got := truncate("corto"); got != "corto" {
		t.Errorf("short name altered: %q", got)
	}
}
