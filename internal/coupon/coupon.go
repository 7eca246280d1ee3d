// Package coupon is the single catalog of discount codes and the pure
// resolver that maps a code plus a cart subtotal to a discount amount.
// Coupons are static in-process data: no expiry, usage limits or per-user
// restrictions are modelled, and nothing here touches the database.
package coupon

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Discount kinds stored in the catalog.
const (
	KindPercent = "porcentaje"
	KindFixed   = "fijo"
)

// ErrUnknownCoupon is returned when a code is not in the catalog. Callers
// must surface it as a not-found failure, never as a zero-discount success.
var ErrUnknownCoupon = errors.New("coupon not found")

// Coupon is one discount rule.
type Coupon struct {
	Codigo      string          `json:"codigo"`
	Tipo        string          `json:"tipo"`
	Valor       decimal.Decimal `json:"valor"`
	Descripcion string          `json:"descripcion"`
}

var catalog = map[string]Coupon{
	"TECH10": {
		Codigo:      "TECH10",
		Tipo:        KindPercent,
		Valor:       decimal.NewFromInt(10),
		Descripcion: "10% de descuento",
	},
	"WELCOME50": {
		Codigo:      "WELCOME50",
		Tipo:        KindFixed,
		Valor:       decimal.NewFromInt(50),
		Descripcion: "$50 pesos de descuento",
	},
	"STUDENT15": {
		Codigo:      "STUDENT15",
		Tipo:        KindPercent,
		Valor:       decimal.NewFromInt(15),
		Descripcion: "15% de descuento para estudiantes",
	},
}

// Lookup finds a coupon by code. Matching trims whitespace and is
// case-insensitive.
func Lookup(code string) (Coupon, error) {
	c, ok := catalog[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Coupon{}, ErrUnknownCoupon
	}
	return c, nil
}

// Discount computes the amount this coupon takes off the given subtotal.
// The result is clamped to [0, subtotal] so a total can never go negative.
func (c Coupon) Discount(subtotal decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal
	switch c.Tipo {
	case KindPercent:
		d = subtotal.Mul(c.Valor).Div(decimal.NewFromInt(100))
	case KindFixed:
		d = c.Valor
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(subtotal) {
		return subtotal
	}
	return d
}

// Resolve looks up a code and computes its discount against a subtotal in
// one step. It returns the coupon, the clamped discount and the new total.
func Resolve(code string, subtotal decimal.Decimal) (Coupon, decimal.Decimal, decimal.Decimal, error) {
	c, err := Lookup(code)
	if err != nil {
		return Coupon{}, decimal.Zero, decimal.Zero, err
	}
	d := c.Discount(subtotal)
	return c, d, subtotal.Sub(d), nil
}
