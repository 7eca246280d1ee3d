// Package cart reconciles client-submitted carts against the catalog. The
// server keeps no cart state of its own: every request carries the full
// cart and is validated from scratch, so validating the same cart twice
// without intervening stock changes yields identical results.
package cart

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tech-up/commerce-api/internal/model"
)

// ProductSource is the read-only slice of the product repository the
// validator needs.
type ProductSource interface {
	FindByBusinessIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

// Validator checks cart lines against authoritative product records.
type Validator struct {
	products ProductSource
	log      zerolog.Logger
}

// NewValidator returns a Validator reading from the given product source.
func NewValidator(products ProductSource, log zerolog.Logger) *Validator {
	return &Validator{products: products, log: log}
}

// Validate resolves each requested line against the catalog and returns the
// surviving lines with authoritative prices plus the cart subtotal.
//
//   - Unknown product ids are dropped with a warning, not a hard error.
//   - The effective quantity is min(requested, stock); items whose stock is
//     exhausted are dropped entirely.
//   - Duplicate lines for the same product are merged before clamping.
//
// A store error fails the whole call; no partial cart is returned.
func (v *Validator) Validate(ctx context.Context, items []model.CartItem) (*model.ValidatedCart, error) {
	empty := &model.ValidatedCart{Items: []model.CartLine{}, Subtotal: decimal.Zero}
	if len(items) == 0 {
		return empty, nil
	}

	// Merge duplicates and collect the ids to fetch, preserving order.
	wanted := make(map[string]int, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.ProductID == "" || it.Cantidad <= 0 {
			continue
		}
		if _, ok := wanted[it.ProductID]; !ok {
			ids = append(ids, it.ProductID)
		}
		wanted[it.ProductID] += it.Cantidad
	}
	if len(ids) == 0 {
		return empty, nil
	}

	products, err := v.products.FindByBusinessIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ProductID] = p
	}

	lines := make([]model.CartLine, 0, len(ids))
	subtotal := decimal.Zero
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			v.log.Warn().Str("product_id", id).Msg("cart references unknown product, dropping line")
			continue
		}
		cantidad := wanted[id]
		if int(p.Stock) < cantidad {
			cantidad = int(p.Stock)
		}
		if cantidad <= 0 {
			v.log.Warn().Str("product_id", id).Msg("product out of stock, dropping line")
			continue
		}
		line := model.CartLine{
			ProductID:       p.ProductID,
			Nombre:          p.Nombre,
			Precio:          p.Precio,
			Imagen:          p.Imagen,
			Categoria:       p.Categoria,
			Cantidad:        cantidad,
			StockDisponible: p.Stock,
			SubtotalItem:    p.Precio.Mul(decimal.NewFromInt(int64(cantidad))),
		}
		lines = append(lines, line)
		subtotal = subtotal.Add(line.SubtotalItem)
	}

	return &model.ValidatedCart{Items: lines, Subtotal: subtotal}, nil
}
