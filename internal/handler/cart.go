package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tech-up/commerce-api/internal/cart"
	"github.com/tech-up/commerce-api/internal/coupon"
	"github.com/tech-up/commerce-api/internal/model"
)

// CartHandler serves the storefront cart endpoints.
type CartHandler struct {
	Validator *cart.Validator
	Log       zerolog.Logger
}

type validateCartRequest struct {
	Items []cartItemDTO `json:"items" validate:"required,min=1,dive"`
}

type cartItemDTO struct {
	ProductID string `json:"product_id" validate:"required"`
	Cantidad  int    `json:"cantidad" validate:"required,gt=0"`
}

// ValidateCart handles POST /cart/validate. Unknown products and
// exhausted stock are dropped, quantities are clamped, and the subtotal
// is recomputed from the catalog prices.
func (h *CartHandler) ValidateCart(c echo.Context) error {
	var req validateCartRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	items := make([]model.CartItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, model.CartItem{ProductID: it.ProductID, Cantidad: it.Cantidad})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	validated, err := h.Validator.Validate(ctx, items)
	if err != nil {
		h.Log.Error().Err(err).Msg("cart validation failed")
		return fail(c, http.StatusInternalServerError, "No se pudo validar el carrito")
	}
	return ok(c, http.StatusOK, validated)
}

type applyCouponRequest struct {
	CodigoCupon string          `json:"codigo_cupon"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type applyCouponResponse struct {
	Cupon      string          `json:"cupon"`
	Tipo       string          `json:"tipo"`
	Descuento  decimal.Decimal `json:"descuento"`
	NuevoTotal decimal.Decimal `json:"nuevo_total"`
}

// ApplyCoupon handles POST /cart/apply-coupon.
func (h *CartHandler) ApplyCoupon(c echo.Context) error {
	var req applyCouponRequest
	if !bindAndValidate(c, &req) {
		return nil
	}
	if req.CodigoCupon == "" {
		return fail(c, http.StatusBadRequest, "Debes ingresar un cupón")
	}
	if req.Subtotal.LessThanOrEqual(decimal.Zero) {
		return fail(c, http.StatusBadRequest, "El carrito está vacío")
	}

	cp, descuento, nuevoTotal, err := coupon.Resolve(req.CodigoCupon, req.Subtotal)
	if err != nil {
		if errors.Is(err, coupon.ErrUnknownCoupon) {
			return fail(c, http.StatusNotFound, "Cupón no válido")
		}
		return fail(c, http.StatusInternalServerError, "No se pudo aplicar el cupón")
	}

	return ok(c, http.StatusOK, applyCouponResponse{
		Cupon:      cp.Codigo,
		Tipo:       cp.Tipo,
		Descuento:  descuento,
		NuevoTotal: nuevoTotal,
	})
}
