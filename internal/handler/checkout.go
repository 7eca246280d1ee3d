package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tech-up/commerce-api/internal/coupon"
	"github.com/tech-up/commerce-api/internal/metrics"
	"github.com/tech-up/commerce-api/internal/model"
	"github.com/tech-up/commerce-api/internal/repository"
	"github.com/tech-up/commerce-api/internal/service"
)

// CheckoutHandler serves POST /checkout.
type CheckoutHandler struct {
	Service *service.Checkout
	Log     zerolog.Logger
}

type shippingDTO struct {
	Nombre    string `json:"nombre" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Direccion string `json:"direccion" validate:"required"`
}

type checkoutRequest struct {
	Items        []cartItemDTO   `json:"items" validate:"required,min=1,dive"`
	ShippingData shippingDTO     `json:"shippingData" validate:"required"`
	CodigoCupon  string          `json:"codigo_cupon"`
	Total        decimal.Decimal `json:"total"`
	MetodoPago   string          `json:"metodoPago" validate:"required"`
}

// Checkout runs the full order pipeline and answers with the committed
// order's id and reference.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	var req checkoutRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	items := make([]model.CartItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, model.CartItem{ProductID: it.ProductID, Cantidad: it.Cantidad})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	res, err := h.Service.Process(ctx, service.CheckoutRequest{
		Items: items,
		Shipping: model.ShippingInfo{
			Nombre:    req.ShippingData.Nombre,
			Email:     req.ShippingData.Email,
			Direccion: req.ShippingData.Direccion,
		},
		CodigoCupon: req.CodigoCupon,
		ClientTotal: req.Total,
		MetodoPago:  req.MetodoPago,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			metrics.CheckoutFailuresTotal.WithLabelValues("empty_cart").Inc()
			return fail(c, http.StatusBadRequest, "El carrito está vacío")
		case errors.Is(err, coupon.ErrUnknownCoupon):
			metrics.CheckoutFailuresTotal.WithLabelValues("invalid_coupon").Inc()
			return fail(c, http.StatusBadRequest, "Cupón no válido")
		case errors.Is(err, repository.ErrInsufficientStock):
			metrics.CheckoutFailuresTotal.WithLabelValues("insufficient_stock").Inc()
			return fail(c, http.StatusConflict, "Stock insuficiente para completar la compra")
		default:
			metrics.CheckoutFailuresTotal.WithLabelValues("store_error").Inc()
			h.Log.Error().Err(err).Msg("checkout failed")
			return fail(c, http.StatusInternalServerError, "No se pudo procesar la compra")
		}
	}

	couponLabel := "none"
	if req.CodigoCupon != "" {
		couponLabel = req.CodigoCupon
	}
	metrics.OrdersCreatedTotal.WithLabelValues(couponLabel).Inc()

	return okMsg(c, http.StatusCreated, "Compra realizada con éxito", res)
}
