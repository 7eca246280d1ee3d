package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tech-up/commerce-api/internal/repository"
)

// OrderHandler serves order lookups after checkout.
type OrderHandler struct {
	Orders *repository.OrderRepo
	Log    zerolog.Logger
}

// Get handles GET /orders/:reference, returning the committed order and
// its lines. The reference is the opaque id handed out at checkout, so
// guessing other customers' orders is impractical.
func (h *OrderHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	order, items, err := h.Orders.GetByReference(ctx, c.Param("reference"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Orden no encontrada")
		}
		h.Log.Error().Err(err).Msg("order lookup failed")
		return fail(c, http.StatusInternalServerError, "No se pudo cargar la orden")
	}

	return ok(c, http.StatusOK, echo.Map{"orden": order, "items": items})
}
