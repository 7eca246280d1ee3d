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

// ProductHandler serves the public catalog reads.
type ProductHandler struct {
	Products *repository.ProductRepo
	Log      zerolog.Logger
}

// List handles GET /products with the optional filters categoria, oferta
// and precio (bucket labels 0-10000, 10001-30000, 30001+ come straight
// from the storefront UI).
func (h *ProductHandler) List(c echo.Context) error {
	filter := repository.ProductFilter{
		Categoria: c.QueryParam("categoria"),
		Precio:    c.QueryParam("precio"),
	}
	switch c.QueryParam("oferta") {
	case "true", "1":
		t := true
		filter.Oferta = &t
	case "false", "0":
		f := false
		filter.Oferta = &f
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	products, err := h.Products.List(ctx, filter)
	if err != nil {
		h.Log.Error().Err(err).Msg("product list failed")
		return fail(c, http.StatusInternalServerError, "No se pudieron cargar los productos")
	}
	return ok(c, http.StatusOK, products)
}

// Get handles GET /products/:id, where :id is the public business key.
func (h *ProductHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.GetByBusinessID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Producto no encontrado")
		}
		h.Log.Error().Err(err).Msg("product lookup failed")
		return fail(c, http.StatusInternalServerError, "No se pudo cargar el producto")
	}
	return ok(c, http.StatusOK, p)
}
