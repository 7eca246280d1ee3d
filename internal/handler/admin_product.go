package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tech-up/commerce-api/internal/model"
	"github.com/tech-up/commerce-api/internal/repository"
)

// AdminProductHandler serves the authenticated catalog management
// endpoints. RequireAdmin runs before every route here.
type AdminProductHandler struct {
	Products *repository.ProductRepo
	Log      zerolog.Logger
}

type productRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	Nombre      string          `json:"nombre" validate:"required"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio" validate:"required"`
	Stock       uint32          `json:"stock"`
	Categoria   string          `json:"categoria" validate:"required"`
	EnOferta    bool            `json:"en_oferta"`
	Imagen      string          `json:"imagen"`
}

func (r productRequest) toModel() model.Product {
	return model.Product{
		ProductID:   r.ProductID,
		Nombre:      r.Nombre,
		Descripcion: r.Descripcion,
		Precio:      r.Precio,
		Stock:       r.Stock,
		Categoria:   r.Categoria,
		EnOferta:    r.EnOferta,
		Imagen:      r.Imagen,
	}
}

// Create handles POST /admin/products.
func (h *AdminProductHandler) Create(c echo.Context) error {
	var req productRequest
	if !bindAndValidate(c, &req) {
		return nil
	}
	if req.Precio.IsNegative() {
		return fail(c, http.StatusBadRequest, "El precio no puede ser negativo")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := req.toModel()
	id, err := h.Products.Create(ctx, &p)
	if err != nil {
		if errors.Is(err, repository.ErrProductExists) {
			return fail(c, http.StatusConflict, "Ya existe un producto con ese identificador")
		}
		h.Log.Error().Err(err).Msg("product create failed")
		return fail(c, http.StatusInternalServerError, "No se pudo crear el producto")
	}
	p.ID = id
	return okMsg(c, http.StatusCreated, "Producto creado", p)
}

// Update handles PUT /admin/products/:id, where :id is the surrogate key.
func (h *AdminProductHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Identificador inválido")
	}

	var req productRequest
	if !bindAndValidate(c, &req) {
		return nil
	}
	if req.Precio.IsNegative() {
		return fail(c, http.StatusBadRequest, "El precio no puede ser negativo")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := req.toModel()
	if err := h.Products.Update(ctx, id, &p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Producto no encontrado")
		}
		h.Log.Error().Err(err).Uint64("id", id).Msg("product update failed")
		return fail(c, http.StatusInternalServerError, "No se pudo actualizar el producto")
	}
	return okMsg(c, http.StatusOK, "Producto actualizado", nil)
}

// Delete handles DELETE /admin/products/:id.
func (h *AdminProductHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Identificador inválido")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Producto no encontrado")
		}
		h.Log.Error().Err(err).Uint64("id", id).Msg("product delete failed")
		return fail(c, http.StatusInternalServerError, "No se pudo eliminar el producto")
	}
	return okMsg(c, http.StatusOK, "Producto eliminado", nil)
}
