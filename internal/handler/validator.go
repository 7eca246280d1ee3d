package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator adapts go-playground/validator to echo's c.Validate.
type RequestValidator struct {
	v *validator.Validate
}

// NewRequestValidator builds the validator used by every handler.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}

// bindAndValidate decodes the JSON body into req and runs the struct
// validation tags. Returns false after writing the 400 response.
func bindAndValidate(c echo.Context, req interface{}) bool {
	if err := c.Bind(req); err != nil {
		_ = fail(c, http.StatusBadRequest, "Datos de la solicitud inválidos")
		return false
	}
	if err := c.Validate(req); err != nil {
		_ = fail(c, http.StatusBadRequest, "Datos de la solicitud inválidos")
		return false
	}
	return true
}
