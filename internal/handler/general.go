package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tech-up/commerce-api/internal/catalog"
	"github.com/tech-up/commerce-api/internal/mailer"
)

// GeneralHandler serves the small storefront endpoints that do not
// belong to a larger flow: the category taxonomy and the contact form.
type GeneralHandler struct {
	Mail mailer.Sender
	// TeamEmail receives contact-form submissions.
	TeamEmail string
	Log       zerolog.Logger
}

// Categories handles GET /categories.
func (h *GeneralHandler) Categories(c echo.Context) error {
	cats := catalog.Categories()
	return c.JSON(http.StatusOK, echo.Map{"success": true, "total": len(cats), "data": cats})
}

type contactRequest struct {
	Nombre  string `json:"nombre" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Asunto  string `json:"asunto"`
	Mensaje string `json:"mensaje" validate:"required"`
}

// Contact handles POST /contact. The submission is acknowledged even if
// the forwarding email fails; the failure is only logged.
func (h *GeneralHandler) Contact(c echo.Context) error {
	var req contactRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	if h.TeamEmail != "" {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
		defer cancel()

		msg := mailer.ContactMessage(h.TeamEmail, req.Nombre, req.Email, req.Asunto, req.Mensaje)
		if err := h.Mail.Send(ctx, msg); err != nil && !errors.Is(err, mailer.ErrNotConfigured) {
			h.Log.Warn().Err(err).Str("email", req.Email).Msg("contact forward failed")
		}
	}

	return okMsg(c, http.StatusOK, "Mensaje recibido, en breve te contactaremos", nil)
}
