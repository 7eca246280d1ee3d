package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tech-up/commerce-api/internal/mailer"
	"github.com/tech-up/commerce-api/internal/metrics"
	"github.com/tech-up/commerce-api/internal/promo"
)

// PromotionHandler serves the admin promotional-email endpoints.
type PromotionHandler struct {
	Broadcast *promo.Broadcaster
	Mail      mailer.Sender
	Log       zerolog.Logger
}

type promotionDTO struct {
	Titulo      string `json:"titulo" validate:"required"`
	Descripcion string `json:"descripcion" validate:"required"`
	CodigoCupon string `json:"codigo_cupon"`
	ImagenURL   string `json:"imagen_url"`
}

func (p promotionDTO) toPromotion() mailer.Promotion {
	return mailer.Promotion{
		Title:        p.Titulo,
		Description:  p.Descripcion,
		DiscountCode: p.CodigoCupon,
		ImageURL:     p.ImagenURL,
	}
}

type sendPromotionRequest struct {
	promotionDTO
	Email string `json:"email" validate:"required,email"`
}

// Send handles POST /promotions/send, delivering one promotional email to
// a single recipient.
func (h *PromotionHandler) Send(c echo.Context) error {
	var req sendPromotionRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	if err := h.Mail.Send(ctx, mailer.PromotionMessage(req.Email, req.toPromotion())); err != nil {
		metrics.PromoEmailsTotal.WithLabelValues("failed").Inc()
		if errors.Is(err, mailer.ErrNotConfigured) {
			return fail(c, http.StatusServiceUnavailable, "El servicio de correo no está configurado")
		}
		h.Log.Error().Err(err).Str("email", req.Email).Msg("promotional send failed")
		return fail(c, http.StatusInternalServerError, "No se pudo enviar el correo promocional")
	}

	metrics.PromoEmailsTotal.WithLabelValues("sent").Inc()
	return okMsg(c, http.StatusOK, "Correo promocional enviado", nil)
}

type sendAllRequest struct {
	promotionDTO
}

// SendAll handles POST /promotions/send-all, broadcasting to every active
// subscriber. The response tallies successes and failures; a failed
// recipient never aborts the rest of the broadcast.
func (h *PromotionHandler) SendAll(c echo.Context) error {
	var req sendAllRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	// No per-request deadline: a large list at 500ms per send takes a
	// while by design.
	sum, err := h.Broadcast.SendToAll(c.Request().Context(), req.toPromotion())
	metrics.PromoEmailsTotal.WithLabelValues("sent").Add(float64(sum.Exitosos))
	metrics.PromoEmailsTotal.WithLabelValues("failed").Add(float64(sum.Fallidos))
	if err != nil {
		h.Log.Error().Err(err).Msg("promotional broadcast aborted")
		return fail(c, http.StatusInternalServerError, "No se pudo completar el envío masivo")
	}

	return okMsg(c, http.StatusOK, "Envío masivo completado", sum)
}
