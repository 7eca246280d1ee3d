package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tech-up/commerce-api/internal/mailer"
	"github.com/tech-up/commerce-api/internal/repository"
)

// SubscriptionHandler serves the newsletter endpoints.
type SubscriptionHandler struct {
	Subs *repository.SubscriptionRepo
	Mail mailer.Sender
	// AdminEmail receives a notice for every new subscriber. Empty
	// disables the notice.
	AdminEmail string
	Log        zerolog.Logger
}

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Subscribe handles POST /subscriptions. The welcome email and the admin
// notice are best-effort; the subscription row is the source of truth.
func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	var req subscribeRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Subs.Add(ctx, req.Email); err != nil {
		if errors.Is(err, repository.ErrAlreadySubscribed) {
			return fail(c, http.StatusConflict, "Este correo ya está suscrito")
		}
		h.Log.Error().Err(err).Msg("subscription insert failed")
		return fail(c, http.StatusInternalServerError, "No se pudo completar la suscripción")
	}

	h.sendNotices(ctx, req.Email)

	return okMsg(c, http.StatusCreated, "¡Gracias por suscribirte! Revisa tu correo", nil)
}

func (h *SubscriptionHandler) sendNotices(ctx context.Context, email string) {
	if err := h.Mail.Send(ctx, mailer.WelcomeMessage(email)); err != nil && !errors.Is(err, mailer.ErrNotConfigured) {
		h.Log.Warn().Err(err).Str("email", email).Msg("welcome email failed")
	}

	if h.AdminEmail == "" {
		return
	}
	msg := mailer.AdminSubscriptionNotice(h.AdminEmail, email, time.Now().UTC())
	if err := h.Mail.Send(ctx, msg); err != nil && !errors.Is(err, mailer.ErrNotConfigured) {
		h.Log.Warn().Err(err).Msg("admin notice failed")
	}
}

type subscriptionStats struct {
	Total            int        `json:"totalSuscriptores"`
	Recientes        int        `json:"suscriptoresRecientes"`
	UltimaFecha      *time.Time `json:"ultimaSuscripcion"`
	GeneradoEn       time.Time  `json:"generadoEn"`
	VentanaRecientes string     `json:"ventanaRecientes"`
}

// Stats handles GET /subscriptions/stats. "Recent" means the last six
// months, computed here rather than in SQL so the window definition lives
// in one place.
func (h *SubscriptionHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	subs, err := h.Subs.ListActive(ctx)
	if err != nil {
		h.Log.Error().Err(err).Msg("subscription list failed")
		return fail(c, http.StatusInternalServerError, "No se pudieron cargar las estadísticas")
	}

	now := time.Now().UTC()
	cutoff := now.AddDate(0, -6, 0)

	stats := subscriptionStats{
		Total:            len(subs),
		GeneradoEn:       now,
		VentanaRecientes: "6m",
	}
	for i := range subs {
		if subs[i].FechaSuscripcion.After(cutoff) {
			stats.Recientes++
		}
		if stats.UltimaFecha == nil || subs[i].FechaSuscripcion.After(*stats.UltimaFecha) {
			f := subs[i].FechaSuscripcion
			stats.UltimaFecha = &f
		}
	}

	return ok(c, http.StatusOK, stats)
}

// List handles GET /subscriptions (admin only).
func (h *SubscriptionHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	subs, err := h.Subs.ListActive(ctx)
	if err != nil {
		h.Log.Error().Err(err).Msg("subscription list failed")
		return fail(c, http.StatusInternalServerError, "No se pudieron cargar las suscripciones")
	}
	return ok(c, http.StatusOK, subs)
}
