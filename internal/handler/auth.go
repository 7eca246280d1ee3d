package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tech-up/commerce-api/internal/auth"
	"github.com/tech-up/commerce-api/internal/config"
	"github.com/tech-up/commerce-api/internal/mailer"
	"github.com/tech-up/commerce-api/internal/metrics"
	"github.com/tech-up/commerce-api/internal/repository"
	"github.com/tech-up/commerce-api/internal/utils"
)

const resetTokenTTL = time.Hour

// AuthHandler serves registration, login and the password-reset flow.
type AuthHandler struct {
	Users      *repository.UserRepo
	Mail       mailer.Sender
	JWT        config.JWTConfig
	BcryptCost int
	Log        zerolog.Logger
}

type registerRequest struct {
	Nombre     string `json:"nombre" validate:"required"`
	Correo     string `json:"correo" validate:"required,email"`
	Contrasena string `json:"contrasena" validate:"required"`
}

// Register handles POST /users/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if !bindAndValidate(c, &req) {
		return nil
	}
	if len(req.Contrasena) < utils.MinPasswordLength {
		return fail(c, http.StatusBadRequest, "La contraseña debe tener al menos 8 caracteres")
	}

	hash, err := utils.HashPassword(req.Contrasena, h.BcryptCost)
	if err != nil {
		h.Log.Error().Err(err).Msg("password hash failed")
		return fail(c, http.StatusInternalServerError, "No se pudo registrar el usuario")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Users.Create(ctx, req.Nombre, req.Correo, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return fail(c, http.StatusConflict, "El correo ya está registrado")
		}
		h.Log.Error().Err(err).Msg("user create failed")
		return fail(c, http.StatusInternalServerError, "No se pudo registrar el usuario")
	}

	return okMsg(c, http.StatusCreated, "Usuario registrado con éxito", echo.Map{"id": id})
}

type loginRequest struct {
	Correo     string `json:"correo" validate:"required,email"`
	Contrasena string `json:"contrasena" validate:"required"`
}

// Login handles POST /users/login. Three consecutive wrong passwords lock
// the account for five minutes; while locked every attempt is rejected
// even with the right password.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Correo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusUnauthorized, "Credenciales incorrectas")
		}
		h.Log.Error().Err(err).Msg("user lookup failed")
		return fail(c, http.StatusInternalServerError, "No se pudo iniciar sesión")
	}

	passwordOK := utils.VerifyPassword(u.Contrasena, req.Contrasena)
	d := auth.Evaluate(u.IntentosFallidos, u.CuentaBloqueada, time.Now().UTC(), passwordOK)

	if d.Locked {
		return fail(c, http.StatusForbidden, "Cuenta bloqueada temporalmente, intenta más tarde")
	}

	if err := h.Users.SaveLoginState(ctx, u.ID, d.Failures, d.LockedUntil); err != nil {
		h.Log.Error().Err(err).Uint64("user_id", u.ID).Msg("login state save failed")
		return fail(c, http.StatusInternalServerError, "No se pudo iniciar sesión")
	}

	if !d.Allow {
		if d.LockedUntil != nil {
			metrics.LoginLockoutsTotal.Inc()
			h.Log.Warn().Uint64("user_id", u.ID).Time("hasta", *d.LockedUntil).Msg("account locked after repeated failures")
			return fail(c, http.StatusForbidden, "Cuenta bloqueada temporalmente, intenta más tarde")
		}
		return fail(c, http.StatusUnauthorized, "Credenciales incorrectas")
	}

	tok, err := utils.NewAuthToken(h.JWT.Secret, u.ID, u.Correo, u.Rol, h.JWT.Expires)
	if err != nil {
		h.Log.Error().Err(err).Msg("token signing failed")
		return fail(c, http.StatusInternalServerError, "No se pudo iniciar sesión")
	}

	return okMsg(c, http.StatusOK, "Inicio de sesión exitoso", echo.Map{
		"token": tok.Token,
		"exp":   tok.Exp.Unix(),
		"usuario": echo.Map{
			"id":     u.ID,
			"nombre": u.Nombre,
			"correo": u.Correo,
			"rol":    u.Rol,
		},
	})
}

type forgotPasswordRequest struct {
	Correo string `json:"correo" validate:"required,email"`
}

// ForgotPassword handles POST /users/forgot-password. The response is the
// same whether or not the account exists, so the endpoint cannot be used
// to enumerate registered emails.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	const answer = "Si el correo está registrado, recibirás un enlace para restablecer tu contraseña"

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Correo)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.Log.Error().Err(err).Msg("user lookup failed")
		}
		return okMsg(c, http.StatusOK, answer, nil)
	}

	token, err := utils.RandomHex(32)
	if err != nil {
		h.Log.Error().Err(err).Msg("reset token generation failed")
		return okMsg(c, http.StatusOK, answer, nil)
	}

	expires := time.Now().UTC().Add(resetTokenTTL)
	if err := h.Users.SaveResetToken(ctx, u.ID, token, expires); err != nil {
		h.Log.Error().Err(err).Uint64("user_id", u.ID).Msg("reset token save failed")
		return okMsg(c, http.StatusOK, answer, nil)
	}

	if err := h.Mail.Send(ctx, mailer.PasswordReset(u.Correo, token)); err != nil && !errors.Is(err, mailer.ErrNotConfigured) {
		h.Log.Warn().Err(err).Uint64("user_id", u.ID).Msg("reset email failed")
	}

	return okMsg(c, http.StatusOK, answer, nil)
}

type resetPasswordRequest struct {
	Token      string `json:"token" validate:"required"`
	Contrasena string `json:"contrasena" validate:"required"`
}

// ResetPassword handles POST /users/reset-password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if !bindAndValidate(c, &req) {
		return nil
	}
	if len(req.Contrasena) < utils.MinPasswordLength {
		return fail(c, http.StatusBadRequest, "La contraseña debe tener al menos 8 caracteres")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusBadRequest, "El enlace de restablecimiento no es válido o ya expiró")
		}
		h.Log.Error().Err(err).Msg("reset token lookup failed")
		return fail(c, http.StatusInternalServerError, "No se pudo restablecer la contraseña")
	}

	hash, err := utils.HashPassword(req.Contrasena, h.BcryptCost)
	if err != nil {
		h.Log.Error().Err(err).Msg("password hash failed")
		return fail(c, http.StatusInternalServerError, "No se pudo restablecer la contraseña")
	}
	if err := h.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		h.Log.Error().Err(err).Uint64("user_id", u.ID).Msg("password update failed")
		return fail(c, http.StatusInternalServerError, "No se pudo restablecer la contraseña")
	}

	return okMsg(c, http.StatusOK, "Contraseña actualizada con éxito", nil)
}
