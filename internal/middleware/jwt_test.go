package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tech-up/commerce-api/internal/model"
	"github.com/tech-up/commerce-api/internal/utils"
)

const testSecret = "unit-test-secret"

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	return rec, c
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAuthToken(testSecret, 42, "ana@example.com", model.RoleUser, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	rec, c := doRequest(t, JWTAuth(testSecret), "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if got, _ := c.Get(CtxEmail).(string); got != "ana@example.com" {
		t.Errorf("email claim = %q", got)
	}
	if got, _ := c.Get(CtxRole).(string); got != model.RoleUser {
		t.Errorf("rol claim = %q", got)
	}
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _ := doRequest(t, JWTAuth(testSecret), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAuthToken("another-secret", 42, "ana@example.com", model.RoleUser, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	rec, _ := doRequest(t, JWTAuth(testSecret), "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	tok, err := utils.NewAuthToken(testSecret, 42, "ana@example.com", model.RoleUser, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	rec, _ := doRequest(t, JWTAuth(testSecret), "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()

	run := func(role interface{}) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set(CtxRole, role)
		}
		h := RequireAdmin()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
		if err := h(c); err != nil {
			t.Fatal(err)
		}
		return rec.Code
	}

	if code := run(model.RoleAdmin); code != http.StatusOK {
		t.Errorf("admin rejected: %d", code)
	}
	if code := run(model.RoleUser); code != http.StatusForbidden {
		t.Errorf("user allowed: %d", code)
	}
	if code := run(nil); code != http.StatusForbidden {
		t.Errorf("missing role allowed: %d", code)
	}
}
