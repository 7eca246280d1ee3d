package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tech-up/commerce-api/internal/cart"
	"github.com/tech-up/commerce-api/internal/model"
)

type stubProducts struct {
	byID map[string]model.Product
}

func (s *stubProducts) FindByBusinessIDs(_ context.Context, ids []string) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := s.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}

func postJSON(e *echo.Echo, path, body string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

// asDecimal parses a JSON field that decimal marshals as a quoted number.
func asDecimal(t *testing.T, v any) decimal.Decimal {
	t.Helper()
	s, ok := v.(string)
	if !ok {
		t.Fatalf("expected string-encoded decimal, got %T (%v)", v, v)
	}
	return decimal.RequireFromString(s)
}

func TestValidateCartClampsAndPrices(t *testing.T) {
	products := &stubProducts{byID: map[string]model.Product{
		"P1": {ProductID: "P1", Nombre: "Laptop", Precio: decimal.RequireFromString("100.00"), Stock: 3},
	}}
	h := &CartHandler{Validator: cart.NewValidator(products, zerolog.Nop()), Log: zerolog.Nop()}

	e := newEcho()
	rec, c := postJSON(e, "/cart/validate", `{"items":[{"product_id":"P1","cantidad":10}]}`)
	if err := h.ValidateCart(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	resp := decodeEnvelope(t, rec)
	data := resp["data"].(map[string]any)
	items := data["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("items = %v", items)
	}
	line := items[0].(map[string]any)
	if line["cantidad"].(float64) != 3 {
		t.Errorf("cantidad = %v, want clamped to 3", line["cantidad"])
	}
	if sub := asDecimal(t, data["subtotal"]); !sub.Equal(decimal.RequireFromString("300")) {
		t.Errorf("subtotal = %s, want 300", sub)
	}
}

func TestValidateCartRejectsEmptyBody(t *testing.T) {
	h := &CartHandler{Validator: cart.NewValidator(&stubProducts{}, zerolog.Nop()), Log: zerolog.Nop()}

	e := newEcho()
	rec, c := postJSON(e, "/cart/validate", `{"items":[]}`)
	if err := h.ValidateCart(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestApplyCoupon(t *testing.T) {
	h := &CartHandler{Log: zerolog.Nop()}
	e := newEcho()

	cases := []struct {
		name       string
		body       string
		status     int
		message    string
		nuevoTotal string
	}{
		{
			name:       "percent coupon",
			body:       `{"codigo_cupon":"TECH10","subtotal":"200.00"}`,
			status:     http.StatusOK,
			nuevoTotal: "180",
		},
		{
			name:    "missing code",
			body:    `{"codigo_cupon":"","subtotal":"200.00"}`,
			status:  http.StatusBadRequest,
			message: "Debes ingresar un cupón",
		},
		{
			name:    "zero subtotal",
			body:    `{"codigo_cupon":"TECH10","subtotal":"0"}`,
			status:  http.StatusBadRequest,
			message: "El carrito está vacío",
		},
		{
			name:    "unknown code",
			body:    `{"codigo_cupon":"FAKE123","subtotal":"200.00"}`,
			status:  http.StatusNotFound,
			message: "Cupón no válido",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, c := postJSON(e, "/cart/apply-coupon", tc.body)
			if err := h.ApplyCoupon(c); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.status, rec.Body)
			}
			resp := decodeEnvelope(t, rec)
			if tc.message != "" && resp["message"] != tc.message {
				t.Errorf("message = %v, want %q", resp["message"], tc.message)
			}
			if tc.nuevoTotal != "" {
				data := resp["data"].(map[string]any)
				got := asDecimal(t, data["nuevo_total"])
				if !got.Equal(decimal.RequireFromString(tc.nuevoTotal)) {
					t.Errorf("nuevo_total = %s, want %s", got, tc.nuevoTotal)
				}
			}
		})
	}
}
