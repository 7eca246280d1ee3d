package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	DB *sql.DB
}

// Healthz handles GET /healthz. A failing database ping degrades the
// answer to 503 so orchestrators stop routing traffic here.
func (h *HealthHandler) Healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "degraded", "db": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
