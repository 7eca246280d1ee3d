package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tech-up/commerce-api/internal/model"
)

// RequireRole enforces that the authenticated user carries one of the
// given roles in its token. JWTAuth must run earlier in the chain.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxRole).(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "Acceso restringido a administradores"})
			}
			return next(c)
		}
	}
}

// RequireAdmin restricts a route to the admin role.
func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole(model.RoleAdmin)
}
