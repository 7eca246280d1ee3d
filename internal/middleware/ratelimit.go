package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RateLimit applies a fixed-window per-IP limit backed by Redis. Each
// client IP gets at most limit requests per minute. When Redis is
// unavailable the limiter fails open so the API keeps serving.
func RateLimit(rdb *redis.Client, limit int, log zerolog.Logger) echo.MiddlewareFunc {
	if rdb == nil || limit <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			window := time.Now().UTC().Unix() / 60
			key := fmt.Sprintf("ratelimit:%s:%d", c.RealIP(), window)

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if count == 1 {
				rdb.Expire(ctx, key, time.Minute)
			}
			if count > int64(limit) {
				c.Response().Header().Set("Retry-After", "60")
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"success": false,
					"message": "Demasiadas solicitudes, intenta de nuevo en un momento",
				})
			}
			return next(c)
		}
	}
}
