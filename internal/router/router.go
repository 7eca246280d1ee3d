// Package router wires handlers, middleware and route groups onto the
// Echo instance.
package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tech-up/commerce-api/internal/handler"
	"github.com/tech-up/commerce-api/internal/middleware"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Product  *handler.ProductHandler
	Admin    *handler.AdminProductHandler
	Auth     *handler.AuthHandler
	Subs     *handler.SubscriptionHandler
	Promo    *handler.PromotionHandler
	Orders   *handler.OrderHandler
	General  *handler.GeneralHandler
	Health   *handler.HealthHandler
}

// Options carries the cross-cutting dependencies routes need.
type Options struct {
	JWTSecret string
	Redis     *redis.Client
	CacheTTL  time.Duration
	Log       zerolog.Logger
}

// Register mounts every route. Catalog reads flow through the Redis
// response cache; admin and promotion groups sit behind JWT + admin role.
func Register(e *echo.Echo, h Handlers, opts Options) {
	e.GET("/healthz", h.Health.Healthz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Storefront.
	e.POST("/cart/validate", h.Cart.ValidateCart)
	e.POST("/cart/apply-coupon", h.Cart.ApplyCoupon)
	e.POST("/checkout", h.Checkout.Checkout)

	cached := middleware.CacheGET(opts.Redis, opts.CacheTTL, opts.Log)
	e.GET("/products", h.Product.List, cached)
	e.GET("/products/:id", h.Product.Get, cached)
	e.GET("/categories", h.General.Categories, cached)

	e.GET("/orders/:reference", h.Orders.Get)
	e.POST("/contact", h.General.Contact)

	// Accounts.
	users := e.Group("/users")
	users.POST("/register", h.Auth.Register)
	users.POST("/login", h.Auth.Login)
	users.POST("/forgot-password", h.Auth.ForgotPassword)
	users.POST("/reset-password", h.Auth.ResetPassword)

	// Newsletter.
	e.POST("/subscriptions", h.Subs.Subscribe)
	e.GET("/subscriptions/stats", h.Subs.Stats)

	// Admin surface.
	admin := e.Group("", middleware.JWTAuth(opts.JWTSecret), middleware.RequireAdmin())
	admin.GET("/subscriptions", h.Subs.List)
	admin.POST("/admin/products", h.Admin.Create)
	admin.PUT("/admin/products/:id", h.Admin.Update)
	admin.DELETE("/admin/products/:id", h.Admin.Delete)
	admin.POST("/promotions/send", h.Promo.Send)
	admin.POST("/promotions/send-all", h.Promo.SendAll)
}
