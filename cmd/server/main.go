// Command server runs the Tech-Up commerce API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/tech-up/commerce-api/internal/cart"
	"github.com/tech-up/commerce-api/internal/config"
	"github.com/tech-up/commerce-api/internal/database"
	"github.com/tech-up/commerce-api/internal/handler"
	"github.com/tech-up/commerce-api/internal/mailer"
	"github.com/tech-up/commerce-api/internal/metrics"
	"github.com/tech-up/commerce-api/internal/middleware"
	"github.com/tech-up/commerce-api/internal/promo"
	"github.com/tech-up/commerce-api/internal/queue"
	"github.com/tech-up/commerce-api/internal/repository"
	"github.com/tech-up/commerce-api/internal/router"
	"github.com/tech-up/commerce-api/internal/service"
	"github.com/tech-up/commerce-api/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallbackLog := logger.Init(logger.Options{})
		fallbackLog.Fatal().Err(err).Msg("configuration load failed")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting commerce api")

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	rdb := database.NewRedisClient(cfg.Redis)
	if rdb == nil {
		log.Warn().Str("addr", cfg.Redis.Addr).Msg("redis unavailable, cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}

	products := repository.NewProductRepo(db)
	orders := repository.NewOrderRepo(db)
	users := repository.NewUserRepo(db)
	subs := repository.NewSubscriptionRepo(db)

	mail := mailer.New(cfg.Mail, log)
	publisher := &queue.Publisher{URL: cfg.RabbitURL, Log: log}

	checkout := &service.Checkout{
		Cart:   cart.NewValidator(products, log),
		Orders: orders,
		Mail:   mail,
		Events: publisher,
		Log:    log,
	}

	h := router.Handlers{
		Cart:     &handler.CartHandler{Validator: checkout.Cart, Log: log},
		Checkout: &handler.CheckoutHandler{Service: checkout, Log: log},
		Product:  &handler.ProductHandler{Products: products, Log: log},
		Admin:    &handler.AdminProductHandler{Products: products, Log: log},
		Auth: &handler.AuthHandler{
			Users:      users,
			Mail:       mail,
			JWT:        cfg.JWT,
			BcryptCost: cfg.BcryptCost,
			Log:        log,
		},
		Subs: &handler.SubscriptionHandler{
			Subs:       subs,
			Mail:       mail,
			AdminEmail: cfg.Mail.AdminEmail,
			Log:        log,
		},
		Promo: &handler.PromotionHandler{
			Broadcast: &promo.Broadcaster{Mail: mail, Subs: subs, Log: log},
			Mail:      mail,
			Log:       log,
		},
		Orders: &handler.OrderHandler{Orders: orders, Log: log},
		General: &handler.GeneralHandler{
			Mail:      mail,
			TeamEmail: cfg.Mail.AdminEmail,
			Log:       log,
		},
		Health: &handler.HealthHandler{DB: db},
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Origins(),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(metrics.HTTPMiddleware())
	e.Use(middleware.RateLimit(rdb, cfg.RateLimitPerMin, log))

	router.Register(e, h, router.Options{
		JWTSecret: cfg.JWT.Secret,
		Redis:     rdb,
		CacheTTL:  cfg.CacheTTL,
		Log:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
