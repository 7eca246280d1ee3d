// Package metrics defines the Prometheus metrics exposed by the commerce
// API. It is the single source of truth for metric names, labels, and
// help strings; everything registers against the default registry.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "commerce"

// HTTPRequestsTotal counts finished HTTP requests.
// Labels:
//   - method: HTTP verb
//   - path: registered route pattern (e.g. "/products/:id")
//   - status: numeric response code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled, by route and status.",
	},
	[]string{"method", "path", "status"},
)

// HTTPRequestDuration measures request latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

// OrdersCreatedTotal counts committed orders.
// Label:
//   - coupon: the applied coupon code, or "none"
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders committed, by coupon code.",
	},
	[]string{"coupon"},
)

// CheckoutFailuresTotal counts checkouts that did not commit.
// Label:
//   - reason: "empty_cart", "invalid_coupon", "insufficient_stock" or "store_error"
var CheckoutFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_failures_total",
		Help:      "Total number of failed checkout attempts, by reason.",
	},
	[]string{"reason"},
)

// PromoEmailsTotal counts promotional email deliveries.
// Label:
//   - result: "sent" or "failed"
var PromoEmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "promo_emails_total",
		Help:      "Total number of promotional emails attempted, by result.",
	},
	[]string{"result"},
)

// LoginLockoutsTotal counts accounts entering the locked state.
var LoginLockoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_lockouts_total",
		Help:      "Total number of times an account was locked after repeated failed logins.",
	},
)

// HTTPMiddleware records request counts and latency for every route. It
// uses the registered route pattern rather than the raw URL so metric
// cardinality stays bounded.
func HTTPMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Response().Status)).Inc()
			HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
