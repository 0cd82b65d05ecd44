package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/audiophile/internal/service"
	"github.com/utafrali/audiophile/pkg/health"
	"github.com/utafrali/audiophile/pkg/middleware"
)

const serviceName = "storefront"

// Services groups the application services the router exposes.
type Services struct {
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Checkout *service.CheckoutService
	Orders   *service.OrderService
}

// RouterConfig holds the HTTP surface settings.
type RouterConfig struct {
	CORSOrigins    []string
	PprofCIDRs     []string
	RateLimitRPS   float64
	RateLimitBurst int
	CatalogMaxAge  int
	RequestTimeout time.Duration
}

// NewRouter creates a chi router with all storefront routes registered. The
// rate limiter's sweeper stops when ctx is cancelled.
func NewRouter(
	ctx context.Context,
	svc Services,
	healthHandler *health.Handler,
	sessions func(http.Handler) http.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	catalogHandler := NewCatalogHandler(svc.Catalog, logger)
	cartHandler := NewCartHandler(svc.Cart, svc.Checkout, logger)
	checkoutHandler := NewCheckoutHandler(svc.Checkout, logger)
	orderHandler := NewOrderHandler(svc.Orders, logger)

	limit := middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Use(middleware.CacheControl(cfg.CatalogMaxAge))

			r.Get("/categories", catalogHandler.ListCategories)
			r.Get("/categories/{categorySlug}", catalogHandler.GetCategory)
			r.Get("/products/{slug}", catalogHandler.GetProduct)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(sessions)

			r.Get("/cart", cartHandler.GetCart)
			r.Get("/checkout", checkoutHandler.GetSummary)
			r.Get("/orders", orderHandler.ListOrders)
			r.Get("/orders/{orderId}", orderHandler.GetOrder)

			// Mutations
			r.Group(func(r chi.Router) {
				r.Use(limit)
				r.Use(middleware.RequireJSON)

				r.Post("/cart/items", cartHandler.AddItem)
				r.Put("/cart", cartHandler.ReplaceItems)
				r.Delete("/cart", cartHandler.ClearCart)
				r.Patch("/cart/{productId}", cartHandler.UpdateItem)
				r.Delete("/cart/{productId}", cartHandler.RemoveItem)
				r.Post("/checkout", checkoutHandler.PlaceOrder)
			})
		})
	})

	return r
}
