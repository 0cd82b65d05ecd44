package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/utafrali/audiophile/internal/config"
	"github.com/utafrali/audiophile/internal/content"
	"github.com/utafrali/audiophile/internal/event"
	handler "github.com/utafrali/audiophile/internal/handler/http"
	redisrepo "github.com/utafrali/audiophile/internal/repository/redis"
	"github.com/utafrali/audiophile/internal/service"
	"github.com/utafrali/audiophile/internal/session"
	"github.com/utafrali/audiophile/pkg/database"
	"github.com/utafrali/audiophile/pkg/health"
	"github.com/utafrali/audiophile/pkg/httpclient"
	pkgkafka "github.com/utafrali/audiophile/pkg/kafka"
	"github.com/utafrali/audiophile/pkg/tracing"
)

const serviceName = "storefront"

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
	stopBackground context.CancelFunc
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTELEndpoint,
		Insecure:     cfg.OTELInsecure,
		SampleRate:   cfg.OTELSampleRate,
		Enabled:      cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize Redis client.
	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:          cfg.RedisAddr,
		Password:      cfg.RedisPass,
		DB:            cfg.RedisDB,
		PoolSize:      cfg.RedisPoolSize,
		SlowThreshold: time.Duration(cfg.SlowCommandMs) * time.Millisecond,
	}, logger)
	if err != nil {
		_ = tracerShutdown(context.Background())
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, rdb, serviceName); err != nil {
		logger.Warn("failed to register redis pool metrics", slog.String("error", err.Error()))
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Content repository client behind a circuit breaker.
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = time.Duration(cfg.ContentTimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.ContentMaxRetries
	breaker := httpclient.NewCircuitBreakerClient(httpclient.New(httpCfg), httpclient.CircuitBreakerConfig{
		Name:         "content",
		MaxRequests:  cfg.CBMaxRequests,
		Interval:     time.Duration(cfg.CBInterval) * time.Second,
		Timeout:      time.Duration(cfg.CBTimeout) * time.Second,
		FailureRatio: cfg.CBFailureRatio,
		MinRequests:  cfg.CBMinRequests,
	}, logger)
	contentClient := content.NewClient(content.Config{
		ProjectID:  cfg.ContentProjectID,
		Dataset:    cfg.ContentDataset,
		APIVersion: cfg.ContentAPIVersion,
		BaseURL:    cfg.ContentBaseURL,
		Token:      cfg.ContentAPIToken,
	}, breaker, logger)

	// Domain events are optional.
	var (
		producer  *pkgkafka.Producer
		publisher event.Publisher = event.NoopPublisher{}
	)
	if cfg.KafkaEnabled {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = event.NewProducer(producer, logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Build the dependency graph.
	cartRepo := redisrepo.NewCartRepository(rdb, cfg.CartTTLDuration())
	orderRepo := redisrepo.NewOrderRepository(rdb)
	sessionRepo := redisrepo.NewSessionRepository(rdb, cfg.SessionTTLDuration())

	cartService := service.NewCartService(cartRepo, publisher, logger, cfg.DefaultCurrency)
	services := handler.Services{
		Catalog:  service.NewCatalogService(contentClient, logger),
		Cart:     cartService,
		Checkout: service.NewCheckoutService(cartService, orderRepo, contentClient, publisher, cfg.Pricing(), logger),
		Orders:   service.NewOrderService(orderRepo, logger),
	}

	sessions := session.Middleware(session.NewResolver(sessionRepo, logger), session.CookieConfig{
		Name:   cfg.SessionCookieName,
		MaxAge: cfg.SessionTTLDuration(),
		Secure: !cfg.IsDevelopment(),
	})

	// Health checks.
	healthHandler := health.NewHandler(3 * time.Second)
	healthHandler.Register("redis", database.RedisChecker(rdb))
	healthHandler.Register("content", contentClient.Ping)
	if producer != nil {
		healthHandler.RegisterOptional("kafka", producer.Ping)
	}

	// HTTP router. Background middleware goroutines live as long as the app.
	bgCtx, stopBackground := context.WithCancel(context.Background())
	requestTimeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	router := handler.NewRouter(bgCtx, services, healthHandler, sessions, handler.RouterConfig{
		CORSOrigins:    cfg.CORSAllowedOrigins,
		PprofCIDRs:     cfg.PprofAllowedCIDRs,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		CatalogMaxAge:  cfg.CatalogCacheSeconds,
		RequestTimeout: requestTimeout,
	}, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		rdb:            rdb,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
		stopBackground: stopBackground,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}
	a.stopBackground()

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
