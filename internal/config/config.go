package config

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/shopspring/decimal"

	"github.com/utafrali/audiophile/internal/domain"
	pkgconfig "github.com/utafrali/audiophile/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort              int      `env:"HTTP_PORT" envDefault:"8080"`
	RequestTimeoutSeconds int      `env:"HTTP_REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
	CORSAllowedOrigins    []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
	CatalogCacheSeconds   int      `env:"CATALOG_CACHE_SECONDS" envDefault:"60"`

	// Rate limiting of cart and checkout mutations, per client IP
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`

	// Redis
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass     string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
	SlowCommandMs int    `env:"LOG_SLOW_COMMAND_MS" envDefault:"100"`

	// Cart TTL in hours (default: 7 days), session TTL (default: 1 year)
	CartTTL           int    `env:"CART_TTL_HOURS" envDefault:"168"`
	SessionTTL        int    `env:"SESSION_TTL_HOURS" envDefault:"8760"`
	SessionCookieName string `env:"SESSION_COOKIE_NAME" envDefault:"audiophile-user-id"`

	// Content repository
	ContentProjectID      string `env:"CONTENT_PROJECT_ID"`
	ContentDataset        string `env:"CONTENT_DATASET" envDefault:"production"`
	ContentAPIVersion     string `env:"CONTENT_API_VERSION" envDefault:"2023-05-09"`
	ContentBaseURL        string `env:"CONTENT_BASE_URL"`
	ContentAPIToken       string `env:"CONTENT_API_TOKEN"`
	ContentTimeoutSeconds int    `env:"CONTENT_TIMEOUT_SECONDS" envDefault:"10"`
	ContentMaxRetries     int    `env:"CONTENT_MAX_RETRIES" envDefault:"0"`

	// Circuit breaker around the content repository
	CBMaxRequests  uint32  `env:"CB_MAX_REQUESTS" envDefault:"1"`
	CBInterval     int     `env:"CB_INTERVAL_SECONDS" envDefault:"60"`
	CBTimeout      int     `env:"CB_TIMEOUT_SECONDS" envDefault:"30"`
	CBFailureRatio float64 `env:"CB_FAILURE_RATIO" envDefault:"0.5"`
	CBMinRequests  uint32  `env:"CB_MIN_REQUESTS" envDefault:"5"`

	// Checkout pricing
	ShippingFee     decimal.Decimal `env:"SHIPPING_FEE" envDefault:"50"`
	VATRate         decimal.Decimal `env:"VAT_RATE" envDefault:"0.2"`
	DefaultCurrency string          `env:"DEFAULT_CURRENCY" envDefault:"USD"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELInsecure   bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8,::1/128" envSeparator:","`
}

var (
	currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)
	apiVersion   = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}|1|X)$`)
)

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	return load(env.Options{})
}

func load(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.LoadWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.ContentProjectID == "" && c.ContentBaseURL == "" {
		return fmt.Errorf("CONTENT_PROJECT_ID or CONTENT_BASE_URL is required")
	}
	if c.ContentBaseURL != "" {
		if _, err := url.ParseRequestURI(c.ContentBaseURL); err != nil {
			return fmt.Errorf("invalid CONTENT_BASE_URL %q: %w", c.ContentBaseURL, err)
		}
	}
	if c.ContentDataset == "" {
		return fmt.Errorf("CONTENT_DATASET is required")
	}
	if !apiVersion.MatchString(c.ContentAPIVersion) {
		return fmt.Errorf("invalid CONTENT_API_VERSION %q", c.ContentAPIVersion)
	}
	if c.ContentMaxRetries < 0 {
		return fmt.Errorf("CONTENT_MAX_RETRIES must not be negative")
	}
	if c.CartTTL < 1 || c.SessionTTL < 1 {
		return fmt.Errorf("CART_TTL_HOURS and SESSION_TTL_HOURS must be positive")
	}
	if c.SessionCookieName == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME is required")
	}
	if c.ShippingFee.IsNegative() {
		return fmt.Errorf("SHIPPING_FEE must not be negative, got %s", c.ShippingFee)
	}
	if c.VATRate.IsNegative() || c.VATRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("VAT_RATE must be between 0 and 1, got %s", c.VATRate)
	}
	if !currencyCode.MatchString(c.DefaultCurrency) {
		return fmt.Errorf("DEFAULT_CURRENCY must be an ISO 4217 code, got %q", c.DefaultCurrency)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	for _, cidr := range c.PprofAllowedCIDRs {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("invalid PPROF_ALLOWED_CIDRS entry %q: %w", cidr, err)
		}
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode, where
// the session cookie is not marked Secure.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// CartTTLDuration returns the sliding cart expiry.
func (c *Config) CartTTLDuration() time.Duration {
	return time.Duration(c.CartTTL) * time.Hour
}

// SessionTTLDuration returns the session record and cookie lifetime.
func (c *Config) SessionTTLDuration() time.Duration {
	return time.Duration(c.SessionTTL) * time.Hour
}

// Pricing returns the checkout pricing rules.
func (c *Config) Pricing() domain.Pricing {
	return domain.Pricing{
		Shipping:        c.ShippingFee,
		VATRate:         c.VATRate,
		DefaultCurrency: c.DefaultCurrency,
	}
}
