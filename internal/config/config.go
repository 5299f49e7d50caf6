package config

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "github.com/AmanPardeshi01/Revcart-Microservice/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8010"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"revcart"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"revcart_secret"`
	PostgresDB   string `env:"STOREFRONT_DB_NAME" envDefault:"storefront_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Redis for wishlist storage. Leave REDIS_ADDR empty to fall back to
	// the in-memory store.
	RedisAddr     string `env:"REDIS_ADDR" envDefault:""`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Downstream Revcart service URLs
	ProfileServiceURL string `env:"PROFILE_SERVICE_URL" envDefault:"http://localhost:8081"`
	CartServiceURL    string `env:"CART_SERVICE_URL" envDefault:"http://localhost:8082"`
	OrderServiceURL   string `env:"ORDER_SERVICE_URL" envDefault:"http://localhost:8083"`
	PaymentServiceURL string `env:"PAYMENT_SERVICE_URL" envDefault:"http://localhost:8084"`

	// Checkout behavior
	DeliveryFeeCents          int64 `env:"DELIVERY_FEE_CENTS" envDefault:"599"`
	CheckoutSessionTTLMinutes int   `env:"CHECKOUT_SESSION_TTL_MINUTES" envDefault:"30"`

	// Notification TTL
	NotificationTTLSeconds int `env:"NOTIFICATION_TTL_SECONDS" envDefault:"5"`

	// Circuit breaker settings for downstream service calls
	CBMaxRequests  uint32  `env:"CB_MAX_REQUESTS" envDefault:"1"`
	CBInterval     int     `env:"CB_INTERVAL_SECONDS" envDefault:"60"`
	CBTimeout      int     `env:"CB_TIMEOUT_SECONDS" envDefault:"30"`
	CBFailureRatio float64 `env:"CB_FAILURE_RATIO" envDefault:"0.5"`
	CBMinRequests  uint32  `env:"CB_MIN_REQUESTS" envDefault:"5"`

	// Rate limiting (per user or client IP)
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"300"`
	RateLimitBurst     int `env:"RATE_LIMIT_BURST" envDefault:"50"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
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
	if c.PostgresHost == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}
	if c.PostgresUser == "" {
		return fmt.Errorf("POSTGRES_USER is required")
	}
	if len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}
	if c.DeliveryFeeCents < 0 {
		return fmt.Errorf("DELIVERY_FEE_CENTS must not be negative, got %d", c.DeliveryFeeCents)
	}
	if c.CheckoutSessionTTLMinutes < 1 {
		return fmt.Errorf("CHECKOUT_SESSION_TTL_MINUTES must be at least 1, got %d", c.CheckoutSessionTTLMinutes)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	for name, rawURL := range map[string]string{
		"PROFILE_SERVICE_URL": c.ProfileServiceURL,
		"CART_SERVICE_URL":    c.CartServiceURL,
		"ORDER_SERVICE_URL":   c.OrderServiceURL,
		"PAYMENT_SERVICE_URL": c.PaymentServiceURL,
	} {
		if rawURL == "" {
			return fmt.Errorf("%s is required", name)
		}
		if _, err := url.ParseRequestURI(rawURL); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, rawURL, err)
		}
	}
	return nil
}

// PostgresDSN returns the PostgreSQL connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.PostgresUser, c.PostgresPass, c.PostgresHost, c.PostgresPort, c.PostgresDB, c.PostgresSSL,
	)
}

// SessionTTL returns the checkout session lifetime as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.CheckoutSessionTTLMinutes) * time.Minute
}

// NotificationTTL returns the notification lifetime as a duration.
func (c *Config) NotificationTTL() time.Duration {
	return time.Duration(c.NotificationTTLSeconds) * time.Second
}
