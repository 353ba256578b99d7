// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	View     ViewConfig
	Mutation MutationConfig
	Database DatabaseConfig
	Audit    AuditConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Tracing  TracingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// CatalogConfig holds settings for the remote catalog API client.
type CatalogConfig struct {
	// BaseURL is the root of the remote REST API (default: public escuelajs API)
	BaseURL string `env:"CATALOG_API_URL" envAlt:"API_URL" default:"https://api.escuelajs.co/api/v1"`

	// Timeout bounds each outbound request (default: 30s)
	Timeout time.Duration `env:"CATALOG_TIMEOUT" default:"30s"`

	// BreakerMinRequests is the request count before the breaker may trip (default: 3)
	BreakerMinRequests int `env:"CATALOG_BREAKER_MIN_REQUESTS" default:"3"`

	// BreakerFailureRatio trips the breaker once this share of requests failed (default: 0.6)
	BreakerFailureRatio float64 `env:"CATALOG_BREAKER_FAILURE_RATIO" default:"0.6"`

	// BreakerOpenTimeout is how long the breaker stays open (default: 30s)
	BreakerOpenTimeout time.Duration `env:"CATALOG_BREAKER_OPEN_TIMEOUT" default:"30s"`
}

// ViewConfig holds table presentation settings.
type ViewConfig struct {
	// PageSize is the initial rows per page (default: 10)
	PageSize int `env:"VIEW_PAGE_SIZE" default:"10"`

	// PageSizes lists the selectable page sizes (default: 5,10,20,50)
	PageSizes []int `env:"VIEW_PAGE_SIZES" default:"5,10,20,50"`

	// PlaceholderImage replaces an empty image list on update and broken thumbnails
	PlaceholderImage string `env:"VIEW_PLACEHOLDER_IMAGE" default:"https://via.placeholder.com/300"`
}

// MutationConfig bounds concurrent create/update calls to the remote API.
type MutationConfig struct {
	// MaxConcurrent is the maximum number of in-flight mutations (default: 4)
	MaxConcurrent int `env:"MUTATION_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long to wait for a mutation slot (default: 10s)
	MaxWaitTime time.Duration `env:"MUTATION_MAX_WAIT_TIME" default:"10s"`
}

// DatabaseConfig holds audit database connection settings.
// The database is optional; auditing is disabled when URL is empty.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 5)
	MaxConns int `env:"DB_MAX_CONNS" default:"5"`

	// MinConns is the minimum number of connections to keep open (default: 1)
	MinConns int `env:"DB_MIN_CONNS" default:"1"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// Enabled reports whether an audit database is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// AuditConfig holds audit log retention settings.
type AuditConfig struct {
	// RetentionDays is how long audit entries are kept (default: 90)
	RetentionDays int `env:"AUDIT_RETENTION_DAYS" default:"90"`

	// CheckInterval is how often the purge job runs (default: 24h)
	CheckInterval time.Duration `env:"AUDIT_CHECK_INTERVAL" default:"24h"`

	// PageLimit is the number of entries shown on the audit page (default: 100)
	PageLimit int `env:"AUDIT_PAGE_LIMIT" default:"100"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 300)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"300"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey protects the JSON API with X-API-Key (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted API keys
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	// Endpoint is the OTLP/HTTP collector host:port; tracing is off when empty
	Endpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// ServiceName is reported as service.name (default: catalog-admin)
	ServiceName string `env:"OTEL_SERVICE_NAME" default:"catalog-admin"`

	// Insecure disables TLS to the collector (default: true)
	Insecure bool `env:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
}

// Enabled reports whether a collector endpoint is configured.
func (c TracingConfig) Enabled() bool {
	return c.Endpoint != ""
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
