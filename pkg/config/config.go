// Package config loads process configuration from the environment once at
// start-up. Values are read with github.com/caarlos0/env and then validated;
// nothing re-reads the environment after Load returns.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/iamsank8/portfolio/pkg/defaults"
)

// Supported document store backends.
const (
	StoreNone      = "none"
	StoreSQLite    = "sqlite"
	StoreFirestore = "firestore"
)

// Config holds every environment-driven setting of the API server and CLI.
type Config struct {
	// HTTP listener
	Address  string `env:"PORTFOLIO_ADDRESS"`
	Port     int    `env:"PORT" envDefault:"8080"`
	BasePath string `env:"PORTFOLIO_BASE_PATH"`

	// Firebase project identity; also used for Firestore access.
	ProjectID       string `env:"FIREBASE_PROJECT_ID" envDefault:"portfolio-sanket-c5165"`
	CredentialsPath string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	MeasurementID   string `env:"PORTFOLIO_MEASUREMENT_ID"`

	// Cross-origin policy
	AllowedOrigins []string `env:"PORTFOLIO_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:4200,https://portfolio-sanket-c5165.web.app,https://portfolio-sanket-c5165.firebaseapp.com"`
	PreviewSlugs   []string `env:"PORTFOLIO_PREVIEW_SLUGS" envSeparator:"," envDefault:"portfolio-sanket-c5165,iamsank8"`

	// Document store
	Store      string `env:"PORTFOLIO_STORE" envDefault:"none"`
	SQLitePath string `env:"PORTFOLIO_SQLITE_PATH" envDefault:"portfolio.db"`

	// Response cache; defaults mirror pkg/defaults.
	CacheTTL           time.Duration `env:"PORTFOLIO_CACHE_TTL" envDefault:"1h"`
	CacheSweepInterval time.Duration `env:"PORTFOLIO_CACHE_SWEEP_INTERVAL" envDefault:"5m"`

	// Per-client rate limiting
	RateLimitWindow time.Duration `env:"PORTFOLIO_RATE_LIMIT_WINDOW" envDefault:"15m"`
	RateLimitMax    int           `env:"PORTFOLIO_RATE_LIMIT_MAX" envDefault:"100"`
	TrustProxy      bool          `env:"PORTFOLIO_TRUST_PROXY"`

	// Admin
	AdminTokenSecret string `env:"PORTFOLIO_ADMIN_TOKEN_SECRET"`

	// Observability
	OTelEndpoint string `env:"PORTFOLIO_OTEL_ENDPOINT"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`

	// Allow customization of shutdown timeout to match the platform's grace period
	ShutdownTimeoutSeconds int `env:"SHUTDOWN_TIMEOUT_SECONDS"`
}

// Load parses the process environment into a validated Config.
func Load() (*Config, error) {
	return load(env.Options{})
}

// LoadFrom parses the given key/value pairs instead of the process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	return load(env.Options{Environment: environ})
}

func load(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.validateServing(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	c.BasePath = normalizeBasePath(c.BasePath)
	c.AllowedOrigins = trimAll(c.AllowedOrigins)
	c.PreviewSlugs = trimAll(c.PreviewSlugs)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 0 and 65535, got %d", c.Port)
	}
	switch c.Store {
	case StoreNone:
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("PORTFOLIO_SQLITE_PATH is required for the sqlite store")
		}
	case StoreFirestore:
		if c.ProjectID == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required for the firestore store")
		}
	default:
		return fmt.Errorf("unsupported PORTFOLIO_STORE %q (supported: %s)",
			c.Store, strings.Join(SupportedStores(), ", "))
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("PORTFOLIO_CACHE_TTL must not be negative")
	}
	if c.RateLimitWindow < 0 || c.RateLimitMax < 0 {
		return fmt.Errorf("rate limit window and max must not be negative")
	}
	if c.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must not be negative")
	}
	return nil
}

// validateServing rejects explicit zero values for settings the server cannot
// run without. Unset variables take their envDefault instead.
func (c *Config) validateServing() error {
	switch {
	case c.CacheTTL == 0:
		return fmt.Errorf("PORTFOLIO_CACHE_TTL must be positive")
	case c.CacheSweepInterval <= 0:
		return fmt.Errorf("PORTFOLIO_CACHE_SWEEP_INTERVAL must be positive")
	case c.RateLimitWindow == 0:
		return fmt.Errorf("PORTFOLIO_RATE_LIMIT_WINDOW must be positive")
	case c.RateLimitMax == 0:
		return fmt.Errorf("PORTFOLIO_RATE_LIMIT_MAX must be positive")
	}
	return nil
}

// ShutdownTimeout returns the configured graceful shutdown budget.
func (c *Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds > 0 {
		return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
	}
	return defaults.ServerShutdownTimeout
}

// SupportedStores lists the accepted PORTFOLIO_STORE values.
func SupportedStores() []string {
	return []string{StoreNone, StoreSQLite, StoreFirestore}
}

func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
