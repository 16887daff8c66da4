package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamsank8/portfolio/pkg/defaults"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "", cfg.BasePath)
	assert.Equal(t, StoreNone, cfg.Store)
	assert.Equal(t, "portfolio-sanket-c5165", cfg.ProjectID)
	assert.Equal(t, defaults.CacheTTL, cfg.CacheTTL)
	assert.Equal(t, defaults.RateLimitWindow, cfg.RateLimitWindow)
	assert.Equal(t, defaults.RateLimitMax, cfg.RateLimitMax)
	assert.Equal(t, defaults.CacheSweepInterval, cfg.CacheSweepInterval)
	assert.Equal(t, defaults.ServerShutdownTimeout, cfg.ShutdownTimeout())
	assert.Equal(t, []string{
		"http://localhost:4200",
		"https://portfolio-sanket-c5165.web.app",
		"https://portfolio-sanket-c5165.firebaseapp.com",
	}, cfg.AllowedOrigins)
	assert.Contains(t, cfg.PreviewSlugs, "portfolio-sanket-c5165")
}

func TestLoadFromOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"PORT":                         "9090",
		"PORTFOLIO_BASE_PATH":          "api/",
		"PORTFOLIO_STORE":              "SQLite",
		"PORTFOLIO_SQLITE_PATH":        "/tmp/p.db",
		"PORTFOLIO_CACHE_TTL":          "10m",
		"PORTFOLIO_RATE_LIMIT_WINDOW":  "1m",
		"PORTFOLIO_RATE_LIMIT_MAX":     "5",
		"PORTFOLIO_TRUST_PROXY":        "true",
		"PORTFOLIO_ALLOWED_ORIGINS":    " https://a.example , https://b.example,https://a.example",
		"PORTFOLIO_ADMIN_TOKEN_SECRET": "s3cret",
		"SHUTDOWN_TIMEOUT_SECONDS":     "12",
	})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/api", cfg.BasePath)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "/tmp/p.db", cfg.SQLitePath)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.True(t, cfg.TrustProxy)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "s3cret", cfg.AdminTokenSecret)
	assert.Equal(t, 12*time.Second, cfg.ShutdownTimeout())
}

func TestLoadFromInvalid(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
	}{
		{"unknown store", map[string]string{"PORTFOLIO_STORE": "mongo"}},
		{"bad port", map[string]string{"PORT": "70000"}},
		{"non numeric port", map[string]string{"PORT": "http"}},
		{"negative ttl", map[string]string{"PORTFOLIO_CACHE_TTL": "-1m"}},
		{"bad duration", map[string]string{"PORTFOLIO_RATE_LIMIT_WINDOW": "soon"}},
		{"zero ttl", map[string]string{"PORTFOLIO_CACHE_TTL": "0"}},
		{"zero rate limit max", map[string]string{"PORTFOLIO_RATE_LIMIT_MAX": "0"}},
		{"zero rate limit window", map[string]string{"PORTFOLIO_RATE_LIMIT_WINDOW": "0s"}},
		{"zero sweep interval", map[string]string{"PORTFOLIO_CACHE_SWEEP_INTERVAL": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(tt.environ)
			assert.Error(t, err)
		})
	}
}

func TestNormalizeBasePath(t *testing.T) {
	tests := map[string]string{
		"":       "",
		"/":      "",
		"api":    "/api",
		"/api/":  "/api",
		" /v1 ":  "/v1",
		"/a/b//": "/a/b",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeBasePath(in), "input %q", in)
	}
}
