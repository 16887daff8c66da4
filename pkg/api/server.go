package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/iamsank8/portfolio/pkg/config"
	"github.com/iamsank8/portfolio/pkg/logging"
	"github.com/iamsank8/portfolio/pkg/server"
	"github.com/iamsank8/portfolio/pkg/telemetry"
)

const (
	name           = "portfolio-api"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/iamsank8/portfolio/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve loads configuration from the environment, starts the API server and
// blocks until shutdown.
func Serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	return Run(ctx, cfg)
}

// Run serves the API with an already loaded configuration.
func Run(ctx context.Context, cfg *config.Config) error {
	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTelEndpoint, name, version)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Warn("trace flush failed", "error", err)
		}
	}()

	st, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	if st != nil {
		defer func() {
			if err := st.Close(); err != nil {
				slog.Warn("store close failed", "error", err)
			}
		}()
	}

	app, err := NewApp(cfg, st)
	if err != nil {
		return err
	}

	s := server.New(
		server.WithConfig(ServerConfig(cfg)),
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(app.Routes()),
		server.WithBackground(func(ctx context.Context) error {
			return app.Cache().Run(ctx, cfg.CacheSweepInterval)
		}),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// ServerConfig maps process configuration onto the HTTP boundary settings.
func ServerConfig(cfg *config.Config) *server.Config {
	sc := server.NewConfig()
	sc.Address = cfg.Address
	sc.Port = cfg.Port
	sc.ClientRateWindow = cfg.RateLimitWindow
	sc.ClientRateMax = cfg.RateLimitMax
	sc.TrustProxy = cfg.TrustProxy
	sc.AllowedOrigins = cfg.AllowedOrigins
	sc.PreviewSlugs = cfg.PreviewSlugs
	sc.ShutdownTimeout = cfg.ShutdownTimeout()
	return sc
}
