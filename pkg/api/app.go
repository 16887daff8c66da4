package api

import (
	"log/slog"
	"net/http"

	"github.com/iamsank8/portfolio/pkg/auth"
	"github.com/iamsank8/portfolio/pkg/cache"
	"github.com/iamsank8/portfolio/pkg/config"
	"github.com/iamsank8/portfolio/pkg/content"
	"github.com/iamsank8/portfolio/pkg/defaults"
	cerrors "github.com/iamsank8/portfolio/pkg/errors"
	"github.com/iamsank8/portfolio/pkg/serializer"
	"github.com/iamsank8/portfolio/pkg/server"
	"github.com/iamsank8/portfolio/pkg/store"
)

// MessageCacheCleared is returned by the cache purge endpoint.
const MessageCacheCleared = "Cache cleared successfully"

// CacheClearResponse is the body of a successful cache purge.
type CacheClearResponse struct {
	Message string `json:"message"`
	Cleared int    `json:"cleared"`
}

// RuntimeConfig is the front-end runtime configuration served at /config.
type RuntimeConfig struct {
	ProjectID              string `json:"projectId"`
	AnalyticsMeasurementID string `json:"analyticsMeasurementId"`
}

// App holds the application handlers and the state they share.
type App struct {
	cfg      *config.Config
	adapter  *content.Adapter
	cache    *cache.Cache
	verifier *auth.Verifier
}

// NewApp wires the content adapter, response cache and admin verifier. A nil
// reader serves the embedded datasets.
func NewApp(cfg *config.Config, reader store.Reader) (*App, error) {
	adapter, err := content.NewAdapter(reader,
		content.WithQueryTimeout(defaults.StoreQueryTimeout),
	)
	if err != nil {
		return nil, err
	}

	verifier := auth.NewVerifier(cfg.AdminTokenSecret)
	if !verifier.Configured() {
		slog.Warn("PORTFOLIO_ADMIN_TOKEN_SECRET is not set, cache administration is disabled")
	} else if err := auth.ValidateSecret(cfg.AdminTokenSecret); err != nil {
		return nil, err
	}

	return &App{
		cfg:      cfg,
		adapter:  adapter,
		cache:    cache.New(cache.WithMaxEntries(defaults.CacheMaxEntries)),
		verifier: verifier,
	}, nil
}

// Cache returns the response cache shared by the content endpoints.
func (a *App) Cache() *cache.Cache {
	return a.cache
}

// Endpoints lists the content routes, as reported by the health check.
func (a *App) Endpoints() []string {
	out := make([]string, 0, len(content.Categories()))
	for _, c := range content.Categories() {
		out = append(out, a.cfg.BasePath+"/"+c.String())
	}
	return out
}

// Routes returns the application mux.
func (a *App) Routes() http.Handler {
	mux := http.NewServeMux()
	base := a.cfg.BasePath

	for _, c := range content.Categories() {
		mux.Handle(base+"/"+c.String(), a.cache.Wrap(a.cfg.CacheTTL, content.Handler(a.adapter, c)))
	}

	mux.Handle(base+"/health", server.HealthHandler(a.Endpoints()))
	mux.HandleFunc(base+"/config", a.handleConfig)
	mux.Handle(base+"/admin/cache/clear", a.verifier.Require(http.HandlerFunc(a.handleCacheClear)))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		server.WriteErrorFromErr(w, r, cerrors.NewWithContext(cerrors.ErrCodeNotFound,
			"no route", map[string]any{"path": r.URL.Path}))
	})

	return mux
}

func (a *App) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteErrorFromErr(w, r, errMethodNotAllowed(r))
		return
	}

	n := a.cache.Clear()
	slog.InfoContext(r.Context(), "response cache cleared",
		"requestID", server.RequestID(r.Context()),
		"cleared", n,
	)
	serializer.RespondJSON(w, http.StatusOK, CacheClearResponse{
		Message: MessageCacheCleared,
		Cleared: n,
	})
}

func (a *App) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteErrorFromErr(w, r, errMethodNotAllowed(r))
		return
	}
	serializer.RespondJSON(w, http.StatusOK, RuntimeConfig{
		ProjectID:              a.cfg.ProjectID,
		AnalyticsMeasurementID: a.cfg.MeasurementID,
	})
}

func errMethodNotAllowed(r *http.Request) error {
	return cerrors.NewWithContext(cerrors.ErrCodeMethodNotAllowed,
		"method not allowed", map[string]any{"method": r.Method})
}
