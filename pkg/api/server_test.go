package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamsank8/portfolio/pkg/auth"
	"github.com/iamsank8/portfolio/pkg/config"
	"github.com/iamsank8/portfolio/pkg/content"
	"github.com/iamsank8/portfolio/pkg/server"
	"github.com/iamsank8/portfolio/pkg/store"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testConfig(t *testing.T, environ map[string]string) *config.Config {
	t.Helper()
	env := map[string]string{
		"PORTFOLIO_BASE_PATH":          "/api",
		"PORTFOLIO_ADMIN_TOKEN_SECRET": testSecret,
		"PORTFOLIO_MEASUREMENT_ID":     "G-TEST",
	}
	for k, v := range environ {
		env[k] = v
	}
	cfg, err := config.LoadFrom(env)
	require.NoError(t, err)
	return cfg
}

// newTestAPI serves the full stack, boundary middleware included.
func newTestAPI(t *testing.T, cfg *config.Config, reader store.Reader) (*httptest.Server, *App) {
	t.Helper()
	app, err := NewApp(cfg, reader)
	require.NoError(t, err)

	s := server.New(
		server.WithConfig(ServerConfig(cfg)),
		server.WithHandler(app.Routes()),
	)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, app
}

func get(t *testing.T, url string, header map[string]string) (*http.Response, string) {
	t.Helper()
	return do(t, http.MethodGet, url, header)
}

func do(t *testing.T, method, url string, header map[string]string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestSkillsWithEmptyStoreServesFallback(t *testing.T) {
	ts, _ := newTestAPI(t, testConfig(t, nil), store.NewMemory())

	resp, body := get(t, ts.URL+"/api/skills", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
	assert.Equal(t, "public, max-age=3600", resp.Header.Get("Cache-Control"))

	ds, err := content.Fallback()
	require.NoError(t, err)
	want, err := json.Marshal(ds.Skills())
	require.NoError(t, err)
	assert.JSONEq(t, string(want), body)

	resp2, body2 := get(t, ts.URL+"/api/skills", nil)
	assert.Equal(t, "HIT", resp2.Header.Get("X-Cache"))
	assert.Equal(t, body, body2)
}

func TestContentEndpointsServeEveryCategory(t *testing.T) {
	ts, _ := newTestAPI(t, testConfig(t, nil), nil)

	for _, c := range content.Categories() {
		t.Run(c.String(), func(t *testing.T) {
			resp, body := get(t, ts.URL+"/api/"+c.String(), nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var items []json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(body), &items))
			assert.NotEmpty(t, items)
		})
	}
}

func TestStoreContentWins(t *testing.T) {
	mem := store.NewMemory()
	doc, err := store.NewDocument("edu-1", content.Education{Degree: "MSc", Institution: "Stored U"})
	require.NoError(t, err)
	require.NoError(t, mem.Put(context.Background(), content.CategoryEducation.Collection(), []store.Document{doc}))

	ts, _ := newTestAPI(t, testConfig(t, nil), mem)

	_, body := get(t, ts.URL+"/api/education", nil)
	var got []content.Education
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "edu-1", got[0].ID)
	assert.Equal(t, "Stored U", got[0].Institution)
}

func TestCanceledRequestDoesNotPinFallback(t *testing.T) {
	mem := store.NewMemory()
	doc, err := store.NewDocument("edu-1", content.Education{Degree: "MSc", Institution: "Stored U"})
	require.NoError(t, err)
	require.NoError(t, mem.Put(context.Background(), content.CategoryEducation.Collection(), []store.Document{doc}))

	app, err := NewApp(testConfig(t, nil), mem)
	require.NoError(t, err)
	h := app.Routes()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/education", nil).WithContext(ctx))
	assert.Equal(t, 0, app.Cache().Len())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/education", nil))
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	var got []content.Education
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Stored U", got[0].Institution)
}

func TestHealthAndConfig(t *testing.T) {
	ts, _ := newTestAPI(t, testConfig(t, nil), nil)

	resp, body := get(t, ts.URL+"/api/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health server.HealthResponse
	require.NoError(t, json.Unmarshal([]byte(body), &health))
	assert.Equal(t, "OK", health.Status)
	assert.Equal(t, []string{
		"/api/projects", "/api/skills", "/api/experience", "/api/education", "/api/about",
	}, health.Endpoints)

	resp, body = get(t, ts.URL+"/api/config", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"projectId":"portfolio-sanket-c5165","analyticsMeasurementId":"G-TEST"}`, body)
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	ts, _ := newTestAPI(t, testConfig(t, nil), nil)

	resp, body := get(t, ts.URL+"/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Not Found"}`, body)
}

func TestCacheClear(t *testing.T) {
	cfg := testConfig(t, nil)
	ts, app := newTestAPI(t, cfg, nil)

	get(t, ts.URL+"/api/projects", nil)
	get(t, ts.URL+"/api/about", nil)
	require.Equal(t, 2, app.Cache().Len())

	t.Run("missing token", func(t *testing.T) {
		resp, body := do(t, http.MethodPost, ts.URL+"/api/admin/cache/clear", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, body)
		assert.Equal(t, 2, app.Cache().Len())
	})

	t.Run("wrong method", func(t *testing.T) {
		token, err := auth.NewVerifier(testSecret).Issue("test", time.Minute)
		require.NoError(t, err)
		resp, body := do(t, http.MethodGet, ts.URL+"/api/admin/cache/clear",
			map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, http.MethodPost, resp.Header.Get("Allow"))
		assert.JSONEq(t, `{"error":"Method Not Allowed"}`, body)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := auth.NewVerifier(testSecret).Issue("test", time.Minute)
		require.NoError(t, err)

		resp, body := do(t, http.MethodPost, ts.URL+"/api/admin/cache/clear",
			map[string]string{"Authorization": "Bearer " + token})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"message":"Cache cleared successfully","cleared":2}`, body)
		assert.Equal(t, 0, app.Cache().Len())

		resp, _ = get(t, ts.URL+"/api/projects", nil)
		assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
	})
}

func TestCacheClearFailsClosedWithoutSecret(t *testing.T) {
	cfg := testConfig(t, map[string]string{"PORTFOLIO_ADMIN_TOKEN_SECRET": ""})
	ts, _ := newTestAPI(t, cfg, nil)

	token, err := auth.NewVerifier(testSecret).Issue("test", time.Minute)
	require.NoError(t, err)

	resp, _ := do(t, http.MethodPost, ts.URL+"/api/admin/cache/clear",
		map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestNewAppRejectsShortSecret(t *testing.T) {
	cfg := testConfig(t, map[string]string{"PORTFOLIO_ADMIN_TOKEN_SECRET": "short"})
	_, err := NewApp(cfg, nil)
	assert.Error(t, err)
}

func TestBoundaryPolicies(t *testing.T) {
	cfg := testConfig(t, map[string]string{"PORTFOLIO_RATE_LIMIT_MAX": "2"})
	ts, _ := newTestAPI(t, cfg, nil)

	t.Run("allowed origin", func(t *testing.T) {
		resp, _ := get(t, ts.URL+"/api/about", map[string]string{"Origin": "http://localhost:4200"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "http://localhost:4200", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	})

	t.Run("rejected origin", func(t *testing.T) {
		resp, body := get(t, ts.URL+"/api/about", map[string]string{"Origin": "https://evil.example"})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))
		assert.Contains(t, body, "Not allowed by CORS")
	})

	t.Run("rate limited", func(t *testing.T) {
		// the origin check runs first, so only the allowed request counted
		resp, _ := get(t, ts.URL+"/api/about", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "0", resp.Header.Get("RateLimit-Remaining"))

		resp, body := get(t, ts.URL+"/api/about", nil)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
		assert.JSONEq(t, `{"error":"Too many requests, please try again later."}`, body)

		resp, _ = get(t, ts.URL+"/ready", nil)
		assert.NotEqual(t, http.StatusTooManyRequests, resp.StatusCode)
	})
}

func TestServerConfig(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"PORT":                      "9000",
		"PORTFOLIO_TRUST_PROXY":     "true",
		"PORTFOLIO_RATE_LIMIT_MAX":  "42",
		"SHUTDOWN_TIMEOUT_SECONDS":  "7",
		"PORTFOLIO_ALLOWED_ORIGINS": "https://a.example",
	})

	sc := ServerConfig(cfg)
	assert.Equal(t, 9000, sc.Port)
	assert.True(t, sc.TrustProxy)
	assert.Equal(t, 42, sc.ClientRateMax)
	assert.Equal(t, 7*time.Second, sc.ShutdownTimeout)
	assert.Equal(t, []string{"https://a.example"}, sc.AllowedOrigins)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		s, err := OpenStore(ctx, testConfig(t, nil))
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := testConfig(t, map[string]string{
			"PORTFOLIO_STORE":       "sqlite",
			"PORTFOLIO_SQLITE_PATH": filepath.Join(t.TempDir(), "portfolio.db"),
		})
		s, err := OpenStore(ctx, cfg)
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.NoError(t, s.Close())
	})

	t.Run("firestore without credentials file", func(t *testing.T) {
		cfg := testConfig(t, map[string]string{
			"PORTFOLIO_STORE":                "firestore",
			"GOOGLE_APPLICATION_CREDENTIALS": filepath.Join(t.TempDir(), "missing.json"),
		})
		_, err := OpenStore(ctx, cfg)
		assert.Error(t, err)
	})
}
