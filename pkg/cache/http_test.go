package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingHandler(calls *atomic.Int32, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"call":` + string(rune('0'+n)) + `}`))
	})
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestWrapMissThenHit(t *testing.T) {
	var calls atomic.Int32
	c := New()
	h := c.Wrap(time.Hour, countingHandler(&calls, http.StatusOK))

	hitsBefore := testutil.ToFloat64(cacheHits)
	missesBefore := testutil.ToFloat64(cacheMisses)

	first := serve(h, http.MethodGet, "/skills")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get(HeaderCache))
	assert.Equal(t, "public, max-age=3600", first.Header().Get(HeaderCacheControl))

	second := serve(h, http.MethodGet, "/skills")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get(HeaderCache))
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", second.Header().Get(HeaderCacheControl))
	assert.Equal(t, first.Body.String(), second.Body.String())

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(cacheHits))
	assert.Equal(t, missesBefore+1, testutil.ToFloat64(cacheMisses))
}

func TestWrapKeyIncludesQuery(t *testing.T) {
	var calls atomic.Int32
	h := New().Wrap(time.Hour, countingHandler(&calls, http.StatusOK))

	serve(h, http.MethodGet, "/projects?featured=true")
	w := serve(h, http.MethodGet, "/projects")
	assert.Equal(t, "MISS", w.Header().Get(HeaderCache))
	assert.Equal(t, int32(2), calls.Load())
}

func TestWrapDoesNotStoreErrors(t *testing.T) {
	var calls atomic.Int32
	c := New()
	h := c.Wrap(time.Hour, countingHandler(&calls, http.StatusInternalServerError))

	serve(h, http.MethodGet, "/about")
	w := serve(h, http.MethodGet, "/about")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "MISS", w.Header().Get(HeaderCache))
	assert.Empty(t, w.Header().Get(HeaderCacheControl))
	assert.Equal(t, int32(2), calls.Load())
	assert.Zero(t, c.Len())
}

func TestWrapExpiryAndPurge(t *testing.T) {
	var calls atomic.Int32
	clock := newFakeClock()
	c := New(WithClock(clock.Now))
	h := c.Wrap(time.Hour, countingHandler(&calls, http.StatusOK))

	serve(h, http.MethodGet, "/education")
	clock.Advance(time.Hour)
	w := serve(h, http.MethodGet, "/education")
	assert.Equal(t, "MISS", w.Header().Get(HeaderCache), "expired entry must miss")

	assert.Equal(t, 1, c.Clear())
	w = serve(h, http.MethodGet, "/education")
	assert.Equal(t, "MISS", w.Header().Get(HeaderCache), "purged entry must miss")
	assert.Equal(t, int32(3), calls.Load())
}

func TestWrapBypassesNonGet(t *testing.T) {
	var calls atomic.Int32
	c := New()
	h := c.Wrap(time.Hour, countingHandler(&calls, http.StatusOK))

	serve(h, http.MethodPost, "/projects")
	serve(h, http.MethodPost, "/projects")
	assert.Equal(t, int32(2), calls.Load())
	assert.Zero(t, c.Len())
}

func TestWrapSkipsStoreForCanceledRequest(t *testing.T) {
	var calls atomic.Int32
	c := New()
	h := c.Wrap(time.Hour, countingHandler(&calls, http.StatusOK))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/education", nil).WithContext(ctx))
	assert.Equal(t, "MISS", w.Header().Get(HeaderCache))
	assert.Equal(t, 0, c.Len())

	next := serve(h, http.MethodGet, "/education")
	assert.Equal(t, "MISS", next.Header().Get(HeaderCache))
	assert.Equal(t, int32(2), calls.Load())
}
