package cache

import (
	"bytes"
	"fmt"
	"net/http"
	"time"
)

// Header names written by Wrap.
const (
	HeaderCache        = "X-Cache"
	HeaderCacheControl = "Cache-Control"
)

// Wrap serves GET requests from the cache, keyed by path and query. On a
// miss next runs and its body is stored only when it answered 200 to a
// request that was still live. Other methods bypass the cache.
func (c *Cache) Wrap(ttl time.Duration, next http.Handler) http.Handler {
	maxAge := fmt.Sprintf("public, max-age=%d", int(ttl.Seconds()))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := r.URL.RequestURI()
		if body, contentType, ok := c.Get(key); ok {
			cacheHits.Inc()
			h := w.Header()
			h.Set("Content-Type", contentType)
			h.Set(HeaderCacheControl, maxAge)
			h.Set(HeaderCache, "HIT")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
			return
		}

		cacheMisses.Inc()
		rec := &recorder{ResponseWriter: w, status: http.StatusOK, cacheControl: maxAge}
		w.Header().Set(HeaderCache, "MISS")
		next.ServeHTTP(rec, r)

		if rec.status == http.StatusOK && r.Context().Err() == nil {
			c.Put(key, rec.body.Bytes(), w.Header().Get("Content-Type"), ttl)
		}
	})
}

// recorder passes the response through while keeping a copy of the body.
type recorder struct {
	http.ResponseWriter
	status       int
	wroteHeader  bool
	cacheControl string
	body         bytes.Buffer
}

func (r *recorder) WriteHeader(code int) {
	if r.wroteHeader {
		return
	}
	r.wroteHeader = true
	r.status = code
	if code == http.StatusOK && r.Header().Get(HeaderCacheControl) == "" {
		r.Header().Set(HeaderCacheControl, r.cacheControl)
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *recorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
