package server

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// windowLimiter counts requests per client in fixed windows. The window of
// a client starts at its first request and resets once it has elapsed.
type windowLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	max       int
	now       func() time.Time
	clients   map[string]*windowCount
	lastSweep time.Time
}

type windowCount struct {
	start time.Time
	count int
}

// windowResult describes the state of a client's window after a request.
type windowResult struct {
	allowed   bool
	remaining int
	reset     time.Time
}

func newWindowLimiter(window time.Duration, max int) *windowLimiter {
	return &windowLimiter{
		window:  window,
		max:     max,
		now:     time.Now,
		clients: make(map[string]*windowCount),
	}
}

// take counts one request for key.
func (l *windowLimiter) take(key string) windowResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweepLocked(now)

	wc, ok := l.clients[key]
	if !ok || !now.Before(wc.start.Add(l.window)) {
		wc = &windowCount{start: now}
		l.clients[key] = wc
	}
	wc.count++

	return windowResult{
		allowed:   wc.count <= l.max,
		remaining: max(l.max-wc.count, 0),
		reset:     wc.start.Add(l.window),
	}
}

// sweepLocked drops clients whose window has ended, at most once per window.
func (l *windowLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for key, wc := range l.clients {
		if !now.Before(wc.start.Add(l.window)) {
			delete(l.clients, key)
		}
	}
}

func (l *windowLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// clientIP identifies the caller. With trustProxy the first X-Forwarded-For
// hop is used, which is only safe behind a proxy that overwrites the header.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// secondsUntil rounds up so clients never retry early.
func secondsUntil(t, now time.Time) string {
	secs := int(math.Ceil(t.Sub(now).Seconds()))
	if secs < 0 {
		secs = 0
	}
	return strconv.Itoa(secs)
}

// clientRateLimitMiddleware enforces the per-client window and advertises
// its state with the standard RateLimit-* headers.
func (s *Server) clientRateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := s.windowLimiter.take(clientIP(r, s.config.TrustProxy))
		reset := secondsUntil(res.reset, s.windowLimiter.now())

		h := w.Header()
		h.Set("RateLimit-Limit", strconv.Itoa(s.config.ClientRateMax))
		h.Set("RateLimit-Remaining", strconv.Itoa(res.remaining))
		h.Set("RateLimit-Reset", reset)

		if !res.allowed {
			rateLimitRejects.WithLabelValues("client").Inc()
			h.Set("Retry-After", reset)
			WriteError(w, http.StatusTooManyRequests, MessageTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// rateLimitMiddleware applies the process-wide token bucket.
func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow() {
			rateLimitRejects.WithLabelValues("global").Inc()
			w.Header().Set("Retry-After", "1")
			WriteError(w, http.StatusTooManyRequests, MessageTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	}
}
