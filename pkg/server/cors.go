package server

import (
	"net/http"
	"strings"
)

const (
	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "Authorization, Content-Type"
	corsMaxAge       = "600"

	previewScheme = "https://"
	previewDomain = ".web.app"
)

// originPolicy decides which browser origins may call the API.
type originPolicy struct {
	allowed map[string]bool
	slugs   map[string]bool
}

func newOriginPolicy(origins, previewSlugs []string) *originPolicy {
	p := &originPolicy{
		allowed: make(map[string]bool, len(origins)),
		slugs:   make(map[string]bool, len(previewSlugs)),
	}
	for _, o := range origins {
		p.allowed[strings.TrimRight(o, "/")] = true
	}
	for _, s := range previewSlugs {
		p.slugs[s] = true
	}
	return p
}

// allows reports whether origin is on the allow-list or is a hosting preview
// channel of a configured site, https://<site>--<channel>.web.app.
func (p *originPolicy) allows(origin string) bool {
	if p.allowed[origin] {
		return true
	}
	host, ok := strings.CutPrefix(origin, previewScheme)
	if !ok {
		return false
	}
	host, ok = strings.CutSuffix(host, previewDomain)
	if !ok {
		return false
	}
	site, channel, ok := strings.Cut(host, "--")
	return ok && p.slugs[site] && validChannel(channel)
}

func validChannel(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}

// corsMiddleware admits requests without an Origin (curl, server to server)
// and allowed origins; every other origin gets a plain text 403.
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		h := w.Header()
		h.Add("Vary", "Origin")
		if !s.origins.allows(origin) {
			corsRejects.Inc()
			http.Error(w, MessageCORSRejected, http.StatusForbidden)
			return
		}

		h.Set("Access-Control-Allow-Origin", origin)
		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Max-Age", corsMaxAge)
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	}
}
