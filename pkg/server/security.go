package server

import (
	"net/http"
	"strings"
)

// contentSecurityPolicy mirrors the policy the front end ships with.
var contentSecurityPolicy = strings.Join([]string{
	"default-src 'self'",
	"script-src 'self' https://apis.google.com https://www.googletagmanager.com https://www.google-analytics.com",
	"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com",
	"font-src 'self' https://fonts.gstatic.com",
	"img-src 'self' data: https://www.google-analytics.com",
	"connect-src 'self' https://us-central1-portfolio-sanket-c5165.cloudfunctions.net",
	"frame-src 'none'",
	"object-src 'none'",
	"media-src 'self'",
	"frame-ancestors 'none'",
}, "; ")

var securityHeaders = map[string]string{
	"Content-Security-Policy":           contentSecurityPolicy,
	"Cross-Origin-Opener-Policy":        "same-origin",
	"Cross-Origin-Resource-Policy":      "same-origin",
	"Origin-Agent-Cluster":              "?1",
	"Referrer-Policy":                   "no-referrer",
	"Strict-Transport-Security":         "max-age=31536000; includeSubDomains",
	"X-Content-Type-Options":            "nosniff",
	"X-DNS-Prefetch-Control":            "off",
	"X-Frame-Options":                   "DENY",
	"X-Permitted-Cross-Domain-Policies": "none",
	"X-XSS-Protection":                  "0",
}

// securityHeadersMiddleware sets the hardening headers on every response.
func (s *Server) securityHeadersMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for k, v := range securityHeaders {
			h.Set(k, v)
		}
		next.ServeHTTP(w, r)
	}
}
