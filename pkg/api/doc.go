// Package api wires the portfolio content API.
//
// It is a thin layer over the reusable pkg/server package: it loads the
// environment configuration, opens the configured document store, builds the
// content adapter and response cache, and mounts the application routes.
//
// # Usage
//
//	if err := api.Serve(ctx); err != nil {
//	    log.Fatalf("server error: %v", err)
//	}
//
// # Endpoints
//
// Application endpoints, under PORTFOLIO_BASE_PATH and behind the boundary
// middleware (origin policy, rate limits, security headers):
//   - GET  /projects, /skills, /experience, /education, /about
//     JSON arrays, cached for PORTFOLIO_CACHE_TTL
//   - GET  /health - liveness with the list of content endpoints
//   - GET  /config - front-end runtime configuration
//   - POST /admin/cache/clear - purge the response cache (bearer token)
//
// System endpoints (no rate limiting):
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// # Degradation
//
// Content endpoints never fail because of the store. When the store is not
// configured, unreachable, slow or empty, the embedded dataset for the
// category is served instead and the reason is logged and counted in
// portfolio_content_fallback_total.
package api
