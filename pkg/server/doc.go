// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server is the HTTP boundary of the portfolio API.
//
// It owns the process lifecycle and every cross-cutting request concern so
// application handlers only deal with content:
//
//   - Prometheus request metrics and an in-flight gauge
//   - Request IDs (X-Request-Id, generated when absent or malformed)
//   - API version negotiation via application/vnd.portfolio.v1+json
//   - OpenTelemetry server spans with W3C trace context propagation
//   - Panic recovery answering {"error":"Something went wrong"}
//   - Security headers (CSP, HSTS, frame and sniffing protection)
//   - Origin allow-list with hosting preview channels, plain text 403 otherwise
//   - A process-wide token bucket (golang.org/x/time/rate)
//   - A per-client fixed window, 100 requests per 15 minutes by default,
//     advertised with RateLimit-Limit, RateLimit-Remaining and RateLimit-Reset
//   - A request body size limit
//   - Structured request logging (log/slog)
//
// # Usage
//
//	s := server.New(
//	    server.WithName("portfoliod"),
//	    server.WithVersion(version),
//	    server.WithHandler(mux),
//	    server.WithBackground(func(ctx context.Context) error {
//	        return responses.Run(ctx, defaults.CacheSweepInterval)
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Operational Endpoints
//
// GET /ready reports readiness and answers 503 while starting or draining.
// GET /metrics exposes Prometheus metrics. Neither runs behind the
// middleware chain, so probes and scrapes are never rate limited.
//
// # Graceful Shutdown
//
// Run stops on SIGINT, SIGTERM or context cancellation. Readiness drops
// first, then in-flight requests get ShutdownTimeout to complete. Background
// tasks receive the same canceled context.
package server
