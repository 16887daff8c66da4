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

package server

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/iamsank8/portfolio/pkg/defaults"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Handler serves every application route. It runs behind the full
	// middleware chain; /ready and /metrics are mounted beside it.
	Handler http.Handler

	// Server configuration
	Address string
	Port    int

	// Process-wide token bucket
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Per-client fixed window
	ClientRateWindow time.Duration
	ClientRateMax    int
	TrustProxy       bool // take the client address from X-Forwarded-For

	// Cross-origin policy
	AllowedOrigins []string
	PreviewSlugs   []string

	// Request limits
	MaxBodyBytes int64

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns a new Config with sensible defaults.
// Use this when you want to customize config programmatically.
func NewConfig() *Config {
	return &Config{
		Name:              "server",
		Version:           "undefined",
		Address:           "",
		Port:              8080,
		RateLimit:         defaults.GlobalRateLimit,
		RateLimitBurst:    defaults.GlobalRateLimitBurst,
		ClientRateWindow:  defaults.RateLimitWindow,
		ClientRateMax:     defaults.RateLimitMax,
		MaxBodyBytes:      defaults.MaxBodyBytes,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}
}
