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

package defaults

import "time"

// Content store timeouts.
const (
	// StoreQueryTimeout bounds a single collection read. On expiry the content
	// adapter serves the embedded fallback dataset.
	StoreQueryTimeout = 5 * time.Second

	// StoreWriteTimeout bounds seed, restore and clear operations run from the CLI.
	StoreWriteTimeout = 2 * time.Minute
)

// Response cache settings.
const (
	// CacheTTL is how long a rendered content response stays in the response cache.
	CacheTTL = time.Hour

	// CacheSweepInterval is how often expired cache entries are removed in the background.
	CacheSweepInterval = 5 * time.Minute

	// CacheMaxEntries caps the number of distinct request URIs kept in memory.
	CacheMaxEntries = 1024
)

// Boundary layer limits.
const (
	// RateLimitWindow is the fixed window for per-client request counting.
	RateLimitWindow = 15 * time.Minute

	// RateLimitMax is the number of requests a client may make per window.
	RateLimitMax = 100

	// GlobalRateLimit is the process-wide token bucket refill rate (requests/second).
	GlobalRateLimit = 100

	// GlobalRateLimitBurst is the process-wide token bucket size.
	GlobalRateLimitBurst = 200

	// MaxBodyBytes is the largest accepted request body.
	MaxBodyBytes = 10 << 10
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Admin token settings.
const (
	// AdminTokenTTL is the default lifetime of tokens minted by the CLI.
	AdminTokenTTL = time.Hour

	// AdminTokenMaxTTL is the longest lifetime the CLI will mint.
	AdminTokenMaxTTL = 24 * time.Hour
)
