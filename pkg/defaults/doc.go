// Package defaults provides centralized configuration constants for the
// portfolio content API.
//
// This package defines timeout values, cache lifetimes and boundary-layer
// limits used across the codebase. Centralizing these values ensures
// consistency and makes tuning easier.
//
// # Categories
//
//   - Store timeouts: document store reads and CLI maintenance writes
//   - Cache settings: response cache TTL, sweep interval and size cap
//   - Boundary limits: rate limiting windows and request body size
//   - Server timeouts: HTTP server configuration
//   - Admin tokens: lifetimes for minted admin credentials
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.StoreQueryTimeout)
//	defer cancel()
//
// Every value here can be overridden through environment configuration
// (see pkg/config); these are the values used when nothing is set.
package defaults
