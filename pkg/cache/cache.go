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

// Package cache implements the in-process response cache that sits in front
// of the content endpoints. Entries are keyed by request URI and expire after
// a fixed TTL; expired entries are dropped lazily on read and by an optional
// background sweep.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/iamsank8/portfolio/pkg/defaults"
)

// Entry is a stored response body.
type Entry struct {
	Key         string
	Body        []byte
	ContentType string
	ExpiresAt   time.Time
}

func (e *Entry) expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Cache is a TTL map of response bodies safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]*Entry
	now        func() time.Time
	maxEntries int
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithMaxEntries caps the number of entries. When full, expired entries are
// swept first and then the entry closest to expiry is evicted.
func WithMaxEntries(n int) Option {
	return func(c *Cache) {
		c.maxEntries = n
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:    make(map[string]*Entry),
		now:        time.Now,
		maxEntries: defaults.CacheMaxEntries,
	}
	for _, opt := range opts {
		opt(c)
	}
	cacheEntries.Set(0)
	return c
}

// Get returns the body stored under key if it has not expired.
func (c *Cache) Get(key string) ([]byte, string, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, "", false
	}
	if e.expired(c.now()) {
		c.mu.Lock()
		// re-check under the write lock; a concurrent Put may have replaced it
		if cur, ok := c.entries[key]; ok && cur.expired(c.now()) {
			delete(c.entries, key)
			cacheEntries.Set(float64(len(c.entries)))
		}
		c.mu.Unlock()
		return nil, "", false
	}
	return e.Body, e.ContentType, true
}

// Put stores body under key for ttl, replacing any previous entry.
// A non-positive ttl is ignored.
func (c *Cache) Put(key string, body []byte, contentType string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	now := c.now()
	e := &Entry{
		Key:         key,
		Body:        append([]byte(nil), body...),
		ContentType: contentType,
		ExpiresAt:   now.Add(ttl),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.sweepLocked(now)
		if len(c.entries) >= c.maxEntries {
			c.evictOldestLocked()
		}
	}
	c.entries[key] = e
	cacheEntries.Set(float64(len(c.entries)))
}

// Clear removes every entry and returns how many were removed.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]*Entry)
	cacheEntries.Set(0)
	return n
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Sweep removes expired entries and returns how many were removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.sweepLocked(c.now())
	cacheEntries.Set(float64(len(c.entries)))
	return n
}

func (c *Cache) sweepLocked(now time.Time) int {
	removed := 0
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

func (c *Cache) evictOldestLocked() {
	var oldest *Entry
	for _, e := range c.entries {
		if oldest == nil || e.ExpiresAt.Before(oldest.ExpiresAt) {
			oldest = e
		}
	}
	if oldest != nil {
		delete(c.entries, oldest.Key)
		cacheEvictions.Inc()
	}
}

// Run sweeps expired entries every interval until ctx is done.
func (c *Cache) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = defaults.CacheSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := c.Sweep(); n > 0 {
				slog.Debug("swept expired cache entries", "removed", n)
			}
		}
	}
}
