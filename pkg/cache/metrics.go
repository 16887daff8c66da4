package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_cache_hits_total",
			Help: "Total number of responses served from the response cache",
		},
	)

	cacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_cache_misses_total",
			Help: "Total number of requests that missed the response cache",
		},
	)

	cacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portfolio_cache_entries",
			Help: "Current number of entries in the response cache",
		},
	)

	cacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_cache_evictions_total",
			Help: "Total number of live entries evicted because the cache was full",
		},
	)
)
