package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tikiq_cache_hits_total",
			Help: "Number of cache hits by backend",
		},
		[]string{"backend"},
	)

	cacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tikiq_cache_misses_total",
			Help: "Number of cache misses by backend",
		},
		[]string{"backend"},
	)

	cacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tikiq_cache_errors_total",
			Help: "Number of cache backend errors by operation",
		},
		[]string{"operation"},
	)
)

func recordHit(backend string)     { cacheHits.WithLabelValues(backend).Inc() }
func recordMiss(backend string)    { cacheMisses.WithLabelValues(backend).Inc() }
func recordError(operation string) { cacheErrors.WithLabelValues(operation).Inc() }
