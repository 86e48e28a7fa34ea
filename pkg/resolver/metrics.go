package resolver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tikiq_resolver_resolutions_total",
			Help: "Number of resolved queries by kind and winning source",
		},
		[]string{"kind", "source"},
	)

	unavailableTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tikiq_resolver_unavailable_total",
			Help: "Number of queries for which every provider was exhausted",
		},
		[]string{"kind"},
	)

	providerSkips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tikiq_resolver_provider_skips_total",
			Help: "Number of providers skipped during resolution by reason",
		},
		[]string{"provider", "reason"},
	)
)
