package provider

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// providerRequestsTotal counts outbound calls by provider and status.
	providerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tikiq_provider_requests_total",
		Help: "Total provider requests by provider and status",
	}, []string{"provider", "status"})

	providerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tikiq_provider_request_duration_seconds",
		Help:    "Provider request duration in seconds by provider",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20},
	}, []string{"provider"})

	providerErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tikiq_provider_errors_total",
		Help: "Total provider errors by provider and class",
	}, []string{"provider", "class"})
)
