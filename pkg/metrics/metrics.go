// Package metrics holds the HTTP server instrumentation. Provider, cache,
// resolver and health metrics live next to the code that emits them; this
// package covers the inbound request surface. All metrics share the tikiq_
// prefix and are exposed on /metrics via the default Prometheus registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tikiq_http_requests_total",
			Help: "Number of HTTP requests by route and status code",
		},
		[]string{"route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tikiq_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"route"},
	)

	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tikiq_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// RecordRequest records one completed HTTP request.
func RecordRequest(route string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(route, statusText(status)).Inc()
	httpRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// IncInFlight marks a request as started and returns a done func.
func IncInFlight() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

func statusText(status int) string {
	switch {
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
