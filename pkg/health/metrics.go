package health

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	consecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tikiq_provider_consecutive_failures",
			Help: "Current consecutive failure count per provider",
		},
		[]string{"provider"},
	)

	cooldownsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tikiq_provider_cooldowns_total",
			Help: "Number of cooldowns entered per provider",
		},
		[]string{"provider"},
	)
)
