// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "neelakshi_requests_total",
			Help: "Total number of chat requests answered, by selected intent and reply path",
		},
		[]string{"intent", "path"},
	)

	ProviderCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "neelakshi_provider_calls_total",
			Help: "Total number of provider adapter calls, by outcome",
		},
		[]string{"provider", "outcome"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "neelakshi_request_duration_seconds",
			Help:    "Duration of a full chat request in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
		},
		[]string{"intent"},
	)

	RequestsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "neelakshi_requests_active",
			Help: "Number of chat requests in flight",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "neelakshi_cache_lookups_total",
			Help: "Provider result cache lookups, by provider and hit/miss",
		},
		[]string{"provider", "result"},
	)
)
