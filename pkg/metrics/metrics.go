package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalyzeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clock_client_analyze_total",
			Help: "Total number of CLU analyze calls",
		},
		[]string{"status"},
	)

	AnalyzeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clock_client_analyze_duration_seconds",
			Help:    "Duration of CLU analyze calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)

	IntentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clock_client_intent_total",
			Help: "Resolved intents by name",
		},
		[]string{"intent"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clock_client_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
