package metrics

import "github.com/prometheus/client_golang/prometheus"

// Generation Prometheus metrics. The kind label is one of "text", "vision", "chat".
var (
	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_requests_total",
			Help:      "Total number of generation provider calls",
		},
		[]string{"provider", "model", "kind", "status"},
	)

	GenerationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_request_duration_seconds",
			Help:      "Generation request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"provider", "model", "kind"},
	)

	GenerationTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_tokens_total",
			Help:      "Total generation tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	GenerationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_errors_total",
			Help:      "Total generation errors",
		},
		[]string{"provider", "model", "error_type"},
	)
)

var generationGroup = newGroup(
	GenerationRequestsTotal,
	GenerationRequestDuration,
	GenerationTokensTotal,
	GenerationErrorsTotal,
)

// RegisterGenerationMetrics registers the collectors above. Safe to call repeatedly.
func RegisterGenerationMetrics() { generationGroup.register() }
