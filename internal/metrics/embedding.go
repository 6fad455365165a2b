package metrics

import "github.com/prometheus/client_golang/prometheus"

// Embedding calls to the provider, labelled by provider and model.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "embedding",
		Name:      "requests_total",
		Help:      "Embedding provider calls by outcome status",
	}, []string{"provider", "model", "status"})

	EmbeddingRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "embedding",
		Name:      "request_duration_seconds",
		Help:      "Latency of successful embedding batches",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 9),
	}, []string{"provider", "model"})

	// type is "prompt" or "total".
	EmbeddingTokensTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "embedding",
		Name:      "tokens_total",
		Help:      "Tokens reported by the embedding endpoint",
	}, []string{"provider", "model", "type"})

	EmbeddingErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "embedding",
		Name:      "errors_total",
		Help:      "Embedding failures by error type",
	}, []string{"provider", "model", "error_type"})

	// result is "hit" or "miss".
	EmbeddingCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "embedding",
		Name:      "cache_total",
		Help:      "Lookups against the shared vector cache",
	}, []string{"result"})

	// BudgetTokensRemaining is shared by embedding and generation; period is "daily" or "monthly".
	BudgetTokensRemaining = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "budget",
		Name:      "tokens_remaining",
		Help:      "Tokens left in the current budget period",
	}, []string{"provider", "period"})
)

var embeddingGroup = newGroup(
	EmbeddingRequestsTotal,
	EmbeddingRequestDuration,
	EmbeddingTokensTotal,
	EmbeddingErrorsTotal,
	EmbeddingCacheTotal,
	BudgetTokensRemaining,
)

// RegisterEmbeddingMetrics registers embedding and budget collectors. Safe to call repeatedly.
func RegisterEmbeddingMetrics() { embeddingGroup.register() }
