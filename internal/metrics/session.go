package metrics

import "github.com/prometheus/client_golang/prometheus"

// Session and ingestion Prometheus metrics.
var (
	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of live user sessions",
		},
	)

	IngestionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_ingestions_total",
			Help:      "Cookbook ingestions by outcome",
		},
		[]string{"result"}, // "ok" / "cached" / "error"
	)

	IngestionSegments = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_ingestion_segments",
			Help:      "Number of segments produced per ingested cookbook",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	TurnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversation_turns_total",
			Help:      "Assistant turns appended per mode and error kind",
		},
		[]string{"mode", "error_kind"},
	)
)

var sessionGroup = newGroup(
	SessionsActive,
	IngestionsTotal,
	IngestionSegments,
	TurnsTotal,
)

// RegisterSessionMetrics registers the collectors above. Safe to call repeatedly.
func RegisterSessionMetrics() { sessionGroup.register() }
