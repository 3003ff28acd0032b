package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval and embedding Prometheus metrics.
var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "askdocs",
			Name:      "queries_total",
			Help:      "Total number of answered queries by retrieval mode",
		},
		[]string{"mode"}, // "semantic" / "lexical"
	)

	FallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "askdocs",
			Name:      "fallbacks_total",
			Help:      "Semantic-path failures recovered by the lexical path",
		},
	)

	DocumentsIngested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "askdocs",
			Name:      "documents_ingested_total",
			Help:      "Total number of ingested documents",
		},
	)

	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "askdocs",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "askdocs",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	CompletionStreamsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "askdocs",
			Name:      "completion_streams_total",
			Help:      "Total number of generative completion streams",
		},
		[]string{"model", "status"},
	)
)

var registered bool

// Register registers retrieval metrics. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(FallbacksTotal)
	prometheus.MustRegister(DocumentsIngested)
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(CompletionStreamsTotal)
	registered = true
}
