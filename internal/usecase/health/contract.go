package health

import "context"

// VectorPinger checks vector index availability.
type VectorPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// CorpusReader reports the state of the in-memory corpus.
type CorpusReader interface {
	Ready() bool
	Count() int
}
