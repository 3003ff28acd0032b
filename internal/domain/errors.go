package domain

import "errors"

var (
	// ErrNotInitialized signals that the document store has not been
	// populated yet. The caller should trigger ingestion, not retry.
	ErrNotInitialized = errors.New("document store not initialized")
	// ErrInvalidQuery signals an empty or non-text query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrUpstreamUnavailable signals that an external capability
	// (embedding, vector index, or generation) is unreachable or failing.
	ErrUpstreamUnavailable = errors.New("upstream capability unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
