package semantic

import (
	"context"

	"github.com/kailas-cloud/askdocs/internal/domain"
)

// VectorIndex is the vector-similarity capability consumed by retrieval.
type VectorIndex interface {
	Search(ctx context.Context, vec []float32, limit int, threshold float64) ([]domain.SearchResult, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
