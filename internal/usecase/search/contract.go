package search

import (
	"context"

	"github.com/kailas-cloud/askdocs/internal/domain"
)

// SemanticRetriever is the embedding-backed retrieval path.
type SemanticRetriever interface {
	Retrieve(ctx context.Context, query string, limit int, threshold float64) ([]domain.SearchResult, error)
}

// Ranker is the self-contained lexical retrieval path.
type Ranker interface {
	Rank(query string, corpus []domain.Document, limit int, minScore float64) []domain.SearchResult
}

// DocumentReader exposes the ingested corpus.
type DocumentReader interface {
	All() []domain.Document
	Ready() bool
}
