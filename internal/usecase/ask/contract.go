package ask

import (
	"context"

	"github.com/kailas-cloud/askdocs/internal/domain"
)

// SemanticRetriever is the embedding-backed retrieval path.
type SemanticRetriever interface {
	Retrieve(ctx context.Context, query string, limit int, threshold float64) ([]domain.SearchResult, error)
}

// TokenStream yields answer fragments from a generative completion.
// Recv returns io.EOF when the provider has sent everything.
type TokenStream interface {
	Recv() (string, error)
	Close() error
}

// Generator produces a grounded answer stream for a question and the
// retrieved context text.
type Generator interface {
	Complete(ctx context.Context, question, contextText string) (TokenStream, error)
}

// Ranker is the self-contained lexical retrieval path.
type Ranker interface {
	Rank(query string, corpus []domain.Document, limit int, minScore float64) []domain.SearchResult
}

// Synthesizer composes an extractive answer from lexical results.
type Synthesizer interface {
	Compose(query string, results []domain.SearchResult) string
}

// DocumentReader exposes the ingested corpus to the query paths.
type DocumentReader interface {
	All() []domain.Document
	Ready() bool
}
