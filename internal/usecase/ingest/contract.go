package ingest

import (
	"context"

	"github.com/kailas-cloud/askdocs/internal/domain"
)

// DocumentWriter is the in-memory corpus the lexical path queries.
type DocumentWriter interface {
	AddBulk(recs []domain.IngestRecord)
	Count() int
}

// Embedder vectorizes document content for indexing.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorWriter persists document vectors for similarity search.
type VectorWriter interface {
	Upsert(ctx context.Context, doc domain.Document, vec []float32) error
}
