package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/askdocs/internal/domain"
	"github.com/kailas-cloud/askdocs/internal/metrics"
)

// Result summarizes one bulk ingestion.
type Result struct {
	Ingested int `json:"ingested"`
	Indexed  int `json:"indexed"`
	Total    int `json:"total"`
}

// Service loads documentation into the corpus. Every record lands in
// the in-memory store so the lexical path always works; when the
// embedding and vector backends are configured, each document is also
// vectorized and indexed. A per-document indexing failure is logged and
// skipped, never failing the batch: the lexical path still covers the
// document.
type Service struct {
	store   DocumentWriter
	embed   Embedder     // nil when semantic indexing is absent
	vectors VectorWriter // nil when semantic indexing is absent
	log     *zap.Logger
}

// New creates the ingestion service. embed and vectors may be nil.
func New(store DocumentWriter, embed Embedder, vectors VectorWriter, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, embed: embed, vectors: vectors, log: log}
}

// Ingest loads a batch of records. An empty batch is valid and marks
// the corpus initialized with whatever it already holds.
func (s *Service) Ingest(ctx context.Context, recs []domain.IngestRecord) (*Result, error) {
	for i, rec := range recs {
		if rec.ID == "" {
			return nil, fmt.Errorf("%w: record %d has no id", domain.ErrInvalidQuery, i)
		}
	}

	started := time.Now()
	s.store.AddBulk(recs)
	metrics.DocumentsIngested.Add(float64(len(recs)))

	indexed := 0
	if s.embed != nil && s.vectors != nil {
		indexed = s.indexBatch(ctx, recs)
	}

	s.log.Info("ingestion finished",
		zap.Int("received", len(recs)),
		zap.Int("indexed", indexed),
		zap.Int("corpus_size", s.store.Count()),
		zap.Duration("took", time.Since(started)),
	)
	return &Result{Ingested: len(recs), Indexed: indexed, Total: s.store.Count()}, nil
}

func (s *Service) indexBatch(ctx context.Context, recs []domain.IngestRecord) int {
	indexed := 0
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			s.log.Warn("indexing interrupted", zap.Error(err), zap.Int("indexed", indexed))
			return indexed
		}

		doc := domain.Document{
			ID:       rec.ID,
			Title:    rec.Title,
			Content:  rec.Content,
			URL:      rec.URL,
			SpaceKey: rec.SpaceKey,
		}
		vec, err := s.embed.Embed(ctx, rec.Title+"\n\n"+rec.Content)
		if err != nil {
			s.log.Warn("skipping vector index for document",
				zap.String("id", rec.ID), zap.Error(err))
			continue
		}
		if err := s.vectors.Upsert(ctx, doc, vec); err != nil {
			s.log.Warn("skipping vector index for document",
				zap.String("id", rec.ID), zap.Error(err))
			continue
		}
		indexed++
	}
	return indexed
}
