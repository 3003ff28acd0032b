package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/askdocs/internal/domain"
)

const (
	defaultLimit      = 5
	semanticThreshold = 0.6
	lexicalMinScore   = 0.01
)

// Retrieval path names surfaced in search responses.
const (
	ModeSemantic = "semantic"
	ModeLexical  = "lexical"
)

// Response is a ranked search outcome.
type Response struct {
	Results []domain.SearchResult `json:"results"`
	Count   int                   `json:"count"`
	Mode    string                `json:"mode"`
}

// Service serves raw ranked search without answer synthesis. Like the
// question path it prefers semantic retrieval and degrades to the
// lexical ranker per request.
type Service struct {
	docs      DocumentReader
	ranker    Ranker
	retriever SemanticRetriever // nil when embedding/vector backends are absent
	log       *zap.Logger
}

// New creates the search service. retriever may be nil.
func New(docs DocumentReader, ranker Ranker, retriever SemanticRetriever, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{docs: docs, ranker: ranker, retriever: retriever, log: log}
}

// Search returns up to limit ranked results for the query. A
// non-positive limit means the default.
func (s *Service) Search(ctx context.Context, query string, limit int) (*Response, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidQuery)
	}
	if !s.docs.Ready() {
		return nil, domain.ErrNotInitialized
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	if s.retriever != nil {
		results, err := s.retriever.Retrieve(ctx, query, limit, semanticThreshold)
		if err == nil {
			return &Response{Results: results, Count: len(results), Mode: ModeSemantic}, nil
		}
		s.log.Warn("semantic search unavailable, ranking lexically", zap.Error(err))
	}

	results := s.ranker.Rank(query, s.docs.All(), limit, lexicalMinScore)
	return &Response{Results: results, Count: len(results), Mode: ModeLexical}, nil
}
