package semantic

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/askdocs/internal/domain"
)

// contextMaxChars bounds the per-document excerpt handed to generation.
const contextMaxChars = 1000

// noContextMessage is the grounding text when retrieval found nothing.
const noContextMessage = "No relevant documentation found."

// Service is the semantic retrieval adapter: it turns a query into ranked
// results with the same shape as the lexical path, via the external
// embedding and vector-similarity capabilities.
type Service struct {
	embed Embedder
	index VectorIndex
}

// New creates a semantic retrieval service.
func New(embed Embedder, index VectorIndex) *Service {
	return &Service{embed: embed, index: index}
}

// Retrieve embeds the query and runs a similarity search with the given
// result cap and minimum-similarity cutoff. Both steps are fallible I/O;
// every failure wraps domain.ErrUpstreamUnavailable so the coordinator
// can decide to fall back instead of surfacing it.
func (s *Service) Retrieve(ctx context.Context, query string, limit int, threshold float64) ([]domain.SearchResult, error) {
	vec, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: vectorize query: %w", domain.ErrUpstreamUnavailable, err)
	}

	results, err := s.index.Search(ctx, vec, limit, threshold)
	if err != nil {
		return nil, fmt.Errorf("%w: vector search: %w", domain.ErrUpstreamUnavailable, err)
	}
	return results, nil
}

// BuildContext concatenates a bounded excerpt of each result into the
// grounding text handed to the generative step. Long documents are cut to
// the first contextMaxChars characters.
func BuildContext(results []domain.SearchResult) string {
	if len(results) == 0 {
		return noContextMessage
	}

	blocks := make([]string, len(results))
	for i, r := range results {
		content := r.Content
		if runes := []rune(content); len(runes) > contextMaxChars {
			content = string(runes[:contextMaxChars])
		}
		blocks[i] = fmt.Sprintf("Document %d: %s\nURL: %s\nContent: %s...\n---", i+1, r.Title, r.URL, content)
	}
	return strings.Join(blocks, "\n\n")
}
