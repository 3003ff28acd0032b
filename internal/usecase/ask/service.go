package ask

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/askdocs/internal/domain"
	"github.com/kailas-cloud/askdocs/internal/metrics"
	"github.com/kailas-cloud/askdocs/internal/usecase/semantic"
)

// Params bound both retrieval paths.
type Params struct {
	SemanticLimit     int
	SemanticThreshold float64
	LexicalLimit      int
	LexicalMinScore   float64
}

// DefaultParams returns the production retrieval bounds.
func DefaultParams() Params {
	return Params{
		SemanticLimit:     5,
		SemanticThreshold: 0.6,
		LexicalLimit:      5,
		LexicalMinScore:   0.01,
	}
}

// Service answers questions over the ingested corpus. The semantic path
// is optional: when it is not configured, or fails before its answer
// stream starts, the self-contained lexical path answers instead. A
// semantic failure never downgrades the service permanently; the next
// question tries the semantic path again.
type Service struct {
	docs      DocumentReader
	ranker    Ranker
	synth     Synthesizer
	retriever SemanticRetriever // nil when embedding/vector backends are absent
	generator Generator         // nil when the completion provider is absent
	params    Params
	log       *zap.Logger
}

// New creates the question-answering coordinator. retriever and
// generator may be nil; zero Params fields fall back to DefaultParams.
func New(docs DocumentReader, ranker Ranker, synth Synthesizer, retriever SemanticRetriever, generator Generator, params Params, log *zap.Logger) *Service {
	def := DefaultParams()
	if params.SemanticLimit <= 0 {
		params.SemanticLimit = def.SemanticLimit
	}
	if params.SemanticThreshold <= 0 {
		params.SemanticThreshold = def.SemanticThreshold
	}
	if params.LexicalLimit <= 0 {
		params.LexicalLimit = def.LexicalLimit
	}
	if params.LexicalMinScore <= 0 {
		params.LexicalMinScore = def.LexicalMinScore
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		docs:      docs,
		ranker:    ranker,
		synth:     synth,
		retriever: retriever,
		generator: generator,
		params:    params,
		log:       log,
	}
}

// Ask answers a question with a fragment stream. It fails fast with
// domain.ErrInvalidQuery on a blank question and domain.ErrNotInitialized
// before the first ingestion; it never blocks waiting for documents.
func (s *Service) Ask(ctx context.Context, question string) (*Stream, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidQuery)
	}
	if !s.docs.Ready() {
		return nil, domain.ErrNotInitialized
	}

	if s.semanticConfigured() {
		stream, err := s.askSemantic(ctx, question)
		if err == nil {
			metrics.QueriesTotal.WithLabelValues(string(ModeSemantic)).Inc()
			return stream, nil
		}
		s.log.Warn("semantic path unavailable, answering lexically", zap.Error(err))
		metrics.FallbacksTotal.Inc()
	}

	metrics.QueriesTotal.WithLabelValues(string(ModeLexical)).Inc()
	return s.askLexical(ctx, question), nil
}

func (s *Service) semanticConfigured() bool {
	return s.retriever != nil && s.generator != nil
}

// askSemantic retrieves by vector similarity and streams a generated
// answer. Errors before the stream starts are returned for fallback;
// once streaming has begun a failure surfaces through Stream.Err.
func (s *Service) askSemantic(ctx context.Context, question string) (*Stream, error) {
	results, err := s.retriever.Retrieve(ctx, question, s.params.SemanticLimit, s.params.SemanticThreshold)
	if err != nil {
		return nil, err
	}

	tokens, err := s.generator.Complete(ctx, question, semantic.BuildContext(results))
	if err != nil {
		return nil, err
	}

	stream := newStream(ModeSemantic, results)
	go func() {
		defer stream.finish()
		defer func() { _ = tokens.Close() }()
		for {
			frag, err := tokens.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				stream.fail(fmt.Errorf("%w: completion stream: %w", domain.ErrUpstreamUnavailable, err))
				return
			}
			if !stream.emit(ctx, frag) {
				return
			}
		}
	}()
	return stream, nil
}

// askLexical ranks the in-memory corpus and streams the extractive
// answer word by word.
func (s *Service) askLexical(ctx context.Context, question string) *Stream {
	results := s.ranker.Rank(question, s.docs.All(), s.params.LexicalLimit, s.params.LexicalMinScore)
	answer := s.synth.Compose(question, results)

	stream := newStream(ModeLexical, results)
	go func() {
		defer stream.finish()
		for _, word := range strings.Split(answer, " ") {
			if !stream.emit(ctx, word+" ") {
				return
			}
		}
	}()
	return stream
}
