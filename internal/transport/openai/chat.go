package openai

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/askdocs/internal/domain"
	"github.com/kailas-cloud/askdocs/internal/metrics"
)

// systemPromptFormat grounds the model in the retrieved documentation.
const systemPromptFormat = `You are a helpful assistant that answers questions based on the provided context from the documentation.
If the context doesn't contain relevant information to answer the question, say so honestly.
Always be concise and accurate.

Context:
%s
`

// Generator is the generative streaming capability behind an
// OpenAI-compatible chat API.
type Generator struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewGenerator creates a streaming chat client.
func NewGenerator(cfg *Config) *Generator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Generator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// Complete opens a completion stream for the question grounded in
// contextText. The returned stream yields text fragments until io.EOF;
// it is not restartable and must be fully drained or closed.
func (g *Generator) Complete(ctx context.Context, question, contextText string) (*CompletionStream, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fmt.Sprintf(systemPromptFormat, contextText)},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
		Stream: true,
	}

	stream, err := g.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		metrics.CompletionStreamsTotal.WithLabelValues(g.model, "error").Inc()
		return nil, fmt.Errorf("create completion stream: %w: %w", domain.ErrUpstreamUnavailable, err)
	}

	metrics.CompletionStreamsTotal.WithLabelValues(g.model, "started").Inc()
	return &CompletionStream{inner: stream}, nil
}

// CompletionStream adapts the provider stream to plain text fragments.
type CompletionStream struct {
	inner *openai.ChatCompletionStream
}

// Recv returns the next non-empty text fragment, or io.EOF when the
// stream is exhausted.
func (s *CompletionStream) Recv() (string, error) {
	for {
		resp, err := s.inner.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", io.EOF
			}
			return "", fmt.Errorf("completion stream: %w", domain.ErrUpstreamUnavailable)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if content := resp.Choices[0].Delta.Content; content != "" {
			return content, nil
		}
	}
}

// Close releases the underlying stream.
func (s *CompletionStream) Close() error {
	return s.inner.Close()
}
