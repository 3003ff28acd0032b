package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/askdocs/internal/domain"
)

func newCompletionServer(t *testing.T, fragments []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, frag := range fragments {
			fmt.Fprintf(w,
				"data: {\"id\":\"1\",\"object\":\"chat.completion.chunk\",\"choices\":[{\"index\":0,\"delta\":{\"content\":%q}}]}\n\n",
				frag)
			flusher.Flush()
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
		flusher.Flush()
	}))
}

func TestGenerator_StreamsFragmentsInOrder(t *testing.T) {
	fragments := []string{"Run ", "the ", "deploy ", "script."}
	server := newCompletionServer(t, fragments)
	defer server.Close()

	g := NewGenerator(&Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
		Logger:  zap.NewNop(),
	})

	stream, err := g.Complete(context.Background(), "how to deploy?", "some context")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	defer stream.Close()

	var got []string
	for {
		frag, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Recv failed: %v", err)
		}
		got = append(got, frag)
	}

	if strings.Join(got, "") != strings.Join(fragments, "") {
		t.Fatalf("expected %q, got %q", strings.Join(fragments, ""), strings.Join(got, ""))
	}
}

func TestGenerator_UnreachableProvider(t *testing.T) {
	g := NewGenerator(&Config{
		APIKey:  "test-key",
		BaseURL: "http://127.0.0.1:1", // nothing listens here
		Model:   "test-model",
		Logger:  zap.NewNop(),
	})

	_, err := g.Complete(context.Background(), "q", "ctx")
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}
