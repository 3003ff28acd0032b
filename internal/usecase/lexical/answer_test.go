package lexical

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kailas-cloud/askdocs/internal/domain"
)

func TestCompose_NoResults(t *testing.T) {
	s := NewSynthesizer(Messages{})
	got := s.Compose("deploy", nil)
	if got != DefaultMessages().NoResults {
		t.Fatalf("expected no-results message, got %q", got)
	}
}

func TestCompose_TopThreeSnippetsAndFullCount(t *testing.T) {
	results := make([]domain.SearchResult, 5)
	for i := range results {
		results[i] = domain.SearchResult{
			ID:      fmt.Sprintf("%d", i),
			Snippet: fmt.Sprintf("snippet %d", i),
		}
	}

	s := NewSynthesizer(Messages{})
	got := s.Compose("deploy", results)

	for i := 0; i < 3; i++ {
		if !strings.Contains(got, fmt.Sprintf("snippet %d", i)) {
			t.Fatalf("expected snippet %d in answer:\n%s", i, got)
		}
	}
	if strings.Contains(got, "snippet 3") {
		t.Fatalf("answer must only quote the top three results:\n%s", got)
	}
	// Trailing sentence reports the full result count, not capped at three.
	if !strings.Contains(got, "5 document(s)") {
		t.Fatalf("expected count of 5 in answer:\n%s", got)
	}
}

func TestCompose_FallsBackToContentWithoutSnippet(t *testing.T) {
	s := NewSynthesizer(Messages{})
	got := s.Compose("deploy", []domain.SearchResult{{ID: "1", Content: "raw content"}})
	if !strings.Contains(got, "raw content") {
		t.Fatalf("expected content fallback in answer:\n%s", got)
	}
}

func TestCompose_CustomMessages(t *testing.T) {
	s := NewSynthesizer(Messages{
		NoResults:     "nothing found",
		Header:        "From the docs:",
		CountSentence: "Found in %d page(s).",
	})

	if got := s.Compose("q", nil); got != "nothing found" {
		t.Fatalf("expected custom no-results message, got %q", got)
	}

	got := s.Compose("q", []domain.SearchResult{{ID: "1", Snippet: "snip"}})
	if !strings.HasPrefix(got, "From the docs:") {
		t.Fatalf("expected custom header, got %q", got)
	}
	if !strings.Contains(got, "Found in 1 page(s).") {
		t.Fatalf("expected custom count sentence, got %q", got)
	}
}

func TestCompose_Deterministic(t *testing.T) {
	results := []domain.SearchResult{
		{ID: "1", Snippet: "alpha"},
		{ID: "2", Snippet: "beta"},
	}
	s := NewSynthesizer(Messages{})
	if s.Compose("q", results) != s.Compose("q", results) {
		t.Fatal("expected identical answers for identical inputs")
	}
}
