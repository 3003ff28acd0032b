package lexical

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSnippet_PicksMatchingSentences(t *testing.T) {
	content := "The office opens at nine. Run the deploy script nightly. Lunch is at noon. The deploy pipeline needs network access."

	got := Snippet(content, "deploy script", 300)

	if !strings.Contains(got, "Run the deploy script nightly") {
		t.Fatalf("expected best sentence in snippet, got %q", got)
	}
	if !strings.Contains(got, "deploy pipeline") {
		t.Fatalf("expected second-best sentence in snippet, got %q", got)
	}
	if strings.Contains(got, "Lunch") {
		t.Fatalf("unexpected non-matching sentence in snippet: %q", got)
	}
}

func TestSnippet_TiesKeepOriginalOrder(t *testing.T) {
	content := "First deploy note. Second deploy note. Third deploy note."

	got := Snippet(content, "deploy", 300)

	if got != "First deploy note. Second deploy note" {
		t.Fatalf("expected first two tied sentences in order, got %q", got)
	}
}

func TestSnippet_FallsBackToLeadingSentences(t *testing.T) {
	content := "The office opens at nine. Lunch is at noon. Doors close at six."

	got := Snippet(content, "kubernetes", 300)

	if got != "The office opens at nine. Lunch is at noon" {
		t.Fatalf("expected leading sentences fallback, got %q", got)
	}
}

func TestSnippet_TruncatesWithEllipsis(t *testing.T) {
	content := strings.Repeat("deploy word salad keeps going on and on ", 30)

	got := Snippet(content, "deploy", 300)

	if utf8.RuneCountInString(got) > 303 {
		t.Fatalf("snippet too long: %d runes", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis marker, got %q", got)
	}
}

func TestSnippet_LengthBoundHoldsForArbitraryContent(t *testing.T) {
	contents := []string{
		"",
		"short",
		"no sentence punctuation here just words " + strings.Repeat("again ", 100),
		strings.Repeat("Une phrase déjà très accentuée. ", 40),
	}
	for _, content := range contents {
		got := Snippet(content, "phrase accentuée", 300)
		if n := utf8.RuneCountInString(got); n > 303 {
			t.Fatalf("snippet length %d exceeds 303 for content %q...", n, content[:min(20, len(content))])
		}
	}
}

func TestSnippet_EmptyContent(t *testing.T) {
	got := Snippet("", "deploy", 300)
	if got != "..." {
		t.Fatalf("expected bare ellipsis for empty content, got %q", got)
	}
}

func TestSnippet_SubstringMatchDoesNotCount(t *testing.T) {
	// "deployment" contains "deploy" as a substring but not as a token.
	content := "The deployment window is short. Budgets are reviewed monthly."

	got := Snippet(content, "deploy", 300)

	if got != "The deployment window is short. Budgets are reviewed monthly" {
		t.Fatalf("expected leading-sentences fallback, got %q", got)
	}
}
