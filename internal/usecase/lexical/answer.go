package lexical

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/askdocs/internal/domain"
)

// Messages holds the locale-dependent phrases of the extractive answer.
// CountSentence is a fmt string receiving the number of relevant documents.
type Messages struct {
	NoResults     string
	Header        string
	CountSentence string
}

// DefaultMessages returns the stock French phrases, matching the locale
// the documentation corpus ships in.
func DefaultMessages() Messages {
	return Messages{
		NoResults:     "Je n'ai pas trouvé d'information pertinente dans la documentation pour répondre à cette question.",
		Header:        "D'après la documentation :",
		CountSentence: "Ces informations proviennent de %d document(s) pertinent(s).",
	}
}

// Synthesizer composes an answer purely from ranked snippets.
// It is a deterministic, reproducible substitute for generative synthesis
// and never calls an external service.
type Synthesizer struct {
	msgs Messages
}

// NewSynthesizer creates a synthesizer with the given locale messages.
// Zero-value fields fall back to the defaults.
func NewSynthesizer(msgs Messages) *Synthesizer {
	def := DefaultMessages()
	if msgs.NoResults == "" {
		msgs.NoResults = def.NoResults
	}
	if msgs.Header == "" {
		msgs.Header = def.Header
	}
	if msgs.CountSentence == "" {
		msgs.CountSentence = def.CountSentence
	}
	return &Synthesizer{msgs: msgs}
}

// Compose builds the answer string from ranked results: the snippets of the
// top three results as separate paragraphs, followed by a sentence stating
// how many relevant documents were found (the full result count, not capped
// at three). Empty results yield the fixed no-results message.
func (s *Synthesizer) Compose(query string, results []domain.SearchResult) string {
	if len(results) == 0 {
		return s.msgs.NoResults
	}

	top := results
	if len(top) > 3 {
		top = top[:3]
	}

	var b strings.Builder
	b.WriteString(s.msgs.Header)
	b.WriteString("\n\n")
	for _, r := range top {
		text := r.Snippet
		if text == "" {
			text = r.Content
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, s.msgs.CountSentence, len(results))

	return b.String()
}
