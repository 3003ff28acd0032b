package lexical

import (
	"sort"
	"strings"
)

const ellipsis = "..."

// Snippet selects the one or two sentences of content most relevant to the
// query and trims the result to maxLength characters.
//
// Sentence splitting is naive: content is cut on '.', '!' and '?' runs with
// no abbreviation awareness, so "e.g." produces two fragments. Sentences are
// scored by how many distinct query tokens they contain as whole tokens
// (substring matches do not count). The top two sentences win, ties keep
// original order; with no scoring sentence the first two sentences are used.
func Snippet(content, query string, maxLength int) string {
	sentences := splitSentences(content)
	queryTokens := Tokenize(query)

	type scoredSentence struct {
		text  string
		score int
	}
	scoredSentences := make([]scoredSentence, len(sentences))
	for i, sentence := range sentences {
		sentenceTokens := tokenSet(Tokenize(sentence))
		score := 0
		for _, term := range queryTokens {
			if _, ok := sentenceTokens[term]; ok {
				score++
			}
		}
		scoredSentences[i] = scoredSentence{text: sentence, score: score}
	}

	sort.SliceStable(scoredSentences, func(i, j int) bool {
		return scoredSentences[i].score > scoredSentences[j].score
	})

	var top []string
	for _, s := range scoredSentences {
		if s.score == 0 || len(top) == 2 {
			break
		}
		top = append(top, s.text)
	}
	if len(top) == 0 {
		// No sentence matched: fall back to the leading two sentences.
		if len(sentences) > 2 {
			sentences = sentences[:2]
		}
		top = sentences
	}

	snippet := truncate(strings.Join(top, ". "), maxLength)
	if snippet == "" {
		snippet = truncate(content, maxLength)
		if snippet == content {
			snippet = content + ellipsis
		}
	}
	return snippet
}

// truncate cuts s to maxLength characters plus an ellipsis marker.
// Lengths are counted in runes so multi-byte characters are never split.
func truncate(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	return string(runes[:maxLength]) + ellipsis
}

// splitSentences cuts text on sentence-ending punctuation, trimming
// whitespace and dropping empty fragments.
func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := parts[:0]
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}
