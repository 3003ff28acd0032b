package lexical

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/kailas-cloud/askdocs/internal/domain"
)

const (
	// titleBoost multiplies the cumulative score once per query term
	// that also appears among the tokenized title terms.
	titleBoost = 1.5
	// snippetMaxLength bounds the snippet attached to each result.
	snippetMaxLength = 300
)

// Ranker scores documents against a query with TF-IDF statistics.
// It is self-contained: no index is kept between calls, the corpus is
// scored in a single pass per query.
type Ranker struct{}

// NewRanker creates a TF-IDF ranker.
func NewRanker() *Ranker {
	return &Ranker{}
}

// scored pairs a document with its raw, unnormalized relevance score.
type scored struct {
	doc   domain.Document
	score float64
}

// Rank scores every document in the corpus against the query, drops
// candidates below minScore, and returns the top limit results ordered by
// descending score. The reported similarity is min(score*10, 1): an ad hoc
// rescale so that typical multi-term matches land near the top of [0,1].
// It is not a calibrated confidence.
//
// An empty corpus or a query with no tokens yields an empty result list.
func (r *Ranker) Rank(query string, corpus []domain.Document, limit int, minScore float64) []domain.SearchResult {
	if len(corpus) == 0 {
		return []domain.SearchResult{}
	}
	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 {
		return []domain.SearchResult{}
	}

	// Tokenize each document body once; document frequencies and TF both
	// read from this.
	contentTokens := make([][]string, len(corpus))
	for i, doc := range corpus {
		contentTokens[i] = Tokenize(doc.Content)
	}
	idf := inverseDocFrequencies(queryTokens, contentTokens)

	candidates := make([]scored, 0, len(corpus))
	for i, doc := range corpus {
		docTokens := append(append([]string{}, contentTokens[i]...), Tokenize(doc.Title)...)
		titleTokens := tokenSet(Tokenize(doc.Title))

		score := 0.0
		for _, term := range queryTokens {
			score += termFrequency(term, docTokens) * idf[term]
		}
		// Title boost compounds multiplicatively, once per matching term,
		// after the base sum.
		for _, term := range queryTokens {
			if _, ok := titleTokens[term]; ok {
				score *= titleBoost
			}
		}

		if score >= minScore {
			candidates = append(candidates, scored{doc: doc, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]domain.SearchResult, len(candidates))
	for i, c := range candidates {
		results[i] = domain.SearchResult{
			ID:         c.doc.ID,
			Title:      c.doc.Title,
			Content:    c.doc.Content,
			URL:        c.doc.URL,
			Similarity: math.Min(c.score*10, 1.0),
			Snippet:    Snippet(c.doc.Content, query, snippetMaxLength),
		}
	}
	return results
}

// Tokenize lowercases the text, replaces every rune that is not a letter,
// digit, or whitespace with a space, splits on whitespace runs, and drops
// tokens of length <= 2. Accented Latin letters count as letters. The same
// tokenizer is applied to queries, document bodies, and titles.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	fields := strings.Fields(cleaned)
	tokens := fields[:0]
	for _, tok := range fields {
		if len([]rune(tok)) > 2 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// termFrequency is occurrences of term divided by sequence length.
// An empty sequence has frequency zero.
func termFrequency(term string, tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	count := 0
	for _, tok := range tokens {
		if tok == term {
			count++
		}
	}
	return float64(count) / float64(len(tokens))
}

// inverseDocFrequencies computes ln(N/df) per query term over the corpus
// content tokens. A term found in no document gets IDF 0, nullifying its
// contribution instead of blowing up.
func inverseDocFrequencies(terms []string, contentTokens [][]string) map[string]float64 {
	sets := make([]map[string]struct{}, len(contentTokens))
	for i, tokens := range contentTokens {
		sets[i] = tokenSet(tokens)
	}

	idf := make(map[string]float64, len(terms))
	for _, term := range terms {
		if _, done := idf[term]; done {
			continue
		}
		df := 0
		for _, set := range sets {
			if _, ok := set[term]; ok {
				df++
			}
		}
		if df == 0 {
			idf[term] = 0
			continue
		}
		idf[term] = math.Log(float64(len(contentTokens)) / float64(df))
	}
	return idf
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}
