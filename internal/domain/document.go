package domain

import "time"

// Document is a single ingested documentation page.
// Owned by the document store; immutable once stored except for full
// replacement when the same id is re-ingested.
type Document struct {
	ID        string
	Title     string
	Content   string
	URL       string
	SpaceKey  string
	CreatedAt time.Time
}

// IngestRecord is one bulk-ingestion input row handed to the document store.
type IngestRecord struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	URL      string `json:"url"`
	SpaceKey string `json:"spaceKey"`
}

// SearchResult is a per-query hit produced by either retrieval path.
// Similarity is an informative confidence in [0,1], not a probability:
// the lexical path rescales raw TF-IDF scores with min(score*10, 1) and
// that rescale is not calibrated across corpora.
type SearchResult struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	URL        string  `json:"url"`
	Similarity float64 `json:"similarity"`
	Snippet    string  `json:"snippet,omitempty"`
}

// Source is the citation shape emitted ahead of answer content.
type Source struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Similarity float64 `json:"similarity"`
}

// SourcesOf projects search results into the citation list.
func SourcesOf(results []SearchResult) []Source {
	sources := make([]Source, len(results))
	for i, r := range results {
		sources[i] = Source{Title: r.Title, URL: r.URL, Similarity: r.Similarity}
	}
	return sources
}
