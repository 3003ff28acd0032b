package docstore

import (
	"sync"
	"time"

	"github.com/kailas-cloud/askdocs/internal/domain"
)

// Store holds ingested documents in memory for the process lifetime.
// It backs the lexical retrieval path and is shared between ingestion
// writers and query readers: individual entries are replaced atomically
// under the lock, while a bulk load in progress may be observed
// partially populated by concurrent queries.
type Store struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	ready     bool
	now       func() time.Time
}

// New creates an empty, not-yet-ready store.
func New() *Store {
	return &Store{
		documents: make(map[string]domain.Document),
		now:       time.Now,
	}
}

// Add inserts or fully replaces a single document by id.
func (s *Store) Add(rec domain.IngestRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[rec.ID] = domain.Document{
		ID:        rec.ID,
		Title:     rec.Title,
		Content:   rec.Content,
		URL:       rec.URL,
		SpaceKey:  rec.SpaceKey,
		CreatedAt: s.now(),
	}
}

// AddBulk ingests a batch of records and marks the store ready.
func (s *Store) AddBulk(recs []domain.IngestRecord) {
	for _, rec := range recs {
		s.Add(rec)
	}
	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
}

// MarkReady flags the store as initialized even with zero documents.
// Queries against an empty-but-ready store return no results rather
// than a not-initialized error.
func (s *Store) MarkReady() {
	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
}

// Get returns a document by id.
func (s *Store) Get(id string) (domain.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	return doc, ok
}

// All returns a snapshot of every stored document.
// Order is unspecified; rankers must not depend on it.
func (s *Store) All() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	return docs
}

// Count returns the number of stored documents.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// Ready reports whether bulk ingestion has run at least once.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Clear removes all documents and resets the ready flag.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = make(map[string]domain.Document)
	s.ready = false
}
