package docstore

import (
	"fmt"
	"sync"
	"testing"

	"github.com/kailas-cloud/askdocs/internal/domain"
)

func testRecords(n int) []domain.IngestRecord {
	recs := make([]domain.IngestRecord, n)
	for i := range recs {
		recs[i] = domain.IngestRecord{
			ID:      fmt.Sprintf("doc-%d", i),
			Title:   fmt.Sprintf("Title %d", i),
			Content: "some content",
			URL:     fmt.Sprintf("https://docs.example.com/%d", i),
		}
	}
	return recs
}

func TestStore_NotReadyUntilBulkAdd(t *testing.T) {
	s := New()
	if s.Ready() {
		t.Fatal("new store must not be ready")
	}

	s.Add(domain.IngestRecord{ID: "1", Title: "t"})
	if s.Ready() {
		t.Fatal("single Add must not mark the store ready")
	}

	s.AddBulk(testRecords(2))
	if !s.Ready() {
		t.Fatal("AddBulk must mark the store ready")
	}
	if s.Count() != 3 {
		t.Fatalf("expected 3 documents, got %d", s.Count())
	}
}

func TestStore_MarkReadyWithZeroDocuments(t *testing.T) {
	s := New()
	s.MarkReady()

	if !s.Ready() {
		t.Fatal("expected ready after MarkReady")
	}
	if s.Count() != 0 {
		t.Fatalf("expected empty store, got %d documents", s.Count())
	}
	if got := s.All(); len(got) != 0 {
		t.Fatalf("expected no documents, got %d", len(got))
	}
}

func TestStore_ReingestionOverwrites(t *testing.T) {
	s := New()
	s.AddBulk([]domain.IngestRecord{{ID: "1", Title: "old", Content: "old content"}})
	s.AddBulk([]domain.IngestRecord{{ID: "1", Title: "new", Content: "new content"}})

	if s.Count() != 1 {
		t.Fatalf("expected 1 document after re-ingestion, got %d", s.Count())
	}
	doc, ok := s.Get("1")
	if !ok {
		t.Fatal("document not found")
	}
	if doc.Title != "new" || doc.Content != "new content" {
		t.Fatalf("expected overwritten document, got %+v", doc)
	}
}

func TestStore_ClearResetsReady(t *testing.T) {
	s := New()
	s.AddBulk(testRecords(5))

	s.Clear()

	if s.Ready() {
		t.Fatal("expected not ready after Clear")
	}
	if s.Count() != 0 {
		t.Fatalf("expected empty store after Clear, got %d", s.Count())
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := New()
	if _, ok := s.Get("nope"); ok {
		t.Fatal("expected miss for unknown id")
	}
}

func TestStore_ConcurrentReadersAndWriters(t *testing.T) {
	s := New()
	s.AddBulk(testRecords(10))

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(2)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.Add(domain.IngestRecord{ID: fmt.Sprintf("doc-%d", i%10), Title: "rewritten"})
			}
		}(w)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				for _, doc := range s.All() {
					// Readers must observe either the old or the new entry,
					// never a torn one.
					if doc.ID == "" {
						t.Error("observed zero-value document")
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}
