package ask

import (
	"context"
	"sync"

	"github.com/kailas-cloud/askdocs/internal/domain"
)

// Mode names the retrieval path that produced an answer.
type Mode string

const (
	ModeSemantic Mode = "semantic"
	ModeLexical  Mode = "lexical"
)

// fragmentBuffer caps in-flight answer fragments so a slow consumer
// applies backpressure to the producer instead of growing memory.
const fragmentBuffer = 16

// Stream is one in-flight answer. Sources and Results are fixed before
// the first fragment is produced, so a consumer can always emit
// citations ahead of content. Fragments closes when the answer is
// complete; check Err afterwards to distinguish completion from failure.
type Stream struct {
	Mode    Mode
	Sources []domain.Source
	Results []domain.SearchResult

	fragments chan string

	mu  sync.Mutex
	err error
}

func newStream(mode Mode, results []domain.SearchResult) *Stream {
	return &Stream{
		Mode:      mode,
		Sources:   domain.SourcesOf(results),
		Results:   results,
		fragments: make(chan string, fragmentBuffer),
	}
}

// Fragments returns the ordered answer fragments.
func (s *Stream) Fragments() <-chan string { return s.fragments }

// Err reports an abnormal termination. Meaningful once Fragments is closed.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Stream) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// emit delivers one fragment, giving up when the consumer's context ends.
func (s *Stream) emit(ctx context.Context, frag string) bool {
	select {
	case s.fragments <- frag:
		return true
	case <-ctx.Done():
		s.fail(ctx.Err())
		return false
	}
}

func (s *Stream) finish() { close(s.fragments) }
