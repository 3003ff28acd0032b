package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all configured backends are operational.
	Healthy Status = "ok"
	// Degraded indicates a semantic backend is failing; the lexical
	// path still answers.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status    Status                 `json:"status"`
	Mode      string                 `json:"mode"`
	Ready     bool                   `json:"ready"`
	Documents int                    `json:"documents"`
	Checks    map[string]CheckResult `json:"checks"`
}

// Service coordinates health checks.
type Service struct {
	corpus    CorpusReader
	vectors   VectorPinger     // nil when the vector backend is absent
	embedding EmbeddingChecker // nil when the embedding provider is absent
}

// New creates a Service. vectors and embedding can be nil.
func New(corpus CorpusReader, vectors VectorPinger, embedding EmbeddingChecker) *Service {
	return &Service{corpus: corpus, vectors: vectors, embedding: embedding}
}

// Check probes the configured backends and the corpus. Backend
// failures degrade the report but never make the service unavailable:
// the lexical path has no external dependency.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	mode := "lexical"

	if s.vectors != nil {
		if err := s.vectors.Ping(ctx); err != nil {
			checks["vector_index"] = CheckError
		} else {
			checks["vector_index"] = CheckOK
		}
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	if s.vectors != nil && s.embedding != nil &&
		checks["vector_index"] == CheckOK && checks["embedding"] == CheckOK {
		mode = "semantic"
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{
		Status:    status,
		Mode:      mode,
		Ready:     s.corpus.Ready(),
		Documents: s.corpus.Count(),
		Checks:    checks,
	}
}
