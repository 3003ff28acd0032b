package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/askdocs/internal/domain"
	askuc "github.com/kailas-cloud/askdocs/internal/usecase/ask"
	healthuc "github.com/kailas-cloud/askdocs/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/askdocs/internal/usecase/ingest"
	searchuc "github.com/kailas-cloud/askdocs/internal/usecase/search"
)

// ErrorCode is the machine-readable error code in API error responses.
type ErrorCode string

const (
	CodeBadRequest          ErrorCode = "bad_request"
	CodeValidationFailed    ErrorCode = "validation_failed"
	CodeNeedsIngestion      ErrorCode = "needs_ingestion"
	CodeUpstreamUnavailable ErrorCode = "upstream_unavailable"
	CodeInternalError       ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code           ErrorCode `json:"code"`
	Message        string    `json:"message"`
	NeedsIngestion bool      `json:"needs_ingestion,omitempty"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the question-answering API over HTTP.
type Server struct {
	ask           *askuc.Service
	search        *searchuc.Service
	ingest        *ingestuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	ask *askuc.Service,
	search *searchuc.Service,
	ingest *ingestuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		ask:    ask,
		search: search,
		ingest: ingest,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		notInitializedHandler,
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrUpstreamUnavailable, http.StatusBadGateway, CodeUpstreamUnavailable),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeUpstreamUnavailable),
	}
	return s
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chirouter.Router) {
	r.Post("/api/chat", s.Chat)
	r.Post("/api/search", s.SearchDocuments)
	r.Post("/api/ingest", s.IngestDocuments)
	r.Get("/api/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// SearchDocuments handles POST /api/search.
func (s *Server) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := s.search.Search(r.Context(), req.Query, req.Limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type ingestRequest struct {
	Documents []domain.IngestRecord `json:"documents"`
}

// IngestDocuments handles POST /api/ingest.
func (s *Server) IngestDocuments(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	res, err := s.ingest.Ingest(r.Context(), req.Documents)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// HealthCheck handles GET /api/health. Degraded backends do not make
// the endpoint fail: the lexical path keeps the service answering.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.health.Check(r.Context()))
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotInitialized,
		domain.ErrInvalidQuery,
		domain.ErrUpstreamUnavailable,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// notInitializedHandler flags the empty corpus so clients can trigger ingestion.
func notInitializedHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrNotInitialized) {
		return false
	}
	writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
		Code:           CodeNeedsIngestion,
		Message:        msg,
		NeedsIngestion: true,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
