package chi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/askdocs/internal/domain"
)

type chatRequest struct {
	Question string `json:"question"`
}

// sourcesEvent is the first SSE payload: citations always precede content.
type sourcesEvent struct {
	Type    string          `json:"type"`
	Mode    string          `json:"mode"`
	Sources []domain.Source `json:"sources"`
}

type contentEvent struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type streamErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Chat handles POST /api/chat with a server-sent event stream:
// one sources event, then content events, then the [DONE] marker.
// Failures before the stream starts are plain JSON errors; a failure
// mid-stream becomes an error event because the status line is gone.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	stream, err := s.ask.Ask(r.Context(), req.Question)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.logger.Error("response writer does not support flushing")
		writeError(w, http.StatusInternalServerError, CodeInternalError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	writeEvent(w, sourcesEvent{Type: "sources", Mode: string(stream.Mode), Sources: stream.Sources})
	flusher.Flush()

	for frag := range stream.Fragments() {
		writeEvent(w, contentEvent{Type: "content", Content: frag})
		flusher.Flush()
	}

	if err := stream.Err(); err != nil {
		s.logger.Warn("answer stream interrupted", zap.Error(err))
		writeEvent(w, streamErrorEvent{Type: "error", Message: safeDomainMessage(err)})
		flusher.Flush()
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

func writeEvent(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
}
