// Package httpapi carries the shared HTTP plumbing for the web-service
// exercises: a preconfigured chi router, JSON helpers, and an SSE writer
// for the streaming endpoints.
package httpapi

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a chi router with the standard middleware stack and a
// /health probe.
func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a JSON error envelope.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// DecodeJSON decodes the request body into v, rejecting unknown fields so
// typos in request payloads surface as errors instead of silence.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// SSEWriter streams text/event-stream data chunks.
type SSEWriter struct {
	w       *bufio.Writer
	flusher http.Flusher
}

// NewSSEWriter prepares the response for server-sent events. It fails when
// the underlying writer cannot flush incrementally.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not implement http.Flusher")
	}

	return &SSEWriter{w: bufio.NewWriter(w), flusher: flusher}, nil
}

// Send writes one data event and flushes it to the client.
func (s *SSEWriter) Send(data string) error {
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	if err := s.w.Flush(); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// Done terminates the stream with the conventional [DONE] marker.
func (s *SSEWriter) Done() error {
	return s.Send("[DONE]")
}
