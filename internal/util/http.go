package util

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// WriteJSONError writes a JSON error body with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// RouteRecorder is implemented by response writer wrappers that want
// to observe the matched route pattern after dispatch.
type RouteRecorder interface {
	RecordRoute(pattern string)
}

// RecordRoute notifies every RouteRecorder in the response writer
// chain of the matched route pattern. The chain is walked through
// Unwrap, matching the http.ResponseController convention, so the
// request object stays untouched.
func RecordRoute(w http.ResponseWriter, pattern string) {
	for w != nil {
		if rec, ok := w.(RouteRecorder); ok {
			rec.RecordRoute(pattern)
		}
		u, ok := w.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			return
		}
		w = u.Unwrap()
	}
}

// StatusCapturingResponseWriter wraps http.ResponseWriter to track the
// status code and matched route after the handler has completed.
type StatusCapturingResponseWriter struct {
	http.ResponseWriter
	StatusCode    int
	HeaderWritten bool
	Route         string
}

// NewStatusCapturingResponseWriter creates a new StatusCapturingResponseWriter
// wrapping the provided http.ResponseWriter with a default status of 200 OK.
func NewStatusCapturingResponseWriter(w http.ResponseWriter) *StatusCapturingResponseWriter {
	return &StatusCapturingResponseWriter{
		ResponseWriter: w,
		StatusCode:     http.StatusOK,
	}
}

// WriteHeader captures the status code and writes it to the underlying ResponseWriter.
func (w *StatusCapturingResponseWriter) WriteHeader(code int) {
	if w.HeaderWritten {
		return
	}
	w.StatusCode = code
	w.HeaderWritten = true
	w.ResponseWriter.WriteHeader(code)
}

// Write writes data to the underlying ResponseWriter and marks header as written.
func (w *StatusCapturingResponseWriter) Write(b []byte) (int, error) {
	if !w.HeaderWritten {
		w.HeaderWritten = true
	}
	return w.ResponseWriter.Write(b)
}

// Flush implements http.Flusher interface for streaming support.
func (w *StatusCapturingResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// RecordRoute stores the matched route pattern.
func (w *StatusCapturingResponseWriter) RecordRoute(pattern string) {
	w.Route = pattern
}

// Unwrap returns the wrapped http.ResponseWriter.
func (w *StatusCapturingResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Compile-time interface assertions.
var (
	_ http.Flusher  = (*StatusCapturingResponseWriter)(nil)
	_ RouteRecorder = (*StatusCapturingResponseWriter)(nil)
)
