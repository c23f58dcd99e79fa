package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error is the body of every failed response.
type Error struct {
	Error string `json:"error"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Err writes an error JSON response.
func Err(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Error{Error: message})
}

// PreflightOK writes the plain-text reply to a CORS pre-flight request.
func PreflightOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		slog.Error("failed to write pre-flight response", "error", err)
	}
}
