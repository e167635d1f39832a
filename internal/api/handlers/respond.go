package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vidgate/vidgate/internal/logger"
)

// writeJSON writes v as the JSON response body.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

// writeCached writes already-serialized JSON bytes, the form values take in
// the cache.
func writeCached(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}
