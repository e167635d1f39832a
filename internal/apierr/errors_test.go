package apierr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vidgate/vidgate/internal/logger"
)

func TestWriteErrorWireShape(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, MissingParam("q"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if body["error"] != "Missing required parameter: q" {
		t.Errorf("error = %v", body["error"])
	}
	if body["code"] != string(ErrValidationMissingParam) {
		t.Errorf("code = %v", body["code"])
	}
}

func TestWriteErrorWithContextIncludesRequestID(t *testing.T) {
	ctx := context.WithValue(context.Background(), logger.RequestIDKey, "req-123")
	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

	w := httptest.NewRecorder()
	WriteErrorWithContext(w, r, Internal(""))

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if body["requestId"] != "req-123" {
		t.Errorf("requestId = %v", body["requestId"])
	}
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
	}{
		{UpstreamFailed(""), http.StatusInternalServerError},
		{UpstreamUnavailable(""), http.StatusBadGateway},
		{UpstreamNotFound("Video"), http.StatusNotFound},
		{MissingParam("q"), http.StatusBadRequest},
		{BadParam("id", ""), http.StatusBadRequest},
		{ProxyBadTarget(""), http.StatusBadRequest},
		{ProxyTimeout(), http.StatusGatewayTimeout},
		{Internal(""), http.StatusInternalServerError},
		{NotFound(), http.StatusNotFound},
		{RateLimitGlobal(), http.StatusTooManyRequests},
		{RateLimitIP(), http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		if tt.err.Status() != tt.status {
			t.Errorf("%s: status = %d, want %d", tt.err.Code, tt.err.Status(), tt.status)
		}
	}
}

func TestErrorImplementsError(t *testing.T) {
	err := UpstreamNotFound("Video")
	if err.Error() != "UPSTREAM_NOT_FOUND: Video not found" {
		t.Errorf("Error() = %q", err.Error())
	}
}
