package apierr

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vidgate/vidgate/internal/logger"
)

// ErrorCode classifies an API error for operators; the wire body keeps the
// human-readable message under the "error" key.
type ErrorCode string

const (
	// UPSTREAM_ - upstream video-platform failures
	ErrUpstreamFailed      ErrorCode = "UPSTREAM_FAILED"
	ErrUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrUpstreamTimeout     ErrorCode = "UPSTREAM_TIMEOUT"
	ErrUpstreamNotFound    ErrorCode = "UPSTREAM_NOT_FOUND"

	// VALIDATION_ - malformed client input
	ErrValidationMissingParam ErrorCode = "VALIDATION_MISSING_PARAM"
	ErrValidationBadParam     ErrorCode = "VALIDATION_BAD_PARAM"

	// PROXY_ - streaming relay failures
	ErrProxyBadTarget ErrorCode = "PROXY_BAD_TARGET"
	ErrProxyTimeout   ErrorCode = "PROXY_GATEWAY_TIMEOUT"

	// SYSTEM_ - server-side errors
	ErrSystemInternal ErrorCode = "SYSTEM_INTERNAL"
	ErrNotFound       ErrorCode = "NOT_FOUND"

	// RATE_LIMIT_ - rate limiting
	ErrRateLimitGlobal ErrorCode = "RATE_LIMIT_GLOBAL"
	ErrRateLimitIP     ErrorCode = "RATE_LIMIT_IP"
)

// Error represents a structured API error.
type Error struct {
	Code    ErrorCode
	Message string
	status  int
}

// errorResponse is the wire shape: the message always travels under "error".
type errorResponse struct {
	Error     string    `json:"error"`
	Code      ErrorCode `json:"code,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
}

// New creates a new API error.
func New(code ErrorCode, message string, status int) *Error {
	return &Error{Code: code, Message: message, status: status}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Status returns the HTTP status code.
func (e *Error) Status() int {
	return e.status
}

// UpstreamFailed reports a failed upstream call.
func UpstreamFailed(message string) *Error {
	if message == "" {
		message = "Upstream request failed"
	}
	return New(ErrUpstreamFailed, message, http.StatusInternalServerError)
}

// UpstreamUnavailable reports an upstream that is refusing traffic, e.g. an
// open circuit breaker.
func UpstreamUnavailable(message string) *Error {
	if message == "" {
		message = "Upstream temporarily unavailable"
	}
	return New(ErrUpstreamUnavailable, message, http.StatusBadGateway)
}

// UpstreamNotFound reports an id the upstream does not know.
func UpstreamNotFound(resource string) *Error {
	return New(ErrUpstreamNotFound, resource+" not found", http.StatusNotFound)
}

// MissingParam reports an absent required query parameter.
func MissingParam(param string) *Error {
	return New(ErrValidationMissingParam, "Missing required parameter: "+param, http.StatusBadRequest)
}

// BadParam reports a malformed query parameter.
func BadParam(param, message string) *Error {
	if message == "" {
		message = "Invalid value for parameter: " + param
	}
	return New(ErrValidationBadParam, message, http.StatusBadRequest)
}

// ProxyBadTarget reports an undecodable or disallowed proxy target URL.
func ProxyBadTarget(message string) *Error {
	if message == "" {
		message = "Invalid proxy target"
	}
	return New(ErrProxyBadTarget, message, http.StatusBadRequest)
}

// ProxyTimeout reports an upstream connection that timed out before any
// response bytes were sent to the client.
func ProxyTimeout() *Error {
	return New(ErrProxyTimeout, "Upstream timed out", http.StatusGatewayTimeout)
}

// Internal reports an unexpected server-side failure.
func Internal(message string) *Error {
	if message == "" {
		message = "Internal server error"
	}
	return New(ErrSystemInternal, message, http.StatusInternalServerError)
}

// NotFound reports an unmatched path.
func NotFound() *Error {
	return New(ErrNotFound, "Not found", http.StatusNotFound)
}

// RateLimitGlobal reports the global rate limit being exceeded.
func RateLimitGlobal() *Error {
	return New(ErrRateLimitGlobal, "Rate limit exceeded - too many requests globally", http.StatusTooManyRequests)
}

// RateLimitIP reports a per-IP rate limit being exceeded.
func RateLimitIP() *Error {
	return New(ErrRateLimitIP, "Rate limit exceeded - too many requests from your IP", http.StatusTooManyRequests)
}

// WriteError writes a structured error response.
func WriteError(w http.ResponseWriter, err *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status())
	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Message, Code: err.Code})
}

// GetRequestID extracts the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(logger.RequestIDKey).(string); ok {
		return reqID
	}
	return ""
}

// WriteErrorWithContext writes a structured error response carrying the
// request ID from context.
func WriteErrorWithContext(w http.ResponseWriter, r *http.Request, err *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status())
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error:     err.Message,
		Code:      err.Code,
		RequestID: GetRequestID(r.Context()),
	})
}
