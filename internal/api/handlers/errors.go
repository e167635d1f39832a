package handlers

import (
	"errors"
	"net/http"

	"github.com/vidgate/vidgate/internal/apierr"
	"github.com/vidgate/vidgate/internal/logger"
	"github.com/vidgate/vidgate/internal/upstream"
)

// writeUpstreamError maps an upstream failure onto the wire error taxonomy:
// missing ids become 404, a refusing upstream (open breaker) becomes 502,
// anything else a 500 carrying the failure message.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	switch {
	case errors.Is(err, upstream.ErrNotFound):
		apierr.WriteErrorWithContext(w, r, apierr.UpstreamNotFound(resource))
	case upstream.ErrUnavailable(err):
		apierr.WriteErrorWithContext(w, r, apierr.UpstreamUnavailable(""))
	default:
		logger.ErrorContext(r.Context(), "upstream call failed", "resource", resource, "error", err)
		apierr.WriteErrorWithContext(w, r, apierr.UpstreamFailed(err.Error()))
	}
}
