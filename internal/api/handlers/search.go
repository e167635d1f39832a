package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vidgate/vidgate/internal/apierr"
	"github.com/vidgate/vidgate/internal/cache"
	"github.com/vidgate/vidgate/internal/metrics"
	"github.com/vidgate/vidgate/internal/tracing"
	"github.com/vidgate/vidgate/internal/translator"
	"github.com/vidgate/vidgate/internal/upstream"
)

// Search handles GET /api/v1/search?q=... Results are cached under the
// search class, which expires in minutes; translated bytes are stored so a
// hit skips both the upstream call and re-serialization.
func Search(c *cache.Coordinator, up upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracing.StartSpan(r.Context(), "handlers.Search")
		defer span.End()

		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			apierr.WriteErrorWithContext(w, r, apierr.MissingParam("q"))
			return
		}
		span.SetAttributes(attribute.String("search_query", query))

		key := cache.ClassSearch.Key("q=" + query)
		if body, ok := c.Get(ctx, key); ok {
			writeCached(w, body)
			return
		}

		hits, err := up.Search(ctx, query)
		if err != nil {
			writeUpstreamError(w, r, err, "Search results")
			return
		}

		body, err := json.Marshal(translator.SearchResults(hits))
		if err != nil {
			apierr.WriteErrorWithContext(w, r, apierr.Internal(""))
			return
		}
		c.Set(ctx, key, body)
		metrics.APIRequestsTotal.WithLabelValues("/api/v1/search", r.Method, "200").Inc()
		span.SetAttributes(attribute.Int("results_count", len(hits)))
		writeCached(w, body)
	}
}

// Suggestions handles GET /api/v1/search/suggestions?q=...
func Suggestions(c *cache.Coordinator, up upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracing.StartSpan(r.Context(), "handlers.Suggestions")
		defer span.End()

		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			apierr.WriteErrorWithContext(w, r, apierr.MissingParam("q"))
			return
		}

		key := cache.ClassSearch.Key("suggestions:" + query)
		if body, ok := c.Get(ctx, key); ok {
			writeCached(w, body)
			return
		}

		suggestions, err := up.Suggestions(ctx, query)
		if err != nil {
			writeUpstreamError(w, r, err, "Suggestions")
			return
		}
		if suggestions == nil {
			suggestions = []string{}
		}

		body, err := json.Marshal(translator.Suggestions{Query: query, Suggestions: suggestions})
		if err != nil {
			apierr.WriteErrorWithContext(w, r, apierr.Internal(""))
			return
		}
		c.Set(ctx, key, body)
		metrics.APIRequestsTotal.WithLabelValues("/api/v1/search/suggestions", r.Method, "200").Inc()
		writeCached(w, body)
	}
}
