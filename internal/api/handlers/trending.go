package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vidgate/vidgate/internal/apierr"
	"github.com/vidgate/vidgate/internal/cache"
	"github.com/vidgate/vidgate/internal/metrics"
	"github.com/vidgate/vidgate/internal/tracing"
	"github.com/vidgate/vidgate/internal/translator"
	"github.com/vidgate/vidgate/internal/upstream"
)

// Trending handles GET /api/v1/trending. The feed churns quickly, so it
// shares the short-lived search class.
func Trending(c *cache.Coordinator, up upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracing.StartSpan(r.Context(), "handlers.Trending")
		defer span.End()

		key := cache.ClassSearch.Key("trending")
		if body, ok := c.Get(ctx, key); ok {
			writeCached(w, body)
			return
		}

		hits, err := up.Trending(ctx)
		if err != nil {
			writeUpstreamError(w, r, err, "Trending feed")
			return
		}

		body, err := json.Marshal(translator.TrendingVideos(hits))
		if err != nil {
			apierr.WriteErrorWithContext(w, r, apierr.Internal(""))
			return
		}
		c.Set(ctx, key, body)
		metrics.APIRequestsTotal.WithLabelValues("/api/v1/trending", r.Method, "200").Inc()
		writeCached(w, body)
	}
}
