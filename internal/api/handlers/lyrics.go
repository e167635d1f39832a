package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vidgate/vidgate/internal/apierr"
	"github.com/vidgate/vidgate/internal/cache"
	"github.com/vidgate/vidgate/internal/metrics"
	"github.com/vidgate/vidgate/internal/tracing"
	"github.com/vidgate/vidgate/internal/translator"
	"github.com/vidgate/vidgate/internal/upstream"
)

// Lyrics handles GET /api/v1/lyrics/{id}. Lyrics never change for a given
// video, so entries are stored permanently in the durable tier.
func Lyrics(c *cache.Coordinator, up upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracing.StartSpan(r.Context(), "handlers.Lyrics")
		defer span.End()

		id := mux.Vars(r)["id"]
		span.SetAttributes(attribute.String("video_id", id))

		key := cache.ClassLyrics.Key(id)
		if body, ok := c.Get(ctx, key); ok {
			writeCached(w, body)
			return
		}

		info, err := up.Lyrics(ctx, id)
		if err != nil {
			writeUpstreamError(w, r, err, "Lyrics")
			return
		}

		body, err := json.Marshal(translator.LyricsRecord(info))
		if err != nil {
			apierr.WriteErrorWithContext(w, r, apierr.Internal(""))
			return
		}
		c.Set(ctx, key, body)
		metrics.APIRequestsTotal.WithLabelValues("/api/v1/lyrics", r.Method, "200").Inc()
		writeCached(w, body)
	}
}
