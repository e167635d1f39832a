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

// Video handles GET /api/v1/videos/{id}. The translated detail object,
// stream URLs already rewritten to the playback proxy, is cached under the
// video-metadata class and also lands on the disk tier.
func Video(c *cache.Coordinator, up upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracing.StartSpan(r.Context(), "handlers.Video")
		defer span.End()

		id := mux.Vars(r)["id"]
		span.SetAttributes(attribute.String("video_id", id))

		key := cache.ClassVideo.Key(id)
		if body, ok := c.Get(ctx, key); ok {
			writeCached(w, body)
			return
		}

		info, err := up.Video(ctx, id)
		if err != nil {
			writeUpstreamError(w, r, err, "Video")
			return
		}

		body, err := json.Marshal(translator.Video(info))
		if err != nil {
			apierr.WriteErrorWithContext(w, r, apierr.Internal(""))
			return
		}
		c.Set(ctx, key, body)
		metrics.APIRequestsTotal.WithLabelValues("/api/v1/videos", r.Method, "200").Inc()
		writeCached(w, body)
	}
}
