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

// Channel handles GET /api/v1/channels/{id}, cached under the
// channel-metadata class (day-scale TTL, durable).
func Channel(c *cache.Coordinator, up upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracing.StartSpan(r.Context(), "handlers.Channel")
		defer span.End()

		id := mux.Vars(r)["id"]
		span.SetAttributes(attribute.String("channel_id", id))

		key := cache.ClassChannel.Key(id)
		if body, ok := c.Get(ctx, key); ok {
			writeCached(w, body)
			return
		}

		info, err := up.Channel(ctx, id)
		if err != nil {
			writeUpstreamError(w, r, err, "Channel")
			return
		}

		body, err := json.Marshal(translator.Channel(info))
		if err != nil {
			apierr.WriteErrorWithContext(w, r, apierr.Internal(""))
			return
		}
		c.Set(ctx, key, body)
		metrics.APIRequestsTotal.WithLabelValues("/api/v1/channels", r.Method, "200").Inc()
		writeCached(w, body)
	}
}
