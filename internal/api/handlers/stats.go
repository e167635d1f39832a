package handlers

import (
	"net/http"
	"time"

	"github.com/vidgate/vidgate/internal/cache"
)

type statsResponse struct {
	Status  string              `json:"status"`
	Version string              `json:"version"`
	Uptime  string              `json:"uptime"`
	Cache   cache.CombinedStats `json:"cache"`
}

// Stats handles GET /api/v1/stats: a liveness answer plus a snapshot of the
// cache counters, mainly for eyeballing hit rates during development.
func Stats(c *cache.Coordinator, version string) http.HandlerFunc {
	started := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, statsResponse{
			Status:  "ok",
			Version: version,
			Uptime:  time.Since(started).Round(time.Second).String(),
			Cache:   c.Stats(),
		})
	}
}
