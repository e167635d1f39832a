package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vidgate/vidgate/internal/api/handlers"
	"github.com/vidgate/vidgate/internal/apierr"
	"github.com/vidgate/vidgate/internal/cache"
	"github.com/vidgate/vidgate/internal/middleware"
	"github.com/vidgate/vidgate/internal/proxy"
	"github.com/vidgate/vidgate/internal/upstream"
)

// Deps carries everything the routes need. The router holds no state of its
// own.
type Deps struct {
	Cache    *cache.Coordinator
	Upstream upstream.Client
	Images   *proxy.ImageProxy
	Media    *proxy.MediaProxy
	Version  string
}

func NewRouter(d Deps) *mux.Router {
	r := mux.NewRouter()

	// JSON API. Compression applies only here: media and image bytes go
	// out as-is.
	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.Use(middleware.Metrics)
	v1.Use(middleware.Compress)
	v1.HandleFunc("/search", handlers.Search(d.Cache, d.Upstream)).Methods("GET")
	v1.HandleFunc("/search/suggestions", handlers.Suggestions(d.Cache, d.Upstream)).Methods("GET")
	v1.HandleFunc("/videos/{id}", handlers.Video(d.Cache, d.Upstream)).Methods("GET")
	v1.HandleFunc("/channels/{id}", handlers.Channel(d.Cache, d.Upstream)).Methods("GET")
	v1.HandleFunc("/trending", handlers.Trending(d.Cache, d.Upstream)).Methods("GET")
	v1.HandleFunc("/lyrics/{id}", handlers.Lyrics(d.Cache, d.Upstream)).Methods("GET")
	v1.HandleFunc("/stats", handlers.Stats(d.Cache, d.Version)).Methods("GET")

	// Binary passthrough routes.
	r.HandleFunc("/vi/{videoId}/{filename}", handlers.Thumbnail(d.Images)).Methods("GET")
	r.HandleFunc("/ggpht/{path:.*}", handlers.Avatar(d.Images)).Methods("GET")
	r.HandleFunc("/videoplayback", handlers.Playback(d.Media)).Methods("GET", "HEAD")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// mux middleware never runs for unmatched paths, so the not-found
	// answer writes the JSON error shape directly.
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		apierr.WriteErrorWithContext(w, req, apierr.NotFound())
	})

	return r
}
