// Package proxy relays binary payloads (thumbnails, avatars, media streams)
// between upstream hosts and the gateway's clients. Proxy state is strictly
// per-request; nothing outlives a single request/response cycle.
package proxy

import (
	"io"
	"net/http"
	"strconv"

	"github.com/vidgate/vidgate/internal/config"
	"github.com/vidgate/vidgate/internal/logger"
	"github.com/vidgate/vidgate/internal/metrics"
)

// ImageProxy relays thumbnail and avatar requests to the canonical upstream
// image hosts. Responses are cacheable for a day and carry permissive CORS
// headers; any upstream failure is flattened into a plain 404 so upstream
// error bodies never leak through.
type ImageProxy struct {
	client        *http.Client
	thumbnailBase string
	avatarBase    string
}

// NewImageProxy builds an image proxy from configuration.
func NewImageProxy(cfg *config.Config) *ImageProxy {
	return &ImageProxy{
		client:        &http.Client{Timeout: cfg.ImageTimeout},
		thumbnailBase: cfg.ThumbnailBase,
		avatarBase:    cfg.AvatarBase,
	}
}

// ServeThumbnail relays /vi/<videoId>/<filename> to the thumbnail host.
func (p *ImageProxy) ServeThumbnail(w http.ResponseWriter, r *http.Request, videoID, filename string) {
	p.relay(w, r, "thumbnail", p.thumbnailBase+"/vi/"+videoID+"/"+filename)
}

// ServeAvatar relays /ggpht/<path> to the avatar host.
func (p *ImageProxy) ServeAvatar(w http.ResponseWriter, r *http.Request, path string) {
	p.relay(w, r, "avatar", p.avatarBase+"/"+path)
}

func (p *ImageProxy) relay(w http.ResponseWriter, r *http.Request, kind, target string) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target, nil)
	if err != nil {
		p.notFound(w, kind)
		return
	}

	resp, err := p.client.Do(req)
	if err != nil {
		logger.DebugContext(r.Context(), "image fetch failed", "kind", kind, "error", err)
		p.notFound(w, kind)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		p.notFound(w, kind)
		return
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		w.Header().Set("Content-Length", cl)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		logger.DebugContext(r.Context(), "image relay interrupted", "kind", kind, "error", err)
	}
	metrics.ProxyBytesStreamed.WithLabelValues(kind).Add(float64(n))
	metrics.ProxyRequestsTotal.WithLabelValues(kind, strconv.Itoa(http.StatusOK)).Inc()
}

func (p *ImageProxy) notFound(w http.ResponseWriter, kind string) {
	metrics.ProxyRequestsTotal.WithLabelValues(kind, strconv.Itoa(http.StatusNotFound)).Inc()
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusNotFound)
}
