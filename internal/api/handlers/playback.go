package handlers

import (
	"net/http"

	"github.com/vidgate/vidgate/internal/proxy"
)

// Playback handles GET /videoplayback, streaming the decoded upstream media
// URL through without buffering.
func Playback(m *proxy.MediaProxy) http.HandlerFunc {
	return m.Serve
}
