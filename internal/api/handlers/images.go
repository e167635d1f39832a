package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vidgate/vidgate/internal/proxy"
)

// Thumbnail handles GET /vi/{videoId}/{filename}.
func Thumbnail(p *proxy.ImageProxy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		p.ServeThumbnail(w, r, vars["videoId"], vars["filename"])
	}
}

// Avatar handles GET /ggpht/{path} for channel avatars and banners.
func Avatar(p *proxy.ImageProxy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.ServeAvatar(w, r, mux.Vars(r)["path"])
	}
}
