package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vidgate/vidgate/internal/config"
)

func newTestImageProxy(base string) *ImageProxy {
	return NewImageProxy(&config.Config{
		ImageTimeout:  2 * time.Second,
		ThumbnailBase: base,
		AvatarBase:    base,
	})
}

func TestImageProxyRelaysThumbnail(t *testing.T) {
	var gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg-bytes"))
	}))
	defer upstream.Close()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/vi/abc123/hqdefault.jpg", nil)
	newTestImageProxy(upstream.URL).ServeThumbnail(w, r, "abc123", "hqdefault.jpg")

	if gotPath != "/vi/abc123/hqdefault.jpg" {
		t.Errorf("upstream path = %q", gotPath)
	}
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body, _ := io.ReadAll(w.Body); string(body) != "jpeg-bytes" {
		t.Errorf("body = %q", body)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "public, max-age=86400" {
		t.Errorf("Cache-Control = %q", cc)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing permissive CORS header")
	}
}

func TestImageProxyUpstreamErrorBecomes404(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal detail that must not leak", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/vi/abc123/hqdefault.jpg", nil)
	newTestImageProxy(upstream.URL).ServeThumbnail(w, r, "abc123", "hqdefault.jpg")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("upstream error body leaked: %q", w.Body.String())
	}
}

func TestImageProxyUnreachableUpstreamBecomes404(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := upstream.URL
	upstream.Close()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/ggpht/ytc/avatar", nil)
	newTestImageProxy(base).ServeAvatar(w, r, "ytc/avatar")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestImageProxyAvatarPath(t *testing.T) {
	var gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("png"))
	}))
	defer upstream.Close()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/ggpht/ytc/some/avatar", nil)
	newTestImageProxy(upstream.URL).ServeAvatar(w, r, "ytc/some/avatar")

	if gotPath != "/ytc/some/avatar" {
		t.Errorf("upstream path = %q", gotPath)
	}
}
