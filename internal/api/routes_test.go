package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benbjohnson/clock"

	"github.com/vidgate/vidgate/internal/cache"
	"github.com/vidgate/vidgate/internal/upstream"
)

type fakeUpstream struct {
	searchCalls int
	videoCalls  int

	hits    []upstream.SearchHit
	video   *upstream.VideoInfo
	channel *upstream.ChannelInfo
	lyrics  *upstream.LyricsInfo
	err     error
}

func (f *fakeUpstream) Search(ctx context.Context, query string) ([]upstream.SearchHit, error) {
	f.searchCalls++
	return f.hits, f.err
}

func (f *fakeUpstream) Suggestions(ctx context.Context, query string) ([]string, error) {
	return nil, f.err
}

func (f *fakeUpstream) Video(ctx context.Context, id string) (*upstream.VideoInfo, error) {
	f.videoCalls++
	return f.video, f.err
}

func (f *fakeUpstream) Channel(ctx context.Context, id string) (*upstream.ChannelInfo, error) {
	return f.channel, f.err
}

func (f *fakeUpstream) Trending(ctx context.Context) ([]upstream.SearchHit, error) {
	return f.hits, f.err
}

func (f *fakeUpstream) Lyrics(ctx context.Context, videoID string) (*upstream.LyricsInfo, error) {
	return f.lyrics, f.err
}

func newTestRouter(t *testing.T, up upstream.Client) (http.Handler, *cache.Coordinator) {
	t.Helper()
	disk, err := cache.NewDiskTier(t.TempDir(), clock.NewMock())
	if err != nil {
		t.Fatalf("NewDiskTier: %v", err)
	}
	coordinator := cache.NewCoordinator(cache.NewMemoryTier(100, clock.NewMock()), disk)
	return NewRouter(Deps{
		Cache:    coordinator,
		Upstream: up,
		Version:  "test",
	}), coordinator
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not JSON: %v (%q)", err, w.Body.String())
	}
	if _, ok := body["error"]; !ok {
		t.Fatalf("error body missing error field: %q", w.Body.String())
	}
	return body
}

func TestSearchMissingQueryIs400(t *testing.T) {
	router, _ := newTestRouter(t, &fakeUpstream{})
	w := get(router, "/api/v1/search")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	decodeError(t, w)
}

func TestSearchCachesTranslatedResults(t *testing.T) {
	up := &fakeUpstream{hits: []upstream.SearchHit{{Type: "video", ID: "v1", Title: "Hit"}}}
	router, _ := newTestRouter(t, up)

	first := get(router, "/api/v1/search?q=cats")
	if first.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", first.Code, first.Body.String())
	}
	var results []map[string]any
	if err := json.Unmarshal(first.Body.Bytes(), &results); err != nil {
		t.Fatalf("body not a JSON array: %v", err)
	}
	if len(results) != 1 || results[0]["videoId"] != "v1" {
		t.Errorf("results = %+v", results)
	}

	second := get(router, "/api/v1/search?q=cats")
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d", second.Code)
	}
	if up.searchCalls != 1 {
		t.Errorf("searchCalls = %d, second request must come from cache", up.searchCalls)
	}
	if second.Body.String() != first.Body.String() {
		t.Error("cached body differs from the original response")
	}
}

func TestUpstreamFailureIs500AndServiceSurvives(t *testing.T) {
	up := &fakeUpstream{err: errors.New("upstream exploded")}
	router, _ := newTestRouter(t, up)

	w := get(router, "/api/v1/search?q=cats")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	decodeError(t, w)

	// A failing upstream must not poison later requests.
	up.err = nil
	up.hits = []upstream.SearchHit{{Type: "video", ID: "v1"}}
	if w := get(router, "/api/v1/search?q=dogs"); w.Code != http.StatusOK {
		t.Errorf("follow-up status = %d, want 200", w.Code)
	}
}

func TestVideoNotFoundIs404(t *testing.T) {
	router, _ := newTestRouter(t, &fakeUpstream{err: upstream.ErrNotFound})
	w := get(router, "/api/v1/videos/missing")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	decodeError(t, w)
}

func TestVideoResponseIsCachedDurably(t *testing.T) {
	up := &fakeUpstream{video: &upstream.VideoInfo{ID: "v1", Title: "A Video"}}
	router, c := newTestRouter(t, up)

	if w := get(router, "/api/v1/videos/v1"); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if _, ok := c.Memory().Get(cache.ClassVideo.Key("v1")); !ok {
		t.Error("video response not in the memory tier")
	}

	get(router, "/api/v1/videos/v1")
	if up.videoCalls != 1 {
		t.Errorf("videoCalls = %d, want 1", up.videoCalls)
	}
}

func TestLyricsNotFoundIs404(t *testing.T) {
	router, _ := newTestRouter(t, &fakeUpstream{err: upstream.ErrNotFound})
	if w := get(router, "/api/v1/lyrics/v1"); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestUnknownRouteIs404JSON(t *testing.T) {
	router, _ := newTestRouter(t, &fakeUpstream{})
	w := get(router, "/api/v1/nonexistent")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	decodeError(t, w)
}

func TestStatsReportsCacheCounters(t *testing.T) {
	up := &fakeUpstream{hits: []upstream.SearchHit{{ID: "v1"}}}
	router, _ := newTestRouter(t, up)

	get(router, "/api/v1/search?q=a")
	get(router, "/api/v1/search?q=a")

	w := get(router, "/api/v1/stats")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Status string `json:"status"`
		Cache  struct {
			Gets     uint64 `json:"gets"`
			FastHits uint64 `json:"fastHits"`
		} `json:"cache"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("stats body: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("status field = %q", body.Status)
	}
	if body.Cache.Gets != 2 || body.Cache.FastHits != 1 {
		t.Errorf("cache counters = %+v", body.Cache)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	router, _ := newTestRouter(t, &fakeUpstream{})
	if w := get(router, "/metrics"); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
