package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/vidgate/vidgate/internal/circuitbreaker"
	"github.com/vidgate/vidgate/internal/config"
	"github.com/vidgate/vidgate/internal/httpx"
	"github.com/vidgate/vidgate/internal/logger"
)

// APIClient talks to the upstream video-platform API over HTTP. Calls go
// through retry-aware requests and a circuit breaker, so a flapping upstream
// degrades into fast 502s instead of piling up blocked requests.
type APIClient struct {
	base    string
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
}

// NewAPIClient builds a client for the configured upstream API base.
func NewAPIClient(cfg *config.Config) *APIClient {
	return &APIClient{
		base:   cfg.UpstreamAPIBase,
		client: &http.Client{Timeout: cfg.UpstreamTimeout},
		breaker: circuitbreaker.New(circuitbreaker.Config{
			Name:             "upstream-api",
			FailureThreshold: cfg.BreakerFailureThreshold,
			SuccessThreshold: cfg.BreakerSuccessThreshold,
			Timeout:          cfg.BreakerTimeout,
		}),
	}
}

// ErrUnavailable reports whether err means the circuit breaker is refusing
// calls.
func ErrUnavailable(err error) bool {
	return err == circuitbreaker.ErrCircuitOpen
}

func (c *APIClient) getJSON(ctx context.Context, path string, out any) error {
	// Absence is an answer, not an upstream fault; it must not feed the
	// breaker's failure count.
	var notFound bool
	err := c.breaker.Call(func() error {
		resp, err := httpx.DoWithRetry(c.client, func() (*http.Request, error) {
			return http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
		})
		if err != nil {
			return fmt.Errorf("upstream GET %s: %w", path, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			io.Copy(io.Discard, resp.Body)
			notFound = true
			return nil
		}
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("upstream GET %s: unexpected status %d", path, resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("upstream GET %s: decode: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if notFound {
		return ErrNotFound
	}
	return nil
}

// Search queries the upstream index.
func (c *APIClient) Search(ctx context.Context, query string) ([]SearchHit, error) {
	var hits []SearchHit
	path := "/search?q=" + url.QueryEscape(query)
	if err := c.getJSON(ctx, path, &hits); err != nil {
		return nil, err
	}
	logger.DebugContext(ctx, "upstream search", "query", query, "results", len(hits))
	return hits, nil
}

// Suggestions fetches search completions for a partial query.
func (c *APIClient) Suggestions(ctx context.Context, query string) ([]string, error) {
	var suggestions []string
	path := "/suggestions?q=" + url.QueryEscape(query)
	if err := c.getJSON(ctx, path, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// Video fetches the full video-detail record including stream manifests.
func (c *APIClient) Video(ctx context.Context, id string) (*VideoInfo, error) {
	var info VideoInfo
	if err := c.getJSON(ctx, "/videos/"+url.PathEscape(id), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Channel fetches a channel record.
func (c *APIClient) Channel(ctx context.Context, id string) (*ChannelInfo, error) {
	var info ChannelInfo
	if err := c.getJSON(ctx, "/channels/"+url.PathEscape(id), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Trending fetches the trending video listing.
func (c *APIClient) Trending(ctx context.Context) ([]SearchHit, error) {
	var hits []SearchHit
	if err := c.getJSON(ctx, "/trending", &hits); err != nil {
		return nil, err
	}
	return hits, nil
}

// Lyrics fetches lyrics for a video when available.
func (c *APIClient) Lyrics(ctx context.Context, videoID string) (*LyricsInfo, error) {
	var info LyricsInfo
	if err := c.getJSON(ctx, "/lyrics/"+url.PathEscape(videoID), &info); err != nil {
		return nil, err
	}
	return &info, nil
}
