package proxy

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vidgate/vidgate/internal/apierr"
	"github.com/vidgate/vidgate/internal/config"
	"github.com/vidgate/vidgate/internal/logger"
	"github.com/vidgate/vidgate/internal/metrics"
	"github.com/vidgate/vidgate/internal/translator"
)

// MediaProxy relays media-playback requests to their real origin,
// byte-range-aware and unbuffered: the inbound Range header is forwarded
// verbatim, the upstream's range-related response headers come back verbatim,
// and bytes stream through as they arrive. Cancellation of the client request
// tears down the upstream connection through the request context.
type MediaProxy struct {
	client *http.Client
}

// NewMediaProxy builds a media proxy from configuration. The client bounds
// only the wait for upstream response headers; a playing stream holds its
// connection for as long as the client keeps reading.
func NewMediaProxy(cfg *config.Config) *MediaProxy {
	return &MediaProxy{
		client: &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: cfg.MediaHeaderTimeout,
				Proxy:                 http.ProxyFromEnvironment,
			},
		},
	}
}

// relayedHeaders are forwarded from the upstream response when present.
var relayedHeaders = []string{"Content-Type", "Content-Length", "Content-Range", "Accept-Ranges"}

// Serve handles GET /videoplayback?url=<base64url-encoded-origin>.
func (p *MediaProxy) Serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("url")
	if token == "" {
		apierr.WriteErrorWithContext(w, r, apierr.MissingParam("url"))
		return
	}

	target, err := translator.DecodePlaybackURL(token)
	if err != nil {
		apierr.WriteErrorWithContext(w, r, apierr.ProxyBadTarget("Undecodable url parameter"))
		return
	}
	parsed, err := url.Parse(target)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		apierr.WriteErrorWithContext(w, r, apierr.ProxyBadTarget("Invalid upstream URL"))
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target, nil)
	if err != nil {
		apierr.WriteErrorWithContext(w, r, apierr.ProxyBadTarget("Invalid upstream URL"))
		return
	}
	// Forwarding Range verbatim is what makes seeking work in the player.
	if rng := r.Header.Get("Range"); rng != "" {
		req.Header.Set("Range", rng)
	}
	if ua := r.Header.Get("User-Agent"); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		// Nothing has been written yet, so a clean error status is still
		// possible.
		switch {
		case errors.Is(err, context.Canceled):
			// Client went away; no one is listening for a status.
			return
		case isTimeout(err):
			metrics.ProxyRequestsTotal.WithLabelValues("media", strconv.Itoa(http.StatusGatewayTimeout)).Inc()
			apierr.WriteErrorWithContext(w, r, apierr.ProxyTimeout())
		default:
			metrics.ProxyRequestsTotal.WithLabelValues("media", strconv.Itoa(http.StatusBadGateway)).Inc()
			apierr.WriteErrorWithContext(w, r, apierr.UpstreamUnavailable("Upstream connection failed"))
		}
		return
	}
	defer resp.Body.Close()

	for _, name := range relayedHeaders {
		if v := resp.Header.Get(name); v != "" {
			w.Header().Set(name, v)
		}
	}
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Range, Accept-Ranges")
	w.WriteHeader(resp.StatusCode)

	// From here on errors cannot be reported; a broken pipe just ends the
	// response.
	n, err := copyStream(w, resp)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.DebugContext(r.Context(), "media relay interrupted", "bytes", n, "error", err)
	}
	metrics.ProxyBytesStreamed.WithLabelValues("media").Add(float64(n))
	metrics.ProxyRequestsTotal.WithLabelValues("media", strconv.Itoa(resp.StatusCode)).Inc()
}

// copyStream relays the body without buffering it, flushing as chunks
// arrive so playback starts before the transfer completes.
func copyStream(w http.ResponseWriter, resp *http.Response) (int64, error) {
	flusher, _ := w.(http.Flusher)
	buf := make([]byte, 64*1024)
	var written int64
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			wn, werr := w.Write(buf[:n])
			written += int64(wn)
			if werr != nil {
				return written, werr
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return written, nil
			}
			return written, err
		}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
