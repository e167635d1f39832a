package httpx

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/vidgate/vidgate/internal/config"
	"github.com/vidgate/vidgate/internal/logger"
	"github.com/vidgate/vidgate/internal/metrics"
)

// DoWithRetry wraps an HTTP request with lightweight retries on transport
// errors, 429 and 5xx responses, honoring Retry-After. The request is rebuilt
// per attempt because a request body or context cannot be reused after a
// failed send.
func DoWithRetry(client *http.Client, build func() (*http.Request, error)) (*http.Response, error) {
	cfg := config.Load()
	maxAttempts := cfg.HTTPMaxRetries
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	baseDelay := cfg.HTTPRetryBase

	for attempt := 1; ; attempt++ {
		req, err := build()
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			metrics.UpstreamHTTPRequests.WithLabelValues("error").Inc()
			if attempt == maxAttempts || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				if cfg.LogHTTPRetries {
					logger.Warn("upstream request failed, no more retries", "attempt", attempt, "url", req.URL.String(), "error", err)
				}
				return nil, err
			}
			metrics.UpstreamHTTPRetries.Inc()
			sleepBackoff(baseDelay, attempt)
			continue
		}

		if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode < 500 {
			metrics.UpstreamHTTPRequests.WithLabelValues("success").Inc()
			return resp, nil
		}

		// 429 or 5xx
		metrics.UpstreamHTTPRequests.WithLabelValues("retry").Inc()
		if attempt == maxAttempts {
			if cfg.LogHTTPRetries {
				logger.Warn("upstream request giving up", "attempt", attempt, "url", req.URL.String(), "status", resp.StatusCode)
			}
			return resp, nil
		}

		resp.Body.Close()
		metrics.UpstreamHTTPRetries.Inc()
		if wait, ok := retryAfter(resp); ok {
			metrics.UpstreamRetryAfterWaits.Observe(wait.Seconds())
			time.Sleep(wait)
			continue
		}
		sleepBackoff(baseDelay, attempt)
	}
}

// retryAfter parses the Retry-After header, either as seconds or as an HTTP
// date.
func retryAfter(resp *http.Response) (time.Duration, bool) {
	ra := resp.Header.Get("Retry-After")
	if ra == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(ra); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}
	if t, err := http.ParseTime(ra); err == nil {
		if delta := time.Until(t); delta > 0 {
			return delta, true
		}
	}
	return 0, false
}

// sleepBackoff sleeps for an exponentially growing delay with jitter.
func sleepBackoff(base time.Duration, attempt int) {
	delay := base << (attempt - 1)
	jitter := time.Duration(rand.Int63n(int64(base)/2 + 1))
	time.Sleep(delay + jitter)
}
