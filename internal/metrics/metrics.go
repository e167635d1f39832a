package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_api_requests_total",
			Help: "Total number of API requests served",
		},
		[]string{"route", "method", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// Cache metrics, refreshed by the Collector from tier statistics
	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gateway_cache_entries",
			Help: "Current number of cache entries per tier",
		},
		[]string{"tier"}, // tier: memory, disk
	)

	CacheHits = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gateway_cache_hits",
			Help: "Cumulative cache hits per tier",
		},
		[]string{"tier"},
	)

	CacheMisses = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gateway_cache_misses",
			Help: "Cumulative cache misses per tier",
		},
		[]string{"tier"},
	)

	CacheHitRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gateway_cache_hit_rate",
			Help: "Overall cache hit rate across both tiers",
		},
	)

	CacheDiskErrors = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gateway_cache_disk_errors",
			Help: "Cumulative disk-tier I/O failures absorbed",
		},
	)

	// Upstream client metrics
	UpstreamHTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_upstream_http_requests_total",
			Help: "Total number of HTTP requests made to the upstream API",
		},
		[]string{"status"}, // status: success, retry, error
	)

	UpstreamHTTPRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_upstream_http_retries_total",
			Help: "Total number of upstream HTTP request retries",
		},
	)

	UpstreamRetryAfterWaits = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gateway_upstream_retry_after_wait_seconds",
			Help:    "Duration of Retry-After waits in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gateway_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTrips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_circuit_breaker_trips_total",
			Help: "Total number of circuit breaker trips",
		},
		[]string{"name"},
	)

	// Streaming proxy metrics
	ProxyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_proxy_requests_total",
			Help: "Total number of proxied binary requests",
		},
		[]string{"kind", "status"}, // kind: thumbnail, avatar, media
	)

	ProxyBytesStreamed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_proxy_bytes_streamed_total",
			Help: "Total bytes relayed through the streaming proxy",
		},
		[]string{"kind"},
	)
)
