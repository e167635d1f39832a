package config

import (
	"os"
	"strings"
	"time"

	"github.com/vidgate/vidgate/internal/utils"
)

// Config holds application configuration derived from environment variables.
type Config struct {
	Port     string
	LogLevel string // debug, info, warn, error

	// Upstream video-platform API (black-box collaborator)
	UpstreamAPIBase string
	UpstreamTimeout time.Duration
	HTTPMaxRetries  int
	HTTPRetryBase   time.Duration
	LogHTTPRetries  bool
	// Circuit breaker around upstream calls
	BreakerFailureThreshold int
	BreakerSuccessThreshold int
	BreakerTimeout          time.Duration

	// Cache tiers
	CacheDir            string
	CacheMaxEntries     int
	MemorySweepInterval time.Duration
	DiskSweepInterval   time.Duration

	// Streaming proxy upstream hosts
	ThumbnailBase      string
	AvatarBase         string
	MediaHeaderTimeout time.Duration // upstream response-header deadline for media relays
	ImageTimeout       time.Duration

	// Security settings
	EnableRateLimit      bool
	RateLimitGlobal      float64 // requests per second globally
	RateLimitGlobalBurst int
	RateLimitPerIP       float64 // requests per second per IP
	RateLimitPerIPBurst  int

	// Observability settings
	MetricsInterval   time.Duration
	OTELEnabled       bool
	OTELEndpoint      string
	OTELSampleRate    float64
	SentryDSN         string
	SentryEnvironment string
	SentryRelease     string
	SentrySampleRate  float64
}

var cached *Config

// Load reads env vars once and caches them.
func Load() *Config {
	if cached != nil {
		return cached
	}
	cached = &Config{
		Port:     strings.TrimSpace(os.Getenv("PORT")),
		LogLevel: strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))),

		UpstreamAPIBase:         strings.TrimRight(strings.TrimSpace(os.Getenv("UPSTREAM_API_BASE")), "/"),
		UpstreamTimeout:         utils.GetEnvAsDuration("UPSTREAM_TIMEOUT", 15*time.Second),
		HTTPMaxRetries:          utils.GetEnvAsInt("HTTP_MAX_RETRIES", 3),
		HTTPRetryBase:           time.Duration(utils.GetEnvAsInt("HTTP_RETRY_BASE_MS", 300)) * time.Millisecond,
		LogHTTPRetries:          utils.GetEnvAsBool("LOG_HTTP_RETRIES", false),
		BreakerFailureThreshold: utils.GetEnvAsInt("BREAKER_FAILURE_THRESHOLD", 5),
		BreakerSuccessThreshold: utils.GetEnvAsInt("BREAKER_SUCCESS_THRESHOLD", 2),
		BreakerTimeout:          utils.GetEnvAsDuration("BREAKER_TIMEOUT", 60*time.Second),

		CacheDir:            strings.TrimSpace(os.Getenv("CACHE_DIR")),
		CacheMaxEntries:     utils.GetEnvAsInt("CACHE_MAX_ENTRIES", 1000),
		MemorySweepInterval: utils.GetEnvAsDuration("MEMORY_SWEEP_INTERVAL", 1*time.Minute),
		DiskSweepInterval:   utils.GetEnvAsDuration("DISK_SWEEP_INTERVAL", 30*time.Minute),

		ThumbnailBase:      strings.TrimRight(getEnvDefault("THUMBNAIL_BASE", "https://i.ytimg.com"), "/"),
		AvatarBase:         strings.TrimRight(getEnvDefault("AVATAR_BASE", "https://yt3.ggpht.com"), "/"),
		MediaHeaderTimeout: utils.GetEnvAsDuration("MEDIA_HEADER_TIMEOUT", 20*time.Second),
		ImageTimeout:       utils.GetEnvAsDuration("IMAGE_TIMEOUT", 10*time.Second),

		EnableRateLimit:      utils.GetEnvAsBool("ENABLE_RATE_LIMIT", false),
		RateLimitGlobal:      utils.GetEnvAsFloat("RATE_LIMIT_GLOBAL", 100.0),
		RateLimitGlobalBurst: utils.GetEnvAsInt("RATE_LIMIT_GLOBAL_BURST", 200),
		RateLimitPerIP:       utils.GetEnvAsFloat("RATE_LIMIT_PER_IP", 10.0),
		RateLimitPerIPBurst:  utils.GetEnvAsInt("RATE_LIMIT_PER_IP_BURST", 20),

		MetricsInterval:   utils.GetEnvAsDuration("METRICS_INTERVAL", 30*time.Second),
		OTELEnabled:       utils.GetEnvAsBool("OTEL_ENABLED", false),
		OTELEndpoint:      strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTELSampleRate:    utils.GetEnvAsFloat("OTEL_TRACE_SAMPLE_RATE", 0.1),
		SentryDSN:         strings.TrimSpace(os.Getenv("SENTRY_DSN")),
		SentryEnvironment: strings.TrimSpace(os.Getenv("SENTRY_ENVIRONMENT")),
		SentryRelease:     strings.TrimSpace(os.Getenv("SENTRY_RELEASE")),
		SentrySampleRate:  utils.GetEnvAsFloat("SENTRY_SAMPLE_RATE", 1.0),
	}
	if cached.Port == "" {
		cached.Port = "3000"
	}
	if cached.LogLevel == "" {
		cached.LogLevel = "info"
	}
	if cached.UpstreamAPIBase == "" {
		cached.UpstreamAPIBase = "http://localhost:8282"
	}
	if cached.CacheDir == "" {
		cached.CacheDir = "./cache"
	}
	if cached.SentryEnvironment == "" {
		if env := os.Getenv("ENV"); env != "" {
			cached.SentryEnvironment = env
		} else {
			cached.SentryEnvironment = "development"
		}
	}
	return cached
}

// Reset clears the cached config (tests only).
func Reset() {
	cached = nil
}

func getEnvDefault(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultVal
}
