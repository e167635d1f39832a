package errorreporting

import (
	"fmt"
	"regexp"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/vidgate/vidgate/internal/config"
)

// Patterns scrubbed from outgoing events. The gateway proxies user traffic,
// so target URLs and client addresses must not leak into error reports.
var scrubPatterns = []*regexp.Regexp{
	// API keys and tokens
	regexp.MustCompile(`(?i)(api[_-]?key|token|secret)["\s:=]+[a-zA-Z0-9_-]{16,}`),
	// IP addresses
	regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
	// Encoded proxy targets carried in query strings
	regexp.MustCompile(`url=[A-Za-z0-9_-]{24,}`),
}

var enabled bool

// Init initializes Sentry error reporting. A missing DSN disables reporting
// without error.
func Init() error {
	cfg := config.Load()
	if cfg.SentryDSN == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.SentryEnvironment,
		Release:          cfg.SentryRelease,
		SampleRate:       cfg.SentrySampleRate,
		BeforeSend:       beforeSend,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Sentry: %w", err)
	}
	enabled = true
	return nil
}

// Enabled reports whether Sentry reporting is active.
func Enabled() bool {
	return enabled
}

// Flush waits for buffered events to be delivered.
func Flush(timeout time.Duration) {
	if enabled {
		sentry.Flush(timeout)
	}
}

// CaptureError reports an error to Sentry when enabled.
func CaptureError(err error) {
	if enabled && err != nil {
		sentry.CaptureException(err)
	}
}

// Scrub removes sensitive material from a message before it leaves the
// process.
func Scrub(message string) string {
	for _, pattern := range scrubPatterns {
		message = pattern.ReplaceAllString(message, "[REDACTED]")
	}
	return message
}

func beforeSend(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
	for i := range event.Exception {
		event.Exception[i].Value = Scrub(event.Exception[i].Value)
	}
	if event.Message != "" {
		event.Message = Scrub(event.Message)
	}
	for key, value := range event.Extra {
		if str, ok := value.(string); ok {
			event.Extra[key] = Scrub(str)
		}
	}
	return event
}
