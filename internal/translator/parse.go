package translator

import (
	"strconv"
	"strings"
)

// ParseCount parses a human-readable count like "1.2M views", "12,345" or
// "987 subscribers" into an integer. Unparsable input degrades to 0.
func ParseCount(text string) int64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	// First whitespace-separated token carries the number ("1.2M views").
	if i := strings.IndexByte(text, ' '); i > 0 {
		text = text[:i]
	}
	text = strings.ReplaceAll(text, ",", "")

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(text, "K"), strings.HasSuffix(text, "k"):
		multiplier = 1_000
		text = text[:len(text)-1]
	case strings.HasSuffix(text, "M"), strings.HasSuffix(text, "m"):
		multiplier = 1_000_000
		text = text[:len(text)-1]
	case strings.HasSuffix(text, "B"), strings.HasSuffix(text, "b"):
		multiplier = 1_000_000_000
		text = text[:len(text)-1]
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n * multiplier
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return int64(f * float64(multiplier))
	}
	return 0
}

// ParseDuration parses a "HH:MM:SS" or "MM:SS" duration label into seconds.
// Unparsable input degrades to 0.
func ParseDuration(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	parts := strings.Split(text, ":")
	if len(parts) > 3 {
		return 0
	}
	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total
}
