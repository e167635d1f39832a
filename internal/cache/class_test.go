package cache

import (
	"testing"
	"time"
)

func TestClassPolicies(t *testing.T) {
	tests := []struct {
		class   Class
		ttl     time.Duration
		durable bool
	}{
		{ClassSearch, 5 * time.Minute, false},
		{ClassVideo, 60 * time.Minute, true},
		{ClassChannel, 24 * time.Hour, true},
		{ClassLyrics, Permanent, true},
	}
	for _, tt := range tests {
		p := tt.class.Policy()
		if p.TTL != tt.ttl {
			t.Errorf("%s: TTL = %v, want %v", tt.class, p.TTL, tt.ttl)
		}
		if p.Durable != tt.durable {
			t.Errorf("%s: Durable = %v, want %v", tt.class, p.Durable, tt.durable)
		}
	}
}

func TestUnknownClassFallsBackToDefault(t *testing.T) {
	p := Class("bogus").Policy()
	if p != DefaultClass.Policy() {
		t.Errorf("unknown class policy = %+v, want default %+v", p, DefaultClass.Policy())
	}
}

func TestClassOf(t *testing.T) {
	tests := []struct {
		key  string
		want Class
	}{
		{"search:q=cats", ClassSearch},
		{"video-metadata:abc123", ClassVideo},
		{"channel-metadata:UC123", ClassChannel},
		{"lyrics:abc123", ClassLyrics},
		{"unknown-namespace:x", DefaultClass},
		{"no-colon-at-all", DefaultClass},
		{":leading-colon", DefaultClass},
		{"", DefaultClass},
	}
	for _, tt := range tests {
		if got := ClassOf(tt.key); got != tt.want {
			t.Errorf("ClassOf(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeyRoundTripsThroughClassOf(t *testing.T) {
	for class := range policies {
		key := class.Key("some:id:with:colons")
		if got := ClassOf(key); got != class {
			t.Errorf("ClassOf(%q) = %q, want %q", key, got, class)
		}
	}
}
