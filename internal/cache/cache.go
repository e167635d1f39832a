package cache

import "time"

// Tier defines the interface shared by the memory and disk storage tiers.
// Values are serialized payloads; both tiers treat them as opaque bytes.
type Tier interface {
	// Get retrieves a value by key. Returns the value and true if found and
	// not expired, otherwise nil and false. An expired entry is removed as a
	// side effect of the read.
	Get(key string) ([]byte, bool)

	// Set stores a value under key with the given TTL.
	// A TTL of Permanent (0) means the entry never expires.
	Set(key string, value []byte, ttl time.Duration)

	// Delete removes a value. Returns true if an entry was actually removed.
	Delete(key string) bool

	// Clear removes all entries unconditionally.
	Clear()

	// Stats returns point-in-time tier statistics.
	Stats() Stats
}

var (
	_ Tier = (*MemoryTier)(nil)
	_ Tier = (*DiskTier)(nil)
)

// Stats represents statistics for a single tier.
type Stats struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	Sets    uint64  `json:"sets"`
	Deletes uint64  `json:"deletes"`
	Errors  uint64  `json:"errors"` // I/O failures (disk tier only)
	Size    int     `json:"size"`   // current entry count
	HitRate float64 `json:"hitRate"`
}

func hitRate(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
