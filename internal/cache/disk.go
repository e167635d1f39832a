package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/zeebo/xxh3"

	"github.com/vidgate/vidgate/internal/logger"
)

// DiskTier is a file-per-key durable store with the same TTL semantics as the
// memory tier. File names are a one-way digest of the key, so arbitrary keys
// never produce filesystem-unsafe paths; the original key is kept inside the
// payload for diagnosability.
//
// Durability is an optimization, not a correctness requirement: every I/O
// failure is logged, counted, and degraded to a miss (read) or a no-op
// (write). No file operation error ever reaches a caller.
type DiskTier struct {
	dir   string
	clock clock.Clock

	hits    atomic.Uint64
	misses  atomic.Uint64
	sets    atomic.Uint64
	deletes atomic.Uint64
	errors  atomic.Uint64
}

// diskEntry is the self-describing on-disk representation. Expiry is
// re-checked from ExpiresAt on every read, independent of memory-tier state.
type diskEntry struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	CreatedAt time.Time       `json:"createdAt"`
	ExpiresAt *time.Time      `json:"expiresAt"` // nil means never
}

// NewDiskTier creates a disk tier rooted at dir, creating the directory if
// needed. Directory creation is idempotent and re-attempted before writes.
func NewDiskTier(dir string, clk clock.Clock) (*DiskTier, error) {
	if clk == nil {
		clk = clock.New()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &DiskTier{dir: dir, clock: clk}, nil
}

// Dir returns the cache directory.
func (d *DiskTier) Dir() string { return d.dir }

func (d *DiskTier) path(key string) string {
	sum := xxh3.HashString128(key)
	return filepath.Join(d.dir, fmt.Sprintf("%016x%016x.json", sum.Hi, sum.Lo))
}

// Get reads a value by key. Missing files are plain misses; unreadable or
// corrupt files are counted as errors, removed, and reported as misses.
func (d *DiskTier) Get(key string) ([]byte, bool) {
	path := d.path(key)
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			d.errors.Add(1)
			logger.Warn("disk cache read failed", "key", key, "error", err)
		}
		d.misses.Add(1)
		return nil, false
	}

	var e diskEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		d.errors.Add(1)
		logger.Warn("disk cache entry corrupt, removing", "key", key, "error", err)
		_ = os.Remove(path)
		d.misses.Add(1)
		return nil, false
	}

	if e.ExpiresAt != nil && !d.clock.Now().Before(*e.ExpiresAt) {
		_ = os.Remove(path)
		d.misses.Add(1)
		return nil, false
	}

	d.hits.Add(1)
	return e.Value, true
}

// Set writes a value under key. A TTL of Permanent (0) or less means the
// entry never expires. Failures are absorbed as a no-op.
func (d *DiskTier) Set(key string, value []byte, ttl time.Duration) {
	now := d.clock.Now()
	e := diskEntry{Key: key, Value: value, CreatedAt: now}
	if ttl > 0 {
		expires := now.Add(ttl)
		e.ExpiresAt = &expires
	}

	raw, err := json.Marshal(e)
	if err != nil {
		d.errors.Add(1)
		logger.Warn("disk cache entry marshal failed", "key", key, "error", err)
		return
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		d.errors.Add(1)
		logger.Warn("disk cache dir unavailable", "dir", d.dir, "error", err)
		return
	}
	if err := os.WriteFile(d.path(key), raw, 0o644); err != nil {
		d.errors.Add(1)
		logger.Warn("disk cache write failed", "key", key, "error", err)
		return
	}
	d.sets.Add(1)
}

// SetAsync schedules a Set on a background goroutine. Call sites that must
// not outlive the write (startup, shutdown) use the synchronous Set instead.
func (d *DiskTier) SetAsync(key string, value []byte, ttl time.Duration) {
	go d.Set(key, value, ttl)
}

// Delete removes the entry for key. Returns true iff a file was removed.
func (d *DiskTier) Delete(key string) bool {
	err := os.Remove(d.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			d.errors.Add(1)
			logger.Warn("disk cache delete failed", "key", key, "error", err)
		}
		return false
	}
	d.deletes.Add(1)
	return true
}

// DeleteAsync schedules a Delete on a background goroutine.
func (d *DiskTier) DeleteAsync(key string) {
	go d.Delete(key)
}

// Clear removes every cache file unconditionally.
func (d *DiskTier) Clear() {
	for _, path := range d.files() {
		if err := os.Remove(path); err != nil {
			d.errors.Add(1)
		}
	}
}

// Size returns the physical file count, without expiry checks.
func (d *DiskTier) Size() int {
	return len(d.files())
}

// CleanupExpired scans every cache file and removes those whose stored
// expiry has passed, returning the number removed. Unreadable files are
// removed as well. This sweep is comparatively expensive and is driven by an
// external schedule, not an ambient timer.
func (d *DiskTier) CleanupExpired() int {
	now := d.clock.Now()
	removed := 0
	for _, path := range d.files() {
		raw, err := os.ReadFile(path)
		if err != nil {
			d.errors.Add(1)
			continue
		}
		var e diskEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			d.errors.Add(1)
			if os.Remove(path) == nil {
				removed++
			}
			continue
		}
		if e.ExpiresAt != nil && !now.Before(*e.ExpiresAt) {
			if os.Remove(path) == nil {
				removed++
			}
		}
	}
	if removed > 0 {
		logger.Info("disk cache sweep removed expired entries", "removed", removed)
	}
	return removed
}

// Stats returns point-in-time statistics.
func (d *DiskTier) Stats() Stats {
	hits := d.hits.Load()
	misses := d.misses.Load()
	return Stats{
		Hits:    hits,
		Misses:  misses,
		Sets:    d.sets.Load(),
		Deletes: d.deletes.Load(),
		Errors:  d.errors.Load(),
		Size:    d.Size(),
		HitRate: hitRate(hits, misses),
	}
}

func (d *DiskTier) files() []string {
	matches, err := filepath.Glob(filepath.Join(d.dir, "*.json"))
	if err != nil {
		d.errors.Add(1)
		return nil
	}
	return matches
}
