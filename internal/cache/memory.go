package cache

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// MemoryTier is a capacity-bounded, TTL-aware in-process key/value store.
// Eviction is FIFO over insertion order: when an insert would exceed
// maxEntries, expired entries are purged first, and if the tier is still at
// capacity the single oldest-inserted surviving entry is evicted. Reads do
// not reorder entries.
//
// Operations are total; this tier performs no I/O and never fails.
type MemoryTier struct {
	mu         sync.Mutex
	entries    map[string]*memoryEntry
	order      []string // insertion order, oldest first
	maxEntries int
	clock      clock.Clock

	hits    uint64
	misses  uint64
	sets    uint64
	deletes uint64

	stop chan struct{}
	once sync.Once
}

type memoryEntry struct {
	value     []byte
	createdAt time.Time
	expiresAt time.Time // zero means never
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// NewMemoryTier creates a memory tier bounded to maxEntries entries.
// The clock is injectable for deterministic TTL tests; pass clock.New()
// in production.
func NewMemoryTier(maxEntries int, clk clock.Clock) *MemoryTier {
	if maxEntries < 1 {
		maxEntries = 1
	}
	if clk == nil {
		clk = clock.New()
	}
	return &MemoryTier{
		entries:    make(map[string]*memoryEntry),
		maxEntries: maxEntries,
		clock:      clk,
		stop:       make(chan struct{}),
	}
}

// StartSweep launches a background goroutine that removes expired entries on
// a fixed interval, independent of get/set traffic. Stop terminates it.
func (m *MemoryTier) StartSweep(interval time.Duration) {
	ticker := m.clock.Ticker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.mu.Lock()
				m.purgeExpiredLocked()
				m.mu.Unlock()
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop terminates the background sweep, if started.
func (m *MemoryTier) Stop() {
	m.once.Do(func() { close(m.stop) })
}

// Get retrieves a value by key. An entry that has expired is deleted before
// reporting a miss, so a long-idle key reads as absent the moment its TTL
// elapses, without waiting for the next sweep tick.
func (m *MemoryTier) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		m.misses++
		return nil, false
	}
	if e.expired(m.clock.Now()) {
		m.removeLocked(key)
		m.misses++
		return nil, false
	}
	m.hits++
	return e.value, true
}

// Set stores a value under key. A TTL of Permanent (0) or less means the
// entry never expires. Capacity is enforced here, at write time.
func (m *MemoryTier) Set(key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.purgeExpiredLocked()
		if len(m.entries) >= m.maxEntries {
			m.evictOldestLocked()
		}
	}

	e := &memoryEntry{value: value, createdAt: now}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	if _, exists := m.entries[key]; !exists {
		m.order = append(m.order, key)
	}
	m.entries[key] = e
	m.sets++
}

// Delete removes an entry. Returns true iff an entry was actually removed.
func (m *MemoryTier) Delete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; !ok {
		return false
	}
	m.removeLocked(key)
	m.deletes++
	return true
}

// Clear drops all entries unconditionally.
func (m *MemoryTier) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*memoryEntry)
	m.order = m.order[:0]
}

// DeletePrefix removes every entry whose key starts with prefix, returning
// the number removed. There is no per-class index; this is a linear scan.
func (m *MemoryTier) DeletePrefix(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key := range m.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			m.removeLocked(key)
			removed++
		}
	}
	m.deletes += uint64(removed)
	return removed
}

// Size returns the current entry count.
func (m *MemoryTier) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Stats returns point-in-time statistics.
func (m *MemoryTier) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		Hits:    m.hits,
		Misses:  m.misses,
		Sets:    m.sets,
		Deletes: m.deletes,
		Size:    len(m.entries),
		HitRate: hitRate(m.hits, m.misses),
	}
}

func (m *MemoryTier) purgeExpiredLocked() {
	now := m.clock.Now()
	for key, e := range m.entries {
		if e.expired(now) {
			m.removeLocked(key)
		}
	}
}

// evictOldestLocked evicts exactly one entry, the oldest-inserted one,
// regardless of its expiry.
func (m *MemoryTier) evictOldestLocked() {
	if len(m.order) == 0 {
		return
	}
	m.removeLocked(m.order[0])
}

func (m *MemoryTier) removeLocked(key string) {
	delete(m.entries, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
