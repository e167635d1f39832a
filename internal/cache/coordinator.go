package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vidgate/vidgate/internal/logger"
)

// Coordinator merges the memory and disk tiers into one logical cache with
// read-through/write-through semantics. The content class, derived from the
// key's namespace prefix, decides the TTL and whether the disk tier is used.
//
// There is no lock spanning the tiers: concurrent operations on the same key
// race last-writer-wins, and a disk-tier backfill may briefly shadow a fresher
// concurrent write. That staleness window is accepted by design of the cache
// contract; a value is never readable past its TTL from either tier.
type Coordinator struct {
	memory *MemoryTier
	disk   *DiskTier

	gets     atomic.Uint64
	sets     atomic.Uint64
	fastHits atomic.Uint64
	slowHits atomic.Uint64
	misses   atomic.Uint64
}

// CombinedStats aggregates coordinator-level counters with both tiers.
type CombinedStats struct {
	Gets     uint64  `json:"gets"`
	Sets     uint64  `json:"sets"`
	FastHits uint64  `json:"fastHits"` // served from memory
	SlowHits uint64  `json:"slowHits"` // served from disk, backfilled
	Misses   uint64  `json:"misses"`
	HitRate  float64 `json:"hitRate"`
	Memory   Stats   `json:"memory"`
	Disk     Stats   `json:"disk"`
}

// NewCoordinator creates a coordinator over the two tiers.
func NewCoordinator(memory *MemoryTier, disk *DiskTier) *Coordinator {
	return &Coordinator{memory: memory, disk: disk}
}

// Get consults the memory tier first; on a miss, classes that use the disk
// tier fall through to it, and a disk hit is backfilled into the memory tier
// under the class-default TTL.
func (c *Coordinator) Get(ctx context.Context, key string) ([]byte, bool) {
	c.gets.Add(1)

	if value, ok := c.memory.Get(key); ok {
		c.fastHits.Add(1)
		return value, true
	}

	policy := ClassOf(key).Policy()
	if policy.Durable {
		if value, ok := c.disk.Get(key); ok {
			c.memory.Set(key, value, policy.TTL)
			c.slowHits.Add(1)
			logger.DebugContext(ctx, "cache backfill from disk", "key", key)
			return value, true
		}
	}

	c.misses.Add(1)
	return nil, false
}

// Set stores a value under the class-default TTL for the key's class.
func (c *Coordinator) Set(ctx context.Context, key string, value []byte) {
	c.set(ctx, key, value, ClassOf(key).Policy().TTL)
}

// SetTTL stores a value with an explicit TTL override. Permanent (0) means
// no expiry. The override takes precedence over the class default.
func (c *Coordinator) SetTTL(ctx context.Context, key string, value []byte, ttl time.Duration) {
	c.set(ctx, key, value, ttl)
}

func (c *Coordinator) set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	c.sets.Add(1)
	c.memory.Set(key, value, ttl)
	if ClassOf(key).Policy().Durable {
		c.disk.SetAsync(key, value, ttl)
	}
}

// Delete removes the key from both tiers. The disk delete is attempted even
// for classes that do not normally use the disk tier, so no stale remnant
// can survive a policy change.
func (c *Coordinator) Delete(ctx context.Context, key string) {
	c.memory.Delete(key)
	c.disk.Delete(key)
}

// ClearClass removes every memory-tier entry in the class's namespace via a
// linear key scan, and degrades to a generic expired-entry sweep on the disk
// tier, where class-scoped physical deletion is not guaranteed. Returns the
// number of memory entries removed.
func (c *Coordinator) ClearClass(class Class) int {
	removed := c.memory.DeletePrefix(string(class) + ":")
	c.disk.CleanupExpired()
	return removed
}

// Memory exposes the memory tier (sweep lifecycle, tests).
func (c *Coordinator) Memory() *MemoryTier { return c.memory }

// Disk exposes the disk tier (scheduled sweeps, tests).
func (c *Coordinator) Disk() *DiskTier { return c.disk }

// Stats returns aggregated statistics for both tiers plus coordinator-level
// counters.
func (c *Coordinator) Stats() CombinedStats {
	fast := c.fastHits.Load()
	slow := c.slowHits.Load()
	misses := c.misses.Load()
	return CombinedStats{
		Gets:     c.gets.Load(),
		Sets:     c.sets.Load(),
		FastHits: fast,
		SlowHits: slow,
		Misses:   misses,
		HitRate:  hitRate(fast+slow, misses),
		Memory:   c.memory.Stats(),
		Disk:     c.disk.Stats(),
	}
}
