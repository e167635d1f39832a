package metrics

import (
	"context"
	"time"

	"github.com/vidgate/vidgate/internal/cache"
)

// Collector periodically snapshots cache statistics into Prometheus gauges.
type Collector struct {
	cache    *cache.Coordinator
	interval time.Duration
	stop     chan struct{}
}

// NewCollector creates a new metrics collector.
func NewCollector(c *cache.Coordinator, interval time.Duration) *Collector {
	return &Collector{
		cache:    c,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start begins the metrics collection loop. It blocks until Stop is called
// or ctx is cancelled; run it on its own goroutine.
func (c *Collector) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.collect()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop stops the metrics collector.
func (c *Collector) Stop() {
	close(c.stop)
}

func (c *Collector) collect() {
	stats := c.cache.Stats()

	CacheEntries.WithLabelValues("memory").Set(float64(stats.Memory.Size))
	CacheEntries.WithLabelValues("disk").Set(float64(stats.Disk.Size))
	CacheHits.WithLabelValues("memory").Set(float64(stats.Memory.Hits))
	CacheHits.WithLabelValues("disk").Set(float64(stats.Disk.Hits))
	CacheMisses.WithLabelValues("memory").Set(float64(stats.Memory.Misses))
	CacheMisses.WithLabelValues("disk").Set(float64(stats.Disk.Misses))
	CacheHitRate.Set(stats.HitRate)
	CacheDiskErrors.Set(float64(stats.Disk.Errors))
}
