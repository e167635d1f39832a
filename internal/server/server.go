package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/vidgate/vidgate/internal/api"
	"github.com/vidgate/vidgate/internal/cache"
	"github.com/vidgate/vidgate/internal/config"
	"github.com/vidgate/vidgate/internal/logger"
	"github.com/vidgate/vidgate/internal/metrics"
	"github.com/vidgate/vidgate/internal/middleware"
	"github.com/vidgate/vidgate/internal/proxy"
	"github.com/vidgate/vidgate/internal/scheduler"
	"github.com/vidgate/vidgate/internal/upstream"
)

// Server wires the cache tiers, upstream client, proxies and HTTP surface
// together and owns their lifecycles.
type Server struct {
	cfg       *config.Config
	http      *http.Server
	memory    *cache.MemoryTier
	disk      *cache.DiskTier
	cache     *cache.Coordinator
	sched     *scheduler.Scheduler
	collector *metrics.Collector
	limiter   *middleware.RateLimiter
}

func New(cfg *config.Config, version string) (*Server, error) {
	clk := clock.New()
	memory := cache.NewMemoryTier(cfg.CacheMaxEntries, clk)
	disk, err := cache.NewDiskTier(cfg.CacheDir, clk)
	if err != nil {
		return nil, fmt.Errorf("init disk cache: %w", err)
	}
	coordinator := cache.NewCoordinator(memory, disk)

	router := api.NewRouter(api.Deps{
		Cache:    coordinator,
		Upstream: upstream.NewAPIClient(cfg),
		Images:   proxy.NewImageProxy(cfg),
		Media:    proxy.NewMediaProxy(cfg),
		Version:  version,
	})

	s := &Server{
		cfg:       cfg,
		memory:    memory,
		disk:      disk,
		cache:     coordinator,
		sched:     scheduler.New(),
		collector: metrics.NewCollector(coordinator, cfg.MetricsInterval),
	}

	// Outer chain wraps the router itself so the not-found handler and
	// preflight requests pass through it too.
	var handler http.Handler = router
	if cfg.EnableRateLimit {
		s.limiter = middleware.NewRateLimiter(
			cfg.RateLimitGlobal, cfg.RateLimitGlobalBurst,
			cfg.RateLimitPerIP, cfg.RateLimitPerIPBurst,
		)
		handler = s.limiter.Limit(handler)
	}
	handler = middleware.CORS(middleware.DefaultCORSConfig())(handler)
	handler = middleware.Recover(handler)
	handler = middleware.RequestID(handler)

	s.http = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// No write timeout: media relays stay open as long as the
		// client keeps reading.
	}
	return s, nil
}

// Start launches the background jobs and blocks serving HTTP until the
// listener fails or Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	s.memory.StartSweep(s.cfg.MemorySweepInterval)

	if err := s.sched.AddEvery("disk-sweep", s.cfg.DiskSweepInterval, func() {
		if removed := s.disk.CleanupExpired(); removed > 0 {
			logger.Info("disk cache sweep", "removed", removed)
		}
	}); err != nil {
		return err
	}
	s.sched.Start()
	go s.collector.Start(ctx)

	logger.Info("server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the background jobs and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.collector.Stop()
	s.sched.Stop()
	s.memory.Stop()
	if s.limiter != nil {
		s.limiter.Stop()
	}
	return s.http.Shutdown(ctx)
}

// Cache exposes the coordinator, mainly for tests.
func (s *Server) Cache() *cache.Coordinator {
	return s.cache
}
