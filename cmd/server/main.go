package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vidgate/vidgate/internal/config"
	"github.com/vidgate/vidgate/internal/errorreporting"
	"github.com/vidgate/vidgate/internal/logger"
	"github.com/vidgate/vidgate/internal/server"
	"github.com/vidgate/vidgate/internal/tracing"
)

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		// Fine in production: env comes from the process environment.
		logger.Info("no .env file found, using system env")
	}

	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	if err := errorreporting.Init(); err != nil {
		logger.Warn("sentry init failed", "error", err)
	}
	defer errorreporting.Flush(2 * time.Second)

	shutdownTracing, err := tracing.Init("vidgate", version)
	if err != nil {
		logger.Warn("tracing init failed", "error", err)
	}

	srv, err := server.New(cfg, version)
	if err != nil {
		logger.Error("server init failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if shutdownTracing != nil {
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}
	logger.Info("server stopped")
}
