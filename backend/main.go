// ABOUTME: Entry point for the AMR LN2 generator sizing service
// ABOUTME: Provides the HTTP API and calculator page backed by the sizing engine

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MaxParisotto/amr-ln2-generator/backend/cache"
	"github.com/MaxParisotto/amr-ln2-generator/backend/config"
	"github.com/MaxParisotto/amr-ln2-generator/backend/handlers"
	"github.com/MaxParisotto/amr-ln2-generator/backend/logger"
	"github.com/MaxParisotto/amr-ln2-generator/backend/middleware"
	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
	"github.com/MaxParisotto/amr-ln2-generator/backend/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize structured logging
	logger.Init(cfg.LogLevel, cfg.LogFormat, nil)

	slog.Info("Starting AMR LN2 Generator Sizing Service")

	table, source, err := services.LoadCalibration(cfg.CalibrationFile)
	if err != nil {
		slog.Error("Failed to load calibration", "file", cfg.CalibrationFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Calibration loaded", "source", source, "model", table.Model, "pressure_tiers", table.Pressures())

	sizing, err := services.NewSizingService(table, cfg.SizingRevision)
	if err != nil {
		slog.Error("Failed to initialize sizing", "error", err)
		os.Exit(1)
	}
	slog.Info("Sizing configured", "revision", sizing.DefaultRevision())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize cache
	c := cache.New[models.RecommendationsResponse](ctx, cfg.CacheTTL, time.Minute)
	slog.Info("Cache initialized", "ttl", cfg.CacheTTL)

	// Initialize handlers
	h := handlers.NewHandler(cfg, sizing, c)

	// Rate limiters
	var defaultLimiter, batchLimiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		defaultLimiter = middleware.NewRateLimiter(cfg.RateLimitDefault, time.Minute)
		batchLimiter = middleware.NewRateLimiter(cfg.RateLimitBatch, time.Minute)
		slog.Info("Rate limiting enabled", "default", cfg.RateLimitDefault, "batch", cfg.RateLimitBatch)
	} else {
		slog.Warn("Rate limiting disabled")
	}

	mux := http.NewServeMux()
	routes := append(h.Routes(), h.PageRoute())
	for _, route := range routes {
		limiter, keyFunc := defaultLimiter, middleware.ClientIP
		if route.Path == "/api/v1/sizing/batch" {
			limiter, keyFunc = batchLimiter, middleware.PathKey
		}
		mux.HandleFunc(route.Pattern(), middleware.Chain(route.Handler,
			middleware.Recover,
			middleware.LogRequest,
			middleware.CORS(cfg.CORSAllowedOrigins),
			middleware.LimitBody(1<<20),
			middleware.RateLimit(limiter, keyFunc),
		))
	}

	// CORS preflight for every API path
	mux.HandleFunc("OPTIONS /api/v1/", middleware.Chain(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, middleware.CORS(cfg.CORSAllowedOrigins)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	}
	slog.Info("Server stopped")
}
