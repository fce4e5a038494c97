package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/ukpostcode/internal"
	"github.com/dukerupert/ukpostcode/internal/handler"
	"github.com/dukerupert/ukpostcode/internal/middleware"
	"github.com/dukerupert/ukpostcode/internal/routes"
	"github.com/dukerupert/ukpostcode/internal/telemetry"
	"github.com/dukerupert/ukpostcode/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Load templates with renderer
	logger.Info("Loading templates...")
	renderer, err := handler.NewRenderer(web.Templates())
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}
	logger.Info("Templates loaded successfully")

	// ==========================================================================
	// Initialize metrics
	// ==========================================================================

	var (
		httpMetrics     *middleware.Metrics
		postcodeMetrics *telemetry.PostcodeMetrics
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		httpMetrics = middleware.NewMetrics(cfg.Metrics.Namespace, reg, routes.KnownPaths...)
		postcodeMetrics = telemetry.NewPostcodeMetrics(cfg.Metrics.Namespace, reg)
		logger.Info("Metrics enabled", "namespace", cfg.Metrics.Namespace)
	}

	// ==========================================================================
	// Build routes
	// ==========================================================================

	checkHandler := handler.NewCheckHandler(renderer, handler.Limits{
		MaxBatchSize:   cfg.Checker.MaxBatchSize,
		MaxInputLength: cfg.Checker.MaxInputLength,
		Concurrency:    cfg.Checker.Concurrency,
	}, postcodeMetrics)

	limiterConfig := middleware.DefaultRateLimiterConfig()
	limiterConfig.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
	limiterConfig.BurstSize = cfg.RateLimit.Burst

	// Configure security headers
	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env == "dev" {
		securityConfig.HSTSMaxAge = 0 // Disable HSTS in development
	}

	// Form encoding can triple a batch (';' becomes %3B)
	maxBody := 3*int64(cfg.Checker.MaxInputLength) + middleware.KB

	r := routes.NewRouter(routes.ChainConfig{
		Logger:      logger,
		Security:    securityConfig,
		MaxBodySize: maxBody,
		Timeout:     cfg.Checker.RequestTimeout,
	}, routes.CheckerDeps{
		CheckHandler: checkHandler,
		RateLimiter:  middleware.NewRateLimiter(limiterConfig),
		Metrics:      httpMetrics,
	})

	// ==========================================================================
	// Start server
	// ==========================================================================

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Checker.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
