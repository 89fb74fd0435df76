package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/reviewflash/internal/api"
	"github.com/vytor/reviewflash/internal/auth"
	"github.com/vytor/reviewflash/internal/config"
	"github.com/vytor/reviewflash/internal/db"
	"github.com/vytor/reviewflash/internal/jobs"
	"github.com/vytor/reviewflash/internal/logger"
	"github.com/vytor/reviewflash/internal/repository/sqlite"
	"github.com/vytor/reviewflash/internal/services"
	"github.com/vytor/reviewflash/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	format := logger.ParseFormat(cfg.LogFormat)
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(format),
		logger.WithColors(format == logger.FormatText),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("reviewflash server starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s log_format=%s", cfg.LogLevel, cfg.LogFormat)
	log.Debug("cors_origins=%v", cfg.CORSOrigins)
	log.Debug("cleanup_worker_count=%d", cfg.CleanupWorkerCount)
	log.Debug("cleanup_queue_size=%d", cfg.CleanupQueueSize)
	log.Debug("mastery_min_repetitions=%d", cfg.MasteryMinRepetitions)
	log.Debug("mastery_min_interval_days=%d", cfg.MasteryMinIntervalDays)
	log.Debug("due_soon_hours=%d due_default_limit=%d due_max_limit=%d", cfg.DueSoonHours, cfg.DueDefaultLimit, cfg.DueMaxLimit)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	reviewItemRepo := sqlite.NewReviewItemRepository(database.DB)
	moduleRepo := sqlite.NewModuleRepository(database.DB)

	// Background cleanup of review items for deleted modules
	cleanupPool := worker.NewPool(cfg.CleanupWorkerCount, cfg.CleanupQueueSize)
	jobQueue := jobs.NewWorkerQueue(cleanupPool, reviewItemRepo)

	// Services
	reviewService := services.NewReviewService(reviewItemRepo, moduleRepo, services.ReviewConfigFrom(cfg))
	moduleService := services.NewModuleService(moduleRepo, reviewItemRepo, jobQueue)

	srv := &api.Server{
		ReviewService: reviewService,
		ModuleService: moduleService,
		Tokens:        auth.NewIssuer(cfg.JWTSecret),
		DB:            database,
		CORSOrigins:   cfg.CORSOrigins,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cleanupPool.Start(ctx)

	failuresDone := make(chan struct{})
	go func() {
		defer close(failuresDone)
		failLog := log.WithPrefix("cleanup")
		for f := range cleanupPool.Failures() {
			failLog.WithField("job", f.Job).WithError(f.Err).Error("background job failed after %v", f.Duration)
		}
	}()

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Let queued cleanups finish before closing the database.
	log.Debug("draining cleanup pool (%d queued)", cleanupPool.QueueSize())
	cleanupPool.Drain()
	cancel()
	<-failuresDone

	log.Info("reviewflash server stopped")
}
