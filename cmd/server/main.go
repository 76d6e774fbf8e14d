package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/learnloop/internal/api"
	"github.com/vytor/learnloop/internal/catalog"
	"github.com/vytor/learnloop/internal/clock"
	"github.com/vytor/learnloop/internal/config"
	"github.com/vytor/learnloop/internal/db"
	"github.com/vytor/learnloop/internal/jobs"
	"github.com/vytor/learnloop/internal/logger"
	"github.com/vytor/learnloop/internal/repository/sqlite"
	"github.com/vytor/learnloop/internal/services"
	"github.com/vytor/learnloop/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("learnloop server starting")
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("catalog_path=%s", cfg.CatalogPath)
	log.Debug("job_worker_count=%d", cfg.JobWorkerCount)
	log.Debug("job_queue_size=%d", cfg.JobQueueSize)
	log.Debug("streak_sweep_at=%s", cfg.StreakSweepAt)
	log.Debug("default_session_minutes=%d", cfg.DefaultSessionMinutes)
	log.Debug("recent_review_window=%d", cfg.RecentReviewWindow)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Error("failed to load catalog: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clk := clock.System()
	stores := sqlite.NewStores(database.DB)
	tx := sqlite.NewTransactor(database.DB)

	contentService := services.NewContentService(tx, stores.Content)
	if err := contentService.Sync(ctx, cat); err != nil {
		log.Error("failed to sync catalog: %v", err)
		os.Exit(1)
	}
	proficiencyService := services.NewProficiencyService(stores, cat.Rewards, clk, cfg.RecentReviewWindow)

	srv := &api.Server{
		ContentService:      contentService,
		SessionService:      services.NewSessionService(stores, proficiencyService, clk, cfg.RecentReviewWindow, cfg.DefaultSessionMinutes),
		ReviewService:       services.NewReviewService(tx, cat.Rewards, clk),
		ProficiencyService:  proficiencyService,
		GamificationService: services.NewGamificationService(stores, tx, cat.Rewards, clk),
		DB:                  database,
	}

	pool := worker.NewPool(cfg.JobWorkerCount, cfg.JobQueueSize)
	pool.Start(ctx)

	queue := jobs.NewWorkerQueue(pool, stores.Gamification, clk, cfg.JobWorkerCount)
	scheduler := jobs.NewScheduler(queue, cfg.StreakSweepAt)
	if err := scheduler.Start(); err != nil {
		log.Error("failed to start scheduler: %v", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping scheduler")
	scheduler.Stop()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping worker pool")
	pool.Stop()

	log.Info("learnloop server stopped")
}
