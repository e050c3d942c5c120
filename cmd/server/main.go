package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/quantfolio/frontier/internal/config"
	"github.com/quantfolio/frontier/internal/database"
	"github.com/quantfolio/frontier/internal/modules/optimization"
	optimizationhandlers "github.com/quantfolio/frontier/internal/modules/optimization/handlers"
	"github.com/quantfolio/frontier/internal/modules/runs"
	"github.com/quantfolio/frontier/internal/scheduler"
	"github.com/quantfolio/frontier/internal/server"
	"github.com/quantfolio/frontier/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootstrapLog := logger.New(logger.Config{Level: "info", Pretty: true})
		bootstrapLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Str("data_dir", cfg.DataDir).Msg("Starting Frontier optimization service")

	// Initialize run history database
	db, err := database.New(database.Config{
		Path: filepath.Join(cfg.DataDir, "runs.db"),
		Name: "runs",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize runs database")
	}
	defer db.Close()

	runRepo, err := runs.NewRepository(db.Conn(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize runs repository")
	}

	// Initialize optimization service and handlers
	optSvc := optimization.NewService(runRepo, log)
	optHandlers := optimizationhandlers.NewHandler(optSvc, runRepo, log)

	// Initialize scheduler and register maintenance jobs
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	retention := time.Duration(cfg.RunRetentionDays) * 24 * time.Hour
	pruneJob := scheduler.NewPruneRunsJob(runRepo, retention, log)
	if err := sched.AddJob("@daily", pruneJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register prune job")
	}
	if err := sched.AddJob("@every 6h", scheduler.NewDBMaintenanceJob(db, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register maintenance job")
	}

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:                 cfg.Port,
		Log:                  log,
		RunsDB:               db,
		OptimizationHandlers: optHandlers,
		DevMode:              cfg.DevMode,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
