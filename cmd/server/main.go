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

	"github.com/harukigames/gamecore/internal/bootstrap"
	"github.com/harukigames/gamecore/internal/catalog"
	"github.com/harukigames/gamecore/internal/character"
	"github.com/harukigames/gamecore/internal/concurrency"
	"github.com/harukigames/gamecore/internal/config"
	"github.com/harukigames/gamecore/internal/database"
	"github.com/harukigames/gamecore/internal/equipment"
	"github.com/harukigames/gamecore/internal/eventlog"
	"github.com/harukigames/gamecore/internal/experience"
	"github.com/harukigames/gamecore/internal/inventory"
	"github.com/harukigames/gamecore/internal/jobclass"
	"github.com/harukigames/gamecore/internal/server"
	"github.com/harukigames/gamecore/internal/skilltree"
)

const (
	dbMaxConns    = 10
	dbMaxIdleTime = 5 * time.Minute
	dbMaxLifetime = 30 * time.Minute

	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	bootstrap.SetupLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), dbMaxConns, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.Migrate(ctx, dbPool); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Event system initialization failed", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	if err := bootstrap.SyncContent(ctx, cfg.ContentDir, repos); err != nil {
		slog.Error("Content sync failed", "error", err)
		os.Exit(1)
	}

	eventLogService := eventlog.NewService(repos.EventLog)
	if err := bootstrap.RegisterEventHandlers(eventBus, eventLogService); err != nil {
		slog.Error("Event handler registration failed", "error", err)
		os.Exit(1)
	}

	locks := concurrency.NewLockManager()
	curve := experience.DefaultCurve()

	svcs := server.Services{
		JobClass:   jobclass.NewService(repos.JobClass),
		Catalog:    catalog.NewService(repos.Item),
		Character:  character.NewService(repos.Character, repos.JobClass, repos.Tx, locks, publisher, curve),
		Experience: experience.NewService(repos.Character, repos.JobClass, repos.Tx, locks, publisher, curve, cfg.SkillPointsPerLevel),
		SkillTree:  skilltree.NewService(repos.Skill, repos.Character, repos.Tx, locks, publisher),
		Equipment:  equipment.NewService(repos.Inventory, repos.Item, repos.Character, repos.JobClass, repos.Tx, locks, publisher),
		Inventory:  inventory.NewService(repos.Inventory, repos.Warehouse, repos.Item, repos.Character, repos.JobClass, repos.Tx, locks, publisher),
	}

	cleanupJob := eventlog.NewCleanupJob(eventLogService, cfg.EventLogRetentionDays)
	go cleanupJob.Run(ctx, cfg.EventLogCleanupInterval)

	srv := server.NewServer(cfg.Port, cfg.APIToken, cfg.TrustedProxies, dbPool, svcs)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-quit:
		slog.Info("Received shutdown signal", "signal", sig.String())
	}

	// Stop background jobs before tearing down the server.
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		ResilientPublisher: publisher,
	})
}
