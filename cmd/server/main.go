// Package main is the entry point for the matunda API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"matunda/internal/config"
	"matunda/internal/domain/batch"
	"matunda/internal/domain/reports"
	"matunda/internal/infrastructure/auth"
	v1 "matunda/internal/infrastructure/http/v1"
	"matunda/internal/infrastructure/storage/postgres"
	"matunda/internal/infrastructure/storage/postgres/batch_repo"
	"matunda/internal/infrastructure/storage/postgres/ledger_repo"
	"matunda/internal/infrastructure/storage/postgres/snapshot_repo"
	"matunda/internal/scheduler"
	"matunda/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting matunda server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.Database.DSN)
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	batchRepo := batch_repo.NewBatchRepo(txManager)
	ledgerRepo := ledger_repo.NewLedgerRepo(txManager)
	snapshotRepo := snapshot_repo.NewSnapshotRepo(txManager)

	// --- Services ---
	batchService := batch.NewService(batchRepo)
	reportService := reports.NewService(ledgerRepo, ledgerRepo, ledgerRepo, batchRepo)

	// --- JWT ---
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(cfg.Auth.JWTSecret))

	// --- Snapshot scheduler ---
	if cfg.Reporting.Enabled {
		snapshotScheduler := scheduler.New(cfg.Reporting, reportService, snapshotRepo)
		if err := snapshotScheduler.Start(); err != nil {
			log.Fatalw("failed to start snapshot scheduler", "error", err)
		}
		defer snapshotScheduler.Stop()
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:          pool,
		Logger:        log,
		JWTValidator:  jwtService,
		BatchService:  batchService,
		ReportService: reportService,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
