package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/cbisgaard/repairdesk/internal/common"
	"github.com/cbisgaard/repairdesk/internal/export"
	"github.com/cbisgaard/repairdesk/internal/repository"
	"github.com/cbisgaard/repairdesk/internal/server"
	"github.com/cbisgaard/repairdesk/internal/services/parts"
	"github.com/cbisgaard/repairdesk/internal/services/search"
)

func main() {
	// Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Env
	_ = godotenv.Load()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB
	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer repository.Close(db, logger)

	if err := repository.Migrate(db, logger); err != nil {
		logger.Error("migrating schema", "error", err)
		os.Exit(1)
	}

	// Repositories
	jobRepo := repository.NewJobRepository(db, logger)
	productRepo := repository.NewProductRepository(db, logger)
	statusRepo := repository.NewJobStatusRepository(db, logger)
	partRepo := repository.NewJobPartRepository(db, logger)

	// The closed status set must exist before any job is created.
	if err := statusRepo.Reconcile(ctx); err != nil {
		logger.Error("reconciling job statuses", "error", err)
		os.Exit(1)
	}

	// Services
	partsSvc := parts.NewService(jobRepo, productRepo, partRepo, logger)
	searchSvc := search.NewService(jobRepo, productRepo, logger)
	exportSvc := export.NewService(jobRepo, partRepo, logger)

	srv := server.New(
		jobRepo, productRepo, statusRepo,
		partsSvc, searchSvc, exportSvc,
		func(ctx context.Context) error {
			return repository.HealthCheck(ctx, db, logger)
		},
		logger,
	)

	httpSrv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.Router(),
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.Server.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("stopped")
}
