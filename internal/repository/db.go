package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cbisgaard/repairdesk/internal/common"
	"github.com/cbisgaard/repairdesk/internal/entity"
)

// Open connects to the configured database and returns a gorm handle.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	logger.Info("connecting to database", "driver", cfg.Driver)

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported DB driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetConnMaxLifetime(cfg.MaxConnLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		logger.Error("failed to ping database", "error", err)
		return nil, err
	}

	logger.Info("successfully connected to database")
	return db, nil
}

// Migrate creates or updates the four tables, including the unique index
// on job_parts(job_id, product_id) that the consolidation upsert relies on.
func Migrate(db *gorm.DB, logger *slog.Logger) error {
	logger.Info("running schema migration")
	if err := db.AutoMigrate(
		&entity.JobStatus{},
		&entity.Job{},
		&entity.Product{},
		&entity.JobPart{},
	); err != nil {
		logger.Error("schema migration failed", "error", err)
		return err
	}
	logger.Info("schema migration complete")
	return nil
}

// Close closes the database connection gracefully
func Close(db *gorm.DB, logger *slog.Logger) {
	logger.Info("closing database connection")
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}
	logger.Info("database connection closed")
}

// HealthCheck pings the database to catch DSN issues early.
func HealthCheck(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	logger.Debug("pinging database")
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}
	logger.Debug("database ping successful")
	return nil
}
