package repository

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cbisgaard/repairdesk/internal/common"
	"github.com/cbisgaard/repairdesk/internal/entity"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	logger := slog.Default()
	cfg := common.DatabaseConfig{
		Driver:          "sqlite",
		DSN:             filepath.Join(t.TempDir(), "repairdesk.db"),
		MaxConns:        1,
		MaxConnLifetime: time.Minute,
		MaxConnIdleTime: time.Minute,
		DialTimeout:     time.Second,
	}
	db, err := Open(context.Background(), cfg, logger)
	require.NoError(t, err)
	require.NoError(t, Migrate(db, logger))
	t.Cleanup(func() { Close(db, logger) })
	return db
}

func seedStatuses(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, NewJobStatusRepository(db, slog.Default()).Reconcile(context.Background()))
}

func seedJob(t *testing.T, db *gorm.DB, job *entity.Job) *entity.Job {
	t.Helper()
	if job.StatusID == 0 {
		job.StatusID = 1
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func seedProduct(t *testing.T, db *gorm.DB, product *entity.Product) *entity.Product {
	t.Helper()
	require.NoError(t, db.Create(product).Error)
	return product
}
