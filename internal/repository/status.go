package repository

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/cbisgaard/repairdesk/constants"
	"github.com/cbisgaard/repairdesk/internal/common"
	"github.com/cbisgaard/repairdesk/internal/entity"
)

type JobStatusRepository interface {
	GetStatus(ctx context.Context, id int16) (*entity.JobStatus, error)
	ListStatuses(ctx context.Context) ([]*entity.JobStatus, error)
	Reconcile(ctx context.Context) error
}

type jobStatusRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewJobStatusRepository(db *gorm.DB, logger *slog.Logger) JobStatusRepository {
	return &jobStatusRepository{
		db:     db,
		logger: logger,
	}
}

func (r *jobStatusRepository) GetStatus(ctx context.Context, id int16) (*entity.JobStatus, error) {
	var status entity.JobStatus
	err := r.db.WithContext(ctx).Take(&status, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundError("status not found")
		}
		r.logger.Error("failed to get status", "status_id", id, "error", err)
		return nil, common.DatabaseError("get status", err)
	}
	return &status, nil
}

func (r *jobStatusRepository) ListStatuses(ctx context.Context) ([]*entity.JobStatus, error) {
	var statuses []*entity.JobStatus
	err := r.db.WithContext(ctx).Order("id ASC").Find(&statuses).Error
	if err != nil {
		r.logger.Error("failed to list statuses", "error", err)
		return nil, common.DatabaseError("list statuses", err)
	}
	return statuses, nil
}

// Reconcile brings the job_status table in line with the closed set in
// constants: missing rows are inserted, drifted names are fixed in place.
// Rows are never deleted. Runs once at startup.
func (r *jobStatusRepository) Reconcile(ctx context.Context) error {
	r.logger.Info("reconciling job statuses")

	for _, id := range constants.AllStatuses() {
		name := id.Name()

		var existing entity.JobStatus
		err := r.db.WithContext(ctx).Take(&existing, int16(id)).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			status := entity.JobStatus{ID: int16(id), Name: name}
			if err := r.db.WithContext(ctx).Create(&status).Error; err != nil {
				r.logger.Error("failed to insert status", "status_id", id, "error", err)
				return common.DatabaseError("insert status", err)
			}
			r.logger.Info("inserted job status", "status_id", id, "name", name)
		case err != nil:
			r.logger.Error("failed to read status", "status_id", id, "error", err)
			return common.DatabaseError("read status", err)
		case existing.Name != name:
			existing.Name = name
			if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
				r.logger.Error("failed to update status", "status_id", id, "error", err)
				return common.DatabaseError("update status", err)
			}
			r.logger.Info("updated job status name", "status_id", id, "name", name)
		}
	}

	r.logger.Info("job status reconciliation complete", "count", len(constants.AllStatuses()))
	return nil
}
