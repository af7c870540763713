package repository

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/cbisgaard/repairdesk/internal/common"
	"github.com/cbisgaard/repairdesk/internal/entity"
)

type JobRepository interface {
	GetJob(ctx context.Context, id int) (*entity.Job, error)
	ListJobs(ctx context.Context, newestFirst bool) ([]*entity.Job, error)
	CreateJob(ctx context.Context, job *entity.Job) (*entity.Job, error)
	SaveJob(ctx context.Context, job *entity.Job) (*entity.Job, error)
	DeleteJob(ctx context.Context, id int) error
	SearchJobs(ctx context.Context, keyword string) ([]*entity.Job, error)
}

type jobRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewJobRepository(db *gorm.DB, logger *slog.Logger) JobRepository {
	return &jobRepository{
		db:     db,
		logger: logger,
	}
}

func (r *jobRepository) GetJob(ctx context.Context, id int) (*entity.Job, error) {
	var job entity.Job
	err := r.db.WithContext(ctx).Preload("Status").Take(&job, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundError("job not found")
		}
		r.logger.Error("failed to get job", "job_id", id, "error", err)
		return nil, common.DatabaseError("get job", err)
	}
	return &job, nil
}

func (r *jobRepository) ListJobs(ctx context.Context, newestFirst bool) ([]*entity.Job, error) {
	order := "date ASC"
	if newestFirst {
		order = "date DESC"
	}
	var jobs []*entity.Job
	err := r.db.WithContext(ctx).Preload("Status").Order(order).Find(&jobs).Error
	if err != nil {
		r.logger.Error("failed to list jobs", "error", err)
		return nil, common.DatabaseError("list jobs", err)
	}
	return jobs, nil
}

func (r *jobRepository) CreateJob(ctx context.Context, job *entity.Job) (*entity.Job, error) {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		r.logger.Error("failed to create job", "error", err)
		return nil, common.DatabaseError("create job", err)
	}
	return r.GetJob(ctx, job.ID)
}

func (r *jobRepository) SaveJob(ctx context.Context, job *entity.Job) (*entity.Job, error) {
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		r.logger.Error("failed to save job", "job_id", job.ID, "error", err)
		return nil, common.DatabaseError("save job", err)
	}
	return r.GetJob(ctx, job.ID)
}

func (r *jobRepository) DeleteJob(ctx context.Context, id int) error {
	// Line items belong to the job; remove them in the same transaction.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&entity.JobPart{}).Error; err != nil {
			return common.DatabaseError("delete job parts", err)
		}
		res := tx.Delete(&entity.Job{}, id)
		if res.Error != nil {
			return common.DatabaseError("delete job", res.Error)
		}
		if res.RowsAffected == 0 {
			return common.NotFoundError("job not found")
		}
		return nil
	})
}

// SearchJobs matches the keyword case-insensitively against title,
// description, customer name and customer phone. A keyword that parses as an
// integer additionally matches the job ID. Callers short-circuit blank
// keywords before reaching here.
func (r *jobRepository) SearchJobs(ctx context.Context, keyword string) ([]*entity.Job, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"

	cond := r.db.
		Where("LOWER(title) LIKE ?", pattern).
		Or("LOWER(job_description) LIKE ?", pattern).
		Or("LOWER(customer_name) LIKE ?", pattern).
		Or("LOWER(customer_phone) LIKE ?", pattern)
	if id, err := strconv.Atoi(strings.TrimSpace(keyword)); err == nil {
		cond = cond.Or("id = ?", id)
	}

	var jobs []*entity.Job
	err := r.db.WithContext(ctx).
		Preload("Status").
		Where(cond).
		Order("date ASC").
		Find(&jobs).Error
	if err != nil {
		r.logger.Error("job search failed", "keyword", keyword, "error", err)
		return nil, common.DatabaseError("search jobs", err)
	}
	return jobs, nil
}
