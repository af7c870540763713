package repository

import (
	"context"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cbisgaard/repairdesk/internal/common"
	"github.com/cbisgaard/repairdesk/internal/entity"
)

type JobPartRepository interface {
	ListByJob(ctx context.Context, jobID int) ([]*entity.JobPart, error)
	ListAll(ctx context.Context) ([]*entity.JobPart, error)
	AddOrIncrement(ctx context.Context, jobID, productID, quantity int) (*entity.JobPart, error)
}

type jobPartRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewJobPartRepository(db *gorm.DB, logger *slog.Logger) JobPartRepository {
	return &jobPartRepository{
		db:     db,
		logger: logger,
	}
}

func (r *jobPartRepository) ListByJob(ctx context.Context, jobID int) ([]*entity.JobPart, error) {
	var parts []*entity.JobPart
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("job_id = ?", jobID).
		Order("id ASC").
		Find(&parts).Error
	if err != nil {
		r.logger.Error("failed to list job parts", "job_id", jobID, "error", err)
		return nil, common.DatabaseError("list job parts", err)
	}
	return parts, nil
}

func (r *jobPartRepository) ListAll(ctx context.Context) ([]*entity.JobPart, error) {
	var parts []*entity.JobPart
	err := r.db.WithContext(ctx).Preload("Product").Order("id ASC").Find(&parts).Error
	if err != nil {
		r.logger.Error("failed to list job parts", "error", err)
		return nil, common.DatabaseError("list job parts", err)
	}
	return parts, nil
}

// AddOrIncrement inserts a line item or, if one already exists for the
// (job, product) pair, adds the quantity to it. The merge rides on the
// unique index ux_job_parts_job_product as a single upsert statement, so
// concurrent attaches for the same pair cannot produce two rows.
func (r *jobPartRepository) AddOrIncrement(ctx context.Context, jobID, productID, quantity int) (*entity.JobPart, error) {
	part := entity.JobPart{JobID: jobID, ProductID: productID, Quantity: quantity}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "job_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("job_parts.quantity + ?", quantity),
			}),
		}).
		Create(&part).Error
	if err != nil {
		r.logger.Error("failed to upsert job part", "job_id", jobID, "product_id", productID, "error", err)
		return nil, common.DatabaseError("upsert job part", err)
	}

	// Reload: on the conflict path Create does not report the merged quantity.
	var merged entity.JobPart
	err = r.db.WithContext(ctx).
		Preload("Product").
		Where("job_id = ? AND product_id = ?", jobID, productID).
		Take(&merged).Error
	if err != nil {
		r.logger.Error("failed to reload job part", "job_id", jobID, "product_id", productID, "error", err)
		return nil, common.DatabaseError("reload job part", err)
	}

	r.logger.Info("job part attached", "job_id", jobID, "product_id", productID, "quantity", merged.Quantity)
	return &merged, nil
}
