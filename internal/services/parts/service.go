// Package parts consolidates product attachments into per-job line items.
package parts

import (
	"context"
	"log/slog"

	"github.com/cbisgaard/repairdesk/internal/common"
	"github.com/cbisgaard/repairdesk/internal/entity"
	"github.com/cbisgaard/repairdesk/internal/repository"
)

// Service handles job part business logic.
type Service struct {
	jobRepo     repository.JobRepository
	productRepo repository.ProductRepository
	partRepo    repository.JobPartRepository
	logger      *slog.Logger
}

// NewService creates a new parts service.
func NewService(jobRepo repository.JobRepository, productRepo repository.ProductRepository, partRepo repository.JobPartRepository, logger *slog.Logger) *Service {
	return &Service{
		jobRepo:     jobRepo,
		productRepo: productRepo,
		partRepo:    partRepo,
		logger:      logger,
	}
}

// AttachRequest represents one product attachment.
type AttachRequest struct {
	JobID     int `json:"repairId"`
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// AttachResult is the per-item outcome of a batch attach.
type AttachResult struct {
	JobID     int    `json:"repairId"`
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity,omitempty"`
	Error     string `json:"error,omitempty"`
}

// AttachProduct attaches a product to a job, merging into the existing line
// item if one exists. A quantity of zero means "unspecified" and defaults
// to 1; negative quantities are rejected before any store call.
func (s *Service) AttachProduct(ctx context.Context, jobID, productID, quantity int) (*entity.JobPart, error) {
	validator := common.NewValidator()
	validator.Field("quantity", quantity, common.PositiveQuantity)
	if err := common.ValidateAndReturnError(validator); err != nil {
		return nil, err
	}
	if quantity == 0 {
		quantity = 1
	}

	// Both ends of the association must exist before any write.
	if _, err := s.jobRepo.GetJob(ctx, jobID); err != nil {
		return nil, err
	}
	if _, err := s.productRepo.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	part, err := s.partRepo.AddOrIncrement(ctx, jobID, productID, quantity)
	if err != nil {
		return nil, common.InternalErrorf("attach product: %v", err)
	}

	s.logger.Info("product attached to job",
		"job_id", jobID, "product_id", productID, "quantity", part.Quantity)
	return part, nil
}

// AttachProducts processes a batch of attach requests. Items are independent:
// a failing item is reported in its result and never blocks the rest.
func (s *Service) AttachProducts(ctx context.Context, reqs []AttachRequest) []AttachResult {
	results := make([]AttachResult, 0, len(reqs))
	for _, req := range reqs {
		result := AttachResult{JobID: req.JobID, ProductID: req.ProductID}
		part, err := s.AttachProduct(ctx, req.JobID, req.ProductID, req.Quantity)
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Quantity = part.Quantity
		}
		results = append(results, result)
	}
	return results
}

// PartsForJob returns the line items consumed by one job.
func (s *Service) PartsForJob(ctx context.Context, jobID int) ([]*entity.JobPart, error) {
	if _, err := s.jobRepo.GetJob(ctx, jobID); err != nil {
		return nil, err
	}
	return s.partRepo.ListByJob(ctx, jobID)
}
