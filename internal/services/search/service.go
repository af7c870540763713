// Package search resolves free-text keywords against jobs and products.
package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cbisgaard/repairdesk/internal/entity"
	"github.com/cbisgaard/repairdesk/internal/repository"
)

// Service handles keyword search over jobs and products.
type Service struct {
	jobRepo     repository.JobRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// NewService creates a new search service.
func NewService(jobRepo repository.JobRepository, productRepo repository.ProductRepository, logger *slog.Logger) *Service {
	return &Service{
		jobRepo:     jobRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// SearchJobs matches the keyword against job title, description, customer
// name and customer phone, plus the job ID when the keyword is an integer.
// Blank keywords return an empty result without touching the store.
func (s *Service) SearchJobs(ctx context.Context, keyword string) ([]*entity.Job, error) {
	if strings.TrimSpace(keyword) == "" {
		return []*entity.Job{}, nil
	}

	jobs, err := s.jobRepo.SearchJobs(ctx, keyword)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("job search", "keyword", keyword, "hits", len(jobs))
	return jobs, nil
}

// SearchProducts matches the keyword against product number, name, EAN and
// type. Products have no numeric-id match, unlike jobs; the asymmetry is
// deliberate. Blank keywords return an empty result without touching the
// store.
func (s *Service) SearchProducts(ctx context.Context, keyword string) ([]*entity.Product, error) {
	if strings.TrimSpace(keyword) == "" {
		return []*entity.Product{}, nil
	}

	products, err := s.productRepo.SearchProducts(ctx, keyword)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("product search", "keyword", keyword, "hits", len(products))
	return products, nil
}
