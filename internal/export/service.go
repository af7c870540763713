package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cbisgaard/repairdesk/internal/repository"
)

// Service is a tiny façade over repositories that produces XLSX bytes for exports.
type Service struct {
	jobRepo  repository.JobRepository
	partRepo repository.JobPartRepository
	logger   *slog.Logger
}

func NewService(jobRepo repository.JobRepository, partRepo repository.JobPartRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{jobRepo: jobRepo, partRepo: partRepo, logger: logger}
}

// ExportJobsXLSX returns an XLSX workbook (as bytes) listing every job with
// its status, labor cost and consumed parts, ordered by scheduled date.
func (s *Service) ExportJobsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	jobs, err := s.jobRepo.ListJobs(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Jobs"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"ID",
		"Date",
		"Title",
		"Customer",
		"Phone",
		"Status",
		"Work Minutes",
		"Price/Minute",
		"Labor Total",
		"Parts",
		"Parts Total",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, j := range jobs {
		parts, err := s.partRepo.ListByJob(ctx, j.ID)
		if err != nil {
			return nil, fmt.Errorf("query parts for job %d: %w", j.ID, err)
		}

		var partNames []string
		var partsTotal float64
		for _, p := range parts {
			name := fmt.Sprintf("product %d", p.ProductID)
			if p.Product != nil {
				name = p.Product.Name
				partsTotal += float64(p.Quantity) * p.Product.Price
			}
			partNames = append(partNames, fmt.Sprintf("%dx %s", p.Quantity, name))
		}

		statusName := ""
		if j.Status != nil {
			statusName = j.Status.Name
		}

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, j.ID)
		if !j.Date.IsZero() {
			write(2, j.Date.Format("2006-01-02 15:04"))
		} else {
			write(2, "")
		}
		write(3, j.Title)
		write(4, j.CustomerName)
		write(5, j.CustomerPhone)
		write(6, statusName)
		write(7, j.WorkTimeMinutes)
		write(8, j.PricePerMinute)
		write(9, j.TotalPrice())
		write(10, strings.Join(partNames, ", "))
		write(11, partsTotal)

		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("exported jobs workbook", "jobs", len(jobs), "elapsed", time.Since(start))
	return buf.Bytes(), nil
}
