package repository

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbisgaard/repairdesk/internal/entity"
)

func TestAddOrIncrement_MergesIntoSingleRow(t *testing.T) {
	db := newTestDB(t)
	seedStatuses(t, db)
	logger := slog.Default()
	ctx := context.Background()

	job := seedJob(t, db, &entity.Job{Title: "Screen repair", Date: time.Now()})
	product := seedProduct(t, db, &entity.Product{Name: "Screen", Price: 49.5})

	repo := NewJobPartRepository(db, logger)

	first, err := repo.AddOrIncrement(ctx, job.ID, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	second, err := repo.AddOrIncrement(ctx, job.ID, product.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, second.Quantity)
	assert.Equal(t, first.ID, second.ID)

	parts, err := repo.ListByJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, 3, parts[0].Quantity)
}

func TestAddOrIncrement_DistinctProductsGetDistinctRows(t *testing.T) {
	db := newTestDB(t)
	seedStatuses(t, db)
	logger := slog.Default()
	ctx := context.Background()

	job := seedJob(t, db, &entity.Job{Title: "Battery swap", Date: time.Now()})
	battery := seedProduct(t, db, &entity.Product{Name: "Battery"})
	glue := seedProduct(t, db, &entity.Product{Name: "Adhesive"})

	repo := NewJobPartRepository(db, logger)

	_, err := repo.AddOrIncrement(ctx, job.ID, battery.ID, 1)
	require.NoError(t, err)
	_, err = repo.AddOrIncrement(ctx, job.ID, glue.ID, 4)
	require.NoError(t, err)

	parts, err := repo.ListByJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, parts, 2)
}

func TestAddOrIncrement_ConcurrentAttachesKeepSingleRow(t *testing.T) {
	db := newTestDB(t)
	seedStatuses(t, db)
	ctx := context.Background()

	job := seedJob(t, db, &entity.Job{Title: "Repair", Date: time.Now()})
	product := seedProduct(t, db, &entity.Product{Name: "Screen"})

	repo := NewJobPartRepository(db, slog.Default())

	const attachers = 8
	errs := make(chan error, attachers)
	var wg sync.WaitGroup
	for i := 0; i < attachers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AddOrIncrement(ctx, job.ID, product.ID, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	parts, err := repo.ListByJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, attachers, parts[0].Quantity)
}

func TestAddOrIncrement_PreloadsProduct(t *testing.T) {
	db := newTestDB(t)
	seedStatuses(t, db)
	ctx := context.Background()

	job := seedJob(t, db, &entity.Job{Title: "Repair", Date: time.Now()})
	product := seedProduct(t, db, &entity.Product{Name: "Back cover"})

	repo := NewJobPartRepository(db, slog.Default())
	part, err := repo.AddOrIncrement(ctx, job.ID, product.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, part.Product)
	assert.Equal(t, "Back cover", part.Product.Name)
}

func TestDeleteJob_RemovesItsParts(t *testing.T) {
	db := newTestDB(t)
	seedStatuses(t, db)
	logger := slog.Default()
	ctx := context.Background()

	job := seedJob(t, db, &entity.Job{Title: "Repair", Date: time.Now()})
	product := seedProduct(t, db, &entity.Product{Name: "Screen"})

	partRepo := NewJobPartRepository(db, logger)
	_, err := partRepo.AddOrIncrement(ctx, job.ID, product.ID, 2)
	require.NoError(t, err)

	jobRepo := NewJobRepository(db, logger)
	require.NoError(t, jobRepo.DeleteJob(ctx, job.ID))

	parts, err := partRepo.ListByJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Empty(t, parts)
}
