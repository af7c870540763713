package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cbisgaard/repairdesk/internal/common"
	"github.com/cbisgaard/repairdesk/internal/entity"
	"github.com/cbisgaard/repairdesk/internal/export"
	"github.com/cbisgaard/repairdesk/internal/repository"
	"github.com/cbisgaard/repairdesk/internal/services/parts"
	"github.com/cbisgaard/repairdesk/internal/services/search"
)

func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.Default()

	cfg := common.DatabaseConfig{
		Driver:          "sqlite",
		DSN:             filepath.Join(t.TempDir(), "repairdesk.db"),
		MaxConns:        1,
		MaxConnLifetime: time.Minute,
		MaxConnIdleTime: time.Minute,
		DialTimeout:     time.Second,
	}
	db, err := repository.Open(context.Background(), cfg, logger)
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db, logger))
	t.Cleanup(func() { repository.Close(db, logger) })

	jobRepo := repository.NewJobRepository(db, logger)
	productRepo := repository.NewProductRepository(db, logger)
	statusRepo := repository.NewJobStatusRepository(db, logger)
	partRepo := repository.NewJobPartRepository(db, logger)
	require.NoError(t, statusRepo.Reconcile(context.Background()))

	srv := New(
		jobRepo, productRepo, statusRepo,
		parts.NewService(jobRepo, productRepo, partRepo, logger),
		search.NewService(jobRepo, productRepo, logger),
		export.NewService(jobRepo, partRepo, logger),
		func(ctx context.Context) error { return repository.HealthCheck(ctx, db, logger) },
		logger,
	)
	return srv, db
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func createJob(t *testing.T, srv *Server, title string) entity.Job {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, "/api/jobs", map[string]any{
		"title":     title,
		"date":      time.Now().UTC().Format(time.RFC3339),
		"status_id": 1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var job entity.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	return job
}

func createProduct(t *testing.T, srv *Server, name string) entity.Product {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, "/api/products", map[string]any{
		"name":  name,
		"price": 10.0,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var product entity.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	return product
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCreateJob_RejectsUnknownStatus(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doJSON(t, srv, http.MethodPost, "/api/jobs", map[string]any{
		"title":     "Repair",
		"date":      time.Now().UTC().Format(time.RFC3339),
		"status_id": 42,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateJob_RequiresTitleAndDate(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doJSON(t, srv, http.MethodPost, "/api/jobs", map[string]any{"status_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateJobDescription(t *testing.T) {
	srv, _ := newTestServer(t)
	job := createJob(t, srv, "Screen repair")

	w := doJSON(t, srv, http.MethodPut, fmt.Sprintf("/api/jobs/%d/description", job.ID), map[string]any{
		"job_description": "cracked glass, replace digitizer",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated entity.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "cracked glass, replace digitizer", updated.Description)
	assert.Equal(t, job.Title, updated.Title)
}

func TestAttachProducts_BatchWithPartialFailure(t *testing.T) {
	srv, _ := newTestServer(t)
	job := createJob(t, srv, "Screen repair")
	product := createProduct(t, srv, "Screen")

	w := doJSON(t, srv, http.MethodPost, "/api/repairs/addProduct", []map[string]any{
		{"repairId": job.ID, "productId": product.ID, "quantity": 2},
		{"repairId": 9999, "productId": product.ID, "quantity": 1},
		{"repairId": job.ID, "productId": product.ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Failed  int                  `json:"failed"`
		Results []parts.AttachResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, 2, resp.Results[0].Quantity)
	assert.Contains(t, resp.Results[1].Error, "job not found")
	assert.Equal(t, 3, resp.Results[2].Quantity) // merged, default quantity 1

	// Still exactly one line item for the pair.
	pw := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/jobs/%d/parts", job.ID), nil)
	require.Equal(t, http.StatusOK, pw.Code)
	var items []entity.JobPart
	require.NoError(t, json.Unmarshal(pw.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAttachProducts_MalformedPayloadRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/repairs/addProduct", []map[string]any{
		{"repairId": "seven", "productId": 3},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/repairs/addProduct", map[string]any{
		"repairId": 1, "productId": 3,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "object instead of array must be rejected")
}

func TestSearchJob_NumericFallbackOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)
	job := createJob(t, srv, "No digits in any field")

	w := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/search/job?q=%d", job.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var hits []entity.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hits))
	require.Len(t, hits, 1)
	assert.Equal(t, job.ID, hits[0].ID)
}

func TestSearchJob_BlankKeywordReturnsEmptyList(t *testing.T) {
	srv, _ := newTestServer(t)
	createJob(t, srv, "Screen repair")

	w := doJSON(t, srv, http.MethodGet, "/api/search/job?q=", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestProductUpdate_PartialFields(t *testing.T) {
	srv, _ := newTestServer(t)
	product := createProduct(t, srv, "Screen")

	w := doJSON(t, srv, http.MethodPut, fmt.Sprintf("/api/products/%d", product.ID), map[string]any{
		"price": "19.95",
		"type":  "spare",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated entity.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 19.95, updated.Price)
	assert.Equal(t, "spare", updated.Type)
	assert.Equal(t, "Screen", updated.Name)
}

func TestDeleteProduct_UnknownIsNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doJSON(t, srv, http.MethodDelete, "/api/products/12345", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListStatuses_ReturnsClosedSet(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doJSON(t, srv, http.MethodGet, "/api/statuses", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var statuses []entity.JobStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &statuses))
	assert.Len(t, statuses, 6)
}

func TestExportJobs_ReturnsWorkbook(t *testing.T) {
	srv, _ := newTestServer(t)
	createJob(t, srv, "Screen repair")

	w := doJSON(t, srv, http.MethodGet, "/api/export/jobs.xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}
