// Package server exposes the repair tracker over HTTP/JSON.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cbisgaard/repairdesk/internal/common"
	"github.com/cbisgaard/repairdesk/internal/export"
	"github.com/cbisgaard/repairdesk/internal/repository"
	"github.com/cbisgaard/repairdesk/internal/services/parts"
	"github.com/cbisgaard/repairdesk/internal/services/search"
)

// HealthFunc reports whether the backing store is reachable.
type HealthFunc func(ctx context.Context) error

// Server holds the handler dependencies and the gin engine.
type Server struct {
	router *gin.Engine

	jobRepo     repository.JobRepository
	productRepo repository.ProductRepository
	statusRepo  repository.JobStatusRepository

	parts  *parts.Service
	search *search.Service
	export *export.Service

	health HealthFunc
	logger *slog.Logger
}

// New builds the gin engine with middleware and all routes registered.
func New(
	jobRepo repository.JobRepository,
	productRepo repository.ProductRepository,
	statusRepo repository.JobStatusRepository,
	partsSvc *parts.Service,
	searchSvc *search.Service,
	exportSvc *export.Service,
	health HealthFunc,
	logger *slog.Logger,
) *Server {
	s := &Server{
		jobRepo:     jobRepo,
		productRepo: productRepo,
		statusRepo:  statusRepo,
		parts:       partsSvc,
		search:      searchSvc,
		export:      exportSvc,
		health:      health,
		logger:      logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestID())
	router.Use(s.requestLogger())

	router.GET("/healthz", s.healthz)

	api := router.Group("/api")
	{
		api.GET("/jobs", s.listJobs)
		api.POST("/jobs", s.createJob)
		api.PUT("/jobs/:id", s.updateJob)
		api.PUT("/jobs/:id/description", s.updateJobDescription)
		api.DELETE("/jobs/:id", s.deleteJob)
		api.GET("/jobs/:id/parts", s.listJobParts)

		api.GET("/products", s.listProducts)
		api.POST("/products", s.createProduct)
		api.PUT("/products/:id", s.updateProduct)
		api.DELETE("/products/:id", s.deleteProduct)

		api.POST("/repairs/addProduct", s.attachProducts)

		api.GET("/search/job", s.searchJobs)
		api.GET("/search/product", s.searchProducts)

		api.GET("/statuses", s.listStatuses)
		api.GET("/export/jobs.xlsx", s.exportJobs)
	}

	s.router = router
	return s
}

// Router returns the underlying gin engine, ready to be served.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
			"request_id", common.RequestIDFromContext(c.Request.Context()),
		)
	}
}

func (s *Server) healthz(c *gin.Context) {
	if err := s.health(c.Request.Context()); err != nil {
		c.JSON(503, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"status": "ok"})
}
