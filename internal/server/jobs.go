package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cbisgaard/repairdesk/internal/entity"
)

type jobRequest struct {
	Title           string    `json:"title"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	Description     string    `json:"job_description"`
	WorkTimeMinutes int       `json:"work_time_minutes"`
	PricePerMinute  float64   `json:"price_per_minute"`
	Date            time.Time `json:"date"`
	StatusID        int16     `json:"status_id"`
}

func (s *Server) listJobs(c *gin.Context) {
	newestFirst := c.Query("order") == "desc"
	jobs, err := s.jobRepo.ListJobs(c.Request.Context(), newestFirst)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (s *Server) createJob(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" || req.Date.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and date are required"})
		return
	}

	// A job is never without a status.
	status, err := s.statusRepo.GetStatus(c.Request.Context(), req.StatusID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status_id"})
		return
	}

	job := &entity.Job{
		Title:           req.Title,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		Description:     req.Description,
		WorkTimeMinutes: req.WorkTimeMinutes,
		PricePerMinute:  req.PricePerMinute,
		Date:            req.Date,
		StatusID:        status.ID,
	}
	saved, err := s.jobRepo.CreateJob(c.Request.Context(), job)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) updateJob(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := s.jobRepo.GetJob(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	existing.Title = req.Title
	existing.CustomerName = req.CustomerName
	existing.CustomerPhone = req.CustomerPhone
	existing.Description = req.Description
	existing.WorkTimeMinutes = req.WorkTimeMinutes
	existing.PricePerMinute = req.PricePerMinute
	existing.Date = req.Date

	if req.StatusID != 0 {
		status, err := s.statusRepo.GetStatus(c.Request.Context(), req.StatusID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status_id"})
			return
		}
		existing.StatusID = status.ID
		existing.Status = nil
	}

	saved, err := s.jobRepo.SaveJob(c.Request.Context(), existing)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) updateJobDescription(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Description string `json:"job_description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := s.jobRepo.GetJob(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	existing.Description = req.Description

	saved, err := s.jobRepo.SaveJob(c.Request.Context(), existing)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) deleteJob(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := s.jobRepo.DeleteJob(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listJobParts(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	items, err := s.parts.PartsForJob(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) listStatuses(c *gin.Context) {
	statuses, err := s.statusRepo.ListStatuses(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}
