package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jobsentry/jobsentry/internal/auth"
	"github.com/jobsentry/jobsentry/internal/dtos"
	"github.com/jobsentry/jobsentry/internal/services"
)

type JobHandler struct {
	Jobs *services.JobService
}

func NewJobHandler(jobs *services.JobService) *JobHandler {
	return &JobHandler{Jobs: jobs}
}

// List is GET /api/v1/jobs; ?new=true narrows to unreviewed postings.
func (h *JobHandler) List(c *gin.Context) {
	onlyNew := c.Query("new") == "true"
	jobs, err := h.Jobs.List(auth.UserID(c), onlyNew)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// UpdateStatus is PATCH /api/v1/jobs/:id/status.
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	var req dtos.JobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if err := h.Jobs.UpdateStatus(auth.UserID(c), uint(id), req.Status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkSeen is POST /api/v1/jobs/:id/seen.
func (h *JobHandler) MarkSeen(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	if err := h.Jobs.MarkSeen(auth.UserID(c), uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
