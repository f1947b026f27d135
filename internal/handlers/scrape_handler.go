package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobsentry/jobsentry/internal/dtos"
	"github.com/jobsentry/jobsentry/internal/services"
)

type ScrapeHandler struct {
	Scrape *services.ScrapeService
}

func NewScrapeHandler(scrape *services.ScrapeService) *ScrapeHandler {
	return &ScrapeHandler{Scrape: scrape}
}

// Trigger is POST /api/v1/scrape. Body is optional; the dashboard button
// sends {"manual": true}. Partial per-company failures still come back 200 —
// only a failure to enumerate companies at all is a 500.
func (h *ScrapeHandler) Trigger(c *gin.Context) {
	var req dtos.ScrapeRequest
	_ = c.ShouldBindJSON(&req) // empty body is a scheduled-style invocation

	summary, err := h.Scrape.Run(c.Request.Context(), req.Manual)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dtos.ScrapeResponse{
		Success: true,
		Message: "scrape run complete",
		Stats: dtos.ScrapeStats{
			CompaniesProcessed: summary.CompaniesProcessed,
			NewJobsFound:       summary.NewJobsFound,
			NotificationsSent:  summary.NotificationsSent,
		},
		Details: summary.Details,
	})
}
