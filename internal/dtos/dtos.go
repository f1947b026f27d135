package dtos

import "github.com/jobsentry/jobsentry/internal/services"

type CompanyCreateRequest struct {
	Name       string `json:"name" binding:"required"`
	CareersURL string `json:"careers_url" binding:"required,url"`
}

type KeywordCreateRequest struct {
	Text string `json:"text" binding:"required"`
}

type JobStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ScrapeRequest is the optional trigger body. Absent body means a scheduled
// invocation; the dashboard button sends {"manual": true}.
type ScrapeRequest struct {
	Manual bool `json:"manual"`
}

type ScrapeStats struct {
	CompaniesProcessed int `json:"companies_processed"`
	NewJobsFound       int `json:"new_jobs_found"`
	NotificationsSent  int `json:"notifications_sent"`
}

// ScrapeResponse is always returned with HTTP 200 when orchestration itself
// succeeded, even if every individual company failed; per-company outcomes
// live in Details.
type ScrapeResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Stats   ScrapeStats              `json:"stats"`
	Details []services.CompanyDetail `json:"details,omitempty"`
}
