package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile mirrors the authentication identity. One row per user, created
// automatically the first time a valid token is seen. Email is the address
// notifications are delivered to.
type Profile struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email string `gorm:"uniqueIndex;not null" json:"email"`
}

// TrackedCompany is a user-configured (name, careers URL) pair to scrape.
// Created and deleted by user actions, never mutated otherwise.
type TrackedCompany struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID     string `gorm:"type:uuid;index;not null" json:"user_id"`
	Name       string `gorm:"not null" json:"name"`
	CareersURL string `gorm:"not null" json:"careers_url"`

	// 'omitempty' prevents infinite loops when fetching a Job -> Company -> Jobs -> ...
	Jobs []Job `json:"jobs,omitempty"`
}

// Keyword is a user-configured substring used to flag job titles.
type Keyword struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID string `gorm:"type:uuid;index;not null" json:"user_id"`
	Text   string `gorm:"not null" json:"text"`
}

// Application status values for a Job. Empty string means "not applied yet";
// the scraper never sets a status, only the user does.
const (
	StatusApplied      = "APPLIED"
	StatusInterviewing = "INTERVIEWING"
	StatusOffered      = "OFFERED"
	StatusRejected     = "REJECTED"
)

// Job is a scraped posting linked to the company it was found on. The
// composite unique index on (company_id, title, url) is the dedup boundary:
// re-scraping an unchanged page must not re-insert a row.
type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID uint           `gorm:"uniqueIndex:idx_jobs_company_title_url;not null" json:"company_id"`
	Company   TrackedCompany `json:"company,omitempty"`

	Title       string    `gorm:"uniqueIndex:idx_jobs_company_title_url;not null" json:"title"`
	URL         string    `gorm:"uniqueIndex:idx_jobs_company_title_url" json:"url"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `json:"location"`
	PostedDate  string    `json:"posted_date"`
	ScrapedAt   time.Time `json:"scraped_at"`
	IsNew       bool      `gorm:"default:true" json:"is_new"`
	Status      string    `gorm:"default:''" json:"status"`
}

// Notification records one (job, matched keyword) event. EmailSent preserves
// the audit trail of failed deliveries; rows are never updated or deleted.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID    string    `gorm:"type:uuid;index;not null" json:"user_id"`
	JobID     uint      `gorm:"not null" json:"job_id"`
	Job       Job       `json:"job,omitempty"`
	Keyword   string    `gorm:"not null" json:"keyword"`
	EmailSent bool      `json:"email_sent"`
	SentAt    time.Time `json:"sent_at"`
}

// ValidStatus reports whether s is an allowed application status value.
func ValidStatus(s string) bool {
	switch s {
	case "", StatusApplied, StatusInterviewing, StatusOffered, StatusRejected:
		return true
	}
	return false
}
