package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/jobsentry/jobsentry/internal/models"
)

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{DB: db}
}

// List returns the user's scraped jobs, newest first, company preloaded for
// the dashboard. onlyNew narrows to postings the user hasn't reviewed yet.
func (s *JobService) List(userID string, onlyNew bool) ([]models.Job, error) {
	q := s.DB.Preload("Company").
		Joins("JOIN tracked_companies ON tracked_companies.id = jobs.company_id").
		Where("tracked_companies.user_id = ?", userID).
		Order("jobs.scraped_at desc")
	if onlyNew {
		q = q.Where("jobs.is_new = ?", true)
	}
	var jobs []models.Job
	err := q.Find(&jobs).Error
	return jobs, err
}

// UpdateStatus sets the application status on one of the user's jobs.
func (s *JobService) UpdateStatus(userID string, jobID uint, status string) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}
	return s.ownedJobUpdate(userID, jobID, map[string]interface{}{"status": status})
}

// MarkSeen clears the is_new flag once the user has reviewed a posting.
func (s *JobService) MarkSeen(userID string, jobID uint) error {
	return s.ownedJobUpdate(userID, jobID, map[string]interface{}{"is_new": false})
}

func (s *JobService) ownedJobUpdate(userID string, jobID uint, updates map[string]interface{}) error {
	res := s.DB.Model(&models.Job{}).
		Where("id = ? AND company_id IN (?)",
			jobID,
			s.DB.Model(&models.TrackedCompany{}).Select("id").Where("user_id = ?", userID),
		).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("job %d not found", jobID)
	}
	return nil
}
