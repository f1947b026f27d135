package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jobsentry/jobsentry/internal/models"
)

// GormStore is the postgres-backed implementation of ScrapeStore. The scrape
// pipeline only ever talks to the interface; this is the one place it meets
// gorm.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) ListCompanies(ctx context.Context) ([]models.TrackedCompany, error) {
	var companies []models.TrackedCompany
	err := s.DB.WithContext(ctx).Order("created_at asc").Find(&companies).Error
	return companies, err
}

// ListKeywords returns the user's keywords oldest-first. The matcher honors
// caller order, so "first matching keyword" means the earliest-created one.
func (s *GormStore) ListKeywords(ctx context.Context, userID string) ([]models.Keyword, error) {
	var keywords []models.Keyword
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&keywords).Error
	return keywords, err
}

func (s *GormStore) JobExists(ctx context.Context, companyID uint, title, url string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Job{}).
		Where("company_id = ? AND title = ? AND url = ?", companyID, title, url).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) CreateJob(ctx context.Context, job *models.Job) error {
	return s.DB.WithContext(ctx).Create(job).Error
}

func (s *GormStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	return s.DB.WithContext(ctx).Create(n).Error
}

// ProfileEmail resolves the notification address for a user. A missing
// profile yields an empty address, not an error — the run records the
// notification with email_sent=false and moves on.
func (s *GormStore) ProfileEmail(ctx context.Context, userID string) (string, error) {
	var profile models.Profile
	err := s.DB.WithContext(ctx).First(&profile, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return profile.Email, nil
}
