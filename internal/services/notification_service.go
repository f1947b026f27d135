package services

import (
	"gorm.io/gorm"

	"github.com/jobsentry/jobsentry/internal/models"
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// List returns the user's notification history, newest first. Rows are an
// append-only audit trail — there is no update or delete path.
func (s *NotificationService) List(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.DB.Preload("Job").Preload("Job.Company").
		Where("user_id = ?", userID).
		Order("sent_at desc").
		Find(&notifications).Error
	return notifications, err
}
