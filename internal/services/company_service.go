package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/jobsentry/jobsentry/internal/models"
)

type CompanyService struct {
	DB *gorm.DB
}

func NewCompanyService(db *gorm.DB) *CompanyService {
	return &CompanyService{DB: db}
}

func (s *CompanyService) List(userID string) ([]models.TrackedCompany, error) {
	var companies []models.TrackedCompany
	err := s.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&companies).Error
	return companies, err
}

func (s *CompanyService) Create(userID, name, careersURL string) (*models.TrackedCompany, error) {
	company := &models.TrackedCompany{
		UserID:     userID,
		Name:       name,
		CareersURL: careersURL,
	}
	if err := s.DB.Create(company).Error; err != nil {
		return nil, err
	}
	return company, nil
}

// Delete removes a company owned by userID. Deleting someone else's company
// (or a missing one) is reported as not found rather than silently ignored.
func (s *CompanyService) Delete(userID string, id uint) error {
	res := s.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.TrackedCompany{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("company %d not found", id)
	}
	return nil
}
