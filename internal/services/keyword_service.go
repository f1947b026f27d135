package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jobsentry/jobsentry/internal/models"
)

type KeywordService struct {
	DB *gorm.DB
}

func NewKeywordService(db *gorm.DB) *KeywordService {
	return &KeywordService{DB: db}
}

func (s *KeywordService) List(userID string) ([]models.Keyword, error) {
	var keywords []models.Keyword
	err := s.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&keywords).Error
	return keywords, err
}

func (s *KeywordService) Create(userID, text string) (*models.Keyword, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("keyword text must not be empty")
	}
	keyword := &models.Keyword{UserID: userID, Text: text}
	if err := s.DB.Create(keyword).Error; err != nil {
		return nil, err
	}
	return keyword, nil
}

func (s *KeywordService) Delete(userID string, id uint) error {
	res := s.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Keyword{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("keyword %d not found", id)
	}
	return nil
}
