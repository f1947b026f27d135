package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jobsentry/jobsentry/internal/models"
)

// Connect opens the postgres connection and runs migrations. The returned
// handle is passed to services explicitly; nothing holds it at package level.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.TrackedCompany{},
		&models.Keyword{},
		&models.Job{},
		&models.Notification{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return db, nil
}
