package database

import (
	"fmt"

	"gigledger/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Entry{},
		&models.Goal{},
		&models.Settings{},
		&models.DriverProfile{},
		&models.DailyCheckIn{},
		&models.Friend{},
		&models.PlatformCredential{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
