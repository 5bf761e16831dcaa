package database

import (
	"fmt"

	"github.com/bacolgede83-big/Gede23/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.GeneralEntry{},
		&models.DetailEntry{},
		&models.Loan{},
		&models.Deposit{},
		&models.ManualPayment{},
		&models.ReconciliationRecord{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
