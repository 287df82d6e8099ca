package database

import (
	"fmt"

	"github.com/peg96/FinanceBinder/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword seeds the single credential row on first startup. It is a
// bootstrap value only; deployments must change it immediately.
const DefaultPassword = "1234"

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Binder{},
		&models.Category{},
		&models.Transaction{},
		&models.Session{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedDefaultUser creates the single user row with the default password if
// the users table is empty. Exactly one row exists from then on.
func SeedDefaultUser(db *gorm.DB, bcryptCost int) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}
	if err := db.Create(&models.User{PasswordHash: string(hash)}).Error; err != nil {
		return fmt.Errorf("seed default user: %w", err)
	}
	return nil
}
