package db

import (
	"time"

	"github.com/diewo77/ledgerpro/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed creates a demo account with a few records for local development.
// It is a no-op when any user already exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := models.User{
		Name:     "Demo User",
		Email:    "demo@ledgerpro.local",
		Password: string(hash),
		Role:     models.UserRoleUser,
		Company:  "Demo & Co",
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	customer := models.Customer{
		UserID: user.ID,
		Name:   "Acme Ltd",
		Email:  "billing@acme.test",
	}
	if err := db.Create(&customer).Error; err != nil {
		return err
	}

	entry := models.CashbookEntry{
		UserID:      user.ID,
		Date:        time.Now(),
		Description: "Opening float",
		Type:        models.EntryTypeIncome,
		Amount:      500,
		Category:    "capital",
	}
	return db.Create(&entry).Error
}
