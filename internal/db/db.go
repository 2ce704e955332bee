package db

import (
	"fmt"
	"time"

	"github.com/diewo77/ledgerpro/internal/config"
	"github.com/diewo77/ledgerpro/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the configured database. TranslateError is enabled so
// unique violations surface as gorm.ErrDuplicatedKey on both drivers,
// which the invoice numbering retry depends on.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}

	if cfg.Driver == "sqlite" {
		return gorm.Open(sqlite.Open(cfg.Path), gormCfg)
	}

	// Retry to give Postgres time to come up.
	var db *gorm.DB
	var err error
	for i := 0; i < 5; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
		if err == nil {
			return db, nil
		}
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("database connection failed: %w", err)
}

// Migrate applies GORM auto-migrations for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Supplier{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.CashbookEntry{},
		&models.Payment{},
	)
}

// ConnectAndMigrate opens the database and applies migrations.
func ConnectAndMigrate(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrations failed: %w", err)
	}
	return db, nil
}
