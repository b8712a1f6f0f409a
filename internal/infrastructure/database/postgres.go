package database

import (
	"fmt"
	"log"

	"github.com/hardwarepos/pos-api/internal/config"
	"github.com/hardwarepos/pos-api/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Catalog entities
		&entity.Unit{},
		&entity.Product{},

		// Inventory entities
		&entity.StockBatch{},
		&entity.StockMovement{},

		// Party entities
		&entity.Customer{},
		&entity.Supplier{},
		&entity.User{},

		// Transaction entities
		&entity.Transaction{},
		&entity.TransactionLine{},
		&entity.PaymentRecord{},
		&entity.Cheque{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with the default operator and the
// walk-in customer used when a sale names no account.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	var operator entity.User
	if err := db.Where("username = ?", "cashier").First(&operator).Error; err != nil {
		operator = entity.User{Name: "Cashier", Username: "cashier"}
		if err := db.Create(&operator).Error; err != nil {
			log.Printf("Warning: failed to create default operator: %v", err)
		}
	}

	var walkIn entity.Customer
	if err := db.Where("name = ?", "Walk-in Customer").First(&walkIn).Error; err != nil {
		walkIn = entity.Customer{Name: "Walk-in Customer"}
		if err := db.Create(&walkIn).Error; err != nil {
			log.Printf("Warning: failed to create walk-in customer: %v", err)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
