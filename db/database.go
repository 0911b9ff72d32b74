// Package db holds the two persistence layers: the sqlite operational store
// opened here, and the case-file JSON document (see casefile.go). The sqlite
// side carries only operational entities (users, sessions, notice templates,
// org settings, the audit trail). Enforcement cases and properties never
// touch it; they live in the case-file document.
package db

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the shared handle to the operational store.
var DB *gorm.DB

// Initialize opens the operational store. WAL mode keeps reads from blocking
// while the audit writer commits in the background.
func Initialize(dbPath string, environment string) error {
	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Warn
	}

	dsn := dbPath + "?_journal_mode=WAL"

	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to open operational store: %w", err)
	}

	log.Println("Operational store opened (WAL mode enabled)")
	return nil
}

// AutoMigrate migrates the operational entities' schemas.
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("operational store not initialized")
	}

	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Operational store migrations completed")
	return nil
}

// Close closes the operational store connection.
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
