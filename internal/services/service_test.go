package services

import (
	"testing"

	"github.com/trimeca/inventory/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A fresh connection would see an empty in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedLocation(t *testing.T, db *gorm.DB, name string, country models.Country) {
	t.Helper()
	if err := db.Create(&models.Location{Name: name, Country: country}).Error; err != nil {
		t.Fatalf("failed to seed location %s/%s: %v", name, country, err)
	}
}

func validInput(country models.Country, location string) AssetInput {
	return AssetInput{
		Brand:    "CATERPILLAR",
		Model:    "D6",
		Category: models.CategoryHeavyMachinery,
		Country:  country,
		Location: location,
		Status:   models.AssetStatusOperational,
	}
}
