// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"

	gormModels "github.com/cocinero/v1/internal/infrastructure/persistence/gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&gormModels.IngredientModel{},
		&gormModels.ApplianceModel{},
		&gormModels.SubstitutionEdgeModel{},
		&gormModels.AdaptationEdgeModel{},
		&gormModels.PreferenceModel{},
		&gormModels.RecipeModel{},
		&gormModels.VariantModel{},
		&gormModels.HistoryEntryModel{},
		&gormModels.KnowledgeEntryModel{},
		&gormModels.MealPlanModel{},
		&gormModels.InventoryItemModel{},
		&gormModels.ProfileModel{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
