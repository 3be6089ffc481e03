package database

import (
	"fmt"

	"github.com/flowershop/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	logrus.Info("Starting GORM AutoMigrate...")

	// Parents first: AllModels is ordered by dependency
	for _, model := range models.AllModels() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	logrus.Info("Creating indexes...")
	if err := CreateIndexes(db); err != nil {
		logrus.WithError(err).Warn("Some indexes could not be created")
	}

	logrus.Info("GORM AutoMigrate completed successfully")
	return nil
}

// DropAll drops every table in reverse dependency order
func DropAll(db *gorm.DB) error {
	all := models.AllModels()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("failed to drop %T: %w", all[i], err)
		}
	}
	return nil
}

// CheckConnection verifies the database connection
func CheckConnection(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// CreateIndexes creates the indexes GORM tags cannot express
func CreateIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		// Recommendation and "popular" listing order
		{"idx_items_kind_popularity", "CREATE INDEX IF NOT EXISTS idx_items_kind_popularity ON items(kind, is_active, amount_of_orders DESC, amount_of_savings DESC)"},
		{"idx_item_images_position", "CREATE INDEX IF NOT EXISTS idx_item_images_position ON item_images(item_id, position)"},
		{"idx_subcategories_position", "CREATE INDEX IF NOT EXISTS idx_subcategories_position ON subcategories(category_id, position)"},
	}

	var failed int
	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			logrus.WithError(err).Warnf("  ⚠ Failed to create index %s", idx.name)
			failed++
			continue
		}
		logrus.Debugf("  ✓ Created index: %s", idx.name)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d indexes failed", failed, len(indexes))
	}
	return nil
}
