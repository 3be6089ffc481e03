package database

import (
	"fmt"

	"github.com/flowershop/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// cleanupSeededData removes all catalogue and content data in reverse dependency order.
// Individual orders are customer data and are left alone.
func cleanupSeededData(db *gorm.DB) error {
	logrus.Info("Cleaning up existing data...")

	return db.Transaction(func(tx *gorm.DB) error {
		tables := []interface{}{
			&models.ItemImage{},
			&models.Item{},
			&models.Subcategory{},
			&models.Category{},
			&models.ContentPage{},
			&models.MainPageSliderImage{},
			&models.MainPageSeoBlock{},
			&models.MainPage{},
		}

		for _, table := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", table, err)
			}
		}

		logrus.Info("  ✓ Cleaned up existing data")
		return nil
	})
}

// SeedData seeds demo data into empty tables. With force, existing catalogue
// and page data is removed first.
func SeedData(db *gorm.DB, force bool) error {
	logrus.Info("Checking if database needs seeding...")

	var itemCount, categoryCount, pageCount int64
	db.Model(&models.Item{}).Count(&itemCount)
	db.Model(&models.Category{}).Count(&categoryCount)
	db.Model(&models.ContentPage{}).Count(&pageCount)

	complete := itemCount > 0 && categoryCount > 0 && pageCount > 0
	partial := itemCount > 0 || categoryCount > 0 || pageCount > 0

	switch {
	case complete && !force:
		logrus.Info("Database already has complete data. Skipping seed.")
		return nil
	case partial:
		logrus.Info("Database has data - cleaning up for consistent seeding...")
		if err := cleanupSeededData(db); err != nil {
			return fmt.Errorf("failed to cleanup data: %w", err)
		}
	}

	logrus.Info("Starting seed process...")

	return db.Transaction(func(tx *gorm.DB) error {
		// 1. Categories and subcategories for both kinds
		subcategoryMap, err := seedCategories(tx)
		if err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}

		// 2. Products and bouquets with images
		if err := seedItems(tx, subcategoryMap); err != nil {
			return fmt.Errorf("failed to seed items: %w", err)
		}

		// 3. Main page singletons and slider
		if err := seedMainPage(tx); err != nil {
			return fmt.Errorf("failed to seed main page: %w", err)
		}

		// 4. Static and legal pages
		if err := seedContentPages(tx); err != nil {
			return fmt.Errorf("failed to seed content pages: %w", err)
		}

		logrus.Info("✅ Database seeded successfully!")
		return nil
	})
}
