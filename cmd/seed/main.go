package main

import (
	"flag"
	"fmt"

	"github.com/flowershop/config"
	"github.com/flowershop/database"
	"github.com/flowershop/models"
	"github.com/sirupsen/logrus"
)

func main() {
	// Define flags
	force := flag.Bool("force", false, "Force re-seed even if data exists")
	help := flag.Bool("help", false, "Show help message")
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	fmt.Println("🌱 Starting Database Seeding Tool")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	// Initialize database connection
	if err := database.InitializeWithOptions(&cfg.Database, true); err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}
	defer database.Close()

	if err := database.CheckConnection(database.DB); err != nil {
		logrus.Fatal("Database connection check failed: ", err)
	}

	if *force {
		fmt.Println("⚠️  Force flag enabled. Existing data will be replaced.")
	}

	if err := database.SeedData(database.DB, *force); err != nil {
		logrus.Fatal("Failed to seed database: ", err)
	}

	printSummary()
}

func printSummary() {
	counts := []struct {
		label string
		model interface{}
	}{
		{"Categories", &models.Category{}},
		{"Subcategories", &models.Subcategory{}},
		{"Items", &models.Item{}},
		{"Content pages", &models.ContentPage{}},
		{"Slider images", &models.MainPageSliderImage{}},
	}

	fmt.Println("\n📊 Database summary:")
	for _, c := range counts {
		var n int64
		if err := database.DB.Model(c.model).Count(&n).Error; err != nil {
			logrus.WithError(err).Warnf("Could not count %s", c.label)
			continue
		}
		fmt.Printf("  %-14s %d\n", c.label+":", n)
	}
}

func showHelp() {
	fmt.Println(`
Database Seeding Tool for the Flower Shop

Usage:
  go run ./cmd/seed [options]

Options:
  -force    Delete the existing catalogue and pages and seed again
  -help     Show this help message

Without -force the seed is skipped when the catalogue and pages are already filled.`)
}
