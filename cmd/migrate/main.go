package main

import (
	"flag"
	"fmt"

	"github.com/flowershop/config"
	"github.com/flowershop/database"
	"github.com/sirupsen/logrus"
)

func main() {
	// Command line flags
	var (
		drop = flag.Bool("drop", false, "Drop all tables before migration")
		help = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("🚀 Starting Database Migration Tool")
	if cfg.Database.Driver == "sqlite" {
		fmt.Printf("📊 Database: sqlite %s\n", cfg.Database.Path)
	} else {
		fmt.Printf("📊 Database: %s@%s:%s/%s\n",
			cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	}

	// Initialize database connection
	if err := database.InitializeWithOptions(&cfg.Database, true); err != nil {
		logrus.Fatalf("❌ Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.CheckConnection(database.DB); err != nil {
		logrus.Fatalf("❌ Database connection check failed: %v", err)
	}

	// Drop tables if requested
	if *drop {
		fmt.Println("⚠️  Dropping all tables...")
		if err := database.DropAll(database.DB); err != nil {
			logrus.Fatalf("❌ Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped")
	}

	fmt.Println("🔄 Running GORM AutoMigrate...")
	if err := database.AutoMigrate(database.DB); err != nil {
		logrus.Fatalf("❌ Failed to run migration: %v", err)
	}

	fmt.Println("✅ Migration completed successfully!")
	fmt.Println("📝 Next step: go run ./cmd/seed to load the demo catalogue")
}

func showHelp() {
	fmt.Println(`
Database Migration Tool for the Flower Shop

Usage:
  go run ./cmd/migrate [options]

Options:
  -drop     Drop all tables before migration (WARNING: Data loss!)
  -help     Show this help message

Environment:
  Requires .env file or environment variables for database configuration:
  - DB_DRIVER (postgres or sqlite)
  - DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME for postgres
  - DB_PATH for sqlite`)
}
