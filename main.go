package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/flowershop/config"
	"github.com/flowershop/database"
	"github.com/flowershop/notify"
	"github.com/flowershop/web"
	"github.com/sirupsen/logrus"
)

func main() {
	// Command line flags
	var (
		migrate = flag.Bool("migrate", false, "Run database migration on startup")
		seed    = flag.Bool("seed", false, "Seed database with sample data")
		check   = flag.Bool("check", false, "Check the database and exit")
		help    = flag.Bool("help", false, "Show help")
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
	setupLogging(&cfg.App)

	// Initialize database connection
	if err := database.InitializeWithOptions(&cfg.Database, !cfg.App.Debug); err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.CheckConnection(database.DB); err != nil {
		logrus.Fatalf("Database connection check failed: %v", err)
	}

	// Run migration if requested
	if *migrate {
		logrus.Info("Running database migration...")
		if err := database.AutoMigrate(database.DB); err != nil {
			logrus.Fatalf("Failed to migrate database: %v", err)
		}
		logrus.Info("Migration completed successfully")
	}

	// Seed database if requested
	if *seed {
		logrus.Info("Seeding database with sample data...")
		if err := database.SeedData(database.DB, false); err != nil {
			logrus.Fatalf("Failed to seed database: %v", err)
		}
		logrus.Info("Database seeded successfully")
	}

	if *check {
		if err := runConnectionCheck(); err != nil {
			logrus.Fatalf("Database check failed: %v", err)
		}
		return
	}

	publisher, err := notify.New(cfg.AMQP)
	if err != nil {
		logrus.Fatalf("Failed to connect to the message broker: %v", err)
	}
	defer publisher.Close()

	server, err := web.NewServer(cfg, database.DB, publisher)
	if err != nil {
		logrus.Fatalf("Failed to create server: %v", err)
	}

	// Start server in a goroutine
	go func() {
		if err := server.Start(cfg.App.Port); err != nil {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logrus.Info("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		logrus.WithError(err).Error("Server shutdown failed")
	}
}

func setupLogging(app *config.AppConfig) {
	level, err := logrus.ParseLevel(app.LogLevel)
	if err != nil {
		logrus.Warnf("Unknown LOG_LEVEL %q, using info", app.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if app.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func showHelp() {
	fmt.Println(`
Flower Shop storefront server

Usage:
  go run main.go [options]

Options:
  -migrate  Run GORM AutoMigrate on startup
  -seed     Seed database with sample data
  -check    Query every table, report missing pages and exit
  -help     Show this help message

Examples:
  # Start server only
  go run main.go

  # Start server with migration and seed
  go run main.go -migrate -seed

For full migration control, use:
  go run ./cmd/migrate

For full seed control, use:
  go run ./cmd/seed

To export individual orders to a spreadsheet:
  go run ./cmd/export-orders -o orders.xlsx`)
}
