package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/flowershop/config"
	"github.com/flowershop/database"
	"github.com/flowershop/models"
	"github.com/flowershop/store"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	// Parse command line flags
	var (
		startDate = flag.String("start", time.Now().AddDate(0, 0, -30).Format("2006-01-02"), "Simulation start date (YYYY-MM-DD)")
		endDate   = flag.String("end", time.Now().Format("2006-01-02"), "Simulation end date (YYYY-MM-DD)")
		clear     = flag.Bool("clear", false, "Remove simulated individual orders of the period before running")
		seed      = flag.Bool("seed", false, "Run initial seed if database is empty")
	)
	flag.Parse()

	start, err := time.ParseInLocation("2006-01-02", *startDate, time.Local)
	if err != nil {
		logrus.Fatalf("Invalid start date: %v", err)
	}
	end, err := time.ParseInLocation("2006-01-02", *endDate, time.Local)
	if err != nil {
		logrus.Fatalf("Invalid end date: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	if err := database.InitializeWithOptions(&cfg.Database, true); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	db := database.GetDB()
	logrus.Info("✅ Connected to database successfully")

	if *seed {
		if err := database.SeedData(db, false); err != nil {
			logrus.Fatalf("Failed to seed initial data: %v", err)
		}
	}

	if *clear {
		removed, err := database.ClearSimulatedOrders(db, start, end)
		if err != nil {
			logrus.Fatalf("Failed to clear simulation data: %v", err)
		}
		logrus.Infof("✅ Removed %d simulated individual orders", removed)
	}

	logrus.Infof("Starting simulation from %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	summary, err := database.RunSimulation(db, start, end)
	if err != nil {
		logrus.Fatalf("Simulation failed: %v", err)
	}

	printStatistics(db, summary, start)
}

// printStatistics prints what the simulation changed and the resulting rankings
func printStatistics(db *gorm.DB, summary database.SimulationSummary, start time.Time) {
	fmt.Println("\n╔══════════════════════════════════════════════╗")
	fmt.Println("║          SIMULATION STATISTICS               ║")
	fmt.Println("╚══════════════════════════════════════════════╝")

	fmt.Printf("\n📅 Days simulated:        %d\n", summary.Days)
	fmt.Printf("🛒 Catalogue orders:      %d\n", summary.ItemOrders)
	fmt.Printf("⭐ Saved for later:       %d\n", summary.ItemSavings)
	fmt.Printf("💌 Individual orders:     %d\n", summary.IndividualOrders)

	for _, kind := range models.Kinds() {
		items, err := store.RecommendedItems(db, kind, 5)
		if err != nil {
			logrus.WithError(err).Warnf("Could not load top %s", kind)
			continue
		}
		fmt.Printf("\n🏆 TOP 5 %s\n", strings.ToUpper(string(kind)))
		for i, item := range items {
			fmt.Printf("   %d. %-30s orders: %4d  saved: %4d\n", i+1, item.Name, item.AmountOfOrders, item.AmountOfSavings)
		}
	}

	orders, err := store.IndividualOrdersSince(db, start)
	if err == nil {
		fmt.Printf("\n📬 Individual orders since %s: %d\n", start.Format("2006-01-02"), len(orders))
	}

	fmt.Println("\n" + strings.Repeat("═", 50))
}
