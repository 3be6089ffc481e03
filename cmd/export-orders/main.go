package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/flowershop/config"
	"github.com/flowershop/database"
	"github.com/flowershop/reports"
	"github.com/flowershop/store"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		output = flag.String("o", "individual_orders.xlsx", "Output file")
		since  = flag.String("since", "", "Only export orders received on or after this date (YYYY-MM-DD)")
		help   = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	var from time.Time
	if *since != "" {
		var err error
		from, err = time.ParseInLocation("2006-01-02", *since, time.Local)
		if err != nil {
			logrus.Fatalf("Invalid -since date %q: %v", *since, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.InitializeWithOptions(&cfg.Database, true); err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	orders, err := store.IndividualOrdersSince(database.DB, from)
	if err != nil {
		logrus.Fatalf("Failed to load individual orders: %v", err)
	}

	f, err := os.Create(*output)
	if err != nil {
		logrus.Fatalf("Failed to create %s: %v", *output, err)
	}
	defer f.Close()

	if err := reports.WriteIndividualOrders(f, orders); err != nil {
		logrus.Fatalf("Failed to export individual orders: %v", err)
	}

	fmt.Printf("✅ Exported %d individual orders to %s\n", len(orders), *output)
}
