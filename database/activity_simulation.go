package database

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/flowershop/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SimulatedEmailDomain marks individual orders created by the simulation
const SimulatedEmailDomain = "simulated.local"

// SimulationConfig holds simulation parameters
type SimulationConfig struct {
	StartDate time.Time
	EndDate   time.Time
	DB        *gorm.DB
	// AverageDailyOrders is the mean number of catalogue purchases per day
	AverageDailyOrders int
	// AverageDailySavings is the mean number of "saved for later" clicks per day
	AverageDailySavings int
	// IndividualOrderRate is the chance per day of an individual order lead
	IndividualOrderRate float64
	Rand                *rand.Rand
}

// SimulationSummary counts what a simulation run produced
type SimulationSummary struct {
	Days             int
	ItemOrders       int
	ItemSavings      int
	IndividualOrders int
}

// ActivitySimulation replays storefront traffic day by day: it bumps the
// popularity counters of items and leaves individual order leads.
type ActivitySimulation struct {
	config      SimulationConfig
	items       []models.Item
	currentDate time.Time
	summary     SimulationSummary
}

var simulatedCustomers = []struct {
	name, phone, method string
}{
	{"Lena Fischer", "+49 151 2345678", models.ContactWhatsApp},
	{"Jonas Weber", "+49 160 9876543", models.ContactPhone},
	{"Mia Schulz", "+49 171 5550101", models.ContactEmail},
	{"Paul Wagner", "+49 152 4443322", models.ContactTelegram},
}

var simulatedWishes = []string{
	"Large bouquet of white roses for a wedding anniversary",
	"Something bright for a colleague's farewell",
	"Table arrangements for a birthday dinner, about ten guests",
	"Dried flower composition that lasts for months",
}

// NewActivitySimulation creates a new simulation instance
func NewActivitySimulation(config SimulationConfig) (*ActivitySimulation, error) {
	if config.EndDate.Before(config.StartDate) {
		return nil, fmt.Errorf("end date %s is before start date %s",
			config.EndDate.Format("2006-01-02"), config.StartDate.Format("2006-01-02"))
	}
	if config.Rand == nil {
		config.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if config.AverageDailyOrders <= 0 {
		config.AverageDailyOrders = 20
	}
	if config.AverageDailySavings <= 0 {
		config.AverageDailySavings = 10
	}

	sim := &ActivitySimulation{config: config, currentDate: config.StartDate}
	if err := config.DB.Where("is_active = ?", true).Order("id").Find(&sim.items).Error; err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	if len(sim.items) == 0 {
		return nil, fmt.Errorf("no active items to simulate, seed the catalogue first")
	}
	return sim, nil
}

// Run simulates every day from the start date to the end date inclusive
func (s *ActivitySimulation) Run() (SimulationSummary, error) {
	for !s.currentDate.After(s.config.EndDate) {
		if err := s.config.DB.Transaction(s.simulateDay); err != nil {
			return s.summary, fmt.Errorf("simulation failed on %s: %w", s.currentDate.Format("2006-01-02"), err)
		}
		s.summary.Days++
		s.currentDate = s.currentDate.AddDate(0, 0, 1)
	}

	logrus.WithFields(logrus.Fields{
		"days":              s.summary.Days,
		"item_orders":       s.summary.ItemOrders,
		"item_savings":      s.summary.ItemSavings,
		"individual_orders": s.summary.IndividualOrders,
	}).Info("Simulation finished")
	return s.summary, nil
}

func (s *ActivitySimulation) simulateDay(tx *gorm.DB) error {
	orders := s.around(s.config.AverageDailyOrders)
	savings := s.around(s.config.AverageDailySavings)

	ordered := make(map[int]int)
	for i := 0; i < orders; i++ {
		ordered[s.pickItem()]++
	}
	saved := make(map[int]int)
	for i := 0; i < savings; i++ {
		saved[s.pickItem()]++
	}

	for idx, n := range ordered {
		if err := tx.Model(&models.Item{}).Where("id = ?", s.items[idx].ID).
			UpdateColumn("amount_of_orders", gorm.Expr("amount_of_orders + ?", n)).Error; err != nil {
			return err
		}
		s.items[idx].AmountOfOrders += n
	}
	for idx, n := range saved {
		if err := tx.Model(&models.Item{}).Where("id = ?", s.items[idx].ID).
			UpdateColumn("amount_of_savings", gorm.Expr("amount_of_savings + ?", n)).Error; err != nil {
			return err
		}
		s.items[idx].AmountOfSavings += n
	}
	s.summary.ItemOrders += orders
	s.summary.ItemSavings += savings

	if s.config.Rand.Float64() < s.config.IndividualOrderRate {
		if err := tx.Create(s.individualOrder()).Error; err != nil {
			return err
		}
		s.summary.IndividualOrders++
	}
	return nil
}

// pickItem returns the index of an item, favouring the one with more orders
// out of two random picks. Counts include the days simulated so far.
func (s *ActivitySimulation) pickItem() int {
	a := s.config.Rand.Intn(len(s.items))
	b := s.config.Rand.Intn(len(s.items))
	if s.items[b].AmountOfOrders > s.items[a].AmountOfOrders {
		return b
	}
	return a
}

// around returns a count within ±50% of mean
func (s *ActivitySimulation) around(mean int) int {
	return mean/2 + s.config.Rand.Intn(mean+1)
}

func (s *ActivitySimulation) individualOrder() *models.IndividualOrder {
	customer := simulatedCustomers[s.config.Rand.Intn(len(simulatedCustomers))]
	budget := decimal.NewFromInt(int64(40 + 10*s.config.Rand.Intn(12)))
	received := s.currentDate.Add(time.Duration(9+s.config.Rand.Intn(10)) * time.Hour)

	return &models.IndividualOrder{
		Name:          customer.name,
		Phone:         customer.phone,
		Email:         fmt.Sprintf("lead%d@%s", s.summary.IndividualOrders+1, SimulatedEmailDomain),
		ContactMethod: customer.method,
		Budget:        &budget,
		Description:   simulatedWishes[s.config.Rand.Intn(len(simulatedWishes))],
		CreatedAt:     received,
	}
}

// ClearSimulatedOrders removes the individual orders a simulation left in the period
func ClearSimulatedOrders(db *gorm.DB, start, end time.Time) (int64, error) {
	res := db.Where("email LIKE ? AND created_at >= ? AND created_at < ?",
		"%@"+SimulatedEmailDomain, start, end.AddDate(0, 0, 1)).
		Delete(&models.IndividualOrder{})
	return res.RowsAffected, res.Error
}

// RunSimulation runs an activity simulation with default parameters
func RunSimulation(db *gorm.DB, startDate, endDate time.Time) (SimulationSummary, error) {
	sim, err := NewActivitySimulation(SimulationConfig{
		StartDate:           startDate,
		EndDate:             endDate,
		DB:                  db,
		IndividualOrderRate: 0.3,
	})
	if err != nil {
		return SimulationSummary{}, err
	}
	return sim.Run()
}
