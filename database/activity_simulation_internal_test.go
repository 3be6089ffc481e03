package database

import (
	"math/rand"
	"testing"
	"time"

	"github.com/flowershop/config"
	"github.com/flowershop/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulationKeepsItemCountsCurrent(t *testing.T) {
	db, err := Open(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1",
	}, true)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	require.NoError(t, AutoMigrate(db))
	require.NoError(t, SeedData(db, false))

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	sim, err := NewActivitySimulation(SimulationConfig{
		StartDate:           start,
		EndDate:             start.AddDate(0, 0, 3),
		DB:                  db,
		AverageDailyOrders:  12,
		AverageDailySavings: 6,
		Rand:                rand.New(rand.NewSource(7)),
	})
	require.NoError(t, err)
	_, err = sim.Run()
	require.NoError(t, err)

	var stored []models.Item
	require.NoError(t, db.Where("is_active = ?", true).Order("id").Find(&stored).Error)
	require.Len(t, sim.items, len(stored))
	for i, item := range stored {
		assert.Equal(t, item.ID, sim.items[i].ID)
		assert.Equal(t, item.AmountOfOrders, sim.items[i].AmountOfOrders, item.Slug)
		assert.Equal(t, item.AmountOfSavings, sim.items[i].AmountOfSavings, item.Slug)
	}
}

func TestPickItemPrefersMorePopular(t *testing.T) {
	sim := &ActivitySimulation{
		config: SimulationConfig{Rand: rand.New(rand.NewSource(1))},
		items: []models.Item{
			{AmountOfOrders: 0},
			{AmountOfOrders: 100},
		},
	}

	picks := make([]int, 2)
	for i := 0; i < 400; i++ {
		picks[sim.pickItem()]++
	}
	// item 0 only wins when both draws land on it, about a quarter of the time
	assert.Greater(t, picks[1], picks[0])
}
