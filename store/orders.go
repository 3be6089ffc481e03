package store

import (
	"fmt"
	"time"

	"github.com/flowershop/models"
	"gorm.io/gorm"
)

// CreateIndividualOrder persists a submitted individual order
func CreateIndividualOrder(db *gorm.DB, order *models.IndividualOrder) error {
	if err := db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to save individual order: %w", err)
	}
	return nil
}

// IndividualOrdersSince returns orders created at or after since, oldest first
func IndividualOrdersSince(db *gorm.DB, since time.Time) ([]models.IndividualOrder, error) {
	var orders []models.IndividualOrder
	err := db.Where("created_at >= ?", since).Order("created_at ASC, id ASC").Find(&orders).Error
	return orders, err
}
