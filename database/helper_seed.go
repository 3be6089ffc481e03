package database

import (
	"fmt"

	"github.com/flowershop/models"
	"github.com/shopspring/decimal"
)

// subcategoryKey builds the lookup key used between the seed steps
func subcategoryKey(kind models.Kind, categorySlug, subcategorySlug string) string {
	return fmt.Sprintf("%s/%s/%s", kind, categorySlug, subcategorySlug)
}

// Helper functions for creating values
func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pricePtr(s string) *decimal.Decimal {
	d := price(s)
	return &d
}
