package database

import (
	"fmt"

	"github.com/flowershop/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type seedSubcategory struct {
	name, slug string
}

type seedCategory struct {
	kind          models.Kind
	name, slug    string
	subcategories []seedSubcategory
}

// seedCategories creates both category trees and returns subcategory IDs by key
func seedCategories(tx *gorm.DB) (map[string]uint, error) {
	tree := []seedCategory{
		{models.KindBouquets, "Bouquets", "bouquets", []seedSubcategory{
			{"Roses", "roses"},
			{"Tulips", "tulips"},
			{"Peonies", "peonies"},
		}},
		{models.KindBouquets, "Occasions", "occasions", []seedSubcategory{
			{"Birthday", "birthday"},
			{"Wedding", "wedding"},
		}},
		{models.KindProducts, "Gifts", "gifts", []seedSubcategory{
			{"Sweets", "sweets"},
			{"Soft toys", "soft-toys"},
		}},
		{models.KindProducts, "Plants", "plants", []seedSubcategory{
			{"House plants", "house-plants"},
			{"Succulents", "succulents"},
		}},
	}

	subcategoryMap := make(map[string]uint)
	for pos, c := range tree {
		category := models.Category{
			Kind:      c.kind,
			Name:      c.name,
			Slug:      c.slug,
			CodeValue: fmt.Sprintf("%s-%02d", c.kind, pos+1),
			Position:  pos,
			IsActive:  true,
		}
		for subPos, s := range c.subcategories {
			category.Subcategories = append(category.Subcategories, models.Subcategory{
				Name:      s.name,
				Slug:      s.slug,
				CodeValue: fmt.Sprintf("%s-%02d-%02d", c.kind, pos+1, subPos+1),
				Position:  subPos,
				IsActive:  true,
			})
		}
		if err := tx.Create(&category).Error; err != nil {
			return nil, err
		}
		for _, s := range category.Subcategories {
			subcategoryMap[subcategoryKey(c.kind, c.slug, s.Slug)] = s.ID
		}
	}

	logrus.Infof("  ✓ Seeded %d categories with %d subcategories", len(tree), len(subcategoryMap))
	return subcategoryMap, nil
}

// seedItems creates products and bouquets with their images
func seedItems(tx *gorm.DB, subcategoryMap map[string]uint) error {
	type seedItem struct {
		kind                    models.Kind
		category, subcategory   string
		name, slug, price       string
		discount                string
		orders, savings, images int
	}

	items := []seedItem{
		{models.KindBouquets, "bouquets", "roses", "Red roses, 25 stems", "red-roses-25", "59.00", "", 140, 32, 3},
		{models.KindBouquets, "bouquets", "roses", "White roses, 15 stems", "white-roses-15", "45.00", "39.90", 88, 41, 2},
		{models.KindBouquets, "bouquets", "roses", "Spray roses in a box", "spray-roses-box", "52.00", "", 61, 12, 2},
		{models.KindBouquets, "bouquets", "tulips", "Spring tulips mix", "spring-tulips-mix", "35.00", "", 120, 19, 2},
		{models.KindBouquets, "bouquets", "tulips", "Yellow tulips", "yellow-tulips", "29.00", "", 20, 7, 1},
		{models.KindBouquets, "bouquets", "peonies", "Pink peonies", "pink-peonies", "79.00", "69.00", 95, 60, 3},
		{models.KindBouquets, "occasions", "birthday", "Birthday sunshine", "birthday-sunshine", "49.00", "", 47, 22, 2},
		{models.KindBouquets, "occasions", "wedding", "Bridal cascade", "bridal-cascade", "149.00", "", 12, 30, 2},
		{models.KindProducts, "gifts", "sweets", "Belgian pralines", "belgian-pralines", "18.50", "", 77, 9, 1},
		{models.KindProducts, "gifts", "sweets", "Macarons, 12 pcs", "macarons-12", "21.00", "", 52, 14, 1},
		{models.KindProducts, "gifts", "soft-toys", "Teddy bear", "teddy-bear", "24.00", "19.00", 64, 25, 2},
		{models.KindProducts, "plants", "house-plants", "Monstera deliciosa", "monstera", "39.00", "", 33, 40, 2},
		{models.KindProducts, "plants", "succulents", "Succulent trio", "succulent-trio", "16.00", "", 41, 11, 1},
	}

	for _, s := range items {
		subcategoryID, ok := subcategoryMap[subcategoryKey(s.kind, s.category, s.subcategory)]
		if !ok {
			return fmt.Errorf("unknown subcategory %s/%s for %s", s.category, s.subcategory, s.slug)
		}

		item := models.Item{
			Kind:            s.kind,
			SubcategoryID:   subcategoryID,
			Name:            s.name,
			Slug:            s.slug,
			Description:     s.name + ", hand made by our florists on the day of delivery.",
			Price:           price(s.price),
			AmountOfOrders:  s.orders,
			AmountOfSavings: s.savings,
			IsActive:        true,
		}
		if s.discount != "" {
			item.DiscountPrice = pricePtr(s.discount)
		}
		for i := 0; i < s.images; i++ {
			item.Images = append(item.Images, models.ItemImage{
				Image:    fmt.Sprintf("/static/media/%s/%s-%d.jpg", s.kind, s.slug, i+1),
				Alt:      s.name,
				Position: i,
			})
		}

		if err := tx.Create(&item).Error; err != nil {
			return err
		}
	}

	logrus.Infof("  ✓ Seeded %d items", len(items))
	return nil
}
