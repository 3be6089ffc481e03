package models

// AllModels returns all model structs for auto-migration
// IMPORTANT: Order matters! Parent tables must be created before child tables
func AllModels() []interface{} {
	return []interface{}{
		// 1. Independent tables (no foreign keys)
		&Category{},
		&MainPage{},
		&MainPageSeoBlock{},
		&MainPageSliderImage{},
		&ContentPage{},
		&IndividualOrder{},

		// 2. Tables with single dependencies
		&Subcategory{}, // depends on: Category
		&Item{},        // depends on: Subcategory
		&ItemImage{},   // depends on: Item
	}
}
