package models

// Category represents categories table, shared by products and bouquets
type Category struct {
	BaseModelWithID
	Kind      Kind   `gorm:"type:varchar(20);not null;uniqueIndex:idx_categories_kind_slug;index" json:"kind"`
	Name      string `gorm:"type:varchar(100);not null" json:"name"`
	Slug      string `gorm:"type:varchar(120);not null;uniqueIndex:idx_categories_kind_slug" json:"slug"`
	CodeValue string `gorm:"type:varchar(50)" json:"code_value"`
	Position  int    `gorm:"default:0" json:"position"`
	IsActive  bool   `gorm:"not null" json:"is_active"`

	Subcategories []Subcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}

// Subcategory represents subcategories table
type Subcategory struct {
	BaseModelWithID
	CategoryID uint   `gorm:"not null;uniqueIndex:idx_subcategories_category_slug" json:"category_id"`
	Name       string `gorm:"type:varchar(100);not null" json:"name"`
	Slug       string `gorm:"type:varchar(120);not null;uniqueIndex:idx_subcategories_category_slug" json:"slug"`
	CodeValue  string `gorm:"type:varchar(50)" json:"code_value"`
	Position   int    `gorm:"default:0" json:"position"`
	IsActive   bool   `gorm:"not null" json:"is_active"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
}

// TableName specifies the table name for Subcategory
func (Subcategory) TableName() string {
	return "subcategories"
}
