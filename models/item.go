package models

import (
	"github.com/shopspring/decimal"
)

// Item represents items table. Products and bouquets share the table and are
// told apart by Kind.
type Item struct {
	BaseModelWithID
	Kind            Kind             `gorm:"type:varchar(20);not null;index" json:"kind"`
	SubcategoryID   uint             `gorm:"not null;index" json:"subcategory_id"`
	Name            string           `gorm:"type:varchar(200);not null" json:"name"`
	Slug            string           `gorm:"type:varchar(220);not null;index" json:"slug"`
	Description     string           `gorm:"type:text" json:"description"`
	Price           decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"price"`
	DiscountPrice   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"discount_price,omitempty"`
	AmountOfOrders  int              `gorm:"default:0;index" json:"amount_of_orders"`
	AmountOfSavings int              `gorm:"default:0" json:"amount_of_savings"`
	IsActive        bool             `gorm:"not null" json:"is_active"`

	Subcategory *Subcategory `gorm:"foreignKey:SubcategoryID;constraint:OnDelete:CASCADE" json:"subcategory,omitempty"`
	Images      []ItemImage  `gorm:"foreignKey:ItemID" json:"images,omitempty"`
}

// TableName specifies the table name for Item
func (Item) TableName() string {
	return "items"
}

// EffectivePrice is the price a customer pays for one unit
func (i Item) EffectivePrice() decimal.Decimal {
	if i.DiscountPrice != nil && i.DiscountPrice.LessThan(i.Price) {
		return *i.DiscountPrice
	}
	return i.Price
}

// HasDiscount reports whether a lower discount price applies
func (i Item) HasDiscount() bool {
	return i.DiscountPrice != nil && i.DiscountPrice.LessThan(i.Price)
}

// FirstImage returns the first image by position, or nil
func (i Item) FirstImage() *ItemImage {
	if len(i.Images) == 0 {
		return nil
	}
	return &i.Images[0]
}

// ItemImage represents item_images table
type ItemImage struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ItemID   uint   `gorm:"not null;index" json:"item_id"`
	Image    string `gorm:"type:varchar(255);not null" json:"image"`
	Alt      string `gorm:"type:varchar(255)" json:"alt"`
	Position int    `gorm:"default:0" json:"position"`
}

// TableName specifies the table name for ItemImage
func (ItemImage) TableName() string {
	return "item_images"
}
