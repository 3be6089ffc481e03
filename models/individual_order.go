package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Contact methods a customer can pick for an individual order
const (
	ContactPhone    = "phone"
	ContactWhatsApp = "whatsapp"
	ContactTelegram = "telegram"
	ContactEmail    = "email"
)

// IndividualOrder represents individual_orders table: a lead left through the
// "individual order" form on the main page.
type IndividualOrder struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	Reference     uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex" json:"reference"`
	Name          string           `gorm:"type:varchar(100);not null" json:"name"`
	Phone         string           `gorm:"type:varchar(30);not null" json:"phone"`
	Email         string           `gorm:"type:varchar(100)" json:"email,omitempty"`
	ContactMethod string           `gorm:"type:varchar(20);not null;default:'phone'" json:"contact_method"`
	Budget        *decimal.Decimal `gorm:"type:decimal(12,2)" json:"budget,omitempty"`
	Description   string           `gorm:"type:text;not null" json:"description"`
	CreatedAt     time.Time        `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for IndividualOrder
func (IndividualOrder) TableName() string {
	return "individual_orders"
}

// BeforeCreate assigns a reference number if none was set
func (o *IndividualOrder) BeforeCreate(tx *gorm.DB) error {
	if o.Reference == uuid.Nil {
		o.Reference = uuid.New()
	}
	return nil
}
