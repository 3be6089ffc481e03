package models

import (
	"time"

	"gorm.io/datatypes"
)

// PageKind identifies a singleton content page
type PageKind string

const (
	PageAboutUs          PageKind = "about"
	PageDelivery         PageKind = "delivery"
	PageContacts         PageKind = "contacts"
	PageFAQ              PageKind = "faq"
	PageAGB              PageKind = "agb"
	PagePrivacyAndPolicy PageKind = "privacy_and_policy"
	PageImpressum        PageKind = "impressum"
	PageReturnPolicy     PageKind = "return_policy"
)

// PageKinds lists every content page the site serves
func PageKinds() []PageKind {
	return []PageKind{
		PageAboutUs, PageDelivery, PageContacts, PageFAQ,
		PageAGB, PagePrivacyAndPolicy, PageImpressum, PageReturnPolicy,
	}
}

// ContentPage represents content_pages table. There is at most one row per kind.
type ContentPage struct {
	BaseModelWithID
	Kind     PageKind       `gorm:"type:varchar(40);not null;uniqueIndex" json:"kind"`
	Title    string         `gorm:"type:varchar(200);not null" json:"title"`
	Content  string         `gorm:"type:text" json:"content"`
	MetaTags string         `gorm:"type:text" json:"meta_tags"`
	JSONLD   datatypes.JSON `gorm:"column:json_ld" json:"json_ld"`
}

// TableName specifies the table name for ContentPage
func (ContentPage) TableName() string {
	return "content_pages"
}

// MainPage represents main_page table (singleton)
type MainPage struct {
	BaseModelWithID
	MetaTags          string `gorm:"type:text" json:"meta_tags"`
	JSONLDDescription string `gorm:"column:json_ld_description;type:text" json:"json_ld_description"`
	Description       string `gorm:"type:text" json:"description"`
}

// TableName specifies the table name for MainPage
func (MainPage) TableName() string {
	return "main_page"
}

// MainPageSeoBlock represents main_page_seo_blocks table
type MainPageSeoBlock struct {
	BaseModelWithID
	Title string `gorm:"type:varchar(200)" json:"title"`
	Body  string `gorm:"type:text" json:"body"`
}

// TableName specifies the table name for MainPageSeoBlock
func (MainPageSeoBlock) TableName() string {
	return "main_page_seo_blocks"
}

// MainPageSliderImage represents main_page_slider_images table
type MainPageSliderImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Image     string    `gorm:"type:varchar(255);not null" json:"image"`
	Alt       string    `gorm:"type:varchar(255)" json:"alt"`
	Link      string    `gorm:"type:varchar(255)" json:"link"`
	Position  int       `gorm:"default:0" json:"position"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for MainPageSliderImage
func (MainPageSliderImage) TableName() string {
	return "main_page_slider_images"
}
