package store

import (
	"errors"

	"github.com/flowershop/models"
	"gorm.io/gorm"
)

// SliderImages returns the active main page slides in display order
func SliderImages(db *gorm.DB) ([]models.MainPageSliderImage, error) {
	var slides []models.MainPageSliderImage
	err := db.Where("is_active = ?", true).Order("position ASC, id ASC").Find(&slides).Error
	return slides, err
}

// MainPage returns the main page record
func MainPage(db *gorm.DB) (*models.MainPage, error) {
	var page models.MainPage
	if err := db.First(&page).Error; err != nil {
		return nil, notFound(err, "main page")
	}
	return &page, nil
}

// SeoBlock returns the main page SEO block, or nil when none is configured
func SeoBlock(db *gorm.DB) (*models.MainPageSeoBlock, error) {
	var block models.MainPageSeoBlock
	err := db.First(&block).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &block, nil
}

// ContentPage returns the singleton page of the given kind
func ContentPage(db *gorm.DB, kind models.PageKind) (*models.ContentPage, error) {
	var page models.ContentPage
	if err := db.Where("kind = ?", kind).First(&page).Error; err != nil {
		return nil, notFound(err, "%s page", kind)
	}
	return &page, nil
}
