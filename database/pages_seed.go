package database

import (
	"encoding/json"

	"github.com/flowershop/models"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// seedMainPage creates the main page singletons and slider images
func seedMainPage(tx *gorm.DB) error {
	page := models.MainPage{
		MetaTags:          `<meta name="description" content="Fresh flowers and gifts delivered the same day.">`,
		JSONLDDescription: "Florist shop with same day delivery of bouquets, plants and gifts.",
		Description:       "Fresh bouquets made to order by our florists.",
	}
	if err := tx.Create(&page).Error; err != nil {
		return err
	}

	seo := models.MainPageSeoBlock{
		Title: "Flower delivery",
		Body:  "We deliver hand made bouquets across the city every day from 8:00 to 22:00.",
	}
	if err := tx.Create(&seo).Error; err != nil {
		return err
	}

	slides := []models.MainPageSliderImage{
		{Image: "/static/media/slider/spring.jpg", Alt: "Spring collection", Link: "/catalogue/bouquets/bouquets/tulips", Position: 0, IsActive: true},
		{Image: "/static/media/slider/peonies.jpg", Alt: "Peony season", Link: "/catalogue/bouquets/bouquets/peonies", Position: 1, IsActive: true},
		{Image: "/static/media/slider/winter.jpg", Alt: "Winter collection", Position: 2, IsActive: false},
	}
	if err := tx.Create(&slides).Error; err != nil {
		return err
	}

	logrus.Infof("  ✓ Seeded main page with %d slider images", len(slides))
	return nil
}

// seedContentPages creates one record per static or legal page
func seedContentPages(tx *gorm.DB) error {
	titles := map[models.PageKind]string{
		models.PageAboutUs:          "About us",
		models.PageDelivery:         "Delivery",
		models.PageContacts:         "Contacts",
		models.PageFAQ:              "FAQ",
		models.PageAGB:              "Terms and conditions",
		models.PagePrivacyAndPolicy: "Privacy policy",
		models.PageImpressum:        "Imprint",
		models.PageReturnPolicy:     "Return policy",
	}

	for _, kind := range models.PageKinds() {
		jsonLD, err := json.Marshal(map[string]string{
			"@context": "https://schema.org",
			"@type":    "WebPage",
			"name":     titles[kind],
		})
		if err != nil {
			return err
		}

		page := models.ContentPage{
			Kind:     kind,
			Title:    titles[kind],
			Content:  "<p>" + titles[kind] + "</p>",
			MetaTags: `<meta name="description" content="` + titles[kind] + `">`,
			JSONLD:   datatypes.JSON(jsonLD),
		}
		if err := tx.Create(&page).Error; err != nil {
			return err
		}
	}

	logrus.Infof("  ✓ Seeded %d content pages", len(titles))
	return nil
}
