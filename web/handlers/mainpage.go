package handlers

import (
	"github.com/flowershop/forms"
	"github.com/flowershop/models"
	"github.com/flowershop/store"
	"github.com/gofiber/fiber/v2"
)

// MainPage renders the landing page
func (h *Handler) MainPage(c *fiber.Ctx) error {
	db := h.DB.WithContext(c.UserContext())

	page, err := store.MainPage(db)
	if err != nil {
		return httpError(err)
	}

	slides, err := store.SliderImages(db)
	if err != nil {
		return err
	}

	limit := h.Settings.RecommendedLimit
	bouquets, err := store.RecommendedItems(db, models.KindBouquets, limit)
	if err != nil {
		return err
	}
	products, err := store.RecommendedItems(db, models.KindProducts, limit)
	if err != nil {
		return err
	}

	seoBlock, err := store.SeoBlock(db)
	if err != nil {
		return err
	}

	productsCategories, err := store.CategoryTree(db, models.KindProducts)
	if err != nil {
		return err
	}
	bouquetsCategories, err := store.CategoryTree(db, models.KindBouquets)
	if err != nil {
		return err
	}

	contactURL, err := absoluteURL(c, "mainpage.contact", nil)
	if err != nil {
		return err
	}
	deliveryURL, err := absoluteURL(c, "mainpage.delivery", nil)
	if err != nil {
		return err
	}
	negotiateURL, err := absoluteURL(c, "mainpage.individual-order-negotiate", nil)
	if err != nil {
		return err
	}

	cs, err := h.loadCarts(c)
	if err != nil {
		return err
	}

	return h.render(c, cs, "pages/mainpage/index", fiber.Map{
		"Title":                       h.Settings.SiteName,
		"SliderImages":                slides,
		"RecommendedBouquets":         bouquets,
		"RecommendedProducts":         products,
		"ProductsCart":                cs.products,
		"BouquetsCart":                cs.bouquets,
		"IndividualOrderForm":         forms.IndividualOrderForm{},
		"ContactMethods":              forms.ContactMethods(),
		"SeoBlock":                    seoBlock,
		"ProductsCategories":          productsCategories,
		"BouquetsCategories":          bouquetsCategories,
		"MetaTags":                    page.MetaTags,
		"JSONLDDescription":           page.JSONLDDescription,
		"Description":                 page.Description,
		"ContactUsAbsoluteURL":        contactURL,
		"DeliveryAbsoluteURL":         deliveryURL,
		"IndividualOrderNegotiateURL": negotiateURL,
	})
}
