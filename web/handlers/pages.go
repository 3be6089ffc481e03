package handlers

import (
	"github.com/flowershop/models"
	"github.com/flowershop/store"
	"github.com/gofiber/fiber/v2"
)

// FillerPage describes an informational page such as About Us or FAQ
type FillerPage struct {
	Kind  models.PageKind
	Route string
}

// ConditionsPage describes a legal page. Title is fixed per page rather than
// taken from the record.
type ConditionsPage struct {
	Kind  models.PageKind
	Route string
	Title string
}

var (
	AboutUsPage       = FillerPage{Kind: models.PageAboutUs, Route: "mainpage.about"}
	AboutDeliveryPage = FillerPage{Kind: models.PageDelivery, Route: "mainpage.delivery"}
	ContactUsPage     = FillerPage{Kind: models.PageContacts, Route: "mainpage.contact"}
	FAQPage           = FillerPage{Kind: models.PageFAQ, Route: "mainpage.faq"}

	AGBPage              = ConditionsPage{Kind: models.PageAGB, Route: "mainpage.agb", Title: "Terms and conditions"}
	PrivacyAndPolicyPage = ConditionsPage{Kind: models.PagePrivacyAndPolicy, Route: "mainpage.privacy-and-policy", Title: "Privacy policy"}
	ImpressumPage        = ConditionsPage{Kind: models.PageImpressum, Route: "mainpage.impressum", Title: "Contact information"}
	ReturnPolicyPage     = ConditionsPage{Kind: models.PageReturnPolicy, Route: "mainpage.return-policy", Title: "Return policy"}
)

// pageContext loads a content page and the values both page styles share
func (h *Handler) pageContext(c *fiber.Ctx, kind models.PageKind, route string) (*models.ContentPage, *carts, fiber.Map, error) {
	page, err := store.ContentPage(h.DB.WithContext(c.UserContext()), kind)
	if err != nil {
		return nil, nil, nil, httpError(err)
	}
	url, err := routeURL(c, route, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	cs, err := h.loadCarts(c)
	if err != nil {
		return nil, nil, nil, err
	}
	return page, cs, fiber.Map{
		"Page":     page,
		"MetaTags": page.MetaTags,
		"JSONLD":   page.JSONLD,
		"URL":      url,
	}, nil
}

// Filler renders an informational page
func (h *Handler) Filler(p FillerPage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, cs, data, err := h.pageContext(c, p.Kind, p.Route)
		if err != nil {
			return err
		}
		data["Title"] = page.Title
		return h.render(c, cs, "pages/mainpage/filler", data)
	}
}

// Conditions renders a legal page together with its last update time
func (h *Handler) Conditions(p ConditionsPage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, cs, data, err := h.pageContext(c, p.Kind, p.Route)
		if err != nil {
			return err
		}
		data["Title"] = p.Title
		data["UpdatedAt"] = page.UpdatedAt
		return h.render(c, cs, "pages/mainpage/conditions", data)
	}
}
