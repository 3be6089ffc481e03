package handlers

import (
	"errors"
	"strconv"

	"github.com/flowershop/models"
	"github.com/flowershop/store"
	"github.com/gofiber/fiber/v2"
)

// Listing configures the category and subcategory listings of one item kind
type Listing struct {
	Kind models.Kind
	// CategoryRoute names the category listing route; subcategory
	// breadcrumbs link back to it.
	CategoryRoute string
}

var (
	ProductListing = Listing{Kind: models.KindProducts, CategoryRoute: "catalogue.products-category"}
	BouquetListing = Listing{Kind: models.KindBouquets, CategoryRoute: "catalogue.bouquets-category"}
)

var orderings = []struct {
	Value, Label string
}{
	{store.OrderPopular, "Popular"},
	{store.OrderPriceAsc, "Price: low to high"},
	{store.OrderPriceDesc, "Price: high to low"},
	{store.OrderNewest, "New"},
}

// CategoryList lists the items of every subcategory of a category
func (h *Handler) CategoryList(l Listing) fiber.Handler {
	return func(c *fiber.Ctx) error {
		db := h.DB.WithContext(c.UserContext())

		category, err := store.CategoryBySlug(db, l.Kind, c.Params("category_slug"))
		if err != nil {
			return httpError(err)
		}

		return h.renderListing(c, l, store.ItemFilter{CategoryID: category.ID}, fiber.Map{
			"Title":    category.Name,
			"Category": category,
			"Breadcrumbs": []Breadcrumb{
				{Name: category.Name},
			},
		})
	}
}

// SubcategoryList lists the items of a subcategory
func (h *Handler) SubcategoryList(l Listing) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if l.CategoryRoute == "" {
			return errors.New("subcategory listing needs the category route name")
		}
		db := h.DB.WithContext(c.UserContext())

		subcategory, err := store.SubcategoryBySlugs(db, l.Kind, c.Params("category_slug"), c.Params("subcategory_slug"))
		if err != nil {
			return httpError(err)
		}

		categoryURL, err := routeURL(c, l.CategoryRoute, fiber.Map{"category_slug": subcategory.Category.Slug})
		if err != nil {
			return err
		}

		return h.renderListing(c, l, store.ItemFilter{SubcategoryID: subcategory.ID}, fiber.Map{
			"Title":       subcategory.Name,
			"Category":    subcategory.Category,
			"Subcategory": subcategory,
			"Breadcrumbs": []Breadcrumb{
				{Name: subcategory.Category.Name, URL: categoryURL},
				{Name: subcategory.Name},
			},
		})
	}
}

// renderListing fills in the paging, ordering and cart values of a listing
func (h *Handler) renderListing(c *fiber.Ctx, l Listing, filter store.ItemFilter, data fiber.Map) error {
	page := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fiber.ErrNotFound
		}
		page = n
	}

	filter.Kind = l.Kind
	filter.Page = page
	filter.PageSize = h.Settings.CataloguePageSize
	filter.Ordering = c.Query("ordering")

	items, err := store.ListItems(h.DB.WithContext(c.UserContext()), filter)
	if err != nil {
		return httpError(err)
	}

	cs, err := h.loadCarts(c)
	if err != nil {
		return err
	}

	data["Kind"] = l.Kind
	data["Listing"] = items
	data["Orderings"] = orderings
	data["Cart"] = cs.of(l.Kind)
	if l.Kind == models.KindBouquets {
		data["BouquetsCart"] = cs.bouquets
	} else {
		data["ProductsCart"] = cs.products
	}
	return h.render(c, cs, "pages/catalogue/list", data)
}
