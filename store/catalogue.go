package store

import (
	"math"

	"github.com/flowershop/models"
	"gorm.io/gorm"
)

// Orderings accepted by ListItems
const (
	OrderPopular   = "popular"
	OrderPriceAsc  = "price"
	OrderPriceDesc = "-price"
	OrderNewest    = "new"
)

var orderClauses = map[string]string{
	OrderPopular:   "amount_of_orders DESC, amount_of_savings DESC, id ASC",
	OrderPriceAsc:  "price ASC, id ASC",
	OrderPriceDesc: "price DESC, id ASC",
	OrderNewest:    "created_at DESC, id DESC",
}

// ValidOrdering reports whether s is an ordering ListItems understands
func ValidOrdering(s string) bool {
	_, ok := orderClauses[s]
	return ok
}

// ItemFilter scopes an item listing. CategoryID and SubcategoryID are optional.
type ItemFilter struct {
	Kind          models.Kind
	CategoryID    uint
	SubcategoryID uint
	Ordering      string
	Page          int
	PageSize      int
}

// ItemPage is one page of an item listing
type ItemPage struct {
	Items    []models.Item
	Page     int
	PageSize int
	NumPages int
	Total    int64
	HasNext  bool
	HasPrev  bool
	Ordering string
}

// NextPage returns the following page number
func (p ItemPage) NextPage() int { return p.Page + 1 }

// PrevPage returns the preceding page number
func (p ItemPage) PrevPage() int { return p.Page - 1 }

// CategoryBySlug resolves a category of the given kind by its slug
func CategoryBySlug(db *gorm.DB, kind models.Kind, slug string) (*models.Category, error) {
	var category models.Category
	err := db.Select("id", "kind", "name", "slug").
		Where("kind = ? AND slug = ?", kind, slug).
		First(&category).Error
	if err != nil {
		return nil, notFound(err, "%s category %q", kind, slug)
	}
	return &category, nil
}

// SubcategoryBySlugs resolves a subcategory that belongs to the category with
// categorySlug. The category is loaded alongside.
func SubcategoryBySlugs(db *gorm.DB, kind models.Kind, categorySlug, subcategorySlug string) (*models.Subcategory, error) {
	categoryIDs := db.Model(&models.Category{}).
		Select("id").
		Where("kind = ? AND slug = ?", kind, categorySlug)

	var subcategory models.Subcategory
	err := db.Select("id", "category_id", "name", "slug").
		Preload("Category", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "kind", "name", "slug")
		}).
		Where("slug = ? AND category_id IN (?)", subcategorySlug, categoryIDs).
		First(&subcategory).Error
	if err != nil {
		return nil, notFound(err, "%s subcategory %q/%q", kind, categorySlug, subcategorySlug)
	}
	return &subcategory, nil
}

// ListItems returns one page of active items matching the filter. A page
// beyond the last one yields ErrNotFound; an empty listing still has page 1.
func ListItems(db *gorm.DB, f ItemFilter) (*ItemPage, error) {
	if f.PageSize < 1 {
		f.PageSize = 12
	}
	if f.Page < 1 {
		return nil, notFound(gorm.ErrRecordNotFound, "page %d", f.Page)
	}
	if f.Ordering == "" {
		f.Ordering = OrderPopular
	}
	order, ok := orderClauses[f.Ordering]
	if !ok {
		order = orderClauses[OrderPopular]
		f.Ordering = OrderPopular
	}

	query := db.Model(&models.Item{}).Where("kind = ? AND is_active = ?", f.Kind, true)
	if f.SubcategoryID != 0 {
		query = query.Where("subcategory_id = ?", f.SubcategoryID)
	}
	if f.CategoryID != 0 {
		subcategoryIDs := db.Model(&models.Subcategory{}).Select("id").Where("category_id = ?", f.CategoryID)
		query = query.Where("subcategory_id IN (?)", subcategoryIDs)
	}
	// Count and Find each start from the same conditions
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	numPages := int(math.Ceil(float64(total) / float64(f.PageSize)))
	if numPages == 0 {
		numPages = 1
	}
	if f.Page > numPages {
		return nil, notFound(gorm.ErrRecordNotFound, "page %d of %d", f.Page, numPages)
	}

	var items []models.Item
	err := withItemRelations(query).
		Order(order).
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	keepFirstImage(items)

	return &ItemPage{
		Items:    items,
		Page:     f.Page,
		PageSize: f.PageSize,
		NumPages: numPages,
		Total:    total,
		HasNext:  f.Page < numPages,
		HasPrev:  f.Page > 1,
		Ordering: f.Ordering,
	}, nil
}

// RecommendedItems returns the most ordered, then most saved, active items of a kind
func RecommendedItems(db *gorm.DB, kind models.Kind, limit int) ([]models.Item, error) {
	var items []models.Item
	err := withItemRelations(db.Model(&models.Item{})).
		Where("kind = ? AND is_active = ?", kind, true).
		Order(orderClauses[OrderPopular]).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	keepFirstImage(items)
	return items, nil
}

// ItemByID returns one active item of a kind
func ItemByID(db *gorm.DB, kind models.Kind, id uint) (*models.Item, error) {
	var item models.Item
	err := withItemRelations(db).
		Where("kind = ? AND is_active = ?", kind, true).
		First(&item, id).Error
	if err != nil {
		return nil, notFound(err, "%s item %d", kind, id)
	}
	if len(item.Images) > 1 {
		item.Images = item.Images[:1]
	}
	return &item, nil
}

// ItemsByIDs returns the active items of a kind among ids, in id order.
// Unknown ids are skipped.
func ItemsByIDs(db *gorm.DB, kind models.Kind, ids []uint) ([]models.Item, error) {
	if len(ids) == 0 {
		return []models.Item{}, nil
	}
	var items []models.Item
	err := withItemRelations(db.Model(&models.Item{})).
		Where("kind = ? AND is_active = ? AND id IN ?", kind, true, ids).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	keepFirstImage(items)
	return items, nil
}

// CategoryTree returns active categories of a kind with their active subcategories
func CategoryTree(db *gorm.DB, kind models.Kind) ([]models.Category, error) {
	var categories []models.Category
	err := db.Select("id", "kind", "name", "slug", "code_value", "position").
		Preload("Subcategories", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "category_id", "name", "slug", "code_value", "position").
				Where("is_active = ?", true).
				Order("position ASC, name ASC")
		}).
		Where("kind = ? AND is_active = ?", kind, true).
		Order("position ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// withItemRelations preloads what listings render: the subcategory with its
// category slug, and images ordered by position.
func withItemRelations(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Subcategory", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "category_id", "slug", "name")
		}).
		Preload("Subcategory.Category", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "kind", "slug")
		}).
		Preload("Images", firstImageOnly)
}

func keepFirstImage(items []models.Item) {
	for i := range items {
		if len(items[i].Images) > 1 {
			items[i].Images = items[i].Images[:1]
		}
	}
}
