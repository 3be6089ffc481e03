package models

import (
	"time"
)

// BaseModelWithID contains ID and common columns
type BaseModelWithID struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Kind separates the two sellable item families of the catalogue.
type Kind string

const (
	KindProducts Kind = "products"
	KindBouquets Kind = "bouquets"
)

// Kinds lists every catalogue kind in display order
func Kinds() []Kind {
	return []Kind{KindBouquets, KindProducts}
}

// Valid reports whether k is a known catalogue kind
func (k Kind) Valid() bool {
	return k == KindProducts || k == KindBouquets
}

// ParseKind converts a URL segment into a Kind
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	return k, k.Valid()
}
