// Package cart keeps the shopping carts of a visitor in their session.
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/flowershop/models"
	"github.com/shopspring/decimal"
)

// MaxQuantity caps the quantity of a single cart line
const MaxQuantity = 99

// Session keys under which each kind's cart is stored
const (
	ProductsSessionKey = "products_cart"
	BouquetsSessionKey = "bouquets_cart"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 99")
	ErrUnknownKind     = errors.New("unknown cart kind")
)

// Session is the part of a session the cart needs. *session.Session from
// fiber satisfies it.
type Session interface {
	Get(key string) interface{}
	Set(key string, val interface{})
}

// SessionKey returns the session key for a kind's cart
func SessionKey(kind models.Kind) (string, error) {
	switch kind {
	case models.KindProducts:
		return ProductsSessionKey, nil
	case models.KindBouquets:
		return BouquetsSessionKey, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Cart is a session backed set of item quantities of one kind
type Cart struct {
	kind  models.Kind
	key   string
	sess  Session
	lines map[uint]int
}

// Load reads the kind's cart from the session. A missing or unreadable
// cart yields an empty one.
func Load(sess Session, kind models.Kind) (*Cart, error) {
	key, err := SessionKey(kind)
	if err != nil {
		return nil, err
	}

	c := &Cart{kind: kind, key: key, sess: sess, lines: make(map[uint]int)}
	raw, ok := sess.Get(key).(string)
	if !ok || raw == "" {
		return c, nil
	}

	var stored []Line
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return c, nil
	}
	for _, l := range stored {
		if l.Quantity > 0 {
			c.lines[l.ItemID] = min(l.Quantity, MaxQuantity)
		}
	}
	return c, nil
}

// Line is one stored cart entry
type Line struct {
	ItemID   uint `json:"item_id"`
	Quantity int  `json:"quantity"`
}

// Kind returns the item kind held by the cart
func (c *Cart) Kind() models.Kind { return c.kind }

// SessionKey returns the session key the cart is stored under
func (c *Cart) SessionKey() string { return c.key }

// Add increases the quantity of an item, capped at MaxQuantity
func (c *Cart) Add(itemID uint, quantity int) error {
	if quantity < 1 || quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	c.lines[itemID] = min(c.lines[itemID]+quantity, MaxQuantity)
	return nil
}

// Set replaces the quantity of an item; zero removes it
func (c *Cart) Set(itemID uint, quantity int) error {
	if quantity < 0 || quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		delete(c.lines, itemID)
		return nil
	}
	c.lines[itemID] = quantity
	return nil
}

// Remove drops an item from the cart
func (c *Cart) Remove(itemID uint) {
	delete(c.lines, itemID)
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.lines = make(map[uint]int)
}

// Contains reports whether the item is in the cart
func (c *Cart) Contains(itemID uint) bool {
	_, ok := c.lines[itemID]
	return ok
}

// Quantity returns the quantity of an item, zero when absent
func (c *Cart) Quantity(itemID uint) int {
	return c.lines[itemID]
}

// Len returns the number of distinct items
func (c *Cart) Len() int {
	return len(c.lines)
}

// Count returns the total quantity over all items
func (c *Cart) Count() int {
	var n int
	for _, q := range c.lines {
		n += q
	}
	return n
}

// IDs returns the item ids in ascending order
func (c *Cart) IDs() []uint {
	ids := make([]uint, 0, len(c.lines))
	for id := range c.lines {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Lines returns the cart entries ordered by item id
func (c *Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.lines))
	for _, id := range c.IDs() {
		lines = append(lines, Line{ItemID: id, Quantity: c.lines[id]})
	}
	return lines
}

// Save writes the cart back into the session. The caller still has to
// persist the session itself.
func (c *Cart) Save() error {
	raw, err := json.Marshal(c.Lines())
	if err != nil {
		return err
	}
	c.sess.Set(c.key, string(raw))
	return nil
}

// PricedLine is a cart line joined with its item
type PricedLine struct {
	Item      models.Item     `json:"item"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// PricedCart is the cart as shown to the customer
type PricedCart struct {
	Kind  models.Kind     `json:"kind"`
	Lines []PricedLine    `json:"lines"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// Priced joins the cart with items loaded from the database. Lines whose item
// is missing from items, for example because it was deactivated, are skipped.
func (c *Cart) Priced(items []models.Item) PricedCart {
	byID := make(map[uint]models.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	pc := PricedCart{Kind: c.kind, Lines: []PricedLine{}, Total: decimal.Zero}
	for _, l := range c.Lines() {
		it, ok := byID[l.ItemID]
		if !ok {
			continue
		}
		unit := it.EffectivePrice()
		total := unit.Mul(decimal.NewFromInt(int64(l.Quantity)))
		pc.Lines = append(pc.Lines, PricedLine{Item: it, Quantity: l.Quantity, UnitPrice: unit, Total: total})
		pc.Count += l.Quantity
		pc.Total = pc.Total.Add(total)
	}
	return pc
}
