package entity

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Item represents a sellable catalog item (pizza, beverage, topping, etc.).
// Items are owned by the catalog backend; this service never mutates them
// outside of the CRUD calls it proxies.
type Item struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// NormalizeType lowercases the free-form category so the catalog stays
// consistent regardless of how the operator typed it.
func (i *Item) NormalizeType() {
	i.Type = strings.ToLower(strings.TrimSpace(i.Type))
}

// ItemJSON is a helper struct for JSON marshaling with a bare-number price.
type ItemJSON struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Price       json.Number `json:"price"`
	Description string      `json:"description"`
}

// MarshalJSON emits the price as a plain JSON number, matching the backend
// wire format. decimal.Decimal would otherwise marshal as a quoted string.
func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(ItemJSON{
		ID:          i.ID,
		Name:        i.Name,
		Type:        i.Type,
		Price:       json.Number(i.Price.String()),
		Description: i.Description,
	})
}

// ItemLookup resolves catalog item ids to items, typically for display-name
// resolution at print time. It is an explicit collaborator rather than an
// ambient fetched-array state.
type ItemLookup map[int]Item

// NewItemLookup builds a lookup keyed by item id.
func NewItemLookup(items []Item) ItemLookup {
	lookup := make(ItemLookup, len(items))
	for _, item := range items {
		lookup[item.ID] = item
	}
	return lookup
}

// DisplayName returns the item's name, or a synthetic "Item #<id>" label when
// the id no longer exists in the catalog (e.g. deleted after invoicing).
func (l ItemLookup) DisplayName(itemID int) string {
	if item, ok := l[itemID]; ok {
		return item.Name
	}
	return SyntheticItemName(itemID)
}

// SyntheticItemName is the fallback label for invoice lines whose catalog
// item has been deleted since the invoice was created.
func SyntheticItemName(itemID int) string {
	return "Item #" + strconv.Itoa(itemID)
}
