package catalog

import (
	"github.com/mirelabs/chatskins-backend/pkg/enums"
	pkgerrors "github.com/mirelabs/chatskins-backend/pkg/errors"
)

// CustomPrefix marks user-uploaded items. SVIP pricing never applies to them.
const CustomPrefix = "custom-"

// DefaultItemID is the free built-in skin every category starts on.
const DefaultItemID = "default"

// Item is one purchasable skin. Items are defined statically and never
// mutated at runtime.
type Item struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Price    int                `json:"price"`
	Type     string             `json:"type"`
	CSS      map[string]string  `json:"css,omitempty"`
	Category enums.SkinCategory `json:"category"`
}

// IsCustom reports whether the item is a user upload.
func (i Item) IsCustom() bool {
	return len(i.ID) >= len(CustomPrefix) && i.ID[:len(CustomPrefix)] == CustomPrefix
}

// Catalog indexes the static item sets by category and by id.
type Catalog struct {
	byCategory map[enums.SkinCategory][]Item
	byID       map[string]Item
}

// New builds a catalog from the provided item sets. Item ids must be unique
// across every category; later duplicates are dropped.
func New(itemSets map[enums.SkinCategory][]Item) *Catalog {
	c := &Catalog{
		byCategory: make(map[enums.SkinCategory][]Item),
		byID:       make(map[string]Item),
	}
	for category, items := range itemSets {
		for _, item := range items {
			if _, exists := c.byID[item.ID]; exists {
				continue
			}
			item.Category = category
			c.byID[item.ID] = item
			c.byCategory[category] = append(c.byCategory[category], item)
		}
	}
	return c
}

// Default returns the catalog shipped with the service.
func Default() *Catalog {
	return New(map[enums.SkinCategory][]Item{
		enums.SkinCategoryBubble: {
			{ID: "default", Name: "Classic", Price: 0, Type: "pure"},
			{ID: "bubble-mint", Name: "Mint", Price: 3, Type: "pure", CSS: map[string]string{"background": "#d6f5e3"}},
			{ID: "bubble-sakura", Name: "Sakura", Price: 3, Type: "pure", CSS: map[string]string{"background": "#fde8ef"}},
			{ID: "bubble-midnight", Name: "Midnight", Price: 5, Type: "gradient", CSS: map[string]string{"background": "linear-gradient(#1a1a2e,#16213e)"}},
			{ID: "bubble-aurora", Name: "Aurora", Price: 8, Type: "gradient", CSS: map[string]string{"background": "linear-gradient(120deg,#84fab0,#8fd3f4)"}},
		},
		enums.SkinCategoryAvatar: {
			{ID: "avatar-ring-gold", Name: "Gold Ring", Price: 4, Type: "frame"},
			{ID: "avatar-ring-neon", Name: "Neon Ring", Price: 6, Type: "frame"},
			{ID: "avatar-glow", Name: "Soft Glow", Price: 2, Type: "effect"},
		},
		enums.SkinCategoryTheme: {
			{ID: "theme-paper", Name: "Paper", Price: 5, Type: "light"},
			{ID: "theme-terminal", Name: "Terminal", Price: 7, Type: "dark"},
			{ID: "theme-dusk", Name: "Dusk", Price: 10, Type: "dark"},
		},
	})
}

// Items returns the items of one category in declaration order.
func (c *Catalog) Items(category enums.SkinCategory) []Item {
	items := c.byCategory[category]
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Find looks an item up by id across every category.
func (c *Catalog) Find(id string) (Item, error) {
	if item, ok := c.byID[id]; ok {
		return item, nil
	}
	return Item{}, pkgerrors.New(pkgerrors.CodeNotFound, "item not found").WithDetails(map[string]string{"item_id": id})
}

// FindInCategory looks an item up by id within one category.
func (c *Catalog) FindInCategory(category enums.SkinCategory, id string) (Item, error) {
	item, err := c.Find(id)
	if err != nil {
		return Item{}, err
	}
	if item.Category != category {
		return Item{}, pkgerrors.New(pkgerrors.CodeNotFound, "item not in category").WithDetails(map[string]string{
			"item_id":  id,
			"category": category.String(),
		})
	}
	return item, nil
}
