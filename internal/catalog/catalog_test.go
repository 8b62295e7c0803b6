package catalog

import (
	"testing"

	"github.com/mirelabs/chatskins-backend/pkg/enums"
	pkgerrors "github.com/mirelabs/chatskins-backend/pkg/errors"
)

func TestDefaultCatalogIDsAreGloballyUnique(t *testing.T) {
	c := Default()
	seen := map[string]bool{}
	for _, category := range enums.SkinCategories() {
		for _, item := range c.Items(category) {
			if seen[item.ID] {
				t.Fatalf("duplicate item id %q", item.ID)
			}
			seen[item.ID] = true
		}
	}
}

func TestFindCrossCategory(t *testing.T) {
	c := Default()
	item, err := c.Find("theme-dusk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Category != enums.SkinCategoryTheme {
		t.Fatalf("expected theme category, got %s", item.Category)
	}
}

func TestFindUnknownReturnsNotFound(t *testing.T) {
	c := Default()
	_, err := c.Find("nope")
	if err == nil {
		t.Fatal("expected error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestFindInCategoryRejectsMismatch(t *testing.T) {
	c := Default()
	if _, err := c.FindInCategory(enums.SkinCategoryBubble, "theme-dusk"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestIsCustom(t *testing.T) {
	if !(Item{ID: "custom-123"}).IsCustom() {
		t.Fatal("custom- prefix should flag custom items")
	}
	if (Item{ID: "bubble-mint"}).IsCustom() {
		t.Fatal("preset item flagged custom")
	}
}

func TestNewDropsDuplicateIDs(t *testing.T) {
	c := New(map[enums.SkinCategory][]Item{
		enums.SkinCategoryBubble: {{ID: "x", Price: 1}, {ID: "x", Price: 9}},
	})
	item, err := c.Find("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Price != 1 {
		t.Fatalf("first registration should win, got price %d", item.Price)
	}
}
