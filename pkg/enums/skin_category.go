package enums

import "fmt"

// SkinCategory identifies a customization slot.
type SkinCategory string

const (
	SkinCategoryBubble SkinCategory = "bubble"
	SkinCategoryAvatar SkinCategory = "avatar"
	SkinCategoryTheme  SkinCategory = "theme"
)

var validSkinCategories = []SkinCategory{
	SkinCategoryBubble,
	SkinCategoryAvatar,
	SkinCategoryTheme,
}

// SkinCategories returns every known category in declaration order.
func SkinCategories() []SkinCategory {
	out := make([]SkinCategory, len(validSkinCategories))
	copy(out, validSkinCategories)
	return out
}

// String implements fmt.Stringer.
func (s SkinCategory) String() string {
	return string(s)
}

// IsValid reports whether the value matches a known SkinCategory.
func (s SkinCategory) IsValid() bool {
	for _, candidate := range validSkinCategories {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSkinCategory converts raw input into a SkinCategory.
func ParseSkinCategory(value string) (SkinCategory, error) {
	for _, candidate := range validSkinCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid skin category %q", value)
}
