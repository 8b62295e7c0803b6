package customization

import (
	"time"

	"github.com/mirelabs/chatskins-backend/pkg/enums"
)

// Document keys under which customization state is stored.
const (
	DocKeyUser       = "userCustomization"
	DocKeyCharacters = "characterCustomization"
)

// DateLayout is the calendar-day format used by the daily quota record.
const DateLayout = "2006-01-02"

// Scope describes how broadly an applied skin takes effect.
type Scope struct {
	Type        enums.ScopeType `json:"type"`
	CharacterID string          `json:"character_id,omitempty"`
}

// DailyUse tracks free VIP uses consumed per category on one calendar day.
type DailyUse struct {
	Date   string `json:"date"`
	Bubble int    `json:"bubble"`
	Avatar int    `json:"avatar"`
	Theme  int    `json:"theme"`
}

// Count returns the consumed uses for one category.
func (d DailyUse) Count(category enums.SkinCategory) int {
	switch category {
	case enums.SkinCategoryBubble:
		return d.Bubble
	case enums.SkinCategoryAvatar:
		return d.Avatar
	case enums.SkinCategoryTheme:
		return d.Theme
	}
	return 0
}

// Consume increments the counter for one category.
func (d *DailyUse) Consume(category enums.SkinCategory) {
	switch category {
	case enums.SkinCategoryBubble:
		d.Bubble++
	case enums.SkinCategoryAvatar:
		d.Avatar++
	case enums.SkinCategoryTheme:
		d.Theme++
	}
}

// State is the persisted per-user customization record.
type State struct {
	Owned       []string                      `json:"owned"`
	Current     map[enums.SkinCategory]string `json:"current"`
	VipDailyUse DailyUse                      `json:"vip_daily_use"`
	Scopes      map[string]Scope              `json:"scopes"`
}

// NewState builds the defaults written on first read.
func NewState(today string) *State {
	current := make(map[enums.SkinCategory]string, len(enums.SkinCategories()))
	for _, category := range enums.SkinCategories() {
		current[category] = "default"
	}
	return &State{
		Owned:       []string{},
		Current:     current,
		VipDailyUse: DailyUse{Date: today},
		Scopes:      make(map[string]Scope),
	}
}

// Owns reports whether the item id is in the owned set.
func (s *State) Owns(itemID string) bool {
	for _, id := range s.Owned {
		if id == itemID {
			return true
		}
	}
	return false
}

// AddOwned appends the item id if absent. The owned set only grows.
func (s *State) AddOwned(itemID string) bool {
	if s.Owns(itemID) {
		return false
	}
	s.Owned = append(s.Owned, itemID)
	return true
}

// ResetDailyUseIfStale zeroes the counters when the stored date is not
// today. Returns whether a reset happened.
func (s *State) ResetDailyUseIfStale(now time.Time, loc *time.Location) bool {
	today := now.In(loc).Format(DateLayout)
	if s.VipDailyUse.Date == today {
		return false
	}
	s.VipDailyUse = DailyUse{Date: today}
	return true
}

// CharacterOverride pins skins for conversations with one character.
type CharacterOverride struct {
	UserBubble      string `json:"user_bubble,omitempty"`
	CharacterBubble string `json:"character_bubble,omitempty"`
	Avatar          string `json:"avatar,omitempty"`
	Theme           string `json:"theme,omitempty"`
}

// CharacterOverrides maps character ids to their pinned skins.
type CharacterOverrides map[string]CharacterOverride
