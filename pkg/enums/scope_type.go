package enums

import "fmt"

// ScopeType describes how broadly an applied skin takes effect.
type ScopeType string

const (
	ScopeTypeUserOnly      ScopeType = "user-only"
	ScopeTypeCharacterOnly ScopeType = "character-only"
	ScopeTypeAll           ScopeType = "all"
)

var validScopeTypes = []ScopeType{
	ScopeTypeUserOnly,
	ScopeTypeCharacterOnly,
	ScopeTypeAll,
}

// String implements fmt.Stringer.
func (s ScopeType) String() string {
	return string(s)
}

// IsValid reports whether the value matches a known ScopeType.
func (s ScopeType) IsValid() bool {
	for _, candidate := range validScopeTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseScopeType converts raw input into a ScopeType.
func ParseScopeType(value string) (ScopeType, error) {
	for _, candidate := range validScopeTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid scope type %q", value)
}
