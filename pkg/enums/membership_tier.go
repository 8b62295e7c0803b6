package enums

import "fmt"

// MembershipTier captures the paid tier attached to a user.
type MembershipTier string

const (
	MembershipTierNone       MembershipTier = "none"
	MembershipTierVIP        MembershipTier = "vip"
	MembershipTierSVIP       MembershipTier = "svip"
	MembershipTierAnnualSVIP MembershipTier = "annual-svip"
)

var validMembershipTiers = []MembershipTier{
	MembershipTierNone,
	MembershipTierVIP,
	MembershipTierSVIP,
	MembershipTierAnnualSVIP,
}

// String implements fmt.Stringer.
func (m MembershipTier) String() string {
	return string(m)
}

// IsValid reports whether the value matches a known MembershipTier.
func (m MembershipTier) IsValid() bool {
	for _, candidate := range validMembershipTiers {
		if candidate == m {
			return true
		}
	}
	return false
}

// IsSVIP reports whether the tier grants preset items for free.
func (m MembershipTier) IsSVIP() bool {
	return m == MembershipTierSVIP || m == MembershipTierAnnualSVIP
}

// ParseMembershipTier converts raw input into a MembershipTier.
func ParseMembershipTier(value string) (MembershipTier, error) {
	for _, candidate := range validMembershipTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid membership tier %q", value)
}
