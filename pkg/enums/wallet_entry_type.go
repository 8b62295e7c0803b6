package enums

import "fmt"

// WalletEntryType labels entries on the coin ledger.
type WalletEntryType string

const (
	WalletEntryTypeCredit        WalletEntryType = "credit"
	WalletEntryTypePurchaseDebit WalletEntryType = "purchase_debit"
)

var validWalletEntryTypes = []WalletEntryType{
	WalletEntryTypeCredit,
	WalletEntryTypePurchaseDebit,
}

// String implements fmt.Stringer.
func (w WalletEntryType) String() string {
	return string(w)
}

// IsValid reports whether the value matches a known WalletEntryType.
func (w WalletEntryType) IsValid() bool {
	for _, candidate := range validWalletEntryTypes {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseWalletEntryType converts raw input into a WalletEntryType.
func ParseWalletEntryType(value string) (WalletEntryType, error) {
	for _, candidate := range validWalletEntryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wallet entry type %q", value)
}
