package enums

// PriceReason explains why a quote came out the way it did.
type PriceReason string

const (
	PriceReasonOwned     PriceReason = "owned"
	PriceReasonSVIP      PriceReason = "svip"
	PriceReasonVIPDaily  PriceReason = "vip-daily"
	PriceReasonFullPrice PriceReason = "full-price"
)

// String implements fmt.Stringer.
func (p PriceReason) String() string {
	return string(p)
}

// IsFree reports whether the reason implies a zero final price.
func (p PriceReason) IsFree() bool {
	switch p {
	case PriceReasonOwned, PriceReasonSVIP, PriceReasonVIPDaily:
		return true
	}
	return false
}
