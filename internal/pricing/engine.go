package pricing

import (
	"context"

	"github.com/google/uuid"

	"github.com/mirelabs/chatskins-backend/internal/catalog"
	"github.com/mirelabs/chatskins-backend/internal/customization"
	"github.com/mirelabs/chatskins-backend/internal/membership"
	"github.com/mirelabs/chatskins-backend/pkg/enums"
	pkgerrors "github.com/mirelabs/chatskins-backend/pkg/errors"
)

// Quote is one price decision. It explains itself so the client can render
// a badge without re-deriving the rules.
type Quote struct {
	ItemID     string            `json:"item_id"`
	FinalPrice int               `json:"final_price"`
	IsFree     bool              `json:"is_free"`
	Reason     enums.PriceReason `json:"reason"`
	PriceLabel string            `json:"price_label"`
}

// Engine computes effective prices from ownership, membership tier and the
// per-category daily free-use counters. It never mutates state; callers may
// invoke it repeatedly for display without consuming quota.
type Engine struct {
	tiers membership.TierProvider
}

// NewEngine wires a pricing engine over the membership read surface.
func NewEngine(tiers membership.TierProvider) (*Engine, error) {
	if tiers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tier provider is required")
	}
	return &Engine{tiers: tiers}, nil
}

// Calculate resolves the effective price for one item. Precedence: owned
// beats everything, then the SVIP blanket discount (custom uploads
// excluded), then the VIP one-free-per-category-per-day slot, then full
// price.
func (e *Engine) Calculate(ctx context.Context, userID uuid.UUID, item catalog.Item, category enums.SkinCategory, state *customization.State) (Quote, error) {
	if state == nil {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "customization state is required")
	}
	if !category.IsValid() {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid skin category")
	}

	if state.Owns(item.ID) {
		return Quote{
			ItemID:     item.ID,
			FinalPrice: 0,
			IsFree:     true,
			Reason:     enums.PriceReasonOwned,
			PriceLabel: "already-owned",
		}, nil
	}

	tier, err := e.tiers.GetTier(ctx, userID)
	if err != nil {
		return Quote{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve membership tier")
	}

	if tier.IsSVIP() && !item.IsCustom() {
		return Quote{
			ItemID:     item.ID,
			FinalPrice: 0,
			IsFree:     true,
			Reason:     enums.PriceReasonSVIP,
			PriceLabel: "svip-free",
		}, nil
	}

	if tier == enums.MembershipTierVIP && state.VipDailyUse.Count(category) == 0 {
		return Quote{
			ItemID:     item.ID,
			FinalPrice: 0,
			IsFree:     true,
			Reason:     enums.PriceReasonVIPDaily,
			PriceLabel: "one-free-today",
		}, nil
	}

	return Quote{
		ItemID:     item.ID,
		FinalPrice: item.Price,
		IsFree:     false,
		Reason:     enums.PriceReasonFullPrice,
		PriceLabel: "full-price",
	}, nil
}
