package purchase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mirelabs/chatskins-backend/internal/catalog"
	"github.com/mirelabs/chatskins-backend/internal/customization"
	"github.com/mirelabs/chatskins-backend/internal/pricing"
	"github.com/mirelabs/chatskins-backend/internal/wallet"
	"github.com/mirelabs/chatskins-backend/pkg/enums"
	pkgerrors "github.com/mirelabs/chatskins-backend/pkg/errors"
	"github.com/mirelabs/chatskins-backend/pkg/events"
	"github.com/mirelabs/chatskins-backend/pkg/logger"
	"github.com/mirelabs/chatskins-backend/pkg/metrics"
)

// Result reasons surfaced to the client. A purchase never returns a thrown
// error for a business rejection; it returns one of these.
const (
	ReasonOK                  = "ok"
	ReasonAlreadyOwned        = "already-owned"
	ReasonInsufficientBalance = "insufficient-balance"
	ReasonPaymentFailed       = "payment-failed"
	ReasonInFlight            = "purchase-in-flight"
)

const defaultLockTTL = 10 * time.Second

// Locker serializes purchases per user and category. The VIP daily-free
// slot is consumed between a read and a write of the same document; without
// the mutex two overlapping purchases could both see an unused slot.
type Locker interface {
	AcquirePurchaseLock(ctx context.Context, userID, category string, ttl time.Duration) (bool, error)
	ReleasePurchaseLock(ctx context.Context, userID, category string) error
}

// Eligibility is the read-only answer to "can this user buy this item now".
type Eligibility struct {
	CanPurchase bool              `json:"can_purchase"`
	Reason      string            `json:"reason"`
	IsFree      bool              `json:"is_free"`
	FreeReason  enums.PriceReason `json:"free_reason,omitempty"`
	Price       int               `json:"price"`
	Balance     int               `json:"balance"`
}

// Result is the outcome of one purchase attempt.
type Result struct {
	Success    bool   `json:"success"`
	Reason     string `json:"reason"`
	ItemID     string `json:"item_id"`
	NewBalance int    `json:"new_balance"`
	Detail     string `json:"detail,omitempty"`
}

// ServiceParams groups dependencies for the purchase service.
type ServiceParams struct {
	Catalog       *catalog.Catalog
	Customization *customization.Repository
	Pricing       *pricing.Engine
	Wallet        wallet.Service
	Locker        Locker
	Bus           *events.Bus
	Metrics       *metrics.ShopMetrics
	Logger        *logger.Logger
	LockTTL       time.Duration
}

// Service orchestrates eligibility, payment and ownership recording.
type Service interface {
	CheckEligibility(ctx context.Context, userID uuid.UUID, itemID string, category enums.SkinCategory) (Eligibility, error)
	Purchase(ctx context.Context, userID uuid.UUID, itemID string, category enums.SkinCategory) (Result, error)
}

type service struct {
	cat     *catalog.Catalog
	repo    *customization.Repository
	pricing *pricing.Engine
	wallet  wallet.Service
	locker  Locker
	bus     *events.Bus
	metrics *metrics.ShopMetrics
	logg    *logger.Logger
	lockTTL time.Duration
}

// NewService wires a purchase service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog is required")
	}
	if params.Customization == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customization repo is required")
	}
	if params.Pricing == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pricing engine is required")
	}
	if params.Wallet == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wallet service is required")
	}
	if params.Locker == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchase locker is required")
	}
	ttl := params.LockTTL
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &service{
		cat:     params.Catalog,
		repo:    params.Customization,
		pricing: params.Pricing,
		wallet:  params.Wallet,
		locker:  params.Locker,
		bus:     params.Bus,
		metrics: params.Metrics,
		logg:    params.Logger,
		lockTTL: ttl,
	}, nil
}

func (s *service) CheckEligibility(ctx context.Context, userID uuid.UUID, itemID string, category enums.SkinCategory) (Eligibility, error) {
	item, state, err := s.resolve(ctx, userID, itemID, category)
	if err != nil {
		return Eligibility{}, err
	}
	return s.deriveEligibility(ctx, userID, item, category, state)
}

func (s *service) Purchase(ctx context.Context, userID uuid.UUID, itemID string, category enums.SkinCategory) (Result, error) {
	item, _, err := s.resolve(ctx, userID, itemID, category)
	if err != nil {
		return Result{}, err
	}

	acquired, err := s.locker.AcquirePurchaseLock(ctx, userID.String(), category.String(), s.lockTTL)
	if err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire purchase lock")
	}
	if !acquired {
		s.metrics.IncPurchaseFailure(ReasonInFlight)
		return Result{Success: false, Reason: ReasonInFlight, ItemID: item.ID}, nil
	}
	defer func() {
		if releaseErr := s.locker.ReleasePurchaseLock(context.WithoutCancel(ctx), userID.String(), category.String()); releaseErr != nil && s.logg != nil {
			s.logg.Error(ctx, "release purchase lock", releaseErr)
		}
	}()

	// Eligibility is re-derived under the lock. A quote handed to the
	// client earlier may be stale.
	state, err := s.repo.Load(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	eligibility, err := s.deriveEligibility(ctx, userID, item, category, state)
	if err != nil {
		return Result{}, err
	}
	if !eligibility.CanPurchase {
		s.metrics.IncPurchaseFailure(eligibility.Reason)
		return Result{Success: false, Reason: eligibility.Reason, ItemID: item.ID, NewBalance: eligibility.Balance}, nil
	}

	newBalance := eligibility.Balance
	reason := eligibility.FreeReason
	if !eligibility.IsFree {
		reason = enums.PriceReasonFullPrice
		newBalance, err = s.wallet.Debit(ctx, userID, wallet.EntryInput{
			Amount: eligibility.Price,
			Note:   item.ID,
		})
		if err != nil {
			// Payment failures leave ownership and quota untouched and
			// come back as a structured result, not an error.
			s.metrics.IncPurchaseFailure(ReasonPaymentFailed)
			result := Result{Success: false, Reason: ReasonPaymentFailed, ItemID: item.ID}
			if typed := pkgerrors.As(err); typed != nil {
				result.Detail = typed.Message()
				if typed.Code() == pkgerrors.CodeStateConflict {
					result.Reason = ReasonInsufficientBalance
				}
			}
			if s.logg != nil {
				s.logg.Error(ctx, "purchase debit failed", err)
			}
			return result, nil
		}
	}

	if reason == enums.PriceReasonVIPDaily {
		state.VipDailyUse.Consume(category)
	}
	state.AddOwned(item.ID)
	if err := s.repo.Save(ctx, userID, state); err != nil {
		return Result{}, err
	}

	s.metrics.IncPurchase(category.String(), reason.String())
	s.notify(userID, item, category, reason, newBalance)
	return Result{Success: true, Reason: ReasonOK, ItemID: item.ID, NewBalance: newBalance}, nil
}

func (s *service) resolve(ctx context.Context, userID uuid.UUID, itemID string, category enums.SkinCategory) (catalog.Item, *customization.State, error) {
	if userID == uuid.Nil {
		return catalog.Item{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if !category.IsValid() {
		return catalog.Item{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid skin category")
	}
	item, err := s.cat.FindInCategory(category, itemID)
	if err != nil {
		return catalog.Item{}, nil, err
	}
	state, err := s.repo.Load(ctx, userID)
	if err != nil {
		return catalog.Item{}, nil, err
	}
	return item, state, nil
}

func (s *service) deriveEligibility(ctx context.Context, userID uuid.UUID, item catalog.Item, category enums.SkinCategory, state *customization.State) (Eligibility, error) {
	balance, err := s.wallet.Balance(ctx, userID)
	if err != nil {
		return Eligibility{}, err
	}

	if state.Owns(item.ID) {
		return Eligibility{CanPurchase: false, Reason: ReasonAlreadyOwned, Balance: balance}, nil
	}

	quote, err := s.pricing.Calculate(ctx, userID, item, category, state)
	if err != nil {
		return Eligibility{}, err
	}
	if quote.IsFree {
		return Eligibility{
			CanPurchase: true,
			Reason:      ReasonOK,
			IsFree:      true,
			FreeReason:  quote.Reason,
			Balance:     balance,
		}, nil
	}
	if balance < quote.FinalPrice {
		return Eligibility{
			CanPurchase: false,
			Reason:      ReasonInsufficientBalance,
			Price:       quote.FinalPrice,
			Balance:     balance,
		}, nil
	}
	return Eligibility{
		CanPurchase: true,
		Reason:      ReasonOK,
		Price:       quote.FinalPrice,
		Balance:     balance,
	}, nil
}

func (s *service) notify(userID uuid.UUID, item catalog.Item, category enums.SkinCategory, reason enums.PriceReason, balance int) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.ChannelUserCustomization, map[string]any{
		"user_id":  userID.String(),
		"action":   "purchase",
		"item_id":  item.ID,
		"category": category.String(),
		"reason":   reason.String(),
		"balance":  balance,
	})
}
