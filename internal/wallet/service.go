package wallet

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mirelabs/chatskins-backend/pkg/db/models"
	"github.com/mirelabs/chatskins-backend/pkg/enums"
	pkgerrors "github.com/mirelabs/chatskins-backend/pkg/errors"
	"github.com/mirelabs/chatskins-backend/pkg/events"
)

// ServiceParams groups dependencies for the wallet service.
type ServiceParams struct {
	Repo *Repository
	Bus  *events.Bus
}

// Service exposes coin balance operations. Debits are the purchase
// transaction's only money movement; they either fully apply or not at all.
type Service interface {
	Balance(ctx context.Context, userID uuid.UUID) (int, error)
	Credit(ctx context.Context, userID uuid.UUID, input EntryInput) (int, error)
	Debit(ctx context.Context, userID uuid.UUID, input EntryInput) (int, error)
	Entries(ctx context.Context, userID uuid.UUID, limit int) ([]models.WalletEntry, error)
}

// EntryInput describes one balance movement.
type EntryInput struct {
	Amount   int
	Note     string
	Metadata json.RawMessage
}

type service struct {
	repo *Repository
	bus  *events.Bus
}

// NewService wires a wallet service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wallet repo is required")
	}
	return &service{repo: params.Repo, bus: params.Bus}, nil
}

func (s *service) Balance(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	w, err := s.repo.Find(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wallet")
	}
	return w.BalanceCoins, nil
}

func (s *service) Credit(ctx context.Context, userID uuid.UUID, input EntryInput) (int, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.Amount <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "credit amount must be positive")
	}

	var newBalance int
	err := s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		w, err := txRepo.Find(ctx, userID)
		if err != nil {
			return err
		}
		w.BalanceCoins += input.Amount
		if err := txRepo.Save(ctx, w); err != nil {
			return err
		}
		entry := &models.WalletEntry{
			UserID:   userID,
			Amount:   input.Amount,
			Type:     enums.WalletEntryTypeCredit,
			Note:     input.Note,
			Metadata: input.Metadata,
		}
		if err := txRepo.AppendEntry(ctx, entry); err != nil {
			return err
		}
		newBalance = w.BalanceCoins
		return nil
	})
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "credit wallet")
	}

	s.notify(userID, "credit", newBalance)
	return newBalance, nil
}

func (s *service) Debit(ctx context.Context, userID uuid.UUID, input EntryInput) (int, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.Amount <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "debit amount must be positive")
	}

	var newBalance int
	err := s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		w, err := txRepo.Find(ctx, userID)
		if err != nil {
			return err
		}
		if w.BalanceCoins < input.Amount {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient balance").WithDetails(map[string]int{
				"balance": w.BalanceCoins,
				"price":   input.Amount,
			})
		}
		w.BalanceCoins -= input.Amount
		if err := txRepo.Save(ctx, w); err != nil {
			return err
		}
		entry := &models.WalletEntry{
			UserID:   userID,
			Amount:   -input.Amount,
			Type:     enums.WalletEntryTypePurchaseDebit,
			Note:     input.Note,
			Metadata: input.Metadata,
		}
		if err := txRepo.AppendEntry(ctx, entry); err != nil {
			return err
		}
		newBalance = w.BalanceCoins
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeStateConflict {
			return 0, typed
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "debit wallet")
	}

	s.notify(userID, "debit", newBalance)
	return newBalance, nil
}

func (s *service) Entries(ctx context.Context, userID uuid.UUID, limit int) ([]models.WalletEntry, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	entries, err := s.repo.ListEntries(ctx, userID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wallet entries")
	}
	return entries, nil
}

func (s *service) notify(userID uuid.UUID, action string, balance int) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.ChannelWallet, map[string]any{
		"user_id": userID.String(),
		"action":  action,
		"balance": balance,
	})
}
