package wallet

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mirelabs/chatskins-backend/pkg/db/models"
)

// Repository owns wallet rows and the append-only ledger.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// DB exposes the underlying connection for transaction orchestration.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// Find returns the wallet row, creating a zero-balance one on first access.
func (r *Repository) Find(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	var w models.Wallet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			w = models.Wallet{UserID: userID, BalanceCoins: 0}
			if createErr := r.db.WithContext(ctx).Create(&w).Error; createErr != nil {
				return nil, createErr
			}
			return &w, nil
		}
		return nil, err
	}
	return &w, nil
}

// Save persists the wallet row.
func (r *Repository) Save(ctx context.Context, w *models.Wallet) error {
	return r.db.WithContext(ctx).Save(w).Error
}

// AppendEntry writes one ledger row.
func (r *Repository) AppendEntry(ctx context.Context, entry *models.WalletEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListEntries returns the most recent ledger rows for the user.
func (r *Repository) ListEntries(ctx context.Context, userID uuid.UUID, limit int) ([]models.WalletEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []models.WalletEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
