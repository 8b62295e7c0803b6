package signature

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mirelabs/chatskins-backend/pkg/db/models"
)

// Repository owns signature history rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Record appends a new signature and makes it the active one.
func (r *Repository) Record(ctx context.Context, entry *models.SignatureEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.SignatureEntry{}).
			Where("user_id = ?", entry.UserID).
			Update("active", false).Error
		if err != nil {
			return err
		}
		entry.Active = true
		return tx.Create(entry).Error
	})
}

// FindByMsgIDs returns the entries created by the given messages.
func (r *Repository) FindByMsgIDs(ctx context.Context, msgIDs []string) ([]models.SignatureEntry, error) {
	if len(msgIDs) == 0 {
		return nil, nil
	}
	var entries []models.SignatureEntry
	err := r.db.WithContext(ctx).
		Where("msg_id IN ?", msgIDs).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteByIDs removes the given entries.
func (r *Repository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&models.SignatureEntry{})
	return result.RowsAffected, result.Error
}

// Latest returns the user's most recent remaining entry, or nil.
func (r *Repository) Latest(ctx context.Context, userID uuid.UUID) (*models.SignatureEntry, error) {
	var entry models.SignatureEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// Active returns the user's active entry, or nil.
func (r *Repository) Active(ctx context.Context, userID uuid.UUID) (*models.SignatureEntry, error) {
	var entry models.SignatureEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// Activate marks one entry as the user's active signature.
func (r *Repository) Activate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.SignatureEntry{}).
		Where("id = ?", id).
		Update("active", true).Error
}
