package storynotes

import (
	"context"

	"gorm.io/gorm"

	"github.com/mirelabs/chatskins-backend/pkg/db/models"
)

// Repository owns plan/story note rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create records a note extracted from a chat message.
func (r *Repository) Create(ctx context.Context, note *models.StoryNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// ListByChat returns the notes recorded for one chat, newest first.
func (r *Repository) ListByChat(ctx context.Context, chatID string) ([]models.StoryNote, error) {
	var notes []models.StoryNote
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// DeleteByMsgIDs removes the notes whose originating messages are gone.
func (r *Repository) DeleteByMsgIDs(ctx context.Context, chatID string, msgIDs []string) (int64, error) {
	if len(msgIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("chat_id = ? AND msg_id IN ?", chatID, msgIDs).
		Delete(&models.StoryNote{})
	return result.RowsAffected, result.Error
}
