package friendrequest

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mirelabs/chatskins-backend/pkg/db/models"
	"github.com/mirelabs/chatskins-backend/pkg/enums"
)

// Repository owns friend request rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create records a friend request extracted from a chat message.
func (r *Repository) Create(ctx context.Context, request *models.FriendRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// ListByChat returns the requests recorded for one chat, newest first.
func (r *Repository) ListByChat(ctx context.Context, chatID string) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateStatus transitions a pending request.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.FriendRequestStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// DeleteByMsgIDs removes the pending requests whose originating messages
// are gone. Requests the user already answered stay; rows already absent
// are simply not counted.
func (r *Repository) DeleteByMsgIDs(ctx context.Context, chatID string, msgIDs []string) (int64, error) {
	if len(msgIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("chat_id = ? AND msg_id IN ? AND status = ?", chatID, msgIDs, enums.FriendRequestStatusPending).
		Delete(&models.FriendRequest{})
	return result.RowsAffected, result.Error
}
