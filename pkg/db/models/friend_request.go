package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mirelabs/chatskins-backend/pkg/enums"
)

// FriendRequest records an in-chat friend request created by an AI message.
// MsgID is the back-reference used to roll the request back when that
// message is deleted.
type FriendRequest struct {
	ID          uuid.UUID                 `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID                 `gorm:"column:user_id;type:uuid;not null;index"`
	CharacterID string                    `gorm:"column:character_id;not null"`
	ChatID      string                    `gorm:"column:chat_id;not null;index"`
	MsgID       string                    `gorm:"column:msg_id;not null;index"`
	Status      enums.FriendRequestStatus `gorm:"column:status;not null;default:'pending'"`
	CreatedAt   time.Time                 `gorm:"column:created_at;autoCreateTime"`
}

func (f *FriendRequest) BeforeCreate(_ *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
