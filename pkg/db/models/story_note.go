package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoryNote is a plan/story note extracted from an AI message. MsgID points
// back at the originating message for rollback.
type StoryNote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	ChatID    string    `gorm:"column:chat_id;not null;index"`
	MsgID     string    `gorm:"column:msg_id;not null;index"`
	Title     string    `gorm:"column:title"`
	Content   string    `gorm:"column:content;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (s *StoryNote) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
