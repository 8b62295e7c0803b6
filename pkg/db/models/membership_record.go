package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mirelabs/chatskins-backend/pkg/enums"
)

// MembershipRecord is the read-only tier attached to a user. An absent row
// means the free tier.
type MembershipRecord struct {
	UserID    uuid.UUID            `gorm:"column:user_id;type:uuid;primaryKey"`
	Tier      enums.MembershipTier `gorm:"column:tier;not null;default:'none'"`
	ExpiresAt *time.Time           `gorm:"column:expires_at"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
