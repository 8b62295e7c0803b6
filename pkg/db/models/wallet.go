package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mirelabs/chatskins-backend/pkg/enums"
)

// Wallet holds the current coin balance for a user.
type Wallet struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	BalanceCoins int       `gorm:"column:balance_coins;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// WalletEntry is one append-only row on the coin ledger.
type WalletEntry struct {
	ID        uuid.UUID             `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index"`
	Amount    int                   `gorm:"column:amount;not null"`
	Type      enums.WalletEntryType `gorm:"column:type;not null"`
	Note      string                `gorm:"column:note"`
	Metadata  json.RawMessage       `gorm:"column:metadata;type:jsonb"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
}

// BeforeCreate assigns the entry id so the model works on both drivers.
func (e *WalletEntry) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
