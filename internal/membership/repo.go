package membership

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mirelabs/chatskins-backend/pkg/db/models"
	"github.com/mirelabs/chatskins-backend/pkg/enums"
)

// Repository reads membership records. Tiers are managed by an external
// billing system; this service only consumes them.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// TierProvider is the read surface pricing depends on.
type TierProvider interface {
	GetTier(ctx context.Context, userID uuid.UUID) (enums.MembershipTier, error)
}

// GetTier returns the user's current tier. A missing or expired record maps
// to the free tier.
func (r *Repository) GetTier(ctx context.Context, userID uuid.UUID) (enums.MembershipTier, error) {
	var record models.MembershipRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return enums.MembershipTierNone, nil
		}
		return enums.MembershipTierNone, err
	}
	if record.ExpiresAt != nil && record.ExpiresAt.Before(time.Now().UTC()) {
		return enums.MembershipTierNone, nil
	}
	if !record.Tier.IsValid() {
		return enums.MembershipTierNone, nil
	}
	return record.Tier, nil
}

// Upsert writes a membership record. Used by dev tooling and tests.
func (r *Repository) Upsert(ctx context.Context, userID uuid.UUID, tier enums.MembershipTier, expiresAt *time.Time) error {
	record := models.MembershipRecord{
		UserID:    userID,
		Tier:      tier,
		ExpiresAt: expiresAt,
	}
	return r.db.WithContext(ctx).Save(&record).Error
}
