package membership

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mirelabs/chatskins-backend/pkg/enums"
)

func setupMembershipTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS membership_records (
  user_id TEXT PRIMARY KEY,
  tier TEXT NOT NULL DEFAULT 'none',
  expires_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestGetTierDefaultsToNone(t *testing.T) {
	repo := NewRepository(setupMembershipTestDB(t))

	tier, err := repo.GetTier(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, enums.MembershipTierNone, tier)
}

func TestGetTierReturnsStoredTier(t *testing.T) {
	repo := NewRepository(setupMembershipTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Upsert(ctx, userID, enums.MembershipTierSVIP, nil))

	tier, err := repo.GetTier(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, enums.MembershipTierSVIP, tier)
}

func TestGetTierExpiredFallsBackToNone(t *testing.T) {
	repo := NewRepository(setupMembershipTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	require.NoError(t, repo.Upsert(ctx, userID, enums.MembershipTierVIP, &yesterday))

	tier, err := repo.GetTier(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, enums.MembershipTierNone, tier)
}
