package statestore

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStateTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS state_documents (
  user_id TEXT NOT NULL,
  doc_key TEXT NOT NULL,
  value TEXT NOT NULL,
  updated_at DATETIME,
  PRIMARY KEY (user_id, doc_key)
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestGormStoreRoundTrip(t *testing.T) {
	store := NewGormStore(setupStateTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	_, found, err := store.Get(ctx, userID, "userCustomization")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, userID, "userCustomization", []byte(`{"owned":["bubble-1"]}`)))

	value, found, err := store.Get(ctx, userID, "userCustomization")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"owned":["bubble-1"]}`, string(value))
}

func TestGormStoreUpsertReplaces(t *testing.T) {
	store := NewGormStore(setupStateTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.Set(ctx, userID, "doc", []byte(`{"v":1}`)))
	require.NoError(t, store.Set(ctx, userID, "doc", []byte(`{"v":2}`)))

	value, found, err := store.Get(ctx, userID, "doc")
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"v":2}`, string(value))
}

func TestGormStoreIsolatesUsers(t *testing.T) {
	store := NewGormStore(setupStateTestDB(t))
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	require.NoError(t, store.Set(ctx, alice, "doc", []byte(`{"who":"alice"}`)))

	_, found, err := store.Get(ctx, bob, "doc")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()

	original := []byte(`{"v":1}`)
	require.NoError(t, store.Set(ctx, userID, "doc", original))
	original[2] = 'x'

	value, found, err := store.Get(ctx, userID, "doc")
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"v":1}`, string(value))
}
