package signature

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mirelabs/chatskins-backend/internal/rollback"
	"github.com/mirelabs/chatskins-backend/pkg/db/models"
	"github.com/mirelabs/chatskins-backend/pkg/events"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS signature_entries (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  msg_id TEXT NOT NULL,
  signature TEXT NOT NULL,
  active INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func record(t *testing.T, repo *Repository, userID uuid.UUID, msgID, text string) *models.SignatureEntry {
	t.Helper()
	entry := &models.SignatureEntry{UserID: userID, MsgID: msgID, Signature: text}
	require.NoError(t, repo.Record(context.Background(), entry))
	return entry
}

func TestRecordKeepsSingleActiveEntry(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	record(t, repo, userID, "m1", "wanderer of the void")
	second := record(t, repo, userID, "m2", "void, but fancier")

	active, err := repo.Active(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
}

func TestRollbackRestoresPreviousActiveSignature(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	bus := events.NewBus(nil)
	handler, err := New(repo, bus, nil)
	require.NoError(t, err)

	ctx := context.Background()
	userID := uuid.New()
	first := record(t, repo, userID, "m1", "old signature")
	record(t, repo, userID, "m2", "regenerated signature")

	var payloads []any
	bus.Subscribe("test", events.ChannelSignature, func(p any) { payloads = append(payloads, p) })

	deleted := []rollback.Message{{ID: "m2", Type: MessageType}}
	require.NoError(t, handler.RollbackHandler().Run(ctx, "chat-1", deleted, []string{"m2"}))

	active, err := repo.Active(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, first.ID, active.ID)
	assert.Len(t, payloads, 1)
}

func TestRollbackLastEntryLeavesNoActiveSignature(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	handler, err := New(repo, nil, nil)
	require.NoError(t, err)

	ctx := context.Background()
	userID := uuid.New()
	record(t, repo, userID, "m1", "only signature")

	deleted := []rollback.Message{{ID: "m1", Type: MessageType}}
	require.NoError(t, handler.RollbackHandler().Run(ctx, "chat-1", deleted, []string{"m1"}))

	active, err := repo.Active(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestRollbackIgnoresUntypedMessages(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	handler, err := New(repo, nil, nil)
	require.NoError(t, err)

	ctx := context.Background()
	userID := uuid.New()
	record(t, repo, userID, "m1", "stays put")

	deleted := []rollback.Message{{ID: "m1", Content: "signature-looking text"}}
	require.NoError(t, handler.RollbackHandler().Run(ctx, "chat-1", deleted, []string{"m1"}))

	active, err := repo.Active(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, active)
}

func TestRollbackInactiveEntryDoesNotTouchActive(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	handler, err := New(repo, nil, nil)
	require.NoError(t, err)

	ctx := context.Background()
	userID := uuid.New()
	record(t, repo, userID, "m1", "old")
	current := record(t, repo, userID, "m2", "current")

	deleted := []rollback.Message{{ID: "m1", Type: MessageType}}
	require.NoError(t, handler.RollbackHandler().Run(ctx, "chat-1", deleted, []string{"m1"}))

	active, err := repo.Active(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, current.ID, active.ID)
}
