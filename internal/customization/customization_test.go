package customization

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirelabs/chatskins-backend/internal/catalog"
	"github.com/mirelabs/chatskins-backend/internal/statestore"
	"github.com/mirelabs/chatskins-backend/pkg/enums"
	pkgerrors "github.com/mirelabs/chatskins-backend/pkg/errors"
	"github.com/mirelabs/chatskins-backend/pkg/events"
)

func newTestRepo(t *testing.T) (*Repository, *statestore.MemoryStore) {
	t.Helper()
	store := statestore.NewMemoryStore()
	return NewRepository(store, time.UTC), store
}

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	repo, _ := newTestRepo(t)
	svc, err := NewService(ServiceParams{
		Repo:    repo,
		Catalog: catalog.Default(),
		Bus:     events.NewBus(nil),
	})
	require.NoError(t, err)
	return svc, repo
}

func TestLoadCreatesDefaults(t *testing.T) {
	repo, _ := newTestRepo(t)

	state, err := repo.Load(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Empty(t, state.Owned)
	for _, category := range enums.SkinCategories() {
		assert.Equal(t, "default", state.Current[category])
	}
	assert.Zero(t, state.VipDailyUse.Bubble)
	assert.Zero(t, state.VipDailyUse.Avatar)
	assert.Zero(t, state.VipDailyUse.Theme)
	assert.Equal(t, time.Now().UTC().Format(DateLayout), state.VipDailyUse.Date)
}

func TestLoadResetsStaleDailyUse(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(DateLayout)
	stale := NewState(yesterday)
	stale.VipDailyUse.Bubble = 1
	require.NoError(t, repo.Save(ctx, userID, stale))

	state, err := repo.Load(ctx, userID)
	require.NoError(t, err)

	today := time.Now().UTC().Format(DateLayout)
	assert.Equal(t, today, state.VipDailyUse.Date)
	assert.Zero(t, state.VipDailyUse.Bubble)
	assert.Zero(t, state.VipDailyUse.Avatar)
	assert.Zero(t, state.VipDailyUse.Theme)

	// The reset is persisted, not just returned.
	raw, found, err := store.Get(ctx, userID, DocKeyUser)
	require.NoError(t, err)
	require.True(t, found)
	var persisted State
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, today, persisted.VipDailyUse.Date)
	assert.Zero(t, persisted.VipDailyUse.Bubble)
}

func TestLoadSameDayKeepsCounters(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	today := time.Now().UTC().Format(DateLayout)
	state := NewState(today)
	state.VipDailyUse.Theme = 1
	require.NoError(t, repo.Save(ctx, userID, state))

	loaded, err := repo.Load(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.VipDailyUse.Theme)
}

func TestLoadMalformedDocumentFallsBackToDefaults(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.Set(ctx, userID, DocKeyUser, []byte("{not json")))

	state, err := repo.Load(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, state.Owned)
	assert.Equal(t, "default", state.Current[enums.SkinCategoryBubble])
}

func TestAddOwnedDeduplicates(t *testing.T) {
	state := NewState("2026-08-31")

	assert.True(t, state.AddOwned("bubble-mint"))
	assert.False(t, state.AddOwned("bubble-mint"))
	assert.Len(t, state.Owned, 1)
}

func TestApplyRequiresOwnership(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Apply(context.Background(), uuid.New(), ApplyInput{
		ItemID:   "bubble-mint",
		Category: enums.SkinCategoryBubble,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestApplyOwnedItem(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	state, err := repo.Load(ctx, userID)
	require.NoError(t, err)
	state.AddOwned("bubble-mint")
	require.NoError(t, repo.Save(ctx, userID, state))

	applied, err := svc.Apply(ctx, userID, ApplyInput{
		ItemID:   "bubble-mint",
		Category: enums.SkinCategoryBubble,
		Scope:    Scope{Type: enums.ScopeTypeUserOnly},
	})
	require.NoError(t, err)
	assert.Equal(t, "bubble-mint", applied.Current[enums.SkinCategoryBubble])
	assert.Equal(t, enums.ScopeTypeUserOnly, applied.Scopes["bubble-mint"].Type)
}

func TestApplyKeepsScopePerItem(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	state, err := repo.Load(ctx, userID)
	require.NoError(t, err)
	state.AddOwned("bubble-mint")
	state.AddOwned("bubble-sakura")
	require.NoError(t, repo.Save(ctx, userID, state))

	_, err = svc.Apply(ctx, userID, ApplyInput{
		ItemID:   "bubble-mint",
		Category: enums.SkinCategoryBubble,
		Scope:    Scope{Type: enums.ScopeTypeCharacterOnly, CharacterID: "seraphina"},
	})
	require.NoError(t, err)

	applied, err := svc.Apply(ctx, userID, ApplyInput{
		ItemID:   "bubble-sakura",
		Category: enums.SkinCategoryBubble,
		Scope:    Scope{Type: enums.ScopeTypeUserOnly},
	})
	require.NoError(t, err)

	// Scopes are keyed by item id; a later apply in the same category
	// must not clobber the earlier item's scope.
	require.Contains(t, applied.Scopes, "bubble-mint")
	require.Contains(t, applied.Scopes, "bubble-sakura")
	assert.Equal(t, enums.ScopeTypeCharacterOnly, applied.Scopes["bubble-mint"].Type)
	assert.Equal(t, "seraphina", applied.Scopes["bubble-mint"].CharacterID)
	assert.Equal(t, enums.ScopeTypeUserOnly, applied.Scopes["bubble-sakura"].Type)
}

func TestApplyDefaultAlwaysAllowed(t *testing.T) {
	svc, _ := newTestService(t)

	state, err := svc.Apply(context.Background(), uuid.New(), ApplyInput{
		ItemID:   catalog.DefaultItemID,
		Category: enums.SkinCategoryTheme,
	})
	require.NoError(t, err)
	assert.Equal(t, "default", state.Current[enums.SkinCategoryTheme])
}

func TestApplyUnknownItemRejected(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Apply(context.Background(), uuid.New(), ApplyInput{
		ItemID:   "bubble-nope",
		Category: enums.SkinCategoryBubble,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestApplyCharacterScopeNeedsCharacterID(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Apply(context.Background(), uuid.New(), ApplyInput{
		ItemID:   catalog.DefaultItemID,
		Category: enums.SkinCategoryBubble,
		Scope:    Scope{Type: enums.ScopeTypeCharacterOnly},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestApplyPublishesEvent(t *testing.T) {
	repo, _ := newTestRepo(t)
	bus := events.NewBus(nil)
	svc, err := NewService(ServiceParams{Repo: repo, Catalog: catalog.Default(), Bus: bus})
	require.NoError(t, err)

	var payloads []any
	bus.Subscribe("test", events.ChannelUserCustomization, func(p any) { payloads = append(payloads, p) })

	_, err = svc.Apply(context.Background(), uuid.New(), ApplyInput{
		ItemID:   catalog.DefaultItemID,
		Category: enums.SkinCategoryAvatar,
	})
	require.NoError(t, err)
	require.Len(t, payloads, 1)
}

func TestCharacterOverridesRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	overrides, err := svc.CharacterOverrides(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, overrides)

	overrides, err = svc.SetCharacterOverride(ctx, userID, "seraphina", CharacterOverride{
		CharacterBubble: "bubble-sakura",
		Theme:           "theme-dusk",
	})
	require.NoError(t, err)
	require.Contains(t, overrides, "seraphina")
	assert.Equal(t, "bubble-sakura", overrides["seraphina"].CharacterBubble)

	// An empty override clears the entry.
	overrides, err = svc.SetCharacterOverride(ctx, userID, "seraphina", CharacterOverride{})
	require.NoError(t, err)
	assert.NotContains(t, overrides, "seraphina")
}
