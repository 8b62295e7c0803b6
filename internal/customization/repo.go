package customization

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mirelabs/chatskins-backend/internal/statestore"
	pkgerrors "github.com/mirelabs/chatskins-backend/pkg/errors"
)

// Repository loads and saves customization documents. Loading applies the
// daily-quota reset: the stored date is always "today" after a Load call.
// Malformed stored documents fall back to fresh defaults rather than
// erroring; the record is user-local state, availability wins.
type Repository struct {
	store    statestore.Store
	location *time.Location
	now      func() time.Time
}

// NewRepository binds the repo to a document store. The location controls
// which calendar day the quota belongs to; nil means the host's local time.
func NewRepository(store statestore.Store, location *time.Location) *Repository {
	if location == nil {
		location = time.Local
	}
	return &Repository{
		store:    store,
		location: location,
		now:      time.Now,
	}
}

// Load returns the user's state, creating defaults on first read and
// persisting any daily-quota reset before returning.
func (r *Repository) Load(ctx context.Context, userID uuid.UUID) (*State, error) {
	now := r.now()
	today := now.In(r.location).Format(DateLayout)

	raw, found, err := r.store.Get(ctx, userID, DocKeyUser)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customization state")
	}
	if !found {
		state := NewState(today)
		if err := r.Save(ctx, userID, state); err != nil {
			return nil, err
		}
		return state, nil
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		state := NewState(today)
		if saveErr := r.Save(ctx, userID, state); saveErr != nil {
			return nil, saveErr
		}
		return state, nil
	}
	normalize(&state, today)

	if state.ResetDailyUseIfStale(now, r.location) {
		if err := r.Save(ctx, userID, &state); err != nil {
			return nil, err
		}
	}
	return &state, nil
}

// Save persists the full state document.
func (r *Repository) Save(ctx context.Context, userID uuid.UUID, state *State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode customization state")
	}
	if err := r.store.Set(ctx, userID, DocKeyUser, raw); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save customization state")
	}
	return nil
}

// LoadCharacterOverrides returns the per-character skin overrides.
func (r *Repository) LoadCharacterOverrides(ctx context.Context, userID uuid.UUID) (CharacterOverrides, error) {
	raw, found, err := r.store.Get(ctx, userID, DocKeyCharacters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load character overrides")
	}
	if !found {
		return CharacterOverrides{}, nil
	}
	var overrides CharacterOverrides
	if err := json.Unmarshal(raw, &overrides); err != nil {
		return CharacterOverrides{}, nil
	}
	return overrides, nil
}

// SaveCharacterOverrides persists the per-character override document.
func (r *Repository) SaveCharacterOverrides(ctx context.Context, userID uuid.UUID, overrides CharacterOverrides) error {
	raw, err := json.Marshal(overrides)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode character overrides")
	}
	if err := r.store.Set(ctx, userID, DocKeyCharacters, raw); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save character overrides")
	}
	return nil
}

// normalize backfills zero-valued maps so older documents stay usable.
func normalize(state *State, today string) {
	if state.Owned == nil {
		state.Owned = []string{}
	}
	if state.Current == nil {
		state.Current = NewState(today).Current
	}
	if state.Scopes == nil {
		state.Scopes = make(map[string]Scope)
	}
	if state.VipDailyUse.Date == "" {
		state.VipDailyUse.Date = today
	}
}
