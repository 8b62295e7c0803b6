package customization

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mirelabs/chatskins-backend/internal/catalog"
	"github.com/mirelabs/chatskins-backend/pkg/enums"
	pkgerrors "github.com/mirelabs/chatskins-backend/pkg/errors"
	"github.com/mirelabs/chatskins-backend/pkg/events"
)

// ServiceParams groups dependencies for the customization service.
type ServiceParams struct {
	Repo    *Repository
	Catalog *catalog.Catalog
	Bus     *events.Bus
}

// ApplyInput selects which owned item to activate and how broadly.
type ApplyInput struct {
	ItemID   string
	Category enums.SkinCategory
	Scope    Scope
}

// Service exposes the per-user customization state.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*State, error)
	Apply(ctx context.Context, userID uuid.UUID, input ApplyInput) (*State, error)
	CharacterOverrides(ctx context.Context, userID uuid.UUID) (CharacterOverrides, error)
	SetCharacterOverride(ctx context.Context, userID uuid.UUID, characterID string, override CharacterOverride) (CharacterOverrides, error)
}

type service struct {
	repo *Repository
	cat  *catalog.Catalog
	bus  *events.Bus
}

// NewService wires a customization service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customization repo is required")
	}
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog is required")
	}
	return &service{repo: params.Repo, cat: params.Catalog, bus: params.Bus}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*State, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.repo.Load(ctx, userID)
}

func (s *service) Apply(ctx context.Context, userID uuid.UUID, input ApplyInput) (*State, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid skin category").WithDetails(map[string]string{
			"category": input.Category.String(),
		})
	}
	if input.ItemID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if input.Scope.Type == "" {
		input.Scope.Type = enums.ScopeTypeAll
	}
	if !input.Scope.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid scope type").WithDetails(map[string]string{
			"scope": input.Scope.Type.String(),
		})
	}
	if input.Scope.Type == enums.ScopeTypeCharacterOnly && input.Scope.CharacterID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "character id is required for character-only scope")
	}

	// Custom uploads never live in the static catalog; ownership is the
	// only gate for them.
	if !strings.HasPrefix(input.ItemID, catalog.CustomPrefix) && input.ItemID != catalog.DefaultItemID {
		if _, err := s.cat.FindInCategory(input.Category, input.ItemID); err != nil {
			return nil, err
		}
	}

	state, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if input.ItemID != catalog.DefaultItemID && !state.Owns(input.ItemID) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "item not owned").WithDetails(map[string]string{
			"item_id": input.ItemID,
		})
	}

	state.Current[input.Category] = input.ItemID
	state.Scopes[input.ItemID] = input.Scope
	if err := s.repo.Save(ctx, userID, state); err != nil {
		return nil, err
	}

	s.notify(userID, "apply", input)
	return state, nil
}

func (s *service) CharacterOverrides(ctx context.Context, userID uuid.UUID) (CharacterOverrides, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.repo.LoadCharacterOverrides(ctx, userID)
}

func (s *service) SetCharacterOverride(ctx context.Context, userID uuid.UUID, characterID string, override CharacterOverride) (CharacterOverrides, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if characterID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "character id is required")
	}

	overrides, err := s.repo.LoadCharacterOverrides(ctx, userID)
	if err != nil {
		return nil, err
	}
	if (override == CharacterOverride{}) {
		delete(overrides, characterID)
	} else {
		overrides[characterID] = override
	}
	if err := s.repo.SaveCharacterOverrides(ctx, userID, overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

func (s *service) notify(userID uuid.UUID, action string, input ApplyInput) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.ChannelUserCustomization, map[string]any{
		"user_id":  userID.String(),
		"action":   action,
		"item_id":  input.ItemID,
		"category": input.Category.String(),
		"scope":    input.Scope.Type.String(),
	})
}
