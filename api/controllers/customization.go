package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mirelabs/chatskins-backend/api/responses"
	"github.com/mirelabs/chatskins-backend/api/validators"
	"github.com/mirelabs/chatskins-backend/internal/customization"
	"github.com/mirelabs/chatskins-backend/pkg/enums"
	pkgerrors "github.com/mirelabs/chatskins-backend/pkg/errors"
	"github.com/mirelabs/chatskins-backend/pkg/logger"
)

// CustomizationGet returns the caller's customization state.
func CustomizationGet(svc customization.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

type applyRequest struct {
	ItemID      string `json:"item_id" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=bubble avatar theme"`
	Scope       string `json:"scope,omitempty"`
	CharacterID string `json:"character_id,omitempty"`
}

// CustomizationApply activates an owned item for the caller.
func CustomizationApply(svc customization.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload applyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseSkinCategory(payload.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
			return
		}

		scope := customization.Scope{Type: enums.ScopeTypeAll, CharacterID: payload.CharacterID}
		if payload.Scope != "" {
			scopeType, err := enums.ParseScopeType(payload.Scope)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid scope"))
				return
			}
			scope.Type = scopeType
		}

		state, err := svc.Apply(r.Context(), userID, customization.ApplyInput{
			ItemID:   payload.ItemID,
			Category: category,
			Scope:    scope,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

// CustomizationCharacters returns the caller's per-character overrides.
func CustomizationCharacters(svc customization.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		overrides, err := svc.CharacterOverrides(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, overrides)
	}
}

type characterOverrideRequest struct {
	UserBubble      string `json:"user_bubble,omitempty"`
	CharacterBubble string `json:"character_bubble,omitempty"`
	Avatar          string `json:"avatar,omitempty"`
	Theme           string `json:"theme,omitempty"`
}

// CustomizationSetCharacter pins skins for one character. An empty body
// clears the override.
func CustomizationSetCharacter(svc customization.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		characterID := chi.URLParam(r, "characterId")
		if characterID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "character id is required"))
			return
		}

		var payload characterOverrideRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		overrides, err := svc.SetCharacterOverride(r.Context(), userID, characterID, customization.CharacterOverride{
			UserBubble:      payload.UserBubble,
			CharacterBubble: payload.CharacterBubble,
			Avatar:          payload.Avatar,
			Theme:           payload.Theme,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, overrides)
	}
}
