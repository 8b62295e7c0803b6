package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mirelabs/chatskins-backend/api/middleware"
	"github.com/mirelabs/chatskins-backend/api/responses"
	"github.com/mirelabs/chatskins-backend/api/validators"
	"github.com/mirelabs/chatskins-backend/internal/catalog"
	"github.com/mirelabs/chatskins-backend/internal/customization"
	"github.com/mirelabs/chatskins-backend/internal/pricing"
	"github.com/mirelabs/chatskins-backend/internal/purchase"
	"github.com/mirelabs/chatskins-backend/pkg/enums"
	pkgerrors "github.com/mirelabs/chatskins-backend/pkg/errors"
	"github.com/mirelabs/chatskins-backend/pkg/logger"
)

// ShopListItems returns the catalog for one category, or all categories.
func ShopListItems(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("category")
		if raw == "" {
			out := map[string][]catalog.Item{}
			for _, category := range enums.SkinCategories() {
				out[category.String()] = cat.Items(category)
			}
			responses.WriteSuccess(w, out)
			return
		}

		category, err := enums.ParseSkinCategory(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
			return
		}
		responses.WriteSuccess(w, cat.Items(category))
	}
}

// ShopItemPrice quotes the effective price of one item for the caller.
func ShopItemPrice(cat *catalog.Catalog, engine *pricing.Engine, custRepo *customization.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseSkinCategory(r.URL.Query().Get("category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
			return
		}

		item, err := cat.FindInCategory(category, chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := custRepo.Load(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := engine.Calculate(r.Context(), userID, item, category, state)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// ShopEligibility reports whether the caller can buy an item right now.
func ShopEligibility(svc purchase.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseSkinCategory(r.URL.Query().Get("category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
			return
		}

		eligibility, err := svc.CheckEligibility(r.Context(), userID, chi.URLParam(r, "itemId"), category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, eligibility)
	}
}

type purchaseRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Category string `json:"category" validate:"required,oneof=bubble avatar theme"`
}

// ShopPurchase executes the purchase transaction.
func ShopPurchase(svc purchase.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload purchaseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseSkinCategory(payload.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
			return
		}

		result, err := svc.Purchase(r.Context(), userID, payload.ItemID, category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func requireUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return userID, nil
}
