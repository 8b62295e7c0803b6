package controllers

import (
	"net/http"

	"github.com/mirelabs/chatskins-backend/api/responses"
	"github.com/mirelabs/chatskins-backend/internal/membership"
	"github.com/mirelabs/chatskins-backend/pkg/logger"
)

// MembershipGet returns the caller's current tier.
func MembershipGet(tiers membership.TierProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tier, err := tiers.GetTier(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"tier":    tier.String(),
			"is_svip": tier.IsSVIP(),
		})
	}
}
