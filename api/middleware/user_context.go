package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mirelabs/chatskins-backend/api/responses"
	pkgerrors "github.com/mirelabs/chatskins-backend/pkg/errors"
	"github.com/mirelabs/chatskins-backend/pkg/logger"
)

const userIDHeader = "X-User-Id"

// UserContext requires the caller identity header set by the front door and
// makes it available to downstream handlers.
func UserContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(userIDHeader)
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing"))
				return
			}
			parsed, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user identity"))
				return
			}

			ctx := WithUserID(r.Context(), parsed.String())
			if logg != nil {
				ctx = logg.WithUserID(ctx, parsed.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
