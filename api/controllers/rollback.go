package controllers

import (
	"net/http"

	"github.com/mirelabs/chatskins-backend/api/responses"
	"github.com/mirelabs/chatskins-backend/api/validators"
	"github.com/mirelabs/chatskins-backend/internal/rollback"
	pkgerrors "github.com/mirelabs/chatskins-backend/pkg/errors"
	"github.com/mirelabs/chatskins-backend/pkg/logger"
)

type rollbackRequest struct {
	ChatID  string `json:"chat_id" validate:"required"`
	Deleted []struct {
		ID      string `json:"id" validate:"required"`
		Type    string `json:"type,omitempty"`
		Content string `json:"content,omitempty"`
	} `json:"deleted_messages" validate:"required,dive"`
}

// RollbackRun fans a deleted-message batch out to every registered handler.
func RollbackRun(registry *rollback.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := requireUserID(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if registry == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rollback registry unavailable"))
			return
		}

		var payload rollbackRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deleted := make([]rollback.Message, len(payload.Deleted))
		for i, msg := range payload.Deleted {
			deleted[i] = rollback.Message{ID: msg.ID, Type: msg.Type, Content: msg.Content}
		}

		report := registry.RunAll(r.Context(), payload.ChatID, deleted)
		responses.WriteSuccess(w, report)
	}
}
