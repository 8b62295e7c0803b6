package storynotes

import (
	"context"
	"strings"

	"github.com/mirelabs/chatskins-backend/internal/rollback"
	pkgerrors "github.com/mirelabs/chatskins-backend/pkg/errors"
	"github.com/mirelabs/chatskins-backend/pkg/events"
	"github.com/mirelabs/chatskins-backend/pkg/logger"
)

const (
	// HandlerName identifies this handler in the rollback registry.
	HandlerName = "storynotes"
	// Priority runs this handler after friend requests, before signatures.
	Priority = 20

	// MessageType tags plan note messages.
	MessageType = "plan_note"
	// ContentMarker prefixes plan note message bodies.
	ContentMarker = "[PLAN]"
)

// Handler reverts story notes whose originating messages were deleted.
type Handler struct {
	repo *Repository
	bus  *events.Bus
	logg *logger.Logger
}

// New wires the handler. Bus and logger are optional.
func New(repo *Repository, bus *events.Bus, logg *logger.Logger) (*Handler, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "story note repo is required")
	}
	return &Handler{repo: repo, bus: bus, logg: logg}, nil
}

// RollbackHandler adapts this feature to the registry contract.
func (h *Handler) RollbackHandler() rollback.Handler {
	return rollback.Handler{Name: HandlerName, Priority: Priority, Run: h.run}
}

func (h *Handler) run(ctx context.Context, chatID string, deleted []rollback.Message, _ []string) error {
	var msgIDs []string
	for _, msg := range deleted {
		if Matches(msg) {
			msgIDs = append(msgIDs, msg.ID)
		}
	}
	if len(msgIDs) == 0 {
		if h.logg != nil {
			h.logg.Info(h.logg.WithChatID(ctx, chatID), "no plan note messages in deleted batch")
		}
		return nil
	}

	removed, err := h.repo.DeleteByMsgIDs(ctx, chatID, msgIDs)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete story notes")
	}
	if removed > 0 && h.bus != nil {
		h.bus.Publish(events.ChannelStoryNotes, map[string]any{
			"chat_id": chatID,
			"action":  "rollback",
			"removed": removed,
		})
	}
	return nil
}

// Matches reports whether a deleted message carried a plan note.
func Matches(msg rollback.Message) bool {
	return msg.Type == MessageType || strings.HasPrefix(msg.Content, ContentMarker)
}
