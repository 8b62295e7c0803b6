package signature

import (
	"context"

	"github.com/google/uuid"

	"github.com/mirelabs/chatskins-backend/internal/rollback"
	pkgerrors "github.com/mirelabs/chatskins-backend/pkg/errors"
	"github.com/mirelabs/chatskins-backend/pkg/events"
	"github.com/mirelabs/chatskins-backend/pkg/logger"
)

const (
	// HandlerName identifies this handler in the rollback registry.
	HandlerName = "signature"
	// Priority runs this handler last of the built-in three.
	Priority = 30

	// MessageType tags signature-change messages.
	MessageType = "signature"
)

// Handler reverts signature history entries whose originating messages were
// deleted. When the active signature is rolled back, the most recent
// surviving entry becomes active again.
type Handler struct {
	repo *Repository
	bus  *events.Bus
	logg *logger.Logger
}

// New wires the handler. Bus and logger are optional.
func New(repo *Repository, bus *events.Bus, logg *logger.Logger) (*Handler, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "signature repo is required")
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
		if msg.Type == MessageType {
			msgIDs = append(msgIDs, msg.ID)
		}
	}
	if len(msgIDs) == 0 {
		if h.logg != nil {
			h.logg.Info(h.logg.WithChatID(ctx, chatID), "no signature messages in deleted batch")
		}
		return nil
	}

	entries, err := h.repo.FindByMsgIDs(ctx, msgIDs)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find signature entries")
	}
	if len(entries) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(entries))
	needsRestore := make(map[uuid.UUID]bool)
	for _, entry := range entries {
		ids = append(ids, entry.ID)
		if entry.Active {
			needsRestore[entry.UserID] = true
		}
	}

	removed, err := h.repo.DeleteByIDs(ctx, ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete signature entries")
	}

	for userID := range needsRestore {
		latest, err := h.repo.Latest(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find previous signature")
		}
		if latest == nil {
			continue
		}
		if err := h.repo.Activate(ctx, latest.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore previous signature")
		}
	}

	if removed > 0 && h.bus != nil {
		h.bus.Publish(events.ChannelSignature, map[string]any{
			"chat_id": chatID,
			"action":  "rollback",
			"removed": removed,
		})
	}
	return nil
}
