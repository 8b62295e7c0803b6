package rollback

import (
	"context"
	stdErrors "errors"
	"sort"
	"sync"
	"time"

	pkgerrors "github.com/mirelabs/chatskins-backend/pkg/errors"
	"github.com/mirelabs/chatskins-backend/pkg/logger"
	"github.com/mirelabs/chatskins-backend/pkg/metrics"
)

// DefaultPriority is assigned when a handler does not set one. Lower
// priorities run first.
const DefaultPriority = 50

// ErrDuplicateHandler is returned when a handler name is registered twice.
// The first registration stays in place.
var ErrDuplicateHandler = stdErrors.New("rollback handler already registered")

// Message is one deleted chat message handed to the rollback fan-out.
type Message struct {
	ID      string `json:"id"`
	Type    string `json:"type,omitempty"`
	Content string `json:"content,omitempty"`
}

// HandlerFunc undoes the side effects one feature attached to the deleted
// messages. It may fail; the registry isolates failures per handler.
type HandlerFunc func(ctx context.Context, chatID string, deleted []Message, deletedIDs []string) error

// Handler is one named rollback participant.
type Handler struct {
	Name     string
	Priority int
	Run      HandlerFunc
}

// Report aggregates one fan-out. Total is the handler count at invocation
// time; which handler failed is only visible in logs.
type Report struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Total     int `json:"total"`
}

// Registry owns the ordered handler set and fans deletions out to it.
type Registry struct {
	mu       sync.RWMutex
	handlers []Handler
	logg     *logger.Logger
	metrics  *metrics.ShopMetrics
}

// NewRegistry builds an empty registry. Logger and metrics are optional.
func NewRegistry(logg *logger.Logger, shopMetrics *metrics.ShopMetrics) *Registry {
	return &Registry{logg: logg, metrics: shopMetrics}
}

// Register inserts a handler and re-sorts ascending by priority. Ties keep
// insertion order. Duplicate names are rejected with ErrDuplicateHandler.
func (r *Registry) Register(handler Handler) error {
	if handler.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "rollback handler name is required")
	}
	if handler.Run == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "rollback handler function is required")
	}
	if handler.Priority == 0 {
		handler.Priority = DefaultPriority
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.handlers {
		if existing.Name == handler.Name {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, ErrDuplicateHandler, handler.Name)
		}
	}
	r.handlers = append(r.handlers, handler)
	sort.SliceStable(r.handlers, func(i, j int) bool {
		return r.handlers[i].Priority < r.handlers[j].Priority
	})
	return nil
}

// Unregister removes the named handler and reports whether one was found.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.handlers {
		if existing.Name == name {
			r.handlers = append(r.handlers[:i], r.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// Handlers returns the registered handlers in execution order.
func (r *Registry) Handlers() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Handler, len(r.handlers))
	copy(out, r.handlers)
	return out
}

// RunAll executes every handler sequentially in priority order. A failing
// or panicking handler is logged and counted; the run always continues to
// the next handler and never retries.
func (r *Registry) RunAll(ctx context.Context, chatID string, deleted []Message) Report {
	handlers := r.Handlers()
	if len(handlers) == 0 {
		return Report{}
	}

	started := time.Now()
	r.metrics.IncRollbackRun()

	deletedIDs := make([]string, len(deleted))
	for i, msg := range deleted {
		deletedIDs[i] = msg.ID
	}

	report := Report{Total: len(handlers)}
	for _, handler := range handlers {
		if err := r.runOne(ctx, handler, chatID, deleted, deletedIDs); err != nil {
			report.Failed++
			r.metrics.IncHandlerFailure(handler.Name)
			if r.logg != nil {
				hctx := r.logg.WithHandler(r.logg.WithChatID(ctx, chatID), handler.Name)
				r.logg.Error(hctx, "rollback handler failed", err)
			}
			continue
		}
		report.Succeeded++
	}

	r.metrics.ObserveRunDuration(time.Since(started))
	if r.logg != nil {
		rctx := r.logg.WithFields(ctx, map[string]any{
			"chat_id":   chatID,
			"succeeded": report.Succeeded,
			"failed":    report.Failed,
			"total":     report.Total,
		})
		r.logg.Info(rctx, "rollback run complete")
	}
	return report
}

func (r *Registry) runOne(ctx context.Context, handler Handler, chatID string, deleted []Message, deletedIDs []string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = pkgerrors.New(pkgerrors.CodeInternal, "rollback handler panicked").WithDetails(map[string]any{
				"handler": handler.Name,
				"panic":   rec,
			})
		}
	}()
	return handler.Run(ctx, chatID, deleted, deletedIDs)
}
