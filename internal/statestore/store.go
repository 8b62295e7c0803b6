package statestore

import (
	"context"

	"github.com/google/uuid"
)

// Store is a per-user keyed JSON document store. It is the persistence
// boundary for customization state; callers own (de)serialization and treat
// malformed stored documents as absent.
type Store interface {
	// Get returns the raw document and whether it exists.
	Get(ctx context.Context, userID uuid.UUID, key string) ([]byte, bool, error)
	// Set writes the raw document, creating or replacing it.
	Set(ctx context.Context, userID uuid.UUID, key string, value []byte) error
}
