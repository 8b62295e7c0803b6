package purchase

import (
	"context"
	"sync"
	"time"
)

// MemoryLocker is an in-process Locker used by tests and single-instance
// local runs. TTLs are honored so an abandoned lock expires.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]time.Time
}

// NewMemoryLocker builds an empty in-process locker.
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]time.Time)}
}

func (l *MemoryLocker) AcquirePurchaseLock(_ context.Context, userID, category string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := userID + ":" + category
	if expiry, held := l.locks[key]; held && time.Now().Before(expiry) {
		return false, nil
	}
	l.locks[key] = time.Now().Add(ttl)
	return true, nil
}

func (l *MemoryLocker) ReleasePurchaseLock(_ context.Context, userID, category string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.locks, userID+":"+category)
	return nil
}
