package events

import (
	"context"
	"sync"

	"github.com/mirelabs/chatskins-backend/pkg/logger"
)

// Channel names used across the service.
const (
	ChannelUserCustomization = "userCustomization"
	ChannelWallet            = "wallet"
	ChannelFriendRequests    = "friendRequests"
	ChannelStoryNotes        = "storyNotes"
	ChannelSignature         = "signature"
)

// HandlerFunc receives the payload published on a channel.
type HandlerFunc func(payload any)

type subscription struct {
	ownerID string
	fn      HandlerFunc
}

// Bus is an in-process publish/subscribe fan-out. Subscriptions are grouped
// by an owner id so a whole feature can tear down with one call. Delivery
// order across subscribers is unspecified.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]subscription
	logg *logger.Logger
}

// NewBus builds an empty bus. The logger is optional.
func NewBus(logg *logger.Logger) *Bus {
	return &Bus{
		subs: make(map[string][]subscription),
		logg: logg,
	}
}

// Subscribe registers a handler for the channel under the given owner.
func (b *Bus) Subscribe(ownerID, channel string, fn HandlerFunc) {
	if ownerID == "" || channel == "" || fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[channel] = append(b.subs[channel], subscription{ownerID: ownerID, fn: fn})
}

// UnsubscribeAll drops every subscription owned by ownerID.
func (b *Bus) UnsubscribeAll(ownerID string) {
	if ownerID == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for channel, subs := range b.subs {
		kept := subs[:0]
		for _, sub := range subs {
			if sub.ownerID != ownerID {
				kept = append(kept, sub)
			}
		}
		if len(kept) == 0 {
			delete(b.subs, channel)
			continue
		}
		b.subs[channel] = kept
	}
}

// Publish delivers the payload to every subscriber of the channel. A
// panicking subscriber is recovered and logged; it never blocks delivery to
// the rest.
func (b *Bus) Publish(channel string, payload any) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs[channel]))
	copy(subs, b.subs[channel])
	b.mu.RUnlock()

	for _, sub := range subs {
		b.deliver(channel, sub, payload)
	}
}

func (b *Bus) deliver(channel string, sub subscription, payload any) {
	defer func() {
		if rec := recover(); rec != nil && b.logg != nil {
			ctx := b.logg.WithFields(context.Background(), map[string]any{
				"channel": channel,
				"owner":   sub.ownerID,
				"panic":   rec,
			})
			b.logg.Error(ctx, "event subscriber panicked", nil)
		}
	}()
	sub.fn(payload)
}
