package rollback

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context, string, []Message, []string) error { return nil }

func TestRegisterValidation(t *testing.T) {
	registry := NewRegistry(nil, nil)

	require.Error(t, registry.Register(Handler{Name: "", Run: noop}))
	require.Error(t, registry.Register(Handler{Name: "x", Run: nil}))
	assert.Empty(t, registry.Handlers())
}

func TestRegisterDuplicateKeepsFirst(t *testing.T) {
	registry := NewRegistry(nil, nil)

	first := Handler{Name: "friendrequest", Priority: 10, Run: noop}
	require.NoError(t, registry.Register(first))

	err := registry.Register(Handler{Name: "friendrequest", Priority: 99, Run: noop})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateHandler))

	handlers := registry.Handlers()
	require.Len(t, handlers, 1)
	assert.Equal(t, 10, handlers[0].Priority)
}

func TestHandlersSortedByPriorityStable(t *testing.T) {
	registry := NewRegistry(nil, nil)

	require.NoError(t, registry.Register(Handler{Name: "signature", Priority: 30, Run: noop}))
	require.NoError(t, registry.Register(Handler{Name: "friendrequest", Priority: 10, Run: noop}))
	require.NoError(t, registry.Register(Handler{Name: "defaulted", Run: noop}))
	require.NoError(t, registry.Register(Handler{Name: "tied", Priority: 30, Run: noop}))

	var names []string
	for _, h := range registry.Handlers() {
		names = append(names, h.Name)
	}
	// Equal priorities keep insertion order; unset priority defaults to 50.
	assert.Equal(t, []string{"friendrequest", "signature", "tied", "defaulted"}, names)
}

func TestUnregister(t *testing.T) {
	registry := NewRegistry(nil, nil)
	require.NoError(t, registry.Register(Handler{Name: "signature", Run: noop}))

	assert.True(t, registry.Unregister("signature"))
	assert.False(t, registry.Unregister("signature"))
	assert.Empty(t, registry.Handlers())
}

func TestRunAllEmptyRegistry(t *testing.T) {
	registry := NewRegistry(nil, nil)

	report := registry.RunAll(context.Background(), "chat-1", []Message{{ID: "m1"}})
	assert.Equal(t, Report{}, report)
}

func TestRunAllExecutesInPriorityOrder(t *testing.T) {
	registry := NewRegistry(nil, nil)
	var order []string
	record := func(name string) HandlerFunc {
		return func(context.Context, string, []Message, []string) error {
			order = append(order, name)
			return nil
		}
	}

	require.NoError(t, registry.Register(Handler{Name: "signature", Priority: 30, Run: record("signature")}))
	require.NoError(t, registry.Register(Handler{Name: "friendrequest", Priority: 10, Run: record("friendrequest")}))
	require.NoError(t, registry.Register(Handler{Name: "storynotes", Priority: 20, Run: record("storynotes")}))

	report := registry.RunAll(context.Background(), "chat-1", []Message{{ID: "m1"}})
	assert.Equal(t, Report{Succeeded: 3, Failed: 0, Total: 3}, report)
	assert.Equal(t, []string{"friendrequest", "storynotes", "signature"}, order)
}

func TestRunAllIsolatesFailures(t *testing.T) {
	registry := NewRegistry(nil, nil)
	var ran []string

	require.NoError(t, registry.Register(Handler{Name: "boom", Priority: 1, Run: func(context.Context, string, []Message, []string) error {
		ran = append(ran, "boom")
		return errors.New("storage offline")
	}}))
	require.NoError(t, registry.Register(Handler{Name: "panicky", Priority: 2, Run: func(context.Context, string, []Message, []string) error {
		ran = append(ran, "panicky")
		panic("nil map write")
	}}))
	require.NoError(t, registry.Register(Handler{Name: "ok", Priority: 3, Run: func(context.Context, string, []Message, []string) error {
		ran = append(ran, "ok")
		return nil
	}}))

	report := registry.RunAll(context.Background(), "chat-1", []Message{{ID: "m1"}})
	assert.Equal(t, Report{Succeeded: 1, Failed: 2, Total: 3}, report)
	assert.Equal(t, []string{"boom", "panicky", "ok"}, ran)
}

func TestRunAllPassesDeletedIDs(t *testing.T) {
	registry := NewRegistry(nil, nil)
	var got []string

	require.NoError(t, registry.Register(Handler{Name: "capture", Run: func(_ context.Context, _ string, _ []Message, ids []string) error {
		got = ids
		return nil
	}}))

	deleted := []Message{{ID: "m1", Type: "friend_request"}, {ID: "m2"}}
	registry.RunAll(context.Background(), "chat-9", deleted)
	assert.Equal(t, []string{"m1", "m2"}, got)
}
