package events

import "testing"

func TestPublishReachesSubscribers(t *testing.T) {
	bus := NewBus(nil)
	got := []any{}
	bus.Subscribe("ui", ChannelWallet, func(payload any) {
		got = append(got, payload)
	})

	bus.Publish(ChannelWallet, 42)
	bus.Publish(ChannelUserCustomization, "ignored")

	if len(got) != 1 || got[0] != 42 {
		t.Fatalf("expected single wallet payload, got %v", got)
	}
}

func TestUnsubscribeAllRemovesOwner(t *testing.T) {
	bus := NewBus(nil)
	calls := 0
	bus.Subscribe("panel-a", ChannelWallet, func(any) { calls++ })
	bus.Subscribe("panel-b", ChannelWallet, func(any) { calls++ })

	bus.UnsubscribeAll("panel-a")
	bus.Publish(ChannelWallet, nil)

	if calls != 1 {
		t.Fatalf("expected only panel-b to fire, got %d calls", calls)
	}
}

func TestPanickingSubscriberDoesNotStopDelivery(t *testing.T) {
	bus := NewBus(nil)
	delivered := false
	bus.Subscribe("bad", ChannelSignature, func(any) { panic("boom") })
	bus.Subscribe("good", ChannelSignature, func(any) { delivered = true })

	bus.Publish(ChannelSignature, nil)

	if !delivered {
		t.Fatal("expected delivery to continue past panicking subscriber")
	}
}

func TestSubscribeIgnoresBadInput(t *testing.T) {
	bus := NewBus(nil)
	bus.Subscribe("", ChannelWallet, func(any) {})
	bus.Subscribe("owner", "", func(any) {})
	bus.Subscribe("owner", ChannelWallet, nil)
	bus.Publish(ChannelWallet, nil)
}
