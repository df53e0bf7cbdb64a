package pubsub

import (
	"context"
	"testing"
	"time"
)

func TestBrokerPublishSubscribe(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := b.Subscribe(ctx)

	b.Publish("greeting", "hello")

	select {
	case ev := <-sub:
		if ev.Type != "greeting" {
			t.Errorf("event type = %q, want %q", ev.Type, "greeting")
		}
		if ev.Payload != "hello" {
			t.Errorf("payload = %q, want %q", ev.Payload, "hello")
		}
		if ev.Timestamp.IsZero() {
			t.Error("timestamp not set")
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBrokerFanOut(t *testing.T) {
	b := NewBroker[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	first := b.Subscribe(ctx)
	second := b.Subscribe(ctx)

	if got := b.SubscriberCount(); got != 2 {
		t.Fatalf("SubscriberCount() = %d, want 2", got)
	}

	b.Publish("n", 42)

	for i, sub := range []<-chan Event[int]{first, second} {
		select {
		case ev := <-sub:
			if ev.Payload != 42 {
				t.Errorf("subscriber %d payload = %d, want 42", i, ev.Payload)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d did not receive event", i)
		}
	}
}

func TestBrokerUnsubscribeOnCancel(t *testing.T) {
	b := NewBroker[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub := b.Subscribe(ctx)
	cancel()

	deadline := time.After(time.Second)
	for b.SubscriberCount() != 0 {
		select {
		case <-deadline:
			t.Fatal("subscriber not removed after context cancel")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if _, ok := <-sub; ok {
		t.Error("channel still open after unsubscribe")
	}
}

func TestBrokerClose(t *testing.T) {
	b := NewBroker[int]()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := b.Subscribe(ctx)

	b.Close()

	if _, ok := <-sub; ok {
		t.Error("channel still open after broker close")
	}

	// Publish and Close after Close must be no-ops, not panics.
	b.Publish("n", 1)
	b.Close()

	closed := b.Subscribe(context.Background())
	if _, ok := <-closed; ok {
		t.Error("Subscribe after Close returned an open channel")
	}
}
