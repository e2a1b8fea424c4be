package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var seen []EventType
	d.Subscribe(EventDefectCreated, func(ctx context.Context, event Event) error {
		seen = append(seen, event.Type)
		return nil
	})
	d.Subscribe(EventDefectCreated, func(ctx context.Context, event Event) error {
		seen = append(seen, event.Type)
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventDefectCreated, DefectID: 1}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(seen) != 2 {
		t.Errorf("deliveries = %d, want 2", len(seen))
	}
}

func TestDispatcherIgnoresUnrelatedEvents(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventDefectAssigned, func(ctx context.Context, event Event) error {
		called = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventDefectUpdated}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if called {
		t.Error("handler for another event type was invoked")
	}
}

func TestDispatcherHandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	second := false
	d.Subscribe(EventDefectCommentAdded, func(ctx context.Context, event Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventDefectCommentAdded, func(ctx context.Context, event Event) error {
		second = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventDefectCommentAdded}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !second {
		t.Error("delivery stopped after a handler error")
	}
}
