package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testEvent(t *testing.T) Event {
	t.Helper()
	ev, err := New(uuid.New(), TypePlayerJoined, time.Now(), PlayerJoinedPayload{PlayerID: "p1", Team: "team1"})
	if err != nil {
		t.Fatal(err)
	}
	return ev
}

func TestBusFanOut(t *testing.T) {
	bus := NewBus()
	var a, b int
	bus.Subscribe(func(Event) { a++ })
	bus.Subscribe(func(Event) { b++ })

	if err := bus.Publish(context.Background(), testEvent(t)); err != nil {
		t.Fatal(err)
	}
	if a != 1 || b != 1 {
		t.Fatalf("a=%d b=%d, want 1 1", a, b)
	}
}

func TestBusCancel(t *testing.T) {
	bus := NewBus()
	var n int
	cancel := bus.Subscribe(func(Event) { n++ })

	bus.Publish(context.Background(), testEvent(t))
	cancel()
	bus.Publish(context.Background(), testEvent(t))

	if n != 1 {
		t.Fatalf("n=%d, want 1", n)
	}
}

func TestBusIsolatesPanickingSubscriber(t *testing.T) {
	bus := NewBus()
	var n int
	bus.Subscribe(func(Event) { panic("bad subscriber") })
	bus.Subscribe(func(Event) { n++ })

	if err := bus.Publish(context.Background(), testEvent(t)); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("n=%d, healthy subscriber must still run", n)
	}
}

func TestFanoutReturnsFirstError(t *testing.T) {
	bus := NewBus()
	f := Fanout{bus, failingPublisher{}, bus}

	err := f.Publish(context.Background(), testEvent(t))
	if err == nil {
		t.Fatal("expected error from failing publisher")
	}
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, Event) error {
	return context.DeadlineExceeded
}
