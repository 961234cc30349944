package events

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Handler receives events synchronously on the publisher's goroutine.
type Handler func(Event)

// Bus is an in-process fan-out of lifecycle events. Subscribers see every
// event and filter by type themselves. A panicking subscriber is isolated so
// it cannot break the publishing operation.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[int]Handler
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]Handler)}
}

// Subscribe registers a handler and returns its cancel func.
func (b *Bus) Subscribe(fn Handler) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers ev to every subscriber. It never returns an error; bad
// subscribers are logged and skipped.
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error().
						Interface("panic", r).
						Str("event_type", string(ev.Type)).
						Str("scrim_id", ev.ScrimID.String()).
						Msg("event subscriber panicked")
				}
			}()
			fn(ev)
		}()
	}
	return nil
}
