package gateway

import (
	"github.com/mcdev12/scrimmage/go/internal/events"
)

// Consumer bridges the in-process event bus to the WebSocket fan-out.
type Consumer struct {
	bus *events.Bus
	cm  *ConnectionManager

	cancel func()
}

func NewConsumer(bus *events.Bus, cm *ConnectionManager) *Consumer {
	return &Consumer{bus: bus, cm: cm}
}

// Start subscribes to the bus. Events are queued onto the manager's broadcast
// channel on the publisher's goroutine.
func (c *Consumer) Start() {
	c.cancel = c.bus.Subscribe(func(ev events.Event) {
		c.cm.BroadcastToScrim(ev.ScrimID, ev)
	})
}

// Stop detaches the consumer from the bus.
func (c *Consumer) Stop() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
