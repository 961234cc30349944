package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type identifies a lifecycle event.
type Type string

const (
	TypeMatchCreated   Type = "MatchCreated"
	TypePlayerJoined   Type = "PlayerJoined"
	TypePlayerLeft     Type = "PlayerLeft"
	TypeTeamConfirmed  Type = "TeamConfirmed"
	TypeMatchScheduled Type = "MatchScheduled"
	TypeMatchStarted   Type = "MatchStarted"
	TypeMatchFinished  Type = "MatchFinished"
	TypeMatchCancelled Type = "MatchCancelled"
	TypeStatRecorded   Type = "StatRecorded"
	TypeResultReported Type = "ResultReported"
	TypeWaitlistJoined Type = "WaitlistJoined"
	TypeWaitlistLeft   Type = "WaitlistLeft"
	TypeSlotFreed      Type = "SlotFreed"
)

// Event is the envelope published for every lifecycle transition. Delivery is
// fire-and-forget: a failed publish never rolls back the transition that
// produced it.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	ScrimID   uuid.UUID       `json:"scrim_id"`
	Type      Type            `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// New builds an event envelope with a marshalled payload.
func New(scrimID uuid.UUID, typ Type, at time.Time, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", typ, err)
	}
	return Event{
		ID:        uuid.New(),
		ScrimID:   scrimID,
		Type:      typ,
		Timestamp: at,
		Data:      data,
	}, nil
}

// Publisher is the sink side of the event surface.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Fanout publishes to every wrapped publisher, returning the first error but
// still attempting the rest.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, ev Event) error {
	var firstErr error
	for _, p := range f {
		if err := p.Publish(ctx, ev); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
