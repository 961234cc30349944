package models

import "time"

// WaitlistEntry is one queued applicant. Positions are 1-based and contiguous
// in request order.
type WaitlistEntry struct {
	PlayerID    string    `json:"player_id"`
	RequestedAt time.Time `json:"requested_at"`
	Position    int       `json:"position"`
}

// Waitlist is the FIFO queue of overflow applicants for a scrim. It is
// independent of the lifecycle state and has no capacity bound.
type Waitlist struct {
	entries []WaitlistEntry
}

func NewWaitlist() *Waitlist {
	return &Waitlist{entries: []WaitlistEntry{}}
}

// RestoreWaitlist rebuilds a waitlist from persisted entries, renumbering so
// loaded records satisfy the same contiguity invariant as live ones.
func RestoreWaitlist(entries []WaitlistEntry) *Waitlist {
	w := &Waitlist{entries: append([]WaitlistEntry{}, entries...)}
	w.renumber()
	return w
}

// Add appends an applicant. Returns false if the applicant is already queued.
func (w *Waitlist) Add(playerID string, at time.Time) bool {
	if w.Contains(playerID) {
		return false
	}
	w.entries = append(w.entries, WaitlistEntry{
		PlayerID:    playerID,
		RequestedAt: at,
		Position:    len(w.entries) + 1,
	})
	return true
}

// Remove drops an applicant and renumbers the remaining entries so positions
// stay contiguous from 1. Returns false if the applicant was not queued.
func (w *Waitlist) Remove(playerID string) bool {
	for i, e := range w.entries {
		if e.PlayerID == playerID {
			w.entries = append(w.entries[:i], w.entries[i+1:]...)
			w.renumber()
			return true
		}
	}
	return false
}

func (w *Waitlist) Contains(playerID string) bool {
	for _, e := range w.entries {
		if e.PlayerID == playerID {
			return true
		}
	}
	return false
}

func (w *Waitlist) Len() int {
	return len(w.entries)
}

func (w *Waitlist) Empty() bool {
	return len(w.entries) == 0
}

// Entries returns a copy of the queue in request order.
func (w *Waitlist) Entries() []WaitlistEntry {
	return append([]WaitlistEntry{}, w.entries...)
}

func (w *Waitlist) renumber() {
	for i := range w.entries {
		w.entries[i].Position = i + 1
	}
}

func (w *Waitlist) clone() *Waitlist {
	return &Waitlist{entries: append([]WaitlistEntry{}, w.entries...)}
}
