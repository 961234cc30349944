package models

import "fmt"

// Team labels are fixed per match; every scrim has exactly these two rosters.
const (
	TeamOne = "team1"
	TeamTwo = "team2"
)

// Roster holds the ordered member set of one side of a scrim.
// Teams carry no privileged member: the match creator is tracked on the
// Scrim itself and occupies a slot like anyone else.
type Roster struct {
	Label     string   `json:"label"`
	Capacity  int      `json:"capacity"`
	Members   []string `json:"members"`
	Confirmed bool     `json:"confirmed"`
}

// NewRoster creates an empty roster for one side of a match.
func NewRoster(label string, capacity int) *Roster {
	return &Roster{
		Label:    label,
		Capacity: capacity,
		Members:  []string{},
	}
}

// Add appends a player to the roster. Adding a player who is already on the
// roster is a no-op; adding to a full roster fails with ErrCapacityExceeded.
func (r *Roster) Add(playerID string) error {
	if r.Contains(playerID) {
		return nil
	}
	if len(r.Members) >= r.Capacity {
		return fmt.Errorf("team %s is full (%d players): %w", r.Label, r.Capacity, ErrCapacityExceeded)
	}
	r.Members = append(r.Members, playerID)
	return nil
}

// Remove drops a player from the roster. Removing an absent player is a no-op.
func (r *Roster) Remove(playerID string) bool {
	for i, m := range r.Members {
		if m == playerID {
			r.Members = append(r.Members[:i], r.Members[i+1:]...)
			return true
		}
	}
	return false
}

// Confirm marks the roster as confirmed. A team with no members cannot confirm.
func (r *Roster) Confirm() error {
	if len(r.Members) == 0 {
		return fmt.Errorf("team %s: %w", r.Label, ErrEmptyTeam)
	}
	r.Confirmed = true
	return nil
}

func (r *Roster) Contains(playerID string) bool {
	for _, m := range r.Members {
		if m == playerID {
			return true
		}
	}
	return false
}

func (r *Roster) Size() int {
	return len(r.Members)
}

func (r *Roster) Full() bool {
	return len(r.Members) >= r.Capacity
}

func (r *Roster) clone() *Roster {
	cp := *r
	cp.Members = append([]string{}, r.Members...)
	return &cp
}
