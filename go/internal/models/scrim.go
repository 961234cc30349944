package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ScrimState defines the lifecycle state of a scrim.
type ScrimState string

const (
	StateSearching  ScrimState = "SEARCHING"
	StateLobbyReady ScrimState = "LOBBY_READY"
	StateConfirmed  ScrimState = "CONFIRMED"
	StateInProgress ScrimState = "IN_PROGRESS"
	StateFinished   ScrimState = "FINISHED"
	StateCancelled  ScrimState = "CANCELLED"
)

// AllStates lists every lifecycle state.
func AllStates() []ScrimState {
	return []ScrimState{
		StateSearching, StateLobbyReady, StateConfirmed,
		StateInProgress, StateFinished, StateCancelled,
	}
}

// ParseState maps a persisted state name back to a ScrimState.
func ParseState(name string) (ScrimState, error) {
	for _, st := range AllStates() {
		if string(st) == name {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown scrim state %q: %w", name, ErrValidation)
}

// Scrim is a scheduled practice match between two fixed-size teams.
type Scrim struct {
	ID           uuid.UUID
	Game         string
	CreatorID    string
	RangeMin     int
	RangeMax     int
	Format       string
	Region       string
	MaxLatencyMs int
	Mode         string
	TeamSize     int

	// Optional scheduling window; EndAt is strictly after StartAt when both set.
	StartAt *time.Time
	EndAt   *time.Time

	Team1 *Roster
	Team2 *Roster

	State    ScrimState
	Result   *Result
	Stats    []StatLine
	Waitlist *Waitlist

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewScrim validates creation parameters and builds a scrim in SEARCHING state
// with two empty rosters.
func NewScrim(id uuid.UUID, game, creatorID string, rangeMin, rangeMax, teamSize int,
	format, region string, maxLatencyMs int, mode string, now time.Time) (*Scrim, error) {

	game = strings.TrimSpace(game)
	format = strings.TrimSpace(format)
	region = strings.TrimSpace(region)
	mode = strings.TrimSpace(mode)

	if game == "" {
		return nil, fmt.Errorf("game is required: %w", ErrValidation)
	}
	if creatorID == "" {
		return nil, fmt.Errorf("creator id is required: %w", ErrValidation)
	}
	if teamSize < 1 {
		return nil, fmt.Errorf("team size must be >= 1: %w", ErrValidation)
	}
	if rangeMin < 0 || rangeMax < rangeMin {
		return nil, fmt.Errorf("invalid skill range [%d,%d]: %w", rangeMin, rangeMax, ErrValidation)
	}
	if format == "" {
		return nil, fmt.Errorf("format is required: %w", ErrValidation)
	}
	if region == "" {
		return nil, fmt.Errorf("region is required: %w", ErrValidation)
	}
	if maxLatencyMs <= 0 {
		return nil, fmt.Errorf("max latency must be > 0 ms: %w", ErrValidation)
	}
	if mode == "" {
		return nil, fmt.Errorf("mode is required: %w", ErrValidation)
	}

	return &Scrim{
		ID:           id,
		Game:         game,
		CreatorID:    creatorID,
		RangeMin:     rangeMin,
		RangeMax:     rangeMax,
		Format:       format,
		Region:       region,
		MaxLatencyMs: maxLatencyMs,
		Mode:         mode,
		TeamSize:     teamSize,
		Team1:        NewRoster(TeamOne, teamSize),
		Team2:        NewRoster(TeamTwo, teamSize),
		State:        StateSearching,
		Stats:        []StatLine{},
		Waitlist:     NewWaitlist(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Roster returns the roster with the given label, or nil if the label is not
// one of the two fixed team labels.
func (s *Scrim) Roster(label string) *Roster {
	switch label {
	case s.Team1.Label:
		return s.Team1
	case s.Team2.Label:
		return s.Team2
	}
	return nil
}

// RosterOf locates the roster holding the given player, or nil.
func (s *Scrim) RosterOf(playerID string) *Roster {
	if s.Team1.Contains(playerID) {
		return s.Team1
	}
	if s.Team2.Contains(playerID) {
		return s.Team2
	}
	return nil
}

func (s *Scrim) BothRostersFull() bool {
	return s.Team1.Full() && s.Team2.Full()
}

func (s *Scrim) BothRostersConfirmed() bool {
	return s.Team1.Confirmed && s.Team2.Confirmed
}

// ResetConfirmations forces both team confirmations back to false.
func (s *Scrim) ResetConfirmations() {
	s.Team1.Confirmed = false
	s.Team2.Confirmed = false
}

// Schedule sets the match window. The end must be strictly after the start.
func (s *Scrim) Schedule(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("start and end are required: %w", ErrInvalidWindow)
	}
	if !end.After(start) {
		return fmt.Errorf("end must be after start: %w", ErrInvalidWindow)
	}
	s.StartAt = &start
	s.EndAt = &end
	return nil
}

// ClearSchedule drops the match window unconditionally.
func (s *Scrim) ClearSchedule() {
	s.StartAt = nil
	s.EndAt = nil
}

// AddStat appends a stat entry. Legality per lifecycle state is enforced by
// the state machine, not here.
func (s *Scrim) AddStat(line StatLine) {
	s.Stats = append(s.Stats, line)
}

// SetResult records the final outcome exactly once.
func (s *Scrim) SetResult(r Result) error {
	if s.Result != nil {
		return ErrResultAlreadySet
	}
	if s.Roster(r.Winner) == nil {
		return fmt.Errorf("unknown winner team %q: %w", r.Winner, ErrValidation)
	}
	s.Result = &r
	return nil
}

// Clone returns a deep copy, so stores can hand out snapshots that callers
// may mutate under their own lock without aliasing stored state.
func (s *Scrim) Clone() *Scrim {
	cp := *s
	cp.Team1 = s.Team1.clone()
	cp.Team2 = s.Team2.clone()
	cp.Stats = append([]StatLine{}, s.Stats...)
	cp.Waitlist = s.Waitlist.clone()
	if s.StartAt != nil {
		t := *s.StartAt
		cp.StartAt = &t
	}
	if s.EndAt != nil {
		t := *s.EndAt
		cp.EndAt = &t
	}
	if s.Result != nil {
		r := *s.Result
		cp.Result = &r
	}
	return &cp
}
