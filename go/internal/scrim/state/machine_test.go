package state

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/scrimmage/go/internal/models"
)

func scrimIn(t *testing.T, st models.ScrimState) *models.Scrim {
	t.Helper()
	s, err := models.NewScrim(uuid.New(), "cs2", "creator", 0, 3000, 1,
		"bo1", "SA", 100, "competitive", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	s.State = st
	return s
}

func TestCommandTable(t *testing.T) {
	recomputable := []models.ScrimState{
		models.StateSearching, models.StateLobbyReady, models.StateConfirmed,
	}

	tests := []struct {
		cmd   Command
		legal []models.ScrimState
	}{
		{CommandJoin, recomputable},
		{CommandLeave, recomputable},
		{CommandConfirm, recomputable},
		{CommandCancel, recomputable},
		{CommandStart, []models.ScrimState{models.StateConfirmed}},
		{CommandFinish, []models.ScrimState{models.StateInProgress}},
		{CommandRecordStat, []models.ScrimState{models.StateInProgress, models.StateFinished}},
		{CommandReportResult, []models.ScrimState{models.StateFinished}},
	}

	for _, tt := range tests {
		allowed := map[models.ScrimState]bool{}
		for _, st := range tt.legal {
			allowed[st] = true
		}
		for _, st := range models.AllStates() {
			if got := CanApply(st, tt.cmd); got != allowed[st] {
				t.Errorf("CanApply(%s, %s)=%v, want %v", st, tt.cmd, got, allowed[st])
			}
		}
	}
}

func TestApplyTransitions(t *testing.T) {
	tests := []struct {
		from models.ScrimState
		cmd  Command
		to   models.ScrimState
	}{
		{models.StateSearching, CommandCancel, models.StateCancelled},
		{models.StateLobbyReady, CommandCancel, models.StateCancelled},
		{models.StateConfirmed, CommandCancel, models.StateCancelled},
		{models.StateConfirmed, CommandStart, models.StateInProgress},
		{models.StateInProgress, CommandFinish, models.StateFinished},
	}
	for _, tt := range tests {
		s := scrimIn(t, tt.from)
		if err := Apply(s, tt.cmd); err != nil {
			t.Fatalf("Apply(%s, %s): %v", tt.from, tt.cmd, err)
		}
		if s.State != tt.to {
			t.Errorf("Apply(%s, %s) -> %s, want %s", tt.from, tt.cmd, s.State, tt.to)
		}
	}
}

func TestApplyIllegalCommand(t *testing.T) {
	s := scrimIn(t, models.StateFinished)
	err := Apply(s, CommandStart)

	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if te.From != models.StateFinished || te.Command != CommandStart {
		t.Fatalf("unexpected error fields: %+v", te)
	}
	if s.State != models.StateFinished {
		t.Fatal("illegal command mutated state")
	}
}

func TestRecomputeTruthTable(t *testing.T) {
	fill := func(s *models.Scrim, t1, t2 bool) {
		if t1 {
			s.Team1.Add("p1")
		}
		if t2 {
			s.Team2.Add("p2")
		}
	}

	// both full, both confirmed -> CONFIRMED
	s := scrimIn(t, models.StateLobbyReady)
	fill(s, true, true)
	s.Team1.Confirmed = true
	s.Team2.Confirmed = true
	Recompute(s)
	if s.State != models.StateConfirmed {
		t.Fatalf("state=%s, want CONFIRMED", s.State)
	}

	// both full, one confirmation missing -> LOBBY_READY
	s = scrimIn(t, models.StateSearching)
	fill(s, true, true)
	s.Team1.Confirmed = true
	Recompute(s)
	if s.State != models.StateLobbyReady {
		t.Fatalf("state=%s, want LOBBY_READY", s.State)
	}

	// not full -> SEARCHING, confirmations forced false when dropping out of a
	// formed lobby
	s = scrimIn(t, models.StateConfirmed)
	fill(s, true, false)
	s.Team1.Confirmed = true
	s.Team2.Confirmed = true
	Recompute(s)
	if s.State != models.StateSearching {
		t.Fatalf("state=%s, want SEARCHING", s.State)
	}
	if s.Team1.Confirmed || s.Team2.Confirmed {
		t.Fatal("confirmations survived the drop to SEARCHING")
	}
}

func TestRecomputeIgnoresTerminalStates(t *testing.T) {
	for _, st := range []models.ScrimState{
		models.StateInProgress, models.StateFinished, models.StateCancelled,
	} {
		s := scrimIn(t, st)
		Recompute(s)
		if s.State != st {
			t.Errorf("Recompute moved %s to %s", st, s.State)
		}
	}
}
