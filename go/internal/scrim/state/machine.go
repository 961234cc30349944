// Package state implements the scrim lifecycle state machine: the explicit
// command table and the recompute rule that re-derives state from roster and
// confirmation facts. Both the request path and the scheduler funnel through
// these entry points, so there is exactly one transition algorithm regardless
// of trigger source.
package state

import (
	"fmt"

	"github.com/mcdev12/scrimmage/go/internal/models"
)

// Command is an operation whose legality depends on the current lifecycle state.
type Command string

const (
	CommandJoin         Command = "join"
	CommandLeave        Command = "leave"
	CommandConfirm      Command = "confirm"
	CommandCancel       Command = "cancel"
	CommandStart        Command = "start"
	CommandFinish       Command = "finish"
	CommandRecordStat   Command = "recordStat"
	CommandReportResult Command = "reportResult"
)

// TransitionError reports a command issued from a state where it is not legal.
// It is fatal to the call, never to the process.
type TransitionError struct {
	From    models.ScrimState
	Command Command
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s in state %s", e.Command, e.From)
}

// legal maps each command to the states it may be issued from.
var legal = map[Command][]models.ScrimState{
	CommandJoin:         {models.StateSearching, models.StateLobbyReady, models.StateConfirmed},
	CommandLeave:        {models.StateSearching, models.StateLobbyReady, models.StateConfirmed},
	CommandConfirm:      {models.StateSearching, models.StateLobbyReady, models.StateConfirmed},
	CommandCancel:       {models.StateSearching, models.StateLobbyReady, models.StateConfirmed},
	CommandStart:        {models.StateConfirmed},
	CommandFinish:       {models.StateInProgress},
	CommandRecordStat:   {models.StateInProgress, models.StateFinished},
	CommandReportResult: {models.StateFinished},
}

// CanApply reports whether cmd is legal from st.
func CanApply(st models.ScrimState, cmd Command) bool {
	for _, s := range legal[cmd] {
		if s == st {
			return true
		}
	}
	return false
}

// Check returns a TransitionError when cmd is not legal from the scrim's
// current state.
func Check(s *models.Scrim, cmd Command) error {
	if !CanApply(s.State, cmd) {
		return &TransitionError{From: s.State, Command: cmd}
	}
	return nil
}

// Apply executes one of the state-changing commands. Commands that do not
// move the state (recordStat, reportResult) only pass through Check.
func Apply(s *models.Scrim, cmd Command) error {
	if err := Check(s, cmd); err != nil {
		return err
	}
	switch cmd {
	case CommandCancel:
		s.State = models.StateCancelled
	case CommandStart:
		s.State = models.StateInProgress
	case CommandFinish:
		s.State = models.StateFinished
	}
	return nil
}

// Recomputable reports whether st is subject to the recompute rule. Once a
// scrim is in progress, finished, or cancelled, roster facts no longer drive
// its state.
func Recomputable(st models.ScrimState) bool {
	switch st {
	case models.StateSearching, models.StateLobbyReady, models.StateConfirmed:
		return true
	}
	return false
}

// Recompute re-derives the lifecycle state from roster and confirmation facts.
// It is invoked after every roster or confirmation mutation and is a no-op
// outside the recomputable group.
//
//	not both full            -> SEARCHING (confirmations forced false when
//	                            dropping out of a formed lobby)
//	both full, not confirmed -> LOBBY_READY
//	both full and confirmed  -> CONFIRMED
func Recompute(s *models.Scrim) {
	if !Recomputable(s.State) {
		return
	}
	switch {
	case !s.BothRostersFull():
		if s.State != models.StateSearching {
			s.ResetConfirmations()
		}
		s.State = models.StateSearching
	case !s.BothRostersConfirmed():
		s.State = models.StateLobbyReady
	default:
		s.State = models.StateConfirmed
	}
}
