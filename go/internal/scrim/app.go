package scrim

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scrimmage/go/internal/events"
	"github.com/mcdev12/scrimmage/go/internal/models"
	"github.com/mcdev12/scrimmage/go/internal/scrim/state"
	"github.com/mcdev12/scrimmage/go/internal/users"
)

// IdentityLookup resolves player ids against the user directory. The scrim
// app never stores profiles; it only validates that ids exist and reads the
// attributes eligibility needs.
type IdentityLookup interface {
	Lookup(ctx context.Context, id string) (*users.Player, error)
}

// App implements the scrim lifecycle operations. Every mutation runs under
// the per-scrim lock as load, mutate, recompute, save; events publish after
// the save succeeds and are never rolled back.
type App struct {
	repo      Repository
	identity  IdentityLookup
	publisher events.Publisher
	clock     clockwork.Clock
	locks     *lockMap
}

func NewApp(repo Repository, identity IdentityLookup, publisher events.Publisher, clock clockwork.Clock) *App {
	return &App{
		repo:      repo,
		identity:  identity,
		publisher: publisher,
		clock:     clock,
		locks:     newLockMap(),
	}
}

// CreateScrim validates the creator id, builds a scrim in SEARCHING state and
// persists it. When both window endpoints are supplied the scrim is scheduled
// immediately.
func (a *App) CreateScrim(ctx context.Context, req CreateScrimRequest) (*models.Scrim, error) {
	if _, err := a.lookupPlayer(ctx, req.CreatorID); err != nil {
		return nil, err
	}

	s, err := models.NewScrim(
		uuid.New(),
		req.Game,
		req.CreatorID,
		req.RangeMin,
		req.RangeMax,
		req.TeamSize,
		req.Format,
		req.Region,
		req.MaxLatencyMs,
		req.Mode,
		a.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if req.StartAt != nil || req.EndAt != nil {
		if req.StartAt == nil || req.EndAt == nil {
			return nil, fmt.Errorf("schedule requires both start and end: %w", models.ErrInvalidWindow)
		}
		if err := s.Schedule(*req.StartAt, *req.EndAt); err != nil {
			return nil, err
		}
	}

	if err := a.repo.SaveScrim(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save scrim: %w", err)
	}

	a.emit(ctx, s.ID, events.TypeMatchCreated, events.MatchCreatedPayload{
		Game:      s.Game,
		CreatorID: s.CreatorID,
		Format:    s.Format,
		Region:    s.Region,
		Mode:      s.Mode,
		TeamSize:  s.TeamSize,
	})
	return s, nil
}

// GetScrim returns the scrim by id.
func (a *App) GetScrim(ctx context.Context, id uuid.UUID) (*models.Scrim, error) {
	s, err := a.repo.GetScrim(ctx, id)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListScrims returns every stored scrim.
func (a *App) ListScrims(ctx context.Context) ([]*models.Scrim, error) {
	return a.repo.ListScrims(ctx)
}

// JoinTeam places a player on the named roster. The player must exist, pass
// the latency/region/skill checks, and the scrim must be in a state where
// membership can still change. Joining removes the player from the waitlist
// and clears the target team's confirmation before recomputing state.
func (a *App) JoinTeam(ctx context.Context, scrimID uuid.UUID, playerID, team string) (*models.Scrim, error) {
	player, err := a.lookupPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	unlock := a.locks.Lock(scrimID)
	defer unlock()

	s, err := a.repo.GetScrim(ctx, scrimID)
	if err != nil {
		return nil, err
	}

	roster := s.Roster(team)
	if roster == nil {
		return nil, fmt.Errorf("team %q: %w", team, ErrNotFound)
	}
	if err := state.Check(s, state.CommandJoin); err != nil {
		return nil, err
	}
	if s.RosterOf(playerID) != nil {
		return nil, fmt.Errorf("player %s is already on a team: %w", playerID, models.ErrValidation)
	}
	if err := checkEligibility(player, s); err != nil {
		return nil, err
	}
	if err := roster.Add(playerID); err != nil {
		return nil, err
	}
	s.Waitlist.Remove(playerID)
	roster.Confirmed = false
	state.Recompute(s)
	s.UpdatedAt = a.clock.Now()

	if err := a.repo.SaveScrim(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save scrim: %w", err)
	}

	a.emit(ctx, s.ID, events.TypePlayerJoined, events.PlayerJoinedPayload{PlayerID: playerID, Team: team})
	return s, nil
}

// LeaveTeam removes a player from whichever roster holds them. Leaving
// clears that team's confirmation; if the departure opened a slot on a
// previously full roster and the waitlist is non-empty, a SlotFreed event is
// published so interested players can claim the spot.
func (a *App) LeaveTeam(ctx context.Context, scrimID uuid.UUID, playerID string) (*models.Scrim, error) {
	unlock := a.locks.Lock(scrimID)
	defer unlock()

	s, err := a.repo.GetScrim(ctx, scrimID)
	if err != nil {
		return nil, err
	}

	roster := s.RosterOf(playerID)
	if roster == nil {
		return nil, fmt.Errorf("player %s: %w", playerID, models.ErrNotAMember)
	}
	if err := state.Check(s, state.CommandLeave); err != nil {
		return nil, err
	}

	wasFull := roster.Full()
	roster.Remove(playerID)
	roster.Confirmed = false
	state.Recompute(s)
	s.UpdatedAt = a.clock.Now()

	if err := a.repo.SaveScrim(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save scrim: %w", err)
	}

	a.emit(ctx, s.ID, events.TypePlayerLeft, events.PlayerLeftPayload{PlayerID: playerID, Team: roster.Label})
	if wasFull && !s.Waitlist.Empty() {
		a.emit(ctx, s.ID, events.TypeSlotFreed, events.SlotFreedPayload{
			Team:        roster.Label,
			WaitlistLen: s.Waitlist.Len(),
		})
	}
	return s, nil
}

// ConfirmTeam marks the named roster as confirmed. An empty roster cannot
// confirm. When both full rosters have confirmed, recompute advances the
// scrim to CONFIRMED.
func (a *App) ConfirmTeam(ctx context.Context, scrimID uuid.UUID, team string) (*models.Scrim, error) {
	unlock := a.locks.Lock(scrimID)
	defer unlock()

	s, err := a.repo.GetScrim(ctx, scrimID)
	if err != nil {
		return nil, err
	}

	roster := s.Roster(team)
	if roster == nil {
		return nil, fmt.Errorf("team %q: %w", team, ErrNotFound)
	}
	if err := state.Check(s, state.CommandConfirm); err != nil {
		return nil, err
	}
	if err := roster.Confirm(); err != nil {
		return nil, err
	}
	state.Recompute(s)
	s.UpdatedAt = a.clock.Now()

	if err := a.repo.SaveScrim(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save scrim: %w", err)
	}

	a.emit(ctx, s.ID, events.TypeTeamConfirmed, events.TeamConfirmedPayload{Team: team})
	return s, nil
}

// Schedule sets the match window. The window may be replaced at any time in
// any state; only end-after-start is enforced.
func (a *App) Schedule(ctx context.Context, scrimID uuid.UUID, start, end time.Time) (*models.Scrim, error) {
	unlock := a.locks.Lock(scrimID)
	defer unlock()

	s, err := a.repo.GetScrim(ctx, scrimID)
	if err != nil {
		return nil, err
	}
	if err := s.Schedule(start, end); err != nil {
		return nil, err
	}
	s.UpdatedAt = a.clock.Now()

	if err := a.repo.SaveScrim(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save scrim: %w", err)
	}

	a.emit(ctx, s.ID, events.TypeMatchScheduled, events.MatchScheduledPayload{StartAt: start, EndAt: end})
	return s, nil
}

// ClearSchedule drops the match window.
func (a *App) ClearSchedule(ctx context.Context, scrimID uuid.UUID) (*models.Scrim, error) {
	unlock := a.locks.Lock(scrimID)
	defer unlock()

	s, err := a.repo.GetScrim(ctx, scrimID)
	if err != nil {
		return nil, err
	}
	s.ClearSchedule()
	s.UpdatedAt = a.clock.Now()

	if err := a.repo.SaveScrim(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save scrim: %w", err)
	}
	return s, nil
}

// StartScrim moves a CONFIRMED scrim to IN_PROGRESS. The scheduler calls
// this same entry point when a scrim's scheduled start time arrives.
func (a *App) StartScrim(ctx context.Context, scrimID uuid.UUID) (*models.Scrim, error) {
	s, err := a.applyCommand(ctx, scrimID, state.CommandStart)
	if err != nil {
		return nil, err
	}
	a.emit(ctx, s.ID, events.TypeMatchStarted, events.MatchStartedPayload{StartedAt: s.UpdatedAt})
	return s, nil
}

// FinishScrim moves an IN_PROGRESS scrim to FINISHED. Finishing is always an
// explicit call; elapsed scheduled time never finishes a match.
func (a *App) FinishScrim(ctx context.Context, scrimID uuid.UUID) (*models.Scrim, error) {
	s, err := a.applyCommand(ctx, scrimID, state.CommandFinish)
	if err != nil {
		return nil, err
	}
	a.emit(ctx, s.ID, events.TypeMatchFinished, events.MatchFinishedPayload{FinishedAt: s.UpdatedAt})
	return s, nil
}

// CancelScrim abandons a scrim that has not started yet.
func (a *App) CancelScrim(ctx context.Context, scrimID uuid.UUID) (*models.Scrim, error) {
	s, err := a.applyCommand(ctx, scrimID, state.CommandCancel)
	if err != nil {
		return nil, err
	}
	a.emit(ctx, s.ID, events.TypeMatchCancelled, events.MatchCancelledPayload{CancelledAt: s.UpdatedAt})
	return s, nil
}

// RecordStat appends a performance line for a player. Stats accumulate while
// the match runs and after it finishes; the same player may report multiple
// lines.
func (a *App) RecordStat(ctx context.Context, scrimID uuid.UUID, req RecordStatRequest) (*models.Scrim, error) {
	if _, err := a.lookupPlayer(ctx, req.PlayerID); err != nil {
		return nil, err
	}

	unlock := a.locks.Lock(scrimID)
	defer unlock()

	s, err := a.repo.GetScrim(ctx, scrimID)
	if err != nil {
		return nil, err
	}
	if err := state.Check(s, state.CommandRecordStat); err != nil {
		return nil, err
	}

	line, err := models.NewStatLine(req.PlayerID, req.Kills, req.Assists, req.Deaths, req.Rating, a.clock.Now())
	if err != nil {
		return nil, err
	}
	s.AddStat(line)
	s.UpdatedAt = a.clock.Now()

	if err := a.repo.SaveScrim(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save scrim: %w", err)
	}

	a.emit(ctx, s.ID, events.TypeStatRecorded, events.StatRecordedPayload{
		PlayerID: line.PlayerID,
		Kills:    line.KDA.Kills,
		Assists:  line.KDA.Assists,
		Deaths:   line.KDA.Deaths,
		Ratio:    line.KDA.Ratio(),
		Rating:   line.Rating,
	})
	return s, nil
}

// ReportResult records the final outcome of a FINISHED scrim, once.
func (a *App) ReportResult(ctx context.Context, scrimID uuid.UUID, req ReportResultRequest) (*models.Scrim, error) {
	unlock := a.locks.Lock(scrimID)
	defer unlock()

	s, err := a.repo.GetScrim(ctx, scrimID)
	if err != nil {
		return nil, err
	}
	if err := state.Check(s, state.CommandReportResult); err != nil {
		return nil, err
	}

	result := models.Result{
		Winner:     req.Winner,
		ScoreTeam1: req.ScoreTeam1,
		ScoreTeam2: req.ScoreTeam2,
		ReportedAt: a.clock.Now(),
	}
	if err := s.SetResult(result); err != nil {
		return nil, err
	}
	s.UpdatedAt = a.clock.Now()

	if err := a.repo.SaveScrim(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save scrim: %w", err)
	}

	a.emit(ctx, s.ID, events.TypeResultReported, events.ResultReportedPayload{
		Winner:     result.Winner,
		ScoreTeam1: result.ScoreTeam1,
		ScoreTeam2: result.ScoreTeam2,
	})
	return s, nil
}

// JoinWaitlist queues a player behind the current entries. Adding an already
// queued player is a no-op and reports false. The waitlist accepts entries in
// any lifecycle state and never checks roster capacity.
func (a *App) JoinWaitlist(ctx context.Context, scrimID uuid.UUID, playerID string) (bool, error) {
	if _, err := a.lookupPlayer(ctx, playerID); err != nil {
		return false, err
	}

	unlock := a.locks.Lock(scrimID)
	defer unlock()

	s, err := a.repo.GetScrim(ctx, scrimID)
	if err != nil {
		return false, err
	}

	if !s.Waitlist.Add(playerID, a.clock.Now()) {
		return false, nil
	}
	s.UpdatedAt = a.clock.Now()

	if err := a.repo.SaveScrim(ctx, s); err != nil {
		return false, fmt.Errorf("failed to save scrim: %w", err)
	}

	pos := s.Waitlist.Len()
	a.emit(ctx, s.ID, events.TypeWaitlistJoined, events.WaitlistJoinedPayload{PlayerID: playerID, Position: pos})
	return true, nil
}

// LeaveWaitlist removes a player from the queue, renumbering the entries
// behind them. Reports false when the player was not queued.
func (a *App) LeaveWaitlist(ctx context.Context, scrimID uuid.UUID, playerID string) (bool, error) {
	unlock := a.locks.Lock(scrimID)
	defer unlock()

	s, err := a.repo.GetScrim(ctx, scrimID)
	if err != nil {
		return false, err
	}

	if !s.Waitlist.Remove(playerID) {
		return false, nil
	}
	s.UpdatedAt = a.clock.Now()

	if err := a.repo.SaveScrim(ctx, s); err != nil {
		return false, fmt.Errorf("failed to save scrim: %w", err)
	}

	a.emit(ctx, s.ID, events.TypeWaitlistLeft, events.WaitlistLeftPayload{PlayerID: playerID})
	return true, nil
}

// applyCommand runs the load-check-transition-save sequence shared by the
// start, finish and cancel operations.
func (a *App) applyCommand(ctx context.Context, scrimID uuid.UUID, cmd state.Command) (*models.Scrim, error) {
	unlock := a.locks.Lock(scrimID)
	defer unlock()

	s, err := a.repo.GetScrim(ctx, scrimID)
	if err != nil {
		return nil, err
	}
	if err := state.Apply(s, cmd); err != nil {
		return nil, err
	}
	s.UpdatedAt = a.clock.Now()

	if err := a.repo.SaveScrim(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save scrim: %w", err)
	}
	return s, nil
}

func (a *App) lookupPlayer(ctx context.Context, id string) (*users.Player, error) {
	p, err := a.identity.Lookup(ctx, id)
	if errors.Is(err, users.ErrUnknownPlayer) {
		return nil, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func checkEligibility(p *users.Player, s *models.Scrim) error {
	if p.LatencyMs > s.MaxLatencyMs {
		return fmt.Errorf("latency %dms exceeds max %dms: %w", p.LatencyMs, s.MaxLatencyMs, ErrNotEligible)
	}
	if !strings.EqualFold(p.Region, s.Region) {
		return fmt.Errorf("region %s does not match %s: %w", p.Region, s.Region, ErrNotEligible)
	}
	if p.MMR < s.RangeMin || p.MMR > s.RangeMax {
		return fmt.Errorf("mmr %d outside range [%d, %d]: %w", p.MMR, s.RangeMin, s.RangeMax, ErrNotEligible)
	}
	return nil
}

// emit publishes an event after the state change has been persisted. Publish
// failures are logged and never affect the completed operation.
func (a *App) emit(ctx context.Context, scrimID uuid.UUID, typ events.Type, payload any) {
	ev, err := events.New(scrimID, typ, a.clock.Now(), payload)
	if err == nil {
		err = a.publisher.Publish(ctx, ev)
	}
	if err != nil {
		log.Error().
			Err(err).
			Str("scrim_id", scrimID.String()).
			Str("event_type", string(typ)).
			Msg("failed to publish event")
	}
}
