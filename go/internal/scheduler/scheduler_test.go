package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/scrimmage/go/internal/events"
	"github.com/mcdev12/scrimmage/go/internal/models"
	"github.com/mcdev12/scrimmage/go/internal/scheduler"
	"github.com/mcdev12/scrimmage/go/internal/scrim"
	"github.com/mcdev12/scrimmage/go/internal/storage/memory"
	"github.com/mcdev12/scrimmage/go/internal/users"
)

func newSchedulerEnv(t *testing.T) (*scrim.App, *clockwork.FakeClock, *scheduler.Scheduler) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 2, 8, 59, 0, 0, time.UTC))
	userApp := users.NewApp(users.NewMemoryRepository(
		users.Player{ID: "p1", MMR: 1500, Region: "SA", LatencyMs: 30},
		users.Player{ID: "p2", MMR: 1500, Region: "SA", LatencyMs: 30},
	))
	app := scrim.NewApp(memory.NewStore(), userApp, events.NewBus(), clock)

	sched, err := scheduler.New(app, clock, scheduler.Config{
		Interval: time.Minute,
		Timezone: "UTC",
	})
	if err != nil {
		t.Fatal(err)
	}
	return app, clock, sched
}

func confirmedScrim(t *testing.T, app *scrim.App) *models.Scrim {
	t.Helper()
	ctx := context.Background()
	s, err := app.CreateScrim(ctx, scrim.CreateScrimRequest{
		Game: "cs2", CreatorID: "p1", RangeMin: 1000, RangeMax: 2000,
		TeamSize: 1, Format: "bo1", Region: "SA", MaxLatencyMs: 80, Mode: "competitive",
	})
	if err != nil {
		t.Fatal(err)
	}
	mustDo := func(fn func() error) {
		t.Helper()
		if err := fn(); err != nil {
			t.Fatal(err)
		}
	}
	mustDo(func() error { _, err := app.JoinTeam(ctx, s.ID, "p1", models.TeamOne); return err })
	mustDo(func() error { _, err := app.JoinTeam(ctx, s.ID, "p2", models.TeamTwo); return err })
	mustDo(func() error { _, err := app.ConfirmTeam(ctx, s.ID, models.TeamOne); return err })
	mustDo(func() error { _, err := app.ConfirmTeam(ctx, s.ID, models.TeamTwo); return err })
	return s
}

func TestTickStartsDueScrim(t *testing.T) {
	app, clock, sched := newSchedulerEnv(t)
	ctx := context.Background()

	s := confirmedScrim(t, app)
	start := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	if _, err := app.Schedule(ctx, s.ID, start, start.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	// 08:59, not due yet
	sched.Tick(ctx)
	got, _ := app.GetScrim(ctx, s.ID)
	if got.State != models.StateConfirmed {
		t.Fatalf("state=%s before the scheduled minute, want CONFIRMED", got.State)
	}

	// 09:00, due
	clock.Advance(time.Minute)
	sched.Tick(ctx)
	got, _ = app.GetScrim(ctx, s.ID)
	if got.State != models.StateInProgress {
		t.Fatalf("state=%s at the scheduled minute, want IN_PROGRESS", got.State)
	}

	// a second tick in the same minute changes nothing
	sched.Tick(ctx)
	got, _ = app.GetScrim(ctx, s.ID)
	if got.State != models.StateInProgress {
		t.Fatalf("state=%s after repeated tick, want IN_PROGRESS", got.State)
	}
}

func TestTickNeverFinishes(t *testing.T) {
	app, clock, sched := newSchedulerEnv(t)
	ctx := context.Background()

	s := confirmedScrim(t, app)
	start := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	app.Schedule(ctx, s.ID, start, start.Add(time.Hour))

	clock.Advance(time.Minute)
	sched.Tick(ctx)

	// well past the end of the window
	clock.Advance(3 * time.Hour)
	sched.Tick(ctx)
	got, _ := app.GetScrim(ctx, s.ID)
	if got.State != models.StateInProgress {
		t.Fatalf("state=%s, the scheduler must never finish a match", got.State)
	}
}

func TestTickSkipsUnscheduledAndUnconfirmed(t *testing.T) {
	app, clock, sched := newSchedulerEnv(t)
	ctx := context.Background()

	unscheduled := confirmedScrim(t, app)
	searching, err := app.CreateScrim(ctx, scrim.CreateScrimRequest{
		Game: "cs2", CreatorID: "p1", RangeMin: 1000, RangeMax: 2000,
		TeamSize: 1, Format: "bo1", Region: "SA", MaxLatencyMs: 80, Mode: "competitive",
	})
	if err != nil {
		t.Fatal(err)
	}
	past := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)
	app.Schedule(ctx, searching.ID, past, past.Add(time.Hour))

	clock.Advance(time.Hour)
	sched.Tick(ctx)

	got, _ := app.GetScrim(ctx, unscheduled.ID)
	if got.State != models.StateConfirmed {
		t.Fatalf("unscheduled scrim moved to %s", got.State)
	}
	got, _ = app.GetScrim(ctx, searching.ID)
	if got.State != models.StateSearching {
		t.Fatalf("unconfirmed scrim moved to %s", got.State)
	}
}

type fakeStarter struct {
	scrims  []*models.Scrim
	started []uuid.UUID
	failOn  uuid.UUID
}

func (f *fakeStarter) ListScrims(ctx context.Context) ([]*models.Scrim, error) {
	return f.scrims, nil
}

func (f *fakeStarter) StartScrim(ctx context.Context, id uuid.UUID) (*models.Scrim, error) {
	if id == f.failOn {
		return nil, errors.New("start failed")
	}
	f.started = append(f.started, id)
	return nil, nil
}

func TestTickContinuesPastFailures(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC))
	start := clock.Now().Add(-time.Minute)

	due := func() *models.Scrim {
		s, _ := models.NewScrim(uuid.New(), "cs2", "p1", 0, 3000, 1,
			"bo1", "SA", 80, "competitive", clock.Now())
		s.State = models.StateConfirmed
		s.StartAt = &start
		return s
	}
	bad := due()
	good := due()
	starter := &fakeStarter{scrims: []*models.Scrim{bad, good}, failOn: bad.ID}

	sched, err := scheduler.New(starter, clock, scheduler.Config{Interval: time.Minute, Timezone: "UTC"})
	if err != nil {
		t.Fatal(err)
	}

	sched.Tick(context.Background())
	if len(starter.started) != 1 || starter.started[0] != good.ID {
		t.Fatalf("started=%v, want only %s", starter.started, good.ID)
	}
}

func TestNewRejectsBadTimezone(t *testing.T) {
	_, err := scheduler.New(&fakeStarter{}, clockwork.NewRealClock(), scheduler.Config{
		Timezone: "Not/AZone",
	})
	if err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}
