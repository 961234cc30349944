package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/scrimmage/go/internal/models"
	"github.com/mcdev12/scrimmage/go/internal/scrim"
)

func testScrim(t *testing.T) *models.Scrim {
	t.Helper()
	s, err := models.NewScrim(uuid.New(), "cs2", "p1", 0, 3000, 2,
		"bo1", "SA", 80, "competitive", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestStoreGetNotFound(t *testing.T) {
	store := NewStore()
	_, err := store.GetScrim(context.Background(), uuid.New())
	if !errors.Is(err, scrim.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestStoreSnapshotsAreIsolated(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	s := testScrim(t)
	if err := store.SaveScrim(ctx, s); err != nil {
		t.Fatal(err)
	}

	// mutating the caller's copy must not leak into the store
	s.Team1.Add("p1")

	got, err := store.GetScrim(ctx, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Team1.Size() != 0 {
		t.Fatal("store aliases the saved scrim")
	}

	// mutating a loaded copy must not leak either
	got.Team2.Add("p2")
	again, _ := store.GetScrim(ctx, s.ID)
	if again.Team2.Size() != 0 {
		t.Fatal("store aliases the loaded scrim")
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	s := testScrim(t)
	store.SaveScrim(ctx, s)
	s.State = models.StateCancelled
	store.SaveScrim(ctx, s)

	got, _ := store.GetScrim(ctx, s.ID)
	if got.State != models.StateCancelled {
		t.Fatalf("state=%s, want CANCELLED", got.State)
	}

	all, err := store.ListScrims(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("len=%d, want 1", len(all))
	}
}
