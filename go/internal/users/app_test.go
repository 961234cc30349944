package users

import (
	"context"
	"errors"
	"testing"
)

func TestLookupAndExists(t *testing.T) {
	app := NewApp(NewMemoryRepository(
		Player{ID: "p1", Name: "One", MMR: 1500, Region: "SA", LatencyMs: 30},
	))
	ctx := context.Background()

	p, err := app.Lookup(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "One" {
		t.Fatalf("name=%s, want One", p.Name)
	}

	if _, err := app.Lookup(ctx, "ghost"); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("got %v, want ErrUnknownPlayer", err)
	}

	ok, err := app.Exists(ctx, "p1")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	ok, err = app.Exists(ctx, "ghost")
	if err != nil || ok {
		t.Fatalf("ok=%v err=%v for unknown id", ok, err)
	}
}

func TestUpsertPlayer(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.UpsertPlayer(ctx, Player{}); err == nil {
		t.Fatal("expected error for blank id")
	}
	if err := repo.UpsertPlayer(ctx, Player{ID: "p1", MMR: 1200}); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpsertPlayer(ctx, Player{ID: "p1", MMR: 1300}); err != nil {
		t.Fatal(err)
	}

	p, err := repo.GetPlayer(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if p.MMR != 1300 {
		t.Fatalf("mmr=%d, want 1300", p.MMR)
	}
}
