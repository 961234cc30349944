package models

import (
	"errors"
	"testing"
)

func TestRosterAddAndCapacity(t *testing.T) {
	r := NewRoster(TeamOne, 2)

	if err := r.Add("p1"); err != nil {
		t.Fatal(err)
	}
	if err := r.Add("p2"); err != nil {
		t.Fatal(err)
	}
	if !r.Full() {
		t.Fatalf("roster should be full at %d/%d", r.Size(), r.Capacity)
	}

	err := r.Add("p3")
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if r.Size() != 2 {
		t.Fatalf("failed add must not grow roster, size=%d", r.Size())
	}
}

func TestRosterAddDuplicateIsNoop(t *testing.T) {
	r := NewRoster(TeamOne, 2)
	if err := r.Add("p1"); err != nil {
		t.Fatal(err)
	}
	if err := r.Add("p1"); err != nil {
		t.Fatalf("duplicate add must be a no-op, got %v", err)
	}
	if r.Size() != 1 {
		t.Fatalf("duplicate add grew roster to %d", r.Size())
	}
}

func TestRosterRemove(t *testing.T) {
	r := NewRoster(TeamTwo, 2)
	r.Add("p1")
	r.Add("p2")

	if !r.Remove("p1") {
		t.Fatal("remove of present player reported false")
	}
	if r.Remove("p1") {
		t.Fatal("remove of absent player reported true")
	}
	if r.Contains("p1") || !r.Contains("p2") {
		t.Fatalf("unexpected members after remove: %v", r.Members)
	}
}

func TestRosterConfirmEmptyTeam(t *testing.T) {
	r := NewRoster(TeamOne, 2)

	err := r.Confirm()
	if !errors.Is(err, ErrEmptyTeam) {
		t.Fatalf("expected ErrEmptyTeam, got %v", err)
	}
	if r.Confirmed {
		t.Fatal("failed confirm must not set the flag")
	}

	r.Add("p1")
	if err := r.Confirm(); err != nil {
		t.Fatal(err)
	}
	if !r.Confirmed {
		t.Fatal("confirm did not set the flag")
	}
}
