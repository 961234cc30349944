package models

import (
	"errors"
	"testing"
	"time"
)

func TestKDARatio(t *testing.T) {
	tests := []struct {
		kills, assists, deaths int
		want                   float64
	}{
		{3, 2, 0, 5},
		{3, 2, 5, 1.0},
		{0, 0, 0, 0},
		{10, 0, 4, 2.5},
	}
	for _, tt := range tests {
		kda, err := NewKDA(tt.kills, tt.assists, tt.deaths)
		if err != nil {
			t.Fatal(err)
		}
		if got := kda.Ratio(); got != tt.want {
			t.Errorf("ratio(%d/%d/%d)=%v, want %v", tt.kills, tt.assists, tt.deaths, got, tt.want)
		}
	}
}

func TestKDANegativeValues(t *testing.T) {
	if _, err := NewKDA(-1, 0, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNewStatLineValidation(t *testing.T) {
	now := time.Now()

	if _, err := NewStatLine("", 1, 1, 1, 5, now); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank player id: got %v", err)
	}
	if _, err := NewStatLine("p1", 1, 1, 1, 10.5, now); !errors.Is(err, ErrValidation) {
		t.Fatalf("rating above 10: got %v", err)
	}
	if _, err := NewStatLine("p1", 1, 1, 1, -0.1, now); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative rating: got %v", err)
	}

	line, err := NewStatLine("p1", 3, 2, 5, 7.5, now)
	if err != nil {
		t.Fatal(err)
	}
	if line.KDA.Ratio() != 1.0 {
		t.Fatalf("ratio=%v, want 1.0", line.KDA.Ratio())
	}
}
