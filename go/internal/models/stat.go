package models

import (
	"fmt"
	"time"
)

// KDA is a kill/assist/death triple.
type KDA struct {
	Kills   int `json:"kills"`
	Assists int `json:"assists"`
	Deaths  int `json:"deaths"`
}

// NewKDA validates that no component is negative.
func NewKDA(kills, assists, deaths int) (KDA, error) {
	if kills < 0 || assists < 0 || deaths < 0 {
		return KDA{}, fmt.Errorf("kda values must be >= 0: %w", ErrValidation)
	}
	return KDA{Kills: kills, Assists: assists, Deaths: deaths}, nil
}

// Ratio is (kills+assists)/deaths, or kills+assists when deaths is zero.
func (k KDA) Ratio() float64 {
	if k.Deaths == 0 {
		return float64(k.Kills + k.Assists)
	}
	return float64(k.Kills+k.Assists) / float64(k.Deaths)
}

// StatLine is one player's reported performance for a scrim. Stat lines are
// append-only; they are never mutated or removed.
type StatLine struct {
	PlayerID   string    `json:"player_id"`
	KDA        KDA       `json:"kda"`
	Rating     float64   `json:"rating"`
	RecordedAt time.Time `json:"recorded_at"`
}

// NewStatLine builds a validated stat entry.
func NewStatLine(playerID string, kills, assists, deaths int, rating float64, at time.Time) (StatLine, error) {
	if playerID == "" {
		return StatLine{}, fmt.Errorf("player id is required: %w", ErrValidation)
	}
	kda, err := NewKDA(kills, assists, deaths)
	if err != nil {
		return StatLine{}, err
	}
	if rating < 0 || rating > 10 {
		return StatLine{}, fmt.Errorf("rating must be in [0,10]: %w", ErrValidation)
	}
	return StatLine{PlayerID: playerID, KDA: kda, Rating: rating, RecordedAt: at}, nil
}

// Result is the final outcome of a scrim: winner team label plus per-team scores.
type Result struct {
	Winner     string    `json:"winner"`
	ScoreTeam1 int       `json:"score_team1"`
	ScoreTeam2 int       `json:"score_team2"`
	ReportedAt time.Time `json:"reported_at"`
}
