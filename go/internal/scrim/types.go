package scrim

import "time"

// CreateScrimRequest carries the per-match parameters supplied at creation
// time. Team capacity is fixed here, not globally configured.
type CreateScrimRequest struct {
	Game         string
	CreatorID    string
	RangeMin     int
	RangeMax     int
	TeamSize     int
	Format       string
	Region       string
	MaxLatencyMs int
	Mode         string
	StartAt      *time.Time
	EndAt        *time.Time
}

// RecordStatRequest is one player's reported performance.
type RecordStatRequest struct {
	PlayerID string
	Kills    int
	Assists  int
	Deaths   int
	Rating   float64
}

// ReportResultRequest records the final outcome of a finished scrim.
type ReportResultRequest struct {
	Winner     string
	ScoreTeam1 int
	ScoreTeam2 int
}
