package events

import "time"

// Payload structs carried in the Event envelope's Data field.

type MatchCreatedPayload struct {
	Game      string `json:"game"`
	CreatorID string `json:"creator_id"`
	Format    string `json:"format"`
	Region    string `json:"region"`
	Mode      string `json:"mode"`
	TeamSize  int    `json:"team_size"`
}

type PlayerJoinedPayload struct {
	PlayerID string `json:"player_id"`
	Team     string `json:"team"`
}

type PlayerLeftPayload struct {
	PlayerID string `json:"player_id"`
	Team     string `json:"team"`
}

type TeamConfirmedPayload struct {
	Team string `json:"team"`
}

type MatchScheduledPayload struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

type MatchStartedPayload struct {
	StartedAt time.Time `json:"started_at"`
}

type MatchFinishedPayload struct {
	FinishedAt time.Time `json:"finished_at"`
}

type MatchCancelledPayload struct {
	CancelledAt time.Time `json:"cancelled_at"`
}

type StatRecordedPayload struct {
	PlayerID string  `json:"player_id"`
	Kills    int     `json:"kills"`
	Assists  int     `json:"assists"`
	Deaths   int     `json:"deaths"`
	Ratio    float64 `json:"ratio"`
	Rating   float64 `json:"rating"`
}

type ResultReportedPayload struct {
	Winner     string `json:"winner"`
	ScoreTeam1 int    `json:"score_team1"`
	ScoreTeam2 int    `json:"score_team2"`
}

type WaitlistJoinedPayload struct {
	PlayerID string `json:"player_id"`
	Position int    `json:"position"`
}

type WaitlistLeftPayload struct {
	PlayerID string `json:"player_id"`
}

type SlotFreedPayload struct {
	Team        string `json:"team"`
	WaitlistLen int    `json:"waitlist_len"`
}
