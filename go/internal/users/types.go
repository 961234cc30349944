package users

import "errors"

// ErrUnknownPlayer is returned when a player id cannot be resolved.
var ErrUnknownPlayer = errors.New("unknown player")

// Player is the profile the lobby consults before letting someone join a
// scrim. Registration, authentication, and conduct tracking live outside this
// service; only the fields the match constraints need are modeled here.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MMR       int    `json:"mmr"`
	Region    string `json:"region"`
	LatencyMs int    `json:"latency_ms"`
}
