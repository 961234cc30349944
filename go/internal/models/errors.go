package models

import "errors"

var (
	// ErrValidation is returned when creation parameters are malformed.
	ErrValidation = errors.New("validation failed")

	// ErrCapacityExceeded is returned when a roster is already at capacity.
	ErrCapacityExceeded = errors.New("roster at capacity")

	// ErrEmptyTeam is returned when confirming a team with no members.
	ErrEmptyTeam = errors.New("team has no members")

	// ErrNotAMember is returned when removing a player that is on neither roster.
	ErrNotAMember = errors.New("player is not a member")

	// ErrInvalidWindow is returned when a scheduling window does not end after it starts.
	ErrInvalidWindow = errors.New("invalid scheduling window")

	// ErrResultAlreadySet is returned when a match already carries a final result.
	ErrResultAlreadySet = errors.New("result already reported")
)
