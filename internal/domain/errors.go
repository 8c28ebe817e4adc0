package domain

import "errors"

var (
	// ErrInvitationNotFound is returned when a challenge link points at an
	// invitation that does not exist or has expired.
	ErrInvitationNotFound = errors.New("invitation not found")
	// ErrCitiesUnavailable indicates the city source failed and no fallback applied.
	ErrCitiesUnavailable = errors.New("cities unavailable")
	// ErrCityPoolEmpty indicates a round cannot start without any cities.
	ErrCityPoolEmpty = errors.New("city pool is empty")
	// ErrRoundNotActive is returned when a guess arrives outside an open round.
	ErrRoundNotActive = errors.New("round not active")
	// ErrSecondChanceNotOffered is returned when accept/decline arrives
	// without a preceding wrong first guess.
	ErrSecondChanceNotOffered = errors.New("second chance not offered")
	// ErrSecondChancePending is returned when a guess arrives while the
	// accept/decline decision is still open.
	ErrSecondChancePending = errors.New("second chance decision pending")
	// ErrEmptyPlayerName rejects blank display names on join.
	ErrEmptyPlayerName = errors.New("player name must not be empty")
)
