package apperrors

import "errors"

var (
	ErrLeagueNotFound = errors.New("league not found")
	ErrLeagueFull     = errors.New("league has reached its team limit")
	ErrAlreadyMember  = errors.New("team is already a member of this league")

	// ErrTeamRequired is deliberately not ErrTeamNotFound: the caller must
	// prompt the user to create a team first, not show a missing-resource page.
	ErrTeamRequired = errors.New("user must create a team before joining a league")

	ErrNotLeagueOwner   = errors.New("requesting user is not the league owner")
	ErrLeaguePrivate    = errors.New("private league cannot be joined directly")
	ErrLeagueNotPrivate = errors.New("public leagues do not use invite tokens")

	ErrLeagueNameRequired = errors.New("league name is required")
	ErrMaxTeamsInvalid    = errors.New("max_teams must be at least 1")
)
