package apperrors

import "errors"

var (
	// ErrInviteInvalid covers malformed, unknown and stale tokens alike so the
	// caller cannot tell which leagues exist from the error shape.
	ErrInviteInvalid = errors.New("invite token is invalid")

	ErrInviteCodeExhausted = errors.New("invite code generation exhausted retry budget")

	// Store-level signals for the get-or-create loop. ErrInviteCodeTaken means
	// the generated code collided globally and a fresh one must be drawn;
	// ErrLeagueTokenExists means a concurrent mint for the same league won and
	// its token should be returned instead.
	ErrInviteCodeTaken   = errors.New("invite code already in use")
	ErrLeagueTokenExists = errors.New("league already has a live invite token")
)
