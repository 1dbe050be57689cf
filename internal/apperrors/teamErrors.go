package apperrors

import "errors"

var (
	ErrTeamExists   = errors.New("user already owns a team")
	ErrTeamNotFound = errors.New("team not found")
	ErrNotTeamOwner = errors.New("requesting user is not the team owner")

	ErrTeamNameRequired = errors.New("team name is required")

	ErrSlotPositionInvalid = errors.New("slot position out of range")
	ErrSlotOccupied        = errors.New("slot position already occupied")
	ErrSlotEmpty           = errors.New("no entity at this slot position")
	ErrRosterFull          = errors.New("no free slots of this kind left on team")

	ErrDriverAlreadyOnTeam      = errors.New("driver already on this team")
	ErrConstructorAlreadyOnTeam = errors.New("constructor already on this team")
)
