package handler

import (
	"encoding/json"
	"errors"
	"fantasy-grid/internal/apperrors"
	"fmt"
	"net/http"
	"strconv"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// userIDFromRequest reads the acting user resolved by the upstream auth layer.
// This service never authenticates; it only trusts the header contract.
func userIDFromRequest(r *http.Request) (int, error) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return 0, errors.New("X-User-ID header is required")
	}

	userID, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("X-User-ID must be an integer: %w", err)
	}

	return userID, nil
}

// statusFromError maps the error kinds of the apperrors package onto HTTP
// statuses. The services never pick status codes themselves; this is the only
// place kinds and transport meet. Unrecognized errors stay 500 and keep their
// cause out of the response body.
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrInviteInvalid):
		// Deliberately generic: the caller must not learn whether a league
		// exists behind a guessed token.
		return http.StatusNotFound, "invite link invalid"
	case errors.Is(err, apperrors.ErrTeamRequired):
		return http.StatusNotFound, "create a team first"
	case errors.Is(err, apperrors.ErrTeamNotFound):
		return http.StatusNotFound, "team not found"
	case errors.Is(err, apperrors.ErrLeagueNotFound):
		return http.StatusNotFound, "league not found"
	case errors.Is(err, apperrors.ErrDriverNotFound):
		return http.StatusNotFound, "driver not found"
	case errors.Is(err, apperrors.ErrConstructorNotFound):
		return http.StatusNotFound, "constructor not found"
	case errors.Is(err, apperrors.ErrSlotEmpty):
		return http.StatusNotFound, "slot is empty"
	case errors.Is(err, apperrors.ErrNotTeamOwner),
		errors.Is(err, apperrors.ErrNotLeagueOwner):
		return http.StatusForbidden, "not allowed"
	case errors.Is(err, apperrors.ErrLeaguePrivate):
		return http.StatusForbidden, "league is private"
	case errors.Is(err, apperrors.ErrLeagueNotPrivate):
		return http.StatusForbidden, "public leagues do not use invites"
	case errors.Is(err, apperrors.ErrTeamExists):
		return http.StatusConflict, "user already owns a team"
	case errors.Is(err, apperrors.ErrSlotOccupied):
		return http.StatusConflict, "slot already occupied"
	case errors.Is(err, apperrors.ErrRosterFull):
		return http.StatusConflict, "roster is full"
	case errors.Is(err, apperrors.ErrDriverAlreadyOnTeam):
		return http.StatusConflict, "driver already on team"
	case errors.Is(err, apperrors.ErrConstructorAlreadyOnTeam):
		return http.StatusConflict, "constructor already on team"
	case errors.Is(err, apperrors.ErrLeagueFull):
		return http.StatusConflict, "league is full"
	case errors.Is(err, apperrors.ErrAlreadyMember):
		return http.StatusConflict, "already a member"
	case errors.Is(err, apperrors.ErrSlotPositionInvalid),
		errors.Is(err, apperrors.ErrTeamNameRequired),
		errors.Is(err, apperrors.ErrLeagueNameRequired),
		errors.Is(err, apperrors.ErrMaxTeamsInvalid):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrInviteCodeExhausted):
		return http.StatusServiceUnavailable, "could not issue invite, try again"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("Error encoding JSON response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError translates a service-layer failure. Internal errors keep
// their details server-side only.
func writeServiceError(w http.ResponseWriter, err error) {
	status, message := statusFromError(err)
	writeError(w, status, message)
}
