package handler

import (
	"encoding/json"
	"fantasy-grid/internal/domain/models"
	"fantasy-grid/internal/lib/logger/sl"
	"fantasy-grid/internal/service"
	"log/slog"
	"net/http"
)

type (
	CreateInviteRequest struct {
		LeagueID int `json:"league_id"`
	}

	CreateInviteResponse struct {
		Token string `json:"token"`
	}

	PreviewInviteResponse struct {
		Preview models.InvitePreview `json:"preview"`
	}

	JoinViaInviteRequest struct {
		Token string `json:"token"`
	}
)

type InviteHandler struct {
	leagueService *service.LeagueService
	log           *slog.Logger
}

func NewInviteHandler(leagueService *service.LeagueService, log *slog.Logger) *InviteHandler {
	return &InviteHandler{
		leagueService: leagueService,
		log:           log,
	}
}

func (h *InviteHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	const op = "handler.invite.CreateInvite"

	log := h.log.With(
		slog.String("op", op),
	)

	userID, err := userIDFromRequest(r)
	if err != nil {
		log.Error("missing acting user", sl.Err(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid request body", sl.Err(err))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.LeagueID == 0 {
		log.Error("league_id is required")
		writeError(w, http.StatusBadRequest, "league_id is required")
		return
	}

	tok, err := h.leagueService.GetOrCreateInviteToken(r.Context(), req.LeagueID, userID)
	if err != nil {
		log.Error("failed to get or create invite token", sl.Err(err))
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CreateInviteResponse{Token: tok.Token})
	log.Info("invite token returned successfully")
}

func (h *InviteHandler) PreviewInvite(w http.ResponseWriter, r *http.Request) {
	const op = "handler.invite.PreviewInvite"

	log := h.log.With(
		slog.String("op", op),
	)

	tokenCode := r.URL.Query().Get("token")
	if tokenCode == "" {
		log.Error("token is required")
		writeError(w, http.StatusBadRequest, "token query parameter is required")
		return
	}

	preview, err := h.leagueService.PreviewInvite(r.Context(), tokenCode)
	if err != nil {
		log.Error("failed to preview invite", sl.Err(err))
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PreviewInviteResponse{Preview: *preview})
	log.Info("invite previewed successfully")
}

func (h *InviteHandler) JoinViaInvite(w http.ResponseWriter, r *http.Request) {
	const op = "handler.invite.JoinViaInvite"

	log := h.log.With(
		slog.String("op", op),
	)

	userID, err := userIDFromRequest(r)
	if err != nil {
		log.Error("missing acting user", sl.Err(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req JoinViaInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid request body", sl.Err(err))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Token == "" {
		log.Error("token is required")
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.leagueService.JoinLeagueViaInvite(r.Context(), req.Token, userID); err != nil {
		log.Error("failed to join via invite", sl.Err(err))
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "joined"})
	log.Info("league joined via invite successfully")
}
