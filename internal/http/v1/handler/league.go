package handler

import (
	"encoding/json"
	"fantasy-grid/internal/domain/models"
	"fantasy-grid/internal/lib/logger/sl"
	"fantasy-grid/internal/service"
	"log/slog"
	"net/http"
	"strconv"
)

type (
	CreateLeagueRequest struct {
		LeagueName  string `json:"league_name"`
		Description string `json:"description"`
		IsPrivate   bool   `json:"is_private"`
		MaxTeams    int    `json:"max_teams"`
	}

	CreateLeagueResponse struct {
		League models.League `json:"league"`
	}

	GetLeagueResponse struct {
		League  models.League `json:"league"`
		Members []models.Team `json:"members"`
	}

	ListLeaguesResponse struct {
		Leagues []models.League `json:"leagues"`
	}

	JoinLeagueRequest struct {
		LeagueID int `json:"league_id"`
	}
)

type LeagueHandler struct {
	leagueService *service.LeagueService
	log           *slog.Logger
}

func NewLeagueHandler(leagueService *service.LeagueService, log *slog.Logger) *LeagueHandler {
	return &LeagueHandler{
		leagueService: leagueService,
		log:           log,
	}
}

func (h *LeagueHandler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	const op = "handler.league.CreateLeague"

	log := h.log.With(
		slog.String("op", op),
	)

	userID, err := userIDFromRequest(r)
	if err != nil {
		log.Error("missing acting user", sl.Err(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req CreateLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid request body", sl.Err(err))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.LeagueName == "" {
		log.Error("league_name is required")
		writeError(w, http.StatusBadRequest, "league_name is required")
		return
	}

	if req.MaxTeams < 1 {
		log.Error("max_teams must be at least 1")
		writeError(w, http.StatusBadRequest, "max_teams must be at least 1")
		return
	}

	league, err := h.leagueService.CreateLeague(r.Context(), req.LeagueName, req.Description, req.IsPrivate, req.MaxTeams, userID)
	if err != nil {
		log.Error("failed to create league", sl.Err(err))
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CreateLeagueResponse{League: *league})
	log.Info("league created successfully")
}

func (h *LeagueHandler) GetLeague(w http.ResponseWriter, r *http.Request) {
	const op = "handler.league.GetLeague"

	log := h.log.With(
		slog.String("op", op),
	)

	leagueID, err := strconv.Atoi(r.URL.Query().Get("league_id"))
	if err != nil {
		log.Error("league_id is required")
		writeError(w, http.StatusBadRequest, "league_id query parameter must be an integer")
		return
	}

	league, members, err := h.leagueService.GetLeague(r.Context(), leagueID)
	if err != nil {
		log.Error("failed to get league", sl.Err(err))
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GetLeagueResponse{League: *league, Members: members})
	log.Info("league retrieved successfully")
}

func (h *LeagueHandler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	const op = "handler.league.ListLeagues"

	log := h.log.With(
		slog.String("op", op),
	)

	leagues, err := h.leagueService.ListPublicLeagues(r.Context())
	if err != nil {
		log.Error("failed to list leagues", sl.Err(err))
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ListLeaguesResponse{Leagues: leagues})
	log.Info("leagues listed successfully", slog.Int("league_count", len(leagues)))
}

func (h *LeagueHandler) JoinLeague(w http.ResponseWriter, r *http.Request) {
	const op = "handler.league.JoinLeague"

	log := h.log.With(
		slog.String("op", op),
	)

	userID, err := userIDFromRequest(r)
	if err != nil {
		log.Error("missing acting user", sl.Err(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req JoinLeagueRequest
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

	if err := h.leagueService.JoinLeague(r.Context(), req.LeagueID, userID); err != nil {
		log.Error("failed to join league", sl.Err(err))
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "joined"})
	log.Info("league joined successfully")
}
