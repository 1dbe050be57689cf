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
	CreateTeamRequest struct {
		TeamName string `json:"team_name"`
	}

	CreateTeamResponse struct {
		Team models.Team `json:"team"`
	}

	GetTeamResponse struct {
		Team models.Team `json:"team"`
	}

	SlotRequest struct {
		TeamID       int    `json:"team_id"`
		EntityID     int    `json:"entity_id,omitempty"`
		SlotPosition int    `json:"slot_position"`
		EntityKind   string `json:"entity_kind"`
	}
)

type TeamHandler struct {
	rosterService *service.RosterService
	log           *slog.Logger
}

func NewTeamHandler(rosterService *service.RosterService, log *slog.Logger) *TeamHandler {
	return &TeamHandler{
		rosterService: rosterService,
		log:           log,
	}
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	const op = "handler.team.CreateTeam"

	log := h.log.With(
		slog.String("op", op),
	)

	userID, err := userIDFromRequest(r)
	if err != nil {
		log.Error("missing acting user", sl.Err(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid request body", sl.Err(err))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.TeamName == "" {
		log.Error("team_name is required")
		writeError(w, http.StatusBadRequest, "team_name is required")
		return
	}

	team, err := h.rosterService.CreateTeam(r.Context(), userID, req.TeamName)
	if err != nil {
		log.Error("failed to create team", sl.Err(err))
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CreateTeamResponse{Team: *team})
	log.Info("team created successfully")
}

func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	const op = "handler.team.GetTeam"

	log := h.log.With(
		slog.String("op", op),
	)

	teamID, err := strconv.Atoi(r.URL.Query().Get("team_id"))
	if err != nil {
		log.Error("team_id is required")
		writeError(w, http.StatusBadRequest, "team_id query parameter must be an integer")
		return
	}

	team, err := h.rosterService.GetTeam(r.Context(), teamID)
	if err != nil {
		log.Error("failed to get team", sl.Err(err))
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GetTeamResponse{Team: *team})
	log.Info("team retrieved successfully")
}

func (h *TeamHandler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	const op = "handler.team.GetMyTeam"

	log := h.log.With(
		slog.String("op", op),
	)

	userID, err := userIDFromRequest(r)
	if err != nil {
		log.Error("missing acting user", sl.Err(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	team, err := h.rosterService.GetMyTeam(r.Context(), userID)
	if err != nil {
		log.Error("failed to get own team", sl.Err(err))
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GetTeamResponse{Team: *team})
	log.Info("own team retrieved successfully")
}

func (h *TeamHandler) AddSlot(w http.ResponseWriter, r *http.Request) {
	const op = "handler.team.AddSlot"

	log := h.log.With(
		slog.String("op", op),
	)

	userID, err := userIDFromRequest(r)
	if err != nil {
		log.Error("missing acting user", sl.Err(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, kind, ok := h.decodeSlotRequest(w, r, log)
	if !ok {
		return
	}

	err = h.rosterService.AddEntity(r.Context(), req.TeamID, req.EntityID, req.SlotPosition, userID, kind)
	if err != nil {
		log.Error("failed to fill slot", sl.Err(err))
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
	log.Info("slot filled successfully")
}

func (h *TeamHandler) RemoveSlot(w http.ResponseWriter, r *http.Request) {
	const op = "handler.team.RemoveSlot"

	log := h.log.With(
		slog.String("op", op),
	)

	userID, err := userIDFromRequest(r)
	if err != nil {
		log.Error("missing acting user", sl.Err(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, kind, ok := h.decodeSlotRequest(w, r, log)
	if !ok {
		return
	}

	err = h.rosterService.RemoveEntity(r.Context(), req.TeamID, req.SlotPosition, userID, kind)
	if err != nil {
		log.Error("failed to clear slot", sl.Err(err))
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	log.Info("slot cleared successfully")
}

func (h *TeamHandler) decodeSlotRequest(w http.ResponseWriter, r *http.Request, log *slog.Logger) (SlotRequest, models.SlotKind, bool) {
	var req SlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid request body", sl.Err(err))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, "", false
	}

	if req.TeamID == 0 {
		log.Error("team_id is required")
		writeError(w, http.StatusBadRequest, "team_id is required")
		return req, "", false
	}

	switch models.SlotKind(req.EntityKind) {
	case models.SlotKindDriver, models.SlotKindConstructor:
		return req, models.SlotKind(req.EntityKind), true
	default:
		log.Error("invalid entity_kind", slog.String("entity_kind", req.EntityKind))
		writeError(w, http.StatusBadRequest, "entity_kind must be 'driver' or 'constructor'")
		return req, "", false
	}
}
