package service

import (
	"context"
	"errors"
	"fantasy-grid/internal/apperrors"
	"fantasy-grid/internal/config"
	"fantasy-grid/internal/domain/models"
	"fantasy-grid/internal/lib/logger/sl"
	"fmt"
	"log/slog"
)

type RosterService struct {
	log      *slog.Logger
	cfg      config.RosterConfig
	teamRepo RosterProvider
	catalog  CatalogLookup
}

type RosterProvider interface {
	CreateTeam(ctx context.Context, ownerUserID int, teamName string) (*models.Team, error)
	GetTeam(ctx context.Context, teamID int) (*models.Team, error)
	GetTeamByOwner(ctx context.Context, ownerUserID int) (*models.Team, error)
	GetTeamWithSlots(ctx context.Context, teamID int) (*models.Team, error)
	CountSlots(ctx context.Context, teamID int, kind models.SlotKind) (int, error)
	SlotOccupied(ctx context.Context, teamID int, slotPosition int, kind models.SlotKind) (bool, error)
	EntityOnTeam(ctx context.Context, teamID int, entityID int, kind models.SlotKind) (bool, error)
	AddSlot(ctx context.Context, teamID int, slotPosition int, entityID int, kind models.SlotKind) error
	RemoveSlot(ctx context.Context, teamID int, slotPosition int, kind models.SlotKind) error
}

// CatalogLookup is the reference-data boundary: the roster only ever asks
// whether an entity exists.
type CatalogLookup interface {
	DriverExists(ctx context.Context, driverID int) (bool, error)
	ConstructorExists(ctx context.Context, constructorID int) (bool, error)
}

func NewRosterService(
	log *slog.Logger,
	cfg config.RosterConfig,
	teamRepo RosterProvider,
	catalog CatalogLookup) *RosterService {
	return &RosterService{
		log:      log,
		cfg:      cfg,
		teamRepo: teamRepo,
		catalog:  catalog,
	}
}

func (s *RosterService) slotCapacity(kind models.SlotKind) (int, error) {
	switch kind {
	case models.SlotKindDriver:
		return s.cfg.DriverSlots, nil
	case models.SlotKindConstructor:
		return s.cfg.ConstructorSlots, nil
	default:
		return 0, fmt.Errorf("unknown slot kind %q", kind)
	}
}

func (s *RosterService) CreateTeam(ctx context.Context, ownerUserID int, teamName string) (*models.Team, error) {
	const op = "service.roster.CreateTeam"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("owner_user_id", ownerUserID),
	)

	log.Info("attempting to create team")

	if teamName == "" {
		log.Error("team name is required")
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrTeamNameRequired)
	}

	team, err := s.teamRepo.CreateTeam(ctx, ownerUserID, teamName)
	if err != nil {
		if errors.Is(err, apperrors.ErrTeamExists) {
			log.Warn("user already owns a team")
		} else {
			log.Error("failed to create team", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("team created successfully", slog.Int("team_id", team.TeamID))
	return team, nil
}

func (s *RosterService) GetTeam(ctx context.Context, teamID int) (*models.Team, error) {
	const op = "service.roster.GetTeam"

	team, err := s.teamRepo.GetTeamWithSlots(ctx, teamID)
	if err != nil {
		s.log.With(slog.String("op", op)).Error("failed to get team", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return team, nil
}

func (s *RosterService) GetMyTeam(ctx context.Context, ownerUserID int) (*models.Team, error) {
	const op = "service.roster.GetMyTeam"

	team, err := s.teamRepo.GetTeamByOwner(ctx, ownerUserID)
	if err != nil {
		s.log.With(slog.String("op", op)).Error("failed to resolve team by owner", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.teamRepo.GetTeamWithSlots(ctx, team.TeamID)
}

// AddEntity fills one roster slot. Checks run in a fixed order and the first
// violation wins: team exists, ownership, position range, free capacity, slot
// unoccupied, entity not already on the team, entity present in the catalog.
// The storage constraints re-enforce the occupancy and duplicate rules, so a
// concurrent add that slips past the reads still fails with the same error.
func (s *RosterService) AddEntity(ctx context.Context, teamID int, entityID int, slotPosition int, requestingUserID int, kind models.SlotKind) error {
	const op = "service.roster.AddEntity"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("team_id", teamID),
		slog.Int("entity_id", entityID),
		slog.Int("slot_position", slotPosition),
		slog.String("kind", string(kind)),
	)

	log.Info("attempting to fill roster slot")

	capacity, err := s.slotCapacity(kind)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	team, err := s.teamRepo.GetTeam(ctx, teamID)
	if err != nil {
		log.Error("failed to get team", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if team.OwnerUserID != requestingUserID {
		log.Warn("requesting user does not own team",
			slog.Int("requesting_user_id", requestingUserID),
			slog.Int("owner_user_id", team.OwnerUserID))
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotTeamOwner)
	}

	if slotPosition < 0 || slotPosition >= capacity {
		log.Error("slot position out of range", slog.Int("capacity", capacity))
		return fmt.Errorf("%s: %w", op, apperrors.ErrSlotPositionInvalid)
	}

	count, err := s.teamRepo.CountSlots(ctx, teamID, kind)
	if err != nil {
		log.Error("failed to count slots", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if count >= capacity {
		log.Warn("roster is full", slog.Int("count", count))
		return fmt.Errorf("%s: %w", op, apperrors.ErrRosterFull)
	}

	occupied, err := s.teamRepo.SlotOccupied(ctx, teamID, slotPosition, kind)
	if err != nil {
		log.Error("failed to check slot occupancy", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if occupied {
		log.Warn("slot position already occupied")
		return fmt.Errorf("%s: %w", op, apperrors.ErrSlotOccupied)
	}

	present, err := s.teamRepo.EntityOnTeam(ctx, teamID, entityID, kind)
	if err != nil {
		log.Error("failed to check entity presence", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if present {
		log.Warn("entity already on team")
		if kind == models.SlotKindConstructor {
			return fmt.Errorf("%s: %w", op, apperrors.ErrConstructorAlreadyOnTeam)
		}
		return fmt.Errorf("%s: %w", op, apperrors.ErrDriverAlreadyOnTeam)
	}

	exists, err := s.entityExists(ctx, entityID, kind)
	if err != nil {
		log.Error("failed to check catalog", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		log.Warn("entity not found in catalog")
		if kind == models.SlotKindConstructor {
			return fmt.Errorf("%s: %w", op, apperrors.ErrConstructorNotFound)
		}
		return fmt.Errorf("%s: %w", op, apperrors.ErrDriverNotFound)
	}

	if err := s.teamRepo.AddSlot(ctx, teamID, slotPosition, entityID, kind); err != nil {
		log.Error("failed to add slot", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("roster slot filled successfully")
	return nil
}

func (s *RosterService) RemoveEntity(ctx context.Context, teamID int, slotPosition int, requestingUserID int, kind models.SlotKind) error {
	const op = "service.roster.RemoveEntity"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("team_id", teamID),
		slog.Int("slot_position", slotPosition),
		slog.String("kind", string(kind)),
	)

	log.Info("attempting to clear roster slot")

	team, err := s.teamRepo.GetTeam(ctx, teamID)
	if err != nil {
		log.Error("failed to get team", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if team.OwnerUserID != requestingUserID {
		log.Warn("requesting user does not own team",
			slog.Int("requesting_user_id", requestingUserID),
			slog.Int("owner_user_id", team.OwnerUserID))
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotTeamOwner)
	}

	if err := s.teamRepo.RemoveSlot(ctx, teamID, slotPosition, kind); err != nil {
		if errors.Is(err, apperrors.ErrSlotEmpty) {
			log.Warn("no entity at slot position")
		} else {
			log.Error("failed to remove slot", sl.Err(err))
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("roster slot cleared successfully")
	return nil
}

func (s *RosterService) entityExists(ctx context.Context, entityID int, kind models.SlotKind) (bool, error) {
	switch kind {
	case models.SlotKindDriver:
		return s.catalog.DriverExists(ctx, entityID)
	case models.SlotKindConstructor:
		return s.catalog.ConstructorExists(ctx, entityID)
	default:
		return false, fmt.Errorf("unknown slot kind %q", kind)
	}
}
