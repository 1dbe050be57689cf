package repo

import (
	"context"
	"database/sql"
	"errors"
	"fantasy-grid/internal/apperrors"
	"fantasy-grid/internal/domain/models"
	"fmt"
	"github.com/jmoiron/sqlx"
)

type TeamRepo struct {
	storage *sqlx.DB
}

func NewTeamRepo(storage *sqlx.DB) *TeamRepo {
	return &TeamRepo{storage: storage}
}

// slotTable maps a slot kind to its table and entity column. Driver and
// constructor slots are parallel tables with identical shape, so every slot
// query is written once and parameterized here.
func slotTable(kind models.SlotKind) (table string, entityColumn string, err error) {
	switch kind {
	case models.SlotKindDriver:
		return "team_driver_slots", "driver_id", nil
	case models.SlotKindConstructor:
		return "team_constructor_slots", "constructor_id", nil
	default:
		return "", "", fmt.Errorf("unknown slot kind %q", kind)
	}
}

func (r *TeamRepo) CreateTeam(ctx context.Context, ownerUserID int, teamName string) (*models.Team, error) {
	const op = "repo.team.CreateTeam"

	query := `INSERT INTO teams (owner_user_id, team_name) VALUES ($1, $2)
		RETURNING team_id, owner_user_id, team_name`

	var team models.Team
	err := r.storage.QueryRowxContext(ctx, query, ownerUserID, teamName).StructScan(&team)
	if err != nil {
		if uniqueViolation(err, "teams_owner_user_id_key") {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrTeamExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &team, nil
}

func (r *TeamRepo) GetTeam(ctx context.Context, teamID int) (*models.Team, error) {
	const op = "repo.team.GetTeam"

	query := `SELECT team_id, owner_user_id, team_name FROM teams WHERE team_id = $1`

	var team models.Team
	err := r.storage.GetContext(ctx, &team, query, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrTeamNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &team, nil
}

func (r *TeamRepo) GetTeamByOwner(ctx context.Context, ownerUserID int) (*models.Team, error) {
	const op = "repo.team.GetTeamByOwner"

	query := `SELECT team_id, owner_user_id, team_name FROM teams WHERE owner_user_id = $1`

	var team models.Team
	err := r.storage.GetContext(ctx, &team, query, ownerUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrTeamNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &team, nil
}

func (r *TeamRepo) GetTeamWithSlots(ctx context.Context, teamID int) (*models.Team, error) {
	const op = "repo.team.GetTeamWithSlots"

	team, err := r.GetTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	driverQuery := `
		SELECT s.team_id, s.slot_position, s.driver_id, d.driver_name
		FROM team_driver_slots s
		JOIN drivers d ON d.driver_id = s.driver_id
		WHERE s.team_id = $1
		ORDER BY s.slot_position`

	if err := r.storage.SelectContext(ctx, &team.DriverSlots, driverQuery, teamID); err != nil {
		return nil, fmt.Errorf("%s: failed to get driver slots: %w", op, err)
	}

	constructorQuery := `
		SELECT s.team_id, s.slot_position, s.constructor_id, c.constructor_name
		FROM team_constructor_slots s
		JOIN constructors c ON c.constructor_id = s.constructor_id
		WHERE s.team_id = $1
		ORDER BY s.slot_position`

	if err := r.storage.SelectContext(ctx, &team.ConstructorSlots, constructorQuery, teamID); err != nil {
		return nil, fmt.Errorf("%s: failed to get constructor slots: %w", op, err)
	}

	return team, nil
}

func (r *TeamRepo) CountSlots(ctx context.Context, teamID int, kind models.SlotKind) (int, error) {
	const op = "repo.team.CountSlots"

	table, _, err := slotTable(kind)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE team_id = $1`, table)

	var count int
	if err := r.storage.GetContext(ctx, &count, query, teamID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

func (r *TeamRepo) SlotOccupied(ctx context.Context, teamID int, slotPosition int, kind models.SlotKind) (bool, error) {
	const op = "repo.team.SlotOccupied"

	table, _, err := slotTable(kind)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE team_id = $1 AND slot_position = $2)`, table)

	var occupied bool
	if err := r.storage.GetContext(ctx, &occupied, query, teamID, slotPosition); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return occupied, nil
}

func (r *TeamRepo) EntityOnTeam(ctx context.Context, teamID int, entityID int, kind models.SlotKind) (bool, error) {
	const op = "repo.team.EntityOnTeam"

	table, entityColumn, err := slotTable(kind)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE team_id = $1 AND %s = $2)`, table, entityColumn)

	var present bool
	if err := r.storage.GetContext(ctx, &present, query, teamID, entityID); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return present, nil
}

func (r *TeamRepo) AddSlot(ctx context.Context, teamID int, slotPosition int, entityID int, kind models.SlotKind) error {
	const op = "repo.team.AddSlot"

	table, entityColumn, err := slotTable(kind)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (team_id, slot_position, %s) VALUES ($1, $2, $3)`, table, entityColumn)

	_, err = r.storage.ExecContext(ctx, query, teamID, slotPosition, entityID)
	if err != nil {
		// Two writers can pass the read checks together; the constraints
		// decide the loser here.
		if uniqueViolation(err, table+"_team_id_slot_position_key") {
			return fmt.Errorf("%s: %w", op, apperrors.ErrSlotOccupied)
		}
		if uniqueViolation(err, table+"_team_id_"+entityColumn+"_key") {
			if kind == models.SlotKindConstructor {
				return fmt.Errorf("%s: %w", op, apperrors.ErrConstructorAlreadyOnTeam)
			}
			return fmt.Errorf("%s: %w", op, apperrors.ErrDriverAlreadyOnTeam)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *TeamRepo) RemoveSlot(ctx context.Context, teamID int, slotPosition int, kind models.SlotKind) error {
	const op = "repo.team.RemoveSlot"

	table, _, err := slotTable(kind)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE team_id = $1 AND slot_position = $2`, table)

	result, err := r.storage.ExecContext(ctx, query, teamID, slotPosition)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, apperrors.ErrSlotEmpty)
	}

	return nil
}
