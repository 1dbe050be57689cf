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

type LeagueRepo struct {
	storage *sqlx.DB
}

func NewLeagueRepo(storage *sqlx.DB) *LeagueRepo {
	return &LeagueRepo{storage: storage}
}

// CreateLeague inserts the league and enrolls the owner's team as its first
// member in the same transaction. A league without its owner enrolled never
// becomes visible.
func (r *LeagueRepo) CreateLeague(ctx context.Context, league models.League, ownerTeamID int) (*models.League, error) {
	const op = "repo.league.CreateLeague"

	tx, err := r.storage.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	leagueQuery := `
		INSERT INTO leagues (owner_user_id, league_name, description, is_private, max_teams)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING league_id, owner_user_id, league_name, description, is_private, max_teams`

	var created models.League
	err = tx.QueryRowxContext(ctx, leagueQuery,
		league.OwnerUserID, league.LeagueName, league.Description, league.IsPrivate, league.MaxTeams,
	).StructScan(&created)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create league: %w", op, err)
	}

	memberQuery := `
		INSERT INTO league_memberships (league_id, team_id, created_by_user_id)
		VALUES ($1, $2, $3)`

	_, err = tx.ExecContext(ctx, memberQuery, created.LeagueID, ownerTeamID, league.OwnerUserID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to enroll owner team: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	created.MemberCount = 1
	return &created, nil
}

func (r *LeagueRepo) GetLeague(ctx context.Context, leagueID int) (*models.League, error) {
	const op = "repo.league.GetLeague"

	query := `
		SELECT l.league_id, l.owner_user_id, l.league_name, l.description, l.is_private, l.max_teams,
			(SELECT COUNT(*) FROM league_memberships m WHERE m.league_id = l.league_id) AS member_count
		FROM leagues l
		WHERE l.league_id = $1`

	var league models.League
	err := r.storage.GetContext(ctx, &league, query, leagueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrLeagueNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &league, nil
}

func (r *LeagueRepo) ListPublicLeagues(ctx context.Context) ([]models.League, error) {
	const op = "repo.league.ListPublicLeagues"

	query := `
		SELECT l.league_id, l.owner_user_id, l.league_name, l.description, l.is_private, l.max_teams,
			(SELECT COUNT(*) FROM league_memberships m WHERE m.league_id = l.league_id) AS member_count
		FROM leagues l
		WHERE l.is_private = FALSE
		ORDER BY l.league_id`

	var leagues []models.League
	if err := r.storage.SelectContext(ctx, &leagues, query); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return leagues, nil
}

func (r *LeagueRepo) GetMemberTeams(ctx context.Context, leagueID int) ([]models.Team, error) {
	const op = "repo.league.GetMemberTeams"

	query := `
		SELECT t.team_id, t.owner_user_id, t.team_name
		FROM teams t
		JOIN league_memberships m ON m.team_id = t.team_id
		WHERE m.league_id = $1
		ORDER BY m.joined_at`

	var teams []models.Team
	if err := r.storage.SelectContext(ctx, &teams, query, leagueID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return teams, nil
}

func (r *LeagueRepo) IsMember(ctx context.Context, leagueID int, teamID int) (bool, error) {
	const op = "repo.league.IsMember"

	query := `SELECT EXISTS(SELECT 1 FROM league_memberships WHERE league_id = $1 AND team_id = $2)`

	var member bool
	if err := r.storage.GetContext(ctx, &member, query, leagueID, teamID); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return member, nil
}

// AddMember inserts a membership while holding a row lock on the league, so
// the capacity check and the insert are one atomic step. Two concurrent joins
// racing for the last free spot serialize on the lock; the second one
// recounts and gets ErrLeagueFull.
func (r *LeagueRepo) AddMember(ctx context.Context, leagueID int, teamID int, createdByUserID int) error {
	const op = "repo.league.AddMember"

	tx, err := r.storage.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	lockQuery := `SELECT max_teams FROM leagues WHERE league_id = $1 FOR UPDATE`

	var maxTeams int
	err = tx.GetContext(ctx, &maxTeams, lockQuery, leagueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, apperrors.ErrLeagueNotFound)
		}
		return fmt.Errorf("%s: failed to lock league: %w", op, err)
	}

	countQuery := `SELECT COUNT(*) FROM league_memberships WHERE league_id = $1`

	var memberCount int
	if err := tx.GetContext(ctx, &memberCount, countQuery, leagueID); err != nil {
		return fmt.Errorf("%s: failed to count memberships: %w", op, err)
	}
	if memberCount >= maxTeams {
		return fmt.Errorf("%s: %w", op, apperrors.ErrLeagueFull)
	}

	insertQuery := `
		INSERT INTO league_memberships (league_id, team_id, created_by_user_id)
		VALUES ($1, $2, $3)`

	_, err = tx.ExecContext(ctx, insertQuery, leagueID, teamID, createdByUserID)
	if err != nil {
		if uniqueViolation(err, "league_memberships_league_id_team_id_key") {
			return fmt.Errorf("%s: %w", op, apperrors.ErrAlreadyMember)
		}
		return fmt.Errorf("%s: failed to insert membership: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}
