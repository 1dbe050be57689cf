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

type InviteRepo struct {
	storage *sqlx.DB
}

func NewInviteRepo(storage *sqlx.DB) *InviteRepo {
	return &InviteRepo{storage: storage}
}

// GetTokenByLeague returns the league's live token, or (nil, nil) when none
// has been minted yet.
func (r *InviteRepo) GetTokenByLeague(ctx context.Context, leagueID int) (*models.InviteToken, error) {
	const op = "repo.invite.GetTokenByLeague"

	query := `SELECT token, league_id, created_by_user_id, created_at
		FROM invite_tokens WHERE league_id = $1`

	var tok models.InviteToken
	err := r.storage.GetContext(ctx, &tok, query, leagueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &tok, nil
}

func (r *InviteRepo) CreateToken(ctx context.Context, tok models.InviteToken) (*models.InviteToken, error) {
	const op = "repo.invite.CreateToken"

	query := `INSERT INTO invite_tokens (token, league_id, created_by_user_id)
		VALUES ($1, $2, $3)
		RETURNING token, league_id, created_by_user_id, created_at`

	var created models.InviteToken
	err := r.storage.QueryRowxContext(ctx, query, tok.Token, tok.LeagueID, tok.CreatedByUserID).StructScan(&created)
	if err != nil {
		if uniqueViolation(err, "invite_tokens_pkey") {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrInviteCodeTaken)
		}
		if uniqueViolation(err, "invite_tokens_league_id_key") {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrLeagueTokenExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &created, nil
}

// GetLeagueIDByToken resolves a token to its league. Any miss collapses to
// ErrInviteInvalid: a token whose league was deleted is indistinguishable
// from one that never existed (the FK cascade removes the row either way).
func (r *InviteRepo) GetLeagueIDByToken(ctx context.Context, tokenCode string) (int, error) {
	const op = "repo.invite.GetLeagueIDByToken"

	query := `SELECT league_id FROM invite_tokens WHERE token = $1`

	var leagueID int
	err := r.storage.GetContext(ctx, &leagueID, query, tokenCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, apperrors.ErrInviteInvalid)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return leagueID, nil
}

func (r *InviteRepo) GetPreviewByToken(ctx context.Context, tokenCode string) (*models.InvitePreview, error) {
	const op = "repo.invite.GetPreviewByToken"

	query := `
		SELECT l.league_name, l.description, l.max_teams,
			COALESCE(u.username, '') AS owner_username,
			(SELECT COUNT(*) FROM league_memberships m WHERE m.league_id = l.league_id) AS current_team_count
		FROM invite_tokens t
		JOIN leagues l ON l.league_id = t.league_id
		LEFT JOIN users u ON u.user_id = l.owner_user_id
		WHERE t.token = $1`

	var preview models.InvitePreview
	err := r.storage.GetContext(ctx, &preview, query, tokenCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrInviteInvalid)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	preview.IsLeagueFull = preview.CurrentTeamCount >= preview.MaxTeams
	return &preview, nil
}
