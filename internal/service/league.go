package service

import (
	"context"
	"errors"
	"fantasy-grid/internal/apperrors"
	"fantasy-grid/internal/config"
	"fantasy-grid/internal/domain/models"
	"fantasy-grid/internal/lib/logger/sl"
	"fantasy-grid/internal/lib/token"
	"fmt"
	"log/slog"
	"strings"
)

type LeagueService struct {
	log        *slog.Logger
	cfg        config.InviteConfig
	leagueRepo LeagueProvider
	inviteRepo InviteProvider
	teamRepo   TeamOwnerProvider
}

type LeagueProvider interface {
	CreateLeague(ctx context.Context, league models.League, ownerTeamID int) (*models.League, error)
	GetLeague(ctx context.Context, leagueID int) (*models.League, error)
	ListPublicLeagues(ctx context.Context) ([]models.League, error)
	GetMemberTeams(ctx context.Context, leagueID int) ([]models.Team, error)
	IsMember(ctx context.Context, leagueID int, teamID int) (bool, error)
	AddMember(ctx context.Context, leagueID int, teamID int, createdByUserID int) error
}

type InviteProvider interface {
	GetTokenByLeague(ctx context.Context, leagueID int) (*models.InviteToken, error)
	CreateToken(ctx context.Context, tok models.InviteToken) (*models.InviteToken, error)
	GetLeagueIDByToken(ctx context.Context, tokenCode string) (int, error)
	GetPreviewByToken(ctx context.Context, tokenCode string) (*models.InvitePreview, error)
}

// TeamOwnerProvider is the shared "current team for user" lookup both services
// depend on.
type TeamOwnerProvider interface {
	GetTeamByOwner(ctx context.Context, ownerUserID int) (*models.Team, error)
}

func NewLeagueService(
	log *slog.Logger,
	cfg config.InviteConfig,
	leagueRepo LeagueProvider,
	inviteRepo InviteProvider,
	teamRepo TeamOwnerProvider) *LeagueService {
	return &LeagueService{
		log:        log,
		cfg:        cfg,
		leagueRepo: leagueRepo,
		inviteRepo: inviteRepo,
		teamRepo:   teamRepo,
	}
}

// CreateLeague creates a league and enrolls the owner's team as its first
// member. A user without a team cannot own a league; that failure is
// ErrTeamRequired so the client can steer the user to team creation instead of
// showing a generic not-found page.
func (s *LeagueService) CreateLeague(ctx context.Context, leagueName string, description string, isPrivate bool, maxTeams int, ownerUserID int) (*models.League, error) {
	const op = "service.league.CreateLeague"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("owner_user_id", ownerUserID),
	)

	log.Info("attempting to create league")

	if leagueName == "" {
		log.Error("league name is required")
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrLeagueNameRequired)
	}
	if maxTeams < 1 {
		log.Error("max_teams must be at least 1", slog.Int("max_teams", maxTeams))
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrMaxTeamsInvalid)
	}

	ownerTeam, err := s.teamRepo.GetTeamByOwner(ctx, ownerUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTeamNotFound) {
			log.Warn("owner has no team")
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrTeamRequired)
		}
		log.Error("failed to resolve owner team", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	league := models.League{
		OwnerUserID: ownerUserID,
		LeagueName:  leagueName,
		Description: description,
		IsPrivate:   isPrivate,
		MaxTeams:    maxTeams,
	}

	created, err := s.leagueRepo.CreateLeague(ctx, league, ownerTeam.TeamID)
	if err != nil {
		log.Error("failed to create league", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("league created successfully",
		slog.Int("league_id", created.LeagueID),
		slog.Bool("is_private", created.IsPrivate))

	return created, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID int) (*models.League, []models.Team, error) {
	const op = "service.league.GetLeague"

	league, err := s.leagueRepo.GetLeague(ctx, leagueID)
	if err != nil {
		s.log.With(slog.String("op", op)).Error("failed to get league", sl.Err(err))
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	members, err := s.leagueRepo.GetMemberTeams(ctx, leagueID)
	if err != nil {
		s.log.With(slog.String("op", op)).Error("failed to get league members", sl.Err(err))
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return league, members, nil
}

func (s *LeagueService) ListPublicLeagues(ctx context.Context) ([]models.League, error) {
	const op = "service.league.ListPublicLeagues"

	leagues, err := s.leagueRepo.ListPublicLeagues(ctx)
	if err != nil {
		s.log.With(slog.String("op", op)).Error("failed to list leagues", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return leagues, nil
}

// JoinLeague is the direct join path for public leagues. Private leagues
// always reject it, invite or not; a valid invite goes through
// JoinLeagueViaInvite instead.
func (s *LeagueService) JoinLeague(ctx context.Context, leagueID int, userID int) error {
	const op = "service.league.JoinLeague"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("league_id", leagueID),
		slog.Int("user_id", userID),
	)

	log.Info("attempting to join league")

	league, err := s.leagueRepo.GetLeague(ctx, leagueID)
	if err != nil {
		log.Error("failed to get league", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if league.IsPrivate {
		log.Warn("direct join attempt on private league")
		return fmt.Errorf("%s: %w", op, apperrors.ErrLeaguePrivate)
	}

	if err := s.enroll(ctx, log, league, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("joined league successfully")
	return nil
}

// GetOrCreateInviteToken returns the league's live invite token, minting one
// on first call. Minting retries on global code collisions up to the
// configured bound and never hands out a colliding code.
func (s *LeagueService) GetOrCreateInviteToken(ctx context.Context, leagueID int, requestingUserID int) (*models.InviteToken, error) {
	const op = "service.league.GetOrCreateInviteToken"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("league_id", leagueID),
		slog.Int("requesting_user_id", requestingUserID),
	)

	log.Info("attempting to get or create invite token")

	league, err := s.leagueRepo.GetLeague(ctx, leagueID)
	if err != nil {
		log.Error("failed to get league", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if league.OwnerUserID != requestingUserID {
		log.Warn("requesting user is not the league owner")
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrNotLeagueOwner)
	}

	if !league.IsPrivate {
		log.Warn("invite token requested for public league")
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrLeagueNotPrivate)
	}

	existing, err := s.inviteRepo.GetTokenByLeague(ctx, leagueID)
	if err != nil {
		log.Error("failed to look up existing token", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if existing != nil {
		log.Info("returning existing invite token")
		return existing, nil
	}

	for attempt := 0; attempt < s.cfg.MaxAttempts; attempt++ {
		code, err := token.Generate(s.cfg.CodeLength)
		if err != nil {
			log.Error("failed to generate invite code", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		created, err := s.inviteRepo.CreateToken(ctx, models.InviteToken{
			Token:           code,
			LeagueID:        leagueID,
			CreatedByUserID: requestingUserID,
		})
		if err != nil {
			if errors.Is(err, apperrors.ErrInviteCodeTaken) {
				log.Warn("invite code collided, retrying", slog.Int("attempt", attempt+1))
				continue
			}
			if errors.Is(err, apperrors.ErrLeagueTokenExists) {
				// Lost a concurrent mint; the winner's token is the league's
				// token from now on.
				winner, lookupErr := s.inviteRepo.GetTokenByLeague(ctx, leagueID)
				if lookupErr != nil {
					return nil, fmt.Errorf("%s: %w", op, lookupErr)
				}
				if winner != nil {
					log.Info("concurrent mint won, returning its token")
					return winner, nil
				}
				continue
			}
			log.Error("failed to store invite token", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		log.Info("invite token minted successfully")
		return created, nil
	}

	log.Error("invite code generation exhausted retry budget",
		slog.Int("max_attempts", s.cfg.MaxAttempts))
	return nil, fmt.Errorf("%s: %w", op, apperrors.ErrInviteCodeExhausted)
}

// PreviewInvite shows what an invite token unlocks without mutating anything.
// Every lookup failure is ErrInviteInvalid so the response shape never reveals
// whether a league behind a guessed token exists.
func (s *LeagueService) PreviewInvite(ctx context.Context, tokenCode string) (*models.InvitePreview, error) {
	const op = "service.league.PreviewInvite"

	log := s.log.With(slog.String("op", op))

	tokenCode = strings.TrimSpace(tokenCode)
	if tokenCode == "" {
		log.Warn("empty invite token")
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrInviteInvalid)
	}

	preview, err := s.inviteRepo.GetPreviewByToken(ctx, tokenCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrInviteInvalid) {
			log.Warn("invalid invite token")
		} else {
			log.Error("failed to preview invite", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return preview, nil
}

// JoinLeagueViaInvite joins through a token. A valid token is sufficient proof
// of invitation, so the privacy gate is skipped; every other join rule still
// applies.
func (s *LeagueService) JoinLeagueViaInvite(ctx context.Context, tokenCode string, userID int) error {
	const op = "service.league.JoinLeagueViaInvite"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("user_id", userID),
	)

	log.Info("attempting to join league via invite")

	tokenCode = strings.TrimSpace(tokenCode)
	if tokenCode == "" {
		log.Warn("empty invite token")
		return fmt.Errorf("%s: %w", op, apperrors.ErrInviteInvalid)
	}

	leagueID, err := s.inviteRepo.GetLeagueIDByToken(ctx, tokenCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrInviteInvalid) {
			log.Warn("invalid invite token")
		} else {
			log.Error("failed to resolve invite token", sl.Err(err))
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	league, err := s.leagueRepo.GetLeague(ctx, leagueID)
	if err != nil {
		// The league disappeared between lookup and read; to the caller that
		// is the same invalid token as one that never existed.
		if errors.Is(err, apperrors.ErrLeagueNotFound) {
			log.Warn("league behind invite token is gone")
			return fmt.Errorf("%s: %w", op, apperrors.ErrInviteInvalid)
		}
		log.Error("failed to get league", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.enroll(ctx, log, league, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("joined league via invite successfully", slog.Int("league_id", leagueID))
	return nil
}

// enroll runs the join rules shared by both paths: capacity, team existence,
// duplicate membership. The read checks fail fast; AddMember re-validates
// capacity under a row lock and the unique constraint catches duplicates, so
// a concurrent join cannot overfill the league.
func (s *LeagueService) enroll(ctx context.Context, log *slog.Logger, league *models.League, userID int) error {
	if league.MemberCount >= league.MaxTeams {
		log.Warn("league is full",
			slog.Int("member_count", league.MemberCount),
			slog.Int("max_teams", league.MaxTeams))
		return apperrors.ErrLeagueFull
	}

	team, err := s.teamRepo.GetTeamByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTeamNotFound) {
			log.Warn("user has no team")
			return apperrors.ErrTeamRequired
		}
		log.Error("failed to resolve user team", sl.Err(err))
		return err
	}

	member, err := s.leagueRepo.IsMember(ctx, league.LeagueID, team.TeamID)
	if err != nil {
		log.Error("failed to check membership", sl.Err(err))
		return err
	}
	if member {
		log.Warn("team is already a member")
		return apperrors.ErrAlreadyMember
	}

	if err := s.leagueRepo.AddMember(ctx, league.LeagueID, team.TeamID, userID); err != nil {
		if errors.Is(err, apperrors.ErrLeagueFull) || errors.Is(err, apperrors.ErrAlreadyMember) {
			log.Warn("join lost a concurrent race", sl.Err(err))
		} else {
			log.Error("failed to add member", sl.Err(err))
		}
		return err
	}

	return nil
}
