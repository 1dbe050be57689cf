package service

import (
	"context"
	"fantasy-grid/internal/apperrors"
	"fantasy-grid/internal/config"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInviteConfig() config.InviteConfig {
	return config.InviteConfig{CodeLength: 10, MaxAttempts: 5}
}

// leagueFixture wires a league service against in-memory stores with a few
// users pre-seeded with teams.
type leagueFixture struct {
	svc     *LeagueService
	leagues *fakeLeagueStore
	roster  *fakeRosterStore
	teams   map[int]int // userID -> teamID
}

func newLeagueFixture(t *testing.T, usersWithTeams ...int) *leagueFixture {
	t.Helper()

	roster := newFakeRosterStore()
	leagues := newFakeLeagueStore()
	svc := NewLeagueService(testLogger(), testInviteConfig(), leagues, leagues, roster)

	teams := make(map[int]int)
	for _, userID := range usersWithTeams {
		team, err := roster.CreateTeam(context.Background(), userID, "team")
		require.NoError(t, err)
		teams[userID] = team.TeamID
	}

	return &leagueFixture{svc: svc, leagues: leagues, roster: roster, teams: teams}
}

func TestCreateLeagueRequiresTeam(t *testing.T) {
	f := newLeagueFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateLeague(ctx, "No Team League", "", false, 10, 1)
	assert.ErrorIs(t, err, apperrors.ErrTeamRequired)

	// No partial state: nothing was created.
	assert.Empty(t, f.leagues.leagues)
}

func TestCreateLeagueEnrollsOwner(t *testing.T) {
	f := newLeagueFixture(t, 1)
	ctx := context.Background()

	league, err := f.svc.CreateLeague(ctx, "Paddock Club", "friends", true, 4, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, league.MemberCount)

	member, err := f.leagues.IsMember(ctx, league.LeagueID, f.teams[1])
	require.NoError(t, err)
	assert.True(t, member)
}

func TestCreateLeagueValidation(t *testing.T) {
	f := newLeagueFixture(t, 1)
	ctx := context.Background()

	_, err := f.svc.CreateLeague(ctx, "", "", false, 4, 1)
	assert.ErrorIs(t, err, apperrors.ErrLeagueNameRequired)

	_, err = f.svc.CreateLeague(ctx, "Zero Cap", "", false, 0, 1)
	assert.ErrorIs(t, err, apperrors.ErrMaxTeamsInvalid)
}

func TestJoinLeagueRules(t *testing.T) {
	f := newLeagueFixture(t, 1, 2, 3)
	ctx := context.Background()

	public, err := f.svc.CreateLeague(ctx, "Open League", "", false, 2, 1)
	require.NoError(t, err)

	private, err := f.svc.CreateLeague(ctx, "Closed League", "", true, 10, 2)
	require.NoError(t, err)

	t.Run("league not found", func(t *testing.T) {
		err := f.svc.JoinLeague(ctx, 999, 2)
		assert.ErrorIs(t, err, apperrors.ErrLeagueNotFound)
	})

	t.Run("private league rejects direct join", func(t *testing.T) {
		// Even the owner gets Forbidden on the direct path.
		for _, userID := range []int{1, 2, 3} {
			err := f.svc.JoinLeague(ctx, private.LeagueID, userID)
			assert.ErrorIs(t, err, apperrors.ErrLeaguePrivate)
		}
	})

	t.Run("user without team", func(t *testing.T) {
		err := f.svc.JoinLeague(ctx, public.LeagueID, 42)
		assert.ErrorIs(t, err, apperrors.ErrTeamRequired)
	})

	t.Run("duplicate membership", func(t *testing.T) {
		err := f.svc.JoinLeague(ctx, public.LeagueID, 1)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyMember)
	})

	t.Run("successful join then full", func(t *testing.T) {
		require.NoError(t, f.svc.JoinLeague(ctx, public.LeagueID, 2))

		err := f.svc.JoinLeague(ctx, public.LeagueID, 3)
		assert.ErrorIs(t, err, apperrors.ErrLeagueFull)
	})
}

func TestConcurrentJoinsLastSpot(t *testing.T) {
	f := newLeagueFixture(t, 1, 2, 3)
	ctx := context.Background()

	league, err := f.svc.CreateLeague(ctx, "Tight League", "", false, 2, 1)
	require.NoError(t, err)

	// One spot left; two users race for it.
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, userID := range []int{2, 3} {
		wg.Add(1)
		go func(i, userID int) {
			defer wg.Done()
			errs[i] = f.svc.JoinLeague(ctx, league.LeagueID, userID)
		}(i, userID)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrLeagueFull)
		}
	}
	assert.Equal(t, 1, succeeded)

	got, err := f.leagues.GetLeague(ctx, league.LeagueID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.MemberCount)
}

func TestGetOrCreateInviteToken(t *testing.T) {
	f := newLeagueFixture(t, 1)
	ctx := context.Background()

	private, err := f.svc.CreateLeague(ctx, "Invite League", "", true, 4, 1)
	require.NoError(t, err)

	public, err := f.svc.CreateLeague(ctx, "Open League", "", false, 4, 1)
	require.NoError(t, err)

	t.Run("owner only", func(t *testing.T) {
		_, err := f.svc.GetOrCreateInviteToken(ctx, private.LeagueID, 2)
		assert.ErrorIs(t, err, apperrors.ErrNotLeagueOwner)
	})

	t.Run("private leagues only", func(t *testing.T) {
		_, err := f.svc.GetOrCreateInviteToken(ctx, public.LeagueID, 1)
		assert.ErrorIs(t, err, apperrors.ErrLeagueNotPrivate)
	})

	t.Run("idempotent", func(t *testing.T) {
		first, err := f.svc.GetOrCreateInviteToken(ctx, private.LeagueID, 1)
		require.NoError(t, err)
		assert.Len(t, first.Token, 10)

		second, err := f.svc.GetOrCreateInviteToken(ctx, private.LeagueID, 1)
		require.NoError(t, err)
		assert.Equal(t, first.Token, second.Token)
	})
}

func TestInviteTokenCollisionRetry(t *testing.T) {
	f := newLeagueFixture(t, 1)
	ctx := context.Background()

	league, err := f.svc.CreateLeague(ctx, "Collision League", "", true, 4, 1)
	require.NoError(t, err)

	f.leagues.createTokenErrs = []error{
		apperrors.ErrInviteCodeTaken,
		apperrors.ErrInviteCodeTaken,
	}

	tok, err := f.svc.GetOrCreateInviteToken(ctx, league.LeagueID, 1)
	require.NoError(t, err)
	assert.Len(t, tok.Token, 10)
	assert.Equal(t, 3, f.leagues.createCalls)
}

func TestInviteTokenExhaustion(t *testing.T) {
	f := newLeagueFixture(t, 1)
	ctx := context.Background()

	league, err := f.svc.CreateLeague(ctx, "Unlucky League", "", true, 4, 1)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		f.leagues.createTokenErrs = append(f.leagues.createTokenErrs, apperrors.ErrInviteCodeTaken)
	}

	_, err = f.svc.GetOrCreateInviteToken(ctx, league.LeagueID, 1)
	assert.ErrorIs(t, err, apperrors.ErrInviteCodeExhausted)
	assert.Equal(t, 5, f.leagues.createCalls)
}

func TestInviteTokenConcurrentMintReturnsWinner(t *testing.T) {
	f := newLeagueFixture(t, 1)
	ctx := context.Background()

	league, err := f.svc.CreateLeague(ctx, "Race League", "", true, 4, 1)
	require.NoError(t, err)

	f.leagues.createTokenErrs = []error{apperrors.ErrLeagueTokenExists}

	tok, err := f.svc.GetOrCreateInviteToken(ctx, league.LeagueID, 1)
	require.NoError(t, err)
	assert.Equal(t, "WINNERTOKN", tok.Token)
}

func TestPreviewInvite(t *testing.T) {
	f := newLeagueFixture(t, 1, 2)
	ctx := context.Background()

	f.leagues.usernames[1] = "fernando"

	league, err := f.svc.CreateLeague(ctx, "Preview League", "no scoring yet", true, 2, 1)
	require.NoError(t, err)

	tok, err := f.svc.GetOrCreateInviteToken(ctx, league.LeagueID, 1)
	require.NoError(t, err)

	t.Run("unknown token", func(t *testing.T) {
		_, err := f.svc.PreviewInvite(ctx, "NEVERWASXX")
		assert.ErrorIs(t, err, apperrors.ErrInviteInvalid)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := f.svc.PreviewInvite(ctx, "  ")
		assert.ErrorIs(t, err, apperrors.ErrInviteInvalid)
	})

	t.Run("returns league summary", func(t *testing.T) {
		preview, err := f.svc.PreviewInvite(ctx, tok.Token)
		require.NoError(t, err)

		assert.Equal(t, "Preview League", preview.LeagueName)
		assert.Equal(t, "no scoring yet", preview.Description)
		assert.Equal(t, "fernando", preview.OwnerUsername)
		assert.Equal(t, 1, preview.CurrentTeamCount)
		assert.Equal(t, 2, preview.MaxTeams)
		assert.False(t, preview.IsLeagueFull)
	})

	t.Run("deleted league looks like unknown token", func(t *testing.T) {
		delete(f.leagues.leagues, league.LeagueID)

		_, err := f.svc.PreviewInvite(ctx, tok.Token)
		assert.ErrorIs(t, err, apperrors.ErrInviteInvalid)

		err = f.svc.JoinLeagueViaInvite(ctx, tok.Token, 2)
		assert.ErrorIs(t, err, apperrors.ErrInviteInvalid)
	})
}

// Mirrors the full private-league invite flow: owner mints, one invitee joins,
// the next finds the league full.
func TestInviteFlowEndToEnd(t *testing.T) {
	f := newLeagueFixture(t, 1, 2, 3)
	ctx := context.Background()

	league, err := f.svc.CreateLeague(ctx, "L1", "", true, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, league.MemberCount)

	tok, err := f.svc.GetOrCreateInviteToken(ctx, league.LeagueID, 1)
	require.NoError(t, err)

	preview, err := f.svc.PreviewInvite(ctx, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, preview.CurrentTeamCount)
	assert.False(t, preview.IsLeagueFull)

	// The invite path skips the privacy gate.
	require.NoError(t, f.svc.JoinLeagueViaInvite(ctx, tok.Token, 2))

	preview, err = f.svc.PreviewInvite(ctx, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, 2, preview.CurrentTeamCount)
	assert.True(t, preview.IsLeagueFull)

	err = f.svc.JoinLeagueViaInvite(ctx, tok.Token, 3)
	assert.ErrorIs(t, err, apperrors.ErrLeagueFull)
}

func TestJoinViaInviteStillChecksMembershipAndTeam(t *testing.T) {
	f := newLeagueFixture(t, 1, 2)
	ctx := context.Background()

	league, err := f.svc.CreateLeague(ctx, "Checks League", "", true, 10, 1)
	require.NoError(t, err)

	tok, err := f.svc.GetOrCreateInviteToken(ctx, league.LeagueID, 1)
	require.NoError(t, err)

	err = f.svc.JoinLeagueViaInvite(ctx, tok.Token, 42)
	assert.ErrorIs(t, err, apperrors.ErrTeamRequired)

	require.NoError(t, f.svc.JoinLeagueViaInvite(ctx, tok.Token, 2))

	err = f.svc.JoinLeagueViaInvite(ctx, tok.Token, 2)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyMember)
}
