package service

import (
	"context"
	"fantasy-grid/internal/apperrors"
	"fantasy-grid/internal/domain/models"
	"sync"
	"time"
)

// In-memory stands-ins for the postgres repos. They enforce the same
// invariants the storage constraints do, including under concurrent use, so
// the services can be exercised without a database.

type fakeRosterStore struct {
	mu               sync.Mutex
	nextTeamID       int
	teams            map[int]models.Team
	driverSlots      map[int]map[int]int // teamID -> position -> driverID
	constructorSlots map[int]map[int]int
	drivers          map[int]bool
	constructors     map[int]bool
}

func newFakeRosterStore() *fakeRosterStore {
	return &fakeRosterStore{
		nextTeamID:       1,
		teams:            make(map[int]models.Team),
		driverSlots:      make(map[int]map[int]int),
		constructorSlots: make(map[int]map[int]int),
		drivers:          make(map[int]bool),
		constructors:     make(map[int]bool),
	}
}

func (f *fakeRosterStore) slots(teamID int, kind models.SlotKind) map[int]int {
	byTeam := f.driverSlots
	if kind == models.SlotKindConstructor {
		byTeam = f.constructorSlots
	}
	if byTeam[teamID] == nil {
		byTeam[teamID] = make(map[int]int)
	}
	return byTeam[teamID]
}

func (f *fakeRosterStore) CreateTeam(ctx context.Context, ownerUserID int, teamName string) (*models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, team := range f.teams {
		if team.OwnerUserID == ownerUserID {
			return nil, apperrors.ErrTeamExists
		}
	}

	team := models.Team{TeamID: f.nextTeamID, OwnerUserID: ownerUserID, TeamName: teamName}
	f.teams[team.TeamID] = team
	f.nextTeamID++
	return &team, nil
}

func (f *fakeRosterStore) GetTeam(ctx context.Context, teamID int) (*models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	team, ok := f.teams[teamID]
	if !ok {
		return nil, apperrors.ErrTeamNotFound
	}
	return &team, nil
}

func (f *fakeRosterStore) GetTeamByOwner(ctx context.Context, ownerUserID int) (*models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, team := range f.teams {
		if team.OwnerUserID == ownerUserID {
			t := team
			return &t, nil
		}
	}
	return nil, apperrors.ErrTeamNotFound
}

func (f *fakeRosterStore) GetTeamWithSlots(ctx context.Context, teamID int) (*models.Team, error) {
	team, err := f.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for pos, driverID := range f.slots(teamID, models.SlotKindDriver) {
		team.DriverSlots = append(team.DriverSlots, models.DriverSlot{
			TeamID: teamID, SlotPosition: pos, DriverID: driverID,
		})
	}
	for pos, constructorID := range f.slots(teamID, models.SlotKindConstructor) {
		team.ConstructorSlots = append(team.ConstructorSlots, models.ConstructorSlot{
			TeamID: teamID, SlotPosition: pos, ConstructorID: constructorID,
		})
	}
	return team, nil
}

func (f *fakeRosterStore) CountSlots(ctx context.Context, teamID int, kind models.SlotKind) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.slots(teamID, kind)), nil
}

func (f *fakeRosterStore) SlotOccupied(ctx context.Context, teamID int, slotPosition int, kind models.SlotKind) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, occupied := f.slots(teamID, kind)[slotPosition]
	return occupied, nil
}

func (f *fakeRosterStore) EntityOnTeam(ctx context.Context, teamID int, entityID int, kind models.SlotKind) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.slots(teamID, kind) {
		if id == entityID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRosterStore) AddSlot(ctx context.Context, teamID int, slotPosition int, entityID int, kind models.SlotKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	slots := f.slots(teamID, kind)
	if _, occupied := slots[slotPosition]; occupied {
		return apperrors.ErrSlotOccupied
	}
	for _, id := range slots {
		if id == entityID {
			if kind == models.SlotKindConstructor {
				return apperrors.ErrConstructorAlreadyOnTeam
			}
			return apperrors.ErrDriverAlreadyOnTeam
		}
	}
	slots[slotPosition] = entityID
	return nil
}

func (f *fakeRosterStore) RemoveSlot(ctx context.Context, teamID int, slotPosition int, kind models.SlotKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	slots := f.slots(teamID, kind)
	if _, occupied := slots[slotPosition]; !occupied {
		return apperrors.ErrSlotEmpty
	}
	delete(slots, slotPosition)
	return nil
}

func (f *fakeRosterStore) DriverExists(ctx context.Context, driverID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.drivers[driverID], nil
}

func (f *fakeRosterStore) ConstructorExists(ctx context.Context, constructorID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.constructors[constructorID], nil
}

type fakeLeagueStore struct {
	mu           sync.Mutex
	nextLeagueID int
	leagues      map[int]models.League
	members      map[int]map[int]bool // leagueID -> teamID
	tokens       map[string]models.InviteToken
	leagueTokens map[int]string
	usernames    map[int]string

	// createTokenErrs scripts failures for the mint loop, consumed in order.
	createTokenErrs []error
	createCalls     int
}

func newFakeLeagueStore() *fakeLeagueStore {
	return &fakeLeagueStore{
		nextLeagueID: 1,
		leagues:      make(map[int]models.League),
		members:      make(map[int]map[int]bool),
		tokens:       make(map[string]models.InviteToken),
		leagueTokens: make(map[int]string),
		usernames:    make(map[int]string),
	}
}

func (f *fakeLeagueStore) CreateLeague(ctx context.Context, league models.League, ownerTeamID int) (*models.League, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	league.LeagueID = f.nextLeagueID
	f.nextLeagueID++
	f.leagues[league.LeagueID] = league
	f.members[league.LeagueID] = map[int]bool{ownerTeamID: true}

	league.MemberCount = 1
	return &league, nil
}

func (f *fakeLeagueStore) GetLeague(ctx context.Context, leagueID int) (*models.League, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	league, ok := f.leagues[leagueID]
	if !ok {
		return nil, apperrors.ErrLeagueNotFound
	}
	league.MemberCount = len(f.members[leagueID])
	return &league, nil
}

func (f *fakeLeagueStore) ListPublicLeagues(ctx context.Context) ([]models.League, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var leagues []models.League
	for id, league := range f.leagues {
		if !league.IsPrivate {
			league.MemberCount = len(f.members[id])
			leagues = append(leagues, league)
		}
	}
	return leagues, nil
}

func (f *fakeLeagueStore) GetMemberTeams(ctx context.Context, leagueID int) ([]models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var teams []models.Team
	for teamID := range f.members[leagueID] {
		teams = append(teams, models.Team{TeamID: teamID})
	}
	return teams, nil
}

func (f *fakeLeagueStore) IsMember(ctx context.Context, leagueID int, teamID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.members[leagueID][teamID], nil
}

// AddMember mirrors the repo's lock-recount-insert transaction: the capacity
// check and the insert happen under one lock.
func (f *fakeLeagueStore) AddMember(ctx context.Context, leagueID int, teamID int, createdByUserID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	league, ok := f.leagues[leagueID]
	if !ok {
		return apperrors.ErrLeagueNotFound
	}
	if f.members[leagueID][teamID] {
		return apperrors.ErrAlreadyMember
	}
	if len(f.members[leagueID]) >= league.MaxTeams {
		return apperrors.ErrLeagueFull
	}
	if f.members[leagueID] == nil {
		f.members[leagueID] = make(map[int]bool)
	}
	f.members[leagueID][teamID] = true
	return nil
}

func (f *fakeLeagueStore) GetTokenByLeague(ctx context.Context, leagueID int) (*models.InviteToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	code, ok := f.leagueTokens[leagueID]
	if !ok {
		return nil, nil
	}
	tok := f.tokens[code]
	return &tok, nil
}

func (f *fakeLeagueStore) CreateToken(ctx context.Context, tok models.InviteToken) (*models.InviteToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if len(f.createTokenErrs) > 0 {
		err := f.createTokenErrs[0]
		f.createTokenErrs = f.createTokenErrs[1:]
		if err != nil {
			// A scripted ErrLeagueTokenExists means a concurrent mint won;
			// materialize the winner so the retry lookup can find it.
			if err == apperrors.ErrLeagueTokenExists {
				if _, exists := f.leagueTokens[tok.LeagueID]; !exists {
					winner := models.InviteToken{
						Token:           "WINNERTOKN",
						LeagueID:        tok.LeagueID,
						CreatedByUserID: tok.CreatedByUserID,
						CreatedAt:       time.Now(),
					}
					f.tokens[winner.Token] = winner
					f.leagueTokens[winner.LeagueID] = winner.Token
				}
			}
			return nil, err
		}
	}

	if _, taken := f.tokens[tok.Token]; taken {
		return nil, apperrors.ErrInviteCodeTaken
	}
	if _, exists := f.leagueTokens[tok.LeagueID]; exists {
		return nil, apperrors.ErrLeagueTokenExists
	}

	tok.CreatedAt = time.Now()
	f.tokens[tok.Token] = tok
	f.leagueTokens[tok.LeagueID] = tok.Token
	return &tok, nil
}

func (f *fakeLeagueStore) GetLeagueIDByToken(ctx context.Context, tokenCode string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tok, ok := f.tokens[tokenCode]
	if !ok {
		return 0, apperrors.ErrInviteInvalid
	}
	if _, exists := f.leagues[tok.LeagueID]; !exists {
		// Deleted league takes its token with it, same as the FK cascade.
		return 0, apperrors.ErrInviteInvalid
	}
	return tok.LeagueID, nil
}

func (f *fakeLeagueStore) GetPreviewByToken(ctx context.Context, tokenCode string) (*models.InvitePreview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tok, ok := f.tokens[tokenCode]
	if !ok {
		return nil, apperrors.ErrInviteInvalid
	}
	league, exists := f.leagues[tok.LeagueID]
	if !exists {
		return nil, apperrors.ErrInviteInvalid
	}

	count := len(f.members[tok.LeagueID])
	return &models.InvitePreview{
		LeagueName:       league.LeagueName,
		Description:      league.Description,
		OwnerUsername:    f.usernames[league.OwnerUserID],
		CurrentTeamCount: count,
		MaxTeams:         league.MaxTeams,
		IsLeagueFull:     count >= league.MaxTeams,
	}, nil
}
