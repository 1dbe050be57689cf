package models

import "time"

type League struct {
	LeagueID    int    `db:"league_id" json:"league_id"`
	OwnerUserID int    `db:"owner_user_id" json:"owner_user_id"`
	LeagueName  string `db:"league_name" json:"league_name"`
	Description string `db:"description" json:"description"`
	IsPrivate   bool   `db:"is_private" json:"is_private"`
	MaxTeams    int    `db:"max_teams" json:"max_teams"`

	MemberCount int `db:"member_count" json:"member_count"`
}

type LeagueMembership struct {
	LeagueID        int       `db:"league_id" json:"league_id"`
	TeamID          int       `db:"team_id" json:"team_id"`
	JoinedAt        time.Time `db:"joined_at" json:"joined_at"`
	CreatedByUserID int       `db:"created_by_user_id" json:"created_by_user_id"`
}

type InviteToken struct {
	Token           string    `db:"token" json:"token"`
	LeagueID        int       `db:"league_id" json:"league_id"`
	CreatedByUserID int       `db:"created_by_user_id" json:"created_by_user_id"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// InvitePreview is what an invited user sees before deciding to join. It never
// exposes the league id, only what the invite landing page renders.
type InvitePreview struct {
	LeagueName       string `db:"league_name" json:"league_name"`
	Description      string `db:"description" json:"description"`
	OwnerUsername    string `db:"owner_username" json:"owner_username"`
	CurrentTeamCount int    `db:"current_team_count" json:"current_team_count"`
	MaxTeams         int    `db:"max_teams" json:"max_teams"`
	IsLeagueFull     bool   `db:"-" json:"is_league_full"`
}
