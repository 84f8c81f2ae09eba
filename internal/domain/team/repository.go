package team

import "context"

// Repository exposes team read/write operations.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
	GetByID(ctx context.Context, leagueID, teamID string) (Team, bool, error)
	UpsertTeams(ctx context.Context, items []Team) error
}
