package venue

import "context"

// Repository exposes venue read/write operations.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Venue, error)
	UpsertVenues(ctx context.Context, items []Venue) error
}
