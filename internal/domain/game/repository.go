package game

import "context"

// Repository exposes scheduled game persistence operations.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Game, error)
	ListPlayedBySeason(ctx context.Context, seasonID string) ([]Game, error)
	// ReplaceUnplayed atomically deletes the season's not-yet-played games
	// and inserts the given set. Played games are left untouched.
	ReplaceUnplayed(ctx context.Context, seasonID string, games []Game) error
}
