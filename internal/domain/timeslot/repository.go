package timeslot

import "context"

// Repository exposes time slot read/write operations.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]TimeSlot, error)
	UpsertTimeSlots(ctx context.Context, items []TimeSlot) error
}
