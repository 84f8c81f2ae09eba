package game

import (
	"fmt"
	"time"
)

const (
	StatusScheduled  = "SCHEDULED"
	StatusInProgress = "IN_PROGRESS"
	StatusFinished   = "FINISHED"
	StatusSuspended  = "SUSPENDED"
)

// Game is one concrete scheduled matchup: an abstract pairing bound to a
// date, a venue and a time slot. Status past SCHEDULED is mutated by the
// live-scoring collaborator, never by this engine.
type Game struct {
	ID         string
	SeasonID   string
	HomeTeamID string
	AwayTeamID string
	VenueID    string
	TimeSlotID string
	Date       time.Time
	Cycle      int
	Status     string
}

func (g Game) Validate() error {
	if g.SeasonID == "" {
		return fmt.Errorf("game season id is required")
	}
	if g.HomeTeamID == "" || g.AwayTeamID == "" {
		return fmt.Errorf("game team ids are required")
	}
	if g.HomeTeamID == g.AwayTeamID {
		return fmt.Errorf("game home and away teams must differ")
	}
	if g.VenueID == "" {
		return fmt.Errorf("game venue id is required")
	}
	if g.TimeSlotID == "" {
		return fmt.Errorf("game time slot id is required")
	}
	if g.Date.IsZero() {
		return fmt.Errorf("game date is required")
	}
	if g.Cycle < 1 {
		return fmt.Errorf("game cycle must be at least 1")
	}

	return nil
}

func NormalizeStatus(value string) string {
	if value == "" {
		return StatusScheduled
	}
	return value
}

// IsPlayed reports whether the live-scoring collaborator owns this game.
// Played games are pinned during regeneration: their resources are
// pre-consumed and their pairing is never reassigned.
func IsPlayed(status string) bool {
	switch NormalizeStatus(status) {
	case StatusInProgress, StatusFinished, StatusSuspended:
		return true
	default:
		return false
	}
}
