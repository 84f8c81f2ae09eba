package season

import (
	"fmt"
	"time"
)

// State is the lifecycle state of a season.
type State string

const (
	StateConfiguration State = "CONFIGURATION"
	StateGenerated     State = "GENERATED"
	StateActive        State = "ACTIVE"
	StatePlayoffs      State = "PLAYOFFS"
	StateClosed        State = "CLOSED"
)

// Season is one scheduling universe: a date window, tournament parameters
// and the lifecycle state of its generated calendar.
type Season struct {
	ID              string
	LeagueID        string
	Name            string
	StartDate       time.Time
	EndDate         time.Time
	PlayoffStartAt  *time.Time
	MaxGamesPerDay  int
	Cycles          int
	AutoRegenerate  bool
	State           State
	LastGeneratedAt *time.Time
	Archived        bool
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if s.LeagueID == "" {
		return fmt.Errorf("season league id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("season name is required")
	}
	if s.StartDate.IsZero() || s.EndDate.IsZero() {
		return fmt.Errorf("season window is required")
	}
	if s.EndDate.Before(s.StartDate) {
		return fmt.Errorf("season end date %s is before start date %s",
			s.EndDate.Format(time.DateOnly), s.StartDate.Format(time.DateOnly))
	}
	if s.PlayoffStartAt != nil && s.PlayoffStartAt.Before(s.EndDate) {
		return fmt.Errorf("playoff start date %s is before season end date %s",
			s.PlayoffStartAt.Format(time.DateOnly), s.EndDate.Format(time.DateOnly))
	}
	if s.MaxGamesPerDay < 1 {
		return fmt.Errorf("season max games per day must be at least 1")
	}
	if s.Cycles < 1 {
		return fmt.Errorf("season cycle count must be at least 1")
	}

	return nil
}

func NormalizeState(value State) State {
	if value == "" {
		return StateConfiguration
	}
	return value
}

// IsGenerationState reports whether a season in this state may run the
// scheduling pipeline.
func IsGenerationState(state State) bool {
	switch NormalizeState(state) {
	case StateConfiguration, StateGenerated, StateActive:
		return true
	default:
		return false
	}
}
