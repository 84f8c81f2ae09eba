package timeslot

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// TimeSlot is a named interval offered to the resolver on every scheduling
// day. DisplayOrder fixes the canonical resource ordering.
type TimeSlot struct {
	ID           string
	LeagueID     string
	Name         string
	StartTime    string // "12:30"
	EndTime      string // "14:45"
	Active       bool
	DisplayOrder int
}

func (s TimeSlot) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("time slot id is required")
	}
	if s.LeagueID == "" {
		return fmt.Errorf("time slot league id is required")
	}
	start, err := time.Parse(clockLayout, s.StartTime)
	if err != nil {
		return fmt.Errorf("time slot start time %q is not HH:MM", s.StartTime)
	}
	end, err := time.Parse(clockLayout, s.EndTime)
	if err != nil {
		return fmt.Errorf("time slot end time %q is not HH:MM", s.EndTime)
	}
	if !end.After(start) {
		return fmt.Errorf("time slot end time %s is not after start time %s", s.EndTime, s.StartTime)
	}

	return nil
}
