package venue

import "fmt"

// Venue is a bookable field. DisplayOrder fixes the canonical resource
// ordering used by the slot assignment resolver.
type Venue struct {
	ID           string
	LeagueID     string
	Name         string
	Active       bool
	DisplayOrder int
}

func (v Venue) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("venue id is required")
	}
	if v.LeagueID == "" {
		return fmt.Errorf("venue league id is required")
	}
	if v.Name == "" {
		return fmt.Errorf("venue name is required")
	}

	return nil
}
