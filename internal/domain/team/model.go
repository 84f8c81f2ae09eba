package team

import "fmt"

// Team is a registered participant inside a league. Only active teams take
// part in schedule generation; team CRUD itself is owned by a collaborator
// service and this engine reads snapshots.
type Team struct {
	ID       string
	LeagueID string
	Name     string
	Active   bool
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("team league id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
