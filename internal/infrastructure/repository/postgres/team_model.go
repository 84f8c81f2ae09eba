package postgres

import (
	"time"

	"github.com/riskibarqy/league-scheduler/internal/domain/team"
)

type teamTableModel struct {
	ID        string    `db:"id"`
	LeagueID  string    `db:"league_id"`
	Name      string    `db:"name"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:       m.ID,
		LeagueID: m.LeagueID,
		Name:     m.Name,
		Active:   m.Active,
	}
}
