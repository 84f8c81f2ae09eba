package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/league-scheduler/internal/domain/season"
)

type seasonTableModel struct {
	ID              string       `db:"id"`
	LeagueID        string       `db:"league_id"`
	Name            string       `db:"name"`
	StartDate       time.Time    `db:"start_date"`
	EndDate         time.Time    `db:"end_date"`
	PlayoffStartAt  sql.NullTime `db:"playoff_start_at"`
	MaxGamesPerDay  int          `db:"max_games_per_day"`
	Cycles          int          `db:"cycles"`
	AutoRegenerate  bool         `db:"auto_regenerate"`
	State           string       `db:"state"`
	LastGeneratedAt sql.NullTime `db:"last_generated_at"`
	Archived        bool         `db:"archived"`
	CreatedAt       time.Time    `db:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at"`
}

func (m seasonTableModel) toDomain() season.Season {
	return season.Season{
		ID:              m.ID,
		LeagueID:        m.LeagueID,
		Name:            m.Name,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		PlayoffStartAt:  nullTimeToPtr(m.PlayoffStartAt),
		MaxGamesPerDay:  m.MaxGamesPerDay,
		Cycles:          m.Cycles,
		AutoRegenerate:  m.AutoRegenerate,
		State:           season.NormalizeState(season.State(m.State)),
		LastGeneratedAt: nullTimeToPtr(m.LastGeneratedAt),
		Archived:        m.Archived,
	}
}
