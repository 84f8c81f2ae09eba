package postgres

import (
	"time"

	"github.com/riskibarqy/league-scheduler/internal/domain/game"
)

type gameTableModel struct {
	ID         string    `db:"id"`
	SeasonID   string    `db:"season_id"`
	HomeTeamID string    `db:"home_team_id"`
	AwayTeamID string    `db:"away_team_id"`
	VenueID    string    `db:"venue_id"`
	TimeSlotID string    `db:"time_slot_id"`
	GameDate   time.Time `db:"game_date"`
	Cycle      int       `db:"cycle"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (m gameTableModel) toDomain() game.Game {
	return game.Game{
		ID:         m.ID,
		SeasonID:   m.SeasonID,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		VenueID:    m.VenueID,
		TimeSlotID: m.TimeSlotID,
		Date:       m.GameDate,
		Cycle:      m.Cycle,
		Status:     game.NormalizeStatus(m.Status),
	}
}
