package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-scheduler/internal/domain/timeslot"
	qb "github.com/riskibarqy/league-scheduler/internal/platform/querybuilder"
)

type timeSlotTableModel struct {
	ID           string    `db:"id"`
	LeagueID     string    `db:"league_id"`
	Name         string    `db:"name"`
	StartTime    string    `db:"start_time"`
	EndTime      string    `db:"end_time"`
	Active       bool      `db:"active"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type TimeSlotRepository struct {
	db *sqlx.DB
}

func NewTimeSlotRepository(db *sqlx.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

func (r *TimeSlotRepository) ListByLeague(ctx context.Context, leagueID string) ([]timeslot.TimeSlot, error) {
	query, args, err := qb.Select("*").From("time_slots").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("display_order", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select time slots by league query: %w", err)
	}

	var rows []timeSlotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select time slots by league: %w", err)
	}

	out := make([]timeslot.TimeSlot, 0, len(rows))
	for _, row := range rows {
		out = append(out, timeslot.TimeSlot{
			ID:           row.ID,
			LeagueID:     row.LeagueID,
			Name:         row.Name,
			StartTime:    row.StartTime,
			EndTime:      row.EndTime,
			Active:       row.Active,
			DisplayOrder: row.DisplayOrder,
		})
	}
	return out, nil
}

func (r *TimeSlotRepository) UpsertTimeSlots(ctx context.Context, items []timeslot.TimeSlot) error {
	if len(items) == 0 {
		return nil
	}

	builder := qb.InsertInto("time_slots").
		Columns("id", "league_id", "name", "start_time", "end_time", "active", "display_order")
	for _, item := range items {
		builder.Values(item.ID, item.LeagueID, item.Name, item.StartTime, item.EndTime, item.Active, item.DisplayOrder)
	}
	query, args, err := builder.
		Suffix(`ON CONFLICT (id) DO UPDATE SET
    league_id = EXCLUDED.league_id,
    name = EXCLUDED.name,
    start_time = EXCLUDED.start_time,
    end_time = EXCLUDED.end_time,
    active = EXCLUDED.active,
    display_order = EXCLUDED.display_order,
    updated_at = NOW()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert time slots query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert time slots: %w", err)
	}
	return nil
}
