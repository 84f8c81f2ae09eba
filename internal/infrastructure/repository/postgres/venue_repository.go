package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-scheduler/internal/domain/venue"
	qb "github.com/riskibarqy/league-scheduler/internal/platform/querybuilder"
)

type venueTableModel struct {
	ID           string    `db:"id"`
	LeagueID     string    `db:"league_id"`
	Name         string    `db:"name"`
	Active       bool      `db:"active"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type VenueRepository struct {
	db *sqlx.DB
}

func NewVenueRepository(db *sqlx.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) ListByLeague(ctx context.Context, leagueID string) ([]venue.Venue, error) {
	query, args, err := qb.Select("*").From("venues").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("display_order", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select venues by league query: %w", err)
	}

	var rows []venueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select venues by league: %w", err)
	}

	out := make([]venue.Venue, 0, len(rows))
	for _, row := range rows {
		out = append(out, venue.Venue{
			ID:           row.ID,
			LeagueID:     row.LeagueID,
			Name:         row.Name,
			Active:       row.Active,
			DisplayOrder: row.DisplayOrder,
		})
	}
	return out, nil
}

func (r *VenueRepository) UpsertVenues(ctx context.Context, items []venue.Venue) error {
	if len(items) == 0 {
		return nil
	}

	builder := qb.InsertInto("venues").Columns("id", "league_id", "name", "active", "display_order")
	for _, item := range items {
		builder.Values(item.ID, item.LeagueID, item.Name, item.Active, item.DisplayOrder)
	}
	query, args, err := builder.
		Suffix(`ON CONFLICT (id) DO UPDATE SET
    league_id = EXCLUDED.league_id,
    name = EXCLUDED.name,
    active = EXCLUDED.active,
    display_order = EXCLUDED.display_order,
    updated_at = NOW()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert venues query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert venues: %w", err)
	}
	return nil
}
