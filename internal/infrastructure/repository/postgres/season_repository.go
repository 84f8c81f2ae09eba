package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-scheduler/internal/domain/season"
	qb "github.com/riskibarqy/league-scheduler/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("id", seasonID)).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build select season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("select season: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *SeasonRepository) Upsert(ctx context.Context, item season.Season) error {
	query, args, err := qb.InsertInto("seasons").
		Columns("id", "league_id", "name", "start_date", "end_date", "playoff_start_at",
			"max_games_per_day", "cycles", "auto_regenerate", "state", "last_generated_at", "archived").
		Values(item.ID, item.LeagueID, item.Name, item.StartDate, item.EndDate, ptrToNullTime(item.PlayoffStartAt),
			item.MaxGamesPerDay, item.Cycles, item.AutoRegenerate, string(season.NormalizeState(item.State)),
			ptrToNullTime(item.LastGeneratedAt), item.Archived).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
    league_id = EXCLUDED.league_id,
    name = EXCLUDED.name,
    start_date = EXCLUDED.start_date,
    end_date = EXCLUDED.end_date,
    playoff_start_at = EXCLUDED.playoff_start_at,
    max_games_per_day = EXCLUDED.max_games_per_day,
    cycles = EXCLUDED.cycles,
    auto_regenerate = EXCLUDED.auto_regenerate,
    state = EXCLUDED.state,
    last_generated_at = EXCLUDED.last_generated_at,
    archived = EXCLUDED.archived,
    updated_at = NOW()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert season query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert season: %w", err)
	}
	return nil
}

func (r *SeasonRepository) Archive(ctx context.Context, seasonID string) error {
	query, args, err := qb.Update("seasons").
		Set("archived", true).
		Where(qb.Eq("id", seasonID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build archive season query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("archive season: %w", err)
	}
	return nil
}
