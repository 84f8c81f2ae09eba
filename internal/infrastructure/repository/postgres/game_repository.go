package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-scheduler/internal/domain/game"
	qb "github.com/riskibarqy/league-scheduler/internal/platform/querybuilder"
)

var playedStatuses = []any{game.StatusInProgress, game.StatusFinished, game.StatusSuspended}

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) ListBySeason(ctx context.Context, seasonID string) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("game_date", "venue_id", "time_slot_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games by season query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games by season: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GameRepository) ListPlayedBySeason(ctx context.Context, seasonID string) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("season_id", seasonID), qb.In("status", playedStatuses)).
		OrderBy("game_date", "venue_id", "time_slot_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select played games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select played games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// ReplaceUnplayed swaps the season's unplayed game set in one transaction.
// Games whose status marks them as played survive the delete untouched.
func (r *GameRepository) ReplaceUnplayed(ctx context.Context, seasonID string, games []game.Game) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace unplayed games: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("games").
		Where(qb.Eq("season_id", seasonID), qb.NotIn("status", playedStatuses)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete unplayed games query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete unplayed games: %w", err)
	}

	if len(games) > 0 {
		builder := qb.InsertInto("games").
			Columns("id", "season_id", "home_team_id", "away_team_id", "venue_id", "time_slot_id", "game_date", "cycle", "status")
		for _, item := range games {
			builder.Values(item.ID, item.SeasonID, item.HomeTeamID, item.AwayTeamID,
				item.VenueID, item.TimeSlotID, item.Date, item.Cycle, game.NormalizeStatus(item.Status))
		}
		insertQuery, insertArgs, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert games query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert games: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace unplayed games: %w", err)
	}
	return nil
}
