package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-scheduler/internal/domain/team"
	qb "github.com/riskibarqy/league-scheduler/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by league query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by league: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, leagueID, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("league_id", leagueID), qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *TeamRepository) UpsertTeams(ctx context.Context, items []team.Team) error {
	if len(items) == 0 {
		return nil
	}

	builder := qb.InsertInto("teams").Columns("id", "league_id", "name", "active")
	for _, item := range items {
		builder.Values(item.ID, item.LeagueID, item.Name, item.Active)
	}
	query, args, err := builder.
		Suffix(`ON CONFLICT (id) DO UPDATE SET
    league_id = EXCLUDED.league_id,
    name = EXCLUDED.name,
    active = EXCLUDED.active,
    updated_at = NOW()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert teams query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert teams: %w", err)
	}
	return nil
}
