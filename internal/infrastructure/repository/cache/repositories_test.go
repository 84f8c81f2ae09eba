package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/league-scheduler/internal/domain/team"
	basecache "github.com/riskibarqy/league-scheduler/internal/platform/cache"
)

type countingTeamRepo struct {
	listCalls int
	teams     []team.Team
}

func (r *countingTeamRepo) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	r.listCalls++
	return append([]team.Team(nil), r.teams...), nil
}

func (r *countingTeamRepo) GetByID(ctx context.Context, leagueID, teamID string) (team.Team, bool, error) {
	for _, item := range r.teams {
		if item.LeagueID == leagueID && item.ID == teamID {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *countingTeamRepo) UpsertTeams(ctx context.Context, items []team.Team) error {
	r.teams = append(r.teams, items...)
	return nil
}

func TestTeamRepository_ListByLeagueCachesUntilUpsert(t *testing.T) {
	next := &countingTeamRepo{teams: []team.Team{
		{ID: "t1", LeagueID: "league-1", Name: "Harbor Hawks", Active: true},
	}}
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		items, err := repo.ListByLeague(ctx, "league-1")
		if err != nil {
			t.Fatalf("list teams: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 team, got %d", len(items))
		}
	}
	if next.listCalls != 1 {
		t.Fatalf("expected a single backing call, got %d", next.listCalls)
	}

	err := repo.UpsertTeams(ctx, []team.Team{
		{ID: "t2", LeagueID: "league-1", Name: "River Otters", Active: true},
	})
	if err != nil {
		t.Fatalf("upsert teams: %v", err)
	}

	items, err := repo.ListByLeague(ctx, "league-1")
	if err != nil {
		t.Fatalf("list teams after upsert: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected upsert to invalidate the list, got %d teams", len(items))
	}
	if next.listCalls != 2 {
		t.Fatalf("expected a fresh backing call after invalidation, got %d", next.listCalls)
	}
}

func TestTeamRepository_ListReturnsCopies(t *testing.T) {
	next := &countingTeamRepo{teams: []team.Team{
		{ID: "t1", LeagueID: "league-1", Name: "Harbor Hawks", Active: true},
	}}
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	first, err := repo.ListByLeague(ctx, "league-1")
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	first[0].Name = "mutated"

	second, err := repo.ListByLeague(ctx, "league-1")
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if second[0].Name != "Harbor Hawks" {
		t.Fatalf("cached entry was mutated through a returned slice: %q", second[0].Name)
	}
}
