package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/league-scheduler/internal/domain/game"
	"github.com/riskibarqy/league-scheduler/internal/domain/season"
	"github.com/riskibarqy/league-scheduler/internal/infrastructure/repository/memory"
)

type stubRegenerator struct {
	results map[string]GenerationResult
	errs    map[string]error
	calls   []string
}

func (s *stubRegenerator) GenerateSchedule(_ context.Context, seasonID string) (GenerationResult, error) {
	s.calls = append(s.calls, seasonID)
	if err, ok := s.errs[seasonID]; ok {
		return GenerationResult{}, err
	}
	return s.results[seasonID], nil
}

func newSeasonService(seasonRepo season.Repository, gameRepo game.Repository, regen ScheduleRegenerator) *SeasonService {
	return NewSeasonService(seasonRepo, gameRepo, nil, nil, regen, nil)
}

func TestSeasonService_CreateSeason(t *testing.T) {
	repo := memory.NewSeasonRepository(nil)
	service := newSeasonService(repo, memory.NewGameRepository(nil), nil)

	created, err := service.CreateSeason(t.Context(), CreateSeasonInput{
		LeagueID:       "league-1",
		Name:           "Spring 2026",
		StartDate:      time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, time.May, 31, 0, 0, 0, 0, time.UTC),
		MaxGamesPerDay: 3,
		Cycles:         2,
		AutoRegenerate: true,
	})
	if err != nil {
		t.Fatalf("create season failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated season id")
	}
	if created.State != season.StateConfiguration {
		t.Fatalf("expected state CONFIGURATION, got %s", created.State)
	}

	stored, exists, err := repo.GetByID(t.Context(), created.ID)
	if err != nil || !exists {
		t.Fatalf("expected persisted season, exists=%v err=%v", exists, err)
	}
	if stored.Name != "Spring 2026" || !stored.AutoRegenerate {
		t.Fatalf("unexpected stored season: %+v", stored)
	}
}

func TestSeasonService_CreateSeason_InvalidWindow(t *testing.T) {
	service := newSeasonService(memory.NewSeasonRepository(nil), memory.NewGameRepository(nil), nil)

	_, err := service.CreateSeason(t.Context(), CreateSeasonInput{
		LeagueID:       "league-1",
		Name:           "Backwards",
		StartDate:      time.Date(2026, time.May, 31, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		MaxGamesPerDay: 3,
		Cycles:         1,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSeasonService_UpdateSeason_ClosedRejected(t *testing.T) {
	seed := memory.SeedSeasons()
	seed[0].State = season.StateClosed
	service := newSeasonService(memory.NewSeasonRepository(seed), memory.NewGameRepository(nil), nil)

	_, err := service.UpdateSeason(t.Context(), UpdateSeasonInput{
		SeasonID:       seed[0].ID,
		Name:           seed[0].Name,
		StartDate:      seed[0].StartDate,
		EndDate:        seed[0].EndDate,
		MaxGamesPerDay: seed[0].MaxGamesPerDay,
		Cycles:         seed[0].Cycles,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSeasonService_Lifecycle(t *testing.T) {
	seed := memory.SeedSeasons()
	seed[0].State = season.StateGenerated
	repo := memory.NewSeasonRepository(seed)
	service := newSeasonService(repo, memory.NewGameRepository(nil), nil)
	seasonID := seed[0].ID

	activated, err := service.ActivateSeason(t.Context(), seasonID)
	if err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if activated.State != season.StateActive {
		t.Fatalf("expected ACTIVE, got %s", activated.State)
	}

	playoffs, err := service.StartPlayoffs(t.Context(), seasonID)
	if err != nil {
		t.Fatalf("start playoffs failed: %v", err)
	}
	if playoffs.State != season.StatePlayoffs {
		t.Fatalf("expected PLAYOFFS, got %s", playoffs.State)
	}
	if playoffs.PlayoffStartAt == nil {
		t.Fatal("expected playoff start timestamp to be stamped")
	}

	closed, err := service.CloseSeason(t.Context(), seasonID)
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if closed.State != season.StateClosed {
		t.Fatalf("expected CLOSED, got %s", closed.State)
	}

	if err := service.ArchiveSeason(t.Context(), seasonID); err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	if _, err := service.GetSeason(t.Context(), seasonID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for archived season, got %v", err)
	}
}

func TestSeasonService_ActivateFromConfigurationRejected(t *testing.T) {
	service := newSeasonService(memory.NewSeasonRepository(memory.SeedSeasons()), memory.NewGameRepository(nil), nil)

	_, err := service.ActivateSeason(t.Context(), "rec-basketball-2026-regular")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSeasonService_ArchiveRequiresClosed(t *testing.T) {
	service := newSeasonService(memory.NewSeasonRepository(memory.SeedSeasons()), memory.NewGameRepository(nil), nil)

	err := service.ArchiveSeason(t.Context(), "rec-basketball-2026-regular")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSeasonService_RosterChanged(t *testing.T) {
	seasons := []season.Season{
		{
			ID: "s-generated", LeagueID: "league-1", Name: "Generated",
			StartDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
			MaxGamesPerDay: 2, Cycles: 1, AutoRegenerate: true, State: season.StateGenerated,
		},
		{
			ID: "s-active", LeagueID: "league-1", Name: "Active",
			StartDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
			MaxGamesPerDay: 2, Cycles: 1, AutoRegenerate: true, State: season.StateActive,
		},
		{
			ID: "s-manual", LeagueID: "league-1", Name: "Manual",
			StartDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
			MaxGamesPerDay: 2, Cycles: 1, AutoRegenerate: false, State: season.StateGenerated,
		},
		{
			ID: "s-config", LeagueID: "league-1", Name: "Configuration",
			StartDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
			MaxGamesPerDay: 2, Cycles: 1, AutoRegenerate: true, State: season.StateConfiguration,
		},
		{
			ID: "s-other-league", LeagueID: "league-2", Name: "Other",
			StartDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
			MaxGamesPerDay: 2, Cycles: 1, AutoRegenerate: true, State: season.StateGenerated,
		},
	}

	regen := &stubRegenerator{
		results: map[string]GenerationResult{
			"s-generated": {SeasonID: "s-generated", GameCount: 6},
		},
		errs: map[string]error{
			"s-active": fmt.Errorf("%w: season=s-active", ErrGenerationInProgress),
		},
	}
	service := newSeasonService(memory.NewSeasonRepository(seasons), memory.NewGameRepository(nil), regen)

	result, err := service.RosterChanged(t.Context(), RosterChangedInput{LeagueID: "league-1"})
	if err != nil {
		t.Fatalf("roster changed failed: %v", err)
	}

	if result.SeasonCount != 2 {
		t.Fatalf("expected 2 eligible seasons, got %d", result.SeasonCount)
	}
	if result.RegeneratedCount != 1 || result.SkippedCount != 1 || result.FailedCount != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if len(regen.calls) != 2 {
		t.Fatalf("expected 2 regeneration calls, got %v", regen.calls)
	}
}

func TestSeasonService_RosterChanged_RequiresLeague(t *testing.T) {
	service := newSeasonService(memory.NewSeasonRepository(nil), memory.NewGameRepository(nil), &stubRegenerator{})

	_, err := service.RosterChanged(t.Context(), RosterChangedInput{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSeasonService_ListSeasonGames(t *testing.T) {
	seed := memory.SeedSeasons()
	games := []game.Game{
		{
			ID: "g1", SeasonID: seed[0].ID, HomeTeamID: "a", AwayTeamID: "b",
			VenueID: "v1", TimeSlotID: "t1",
			Date: time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC), Cycle: 1,
			Status: game.StatusScheduled,
		},
	}
	service := newSeasonService(memory.NewSeasonRepository(seed), memory.NewGameRepository(games), nil)

	got, err := service.ListSeasonGames(t.Context(), seed[0].ID)
	if err != nil {
		t.Fatalf("list games failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "g1" {
		t.Fatalf("unexpected games: %+v", got)
	}

	if _, err := service.ListSeasonGames(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSeasonService_UpdateSeason_AutoRegenerates(t *testing.T) {
	seed := memory.SeedSeasons()
	seed[0].State = season.StateGenerated
	repo := memory.NewSeasonRepository(seed)
	regen := &stubRegenerator{}
	service := newSeasonService(repo, memory.NewGameRepository(nil), regen)

	updated, err := service.UpdateSeason(t.Context(), UpdateSeasonInput{
		SeasonID:       seed[0].ID,
		Name:           seed[0].Name,
		StartDate:      seed[0].StartDate,
		EndDate:        seed[0].EndDate,
		MaxGamesPerDay: seed[0].MaxGamesPerDay,
		Cycles:         1,
		AutoRegenerate: true,
	})
	if err != nil {
		t.Fatalf("update season failed: %v", err)
	}
	if updated.Cycles != 1 {
		t.Fatalf("expected cycles 1, got %d", updated.Cycles)
	}
	if len(regen.calls) != 1 || regen.calls[0] != seed[0].ID {
		t.Fatalf("expected one regeneration for %s, got %v", seed[0].ID, regen.calls)
	}
}

func TestSeasonService_UpdateSeason_NoRegenInConfiguration(t *testing.T) {
	seed := memory.SeedSeasons()
	regen := &stubRegenerator{}
	service := newSeasonService(memory.NewSeasonRepository(seed), memory.NewGameRepository(nil), regen)

	_, err := service.UpdateSeason(t.Context(), UpdateSeasonInput{
		SeasonID:       seed[0].ID,
		Name:           seed[0].Name,
		StartDate:      seed[0].StartDate,
		EndDate:        seed[0].EndDate,
		MaxGamesPerDay: seed[0].MaxGamesPerDay,
		Cycles:         1,
		AutoRegenerate: true,
	})
	if err != nil {
		t.Fatalf("update season failed: %v", err)
	}
	if len(regen.calls) != 0 {
		t.Fatalf("expected no regeneration before first generation, got %v", regen.calls)
	}
}

func TestSeasonService_UpdateSeason_RegenerationInProgressTolerated(t *testing.T) {
	seed := memory.SeedSeasons()
	seed[0].State = season.StateActive
	regen := &stubRegenerator{errs: map[string]error{seed[0].ID: ErrGenerationInProgress}}
	service := newSeasonService(memory.NewSeasonRepository(seed), memory.NewGameRepository(nil), regen)

	updated, err := service.UpdateSeason(t.Context(), UpdateSeasonInput{
		SeasonID:       seed[0].ID,
		Name:           seed[0].Name,
		StartDate:      seed[0].StartDate,
		EndDate:        seed[0].EndDate,
		MaxGamesPerDay: seed[0].MaxGamesPerDay,
		Cycles:         1,
		AutoRegenerate: true,
	})
	if err != nil {
		t.Fatalf("expected held lock to be tolerated, got %v", err)
	}
	if updated.Cycles != 1 {
		t.Fatalf("expected parameter change persisted, got cycles %d", updated.Cycles)
	}
}

func TestSeasonService_UpdateSeason_RebuildsSchedule(t *testing.T) {
	fx := newGenerationFixture(nil)
	service := newSeasonService(fx.seasonRepo, fx.gameRepo, fx.service)

	if _, err := fx.service.GenerateSchedule(t.Context(), seedSeasonID); err != nil {
		t.Fatalf("generate schedule failed: %v", err)
	}
	before, _, err := fx.seasonRepo.GetByID(t.Context(), seedSeasonID)
	if err != nil {
		t.Fatalf("get season failed: %v", err)
	}

	updated, err := service.UpdateSeason(t.Context(), UpdateSeasonInput{
		SeasonID:       seedSeasonID,
		Name:           before.Name,
		StartDate:      before.StartDate,
		EndDate:        before.EndDate,
		MaxGamesPerDay: before.MaxGamesPerDay,
		Cycles:         1,
		AutoRegenerate: true,
	})
	if err != nil {
		t.Fatalf("update season failed: %v", err)
	}

	// 6 teams, single round robin after the cycle change: C(6,2) = 15.
	games, err := fx.gameRepo.ListBySeason(t.Context(), seedSeasonID)
	if err != nil {
		t.Fatalf("list games failed: %v", err)
	}
	if len(games) != 15 {
		t.Fatalf("expected 15 games after cycle change, got %d", len(games))
	}
	if updated.LastGeneratedAt == nil || !updated.LastGeneratedAt.After(*before.LastGeneratedAt) && !updated.LastGeneratedAt.Equal(*before.LastGeneratedAt) {
		t.Fatal("expected regeneration to refresh the generation timestamp")
	}
	if updated.Cycles != 1 {
		t.Fatalf("expected cycles 1, got %d", updated.Cycles)
	}
}

func TestSeasonService_StartPlayoffs_BeforeStartDateRejected(t *testing.T) {
	seed := memory.SeedSeasons()
	seed[0].State = season.StateActive
	playoffStart := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	seed[0].PlayoffStartAt = &playoffStart
	service := newSeasonService(memory.NewSeasonRepository(seed), memory.NewGameRepository(nil), nil)
	service.now = func() time.Time { return time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC) }

	_, err := service.StartPlayoffs(t.Context(), seed[0].ID)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput before playoff start date, got %v", err)
	}
}

func TestSeasonService_StartPlayoffs_AfterStartDate(t *testing.T) {
	seed := memory.SeedSeasons()
	seed[0].State = season.StateActive
	playoffStart := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	seed[0].PlayoffStartAt = &playoffStart
	service := newSeasonService(memory.NewSeasonRepository(seed), memory.NewGameRepository(nil), nil)
	service.now = func() time.Time { return time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC) }

	playoffs, err := service.StartPlayoffs(t.Context(), seed[0].ID)
	if err != nil {
		t.Fatalf("start playoffs failed: %v", err)
	}
	if playoffs.State != season.StatePlayoffs {
		t.Fatalf("expected PLAYOFFS, got %s", playoffs.State)
	}
	if !playoffs.PlayoffStartAt.Equal(playoffStart) {
		t.Fatalf("expected configured playoff start kept, got %v", playoffs.PlayoffStartAt)
	}
}
