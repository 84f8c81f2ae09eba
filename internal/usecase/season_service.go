package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/league-scheduler/internal/domain/game"
	"github.com/riskibarqy/league-scheduler/internal/domain/season"
	"github.com/riskibarqy/league-scheduler/internal/platform/cache"
	"github.com/riskibarqy/league-scheduler/internal/platform/id"
	"github.com/riskibarqy/league-scheduler/internal/platform/logging"
)

// ScheduleRegenerator is the slice of GenerationService the season
// lifecycle needs for roster-change reactions.
type ScheduleRegenerator interface {
	GenerateSchedule(ctx context.Context, seasonID string) (GenerationResult, error)
}

type CreateSeasonInput struct {
	LeagueID       string
	Name           string
	StartDate      time.Time
	EndDate        time.Time
	PlayoffStartAt *time.Time
	MaxGamesPerDay int
	Cycles         int
	AutoRegenerate bool
}

type UpdateSeasonInput struct {
	SeasonID       string
	Name           string
	StartDate      time.Time
	EndDate        time.Time
	PlayoffStartAt *time.Time
	MaxGamesPerDay int
	Cycles         int
	AutoRegenerate bool
}

type RosterChangedInput struct {
	LeagueID string
}

type RosterChangedResult struct {
	LeagueID         string                      `json:"league_id"`
	SeasonCount      int                         `json:"season_count"`
	RegeneratedCount int                         `json:"regenerated_count"`
	SkippedCount     int                         `json:"skipped_count"`
	FailedCount      int                         `json:"failed_count"`
	Seasons          []RosterChangedSeasonResult `json:"seasons"`
}

type RosterChangedSeasonResult struct {
	SeasonID  string `json:"season_id"`
	Status    string `json:"status"`
	GameCount int    `json:"game_count,omitempty"`
	Message   string `json:"message,omitempty"`
}

const (
	rosterChangeStatusRegenerated = "regenerated"
	rosterChangeStatusSkipped     = "skipped"
	rosterChangeStatusFailed      = "failed"
)

// SeasonService owns the season lifecycle: creation, configuration
// updates, state transitions and roster-change reactions.
type SeasonService struct {
	seasonRepo  season.Repository
	gameRepo    game.Repository
	gamesCache  *cache.Store
	idGen       id.Generator
	regenerator ScheduleRegenerator
	logger      *logging.Logger
	now         func() time.Time
}

func NewSeasonService(
	seasonRepo season.Repository,
	gameRepo game.Repository,
	gamesCache *cache.Store,
	idGen id.Generator,
	regenerator ScheduleRegenerator,
	logger *logging.Logger,
) *SeasonService {
	if idGen == nil {
		idGen = id.NewRandomGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &SeasonService{
		seasonRepo:  seasonRepo,
		gameRepo:    gameRepo,
		gamesCache:  gamesCache,
		idGen:       idGen,
		regenerator: regenerator,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *SeasonService) ListSeasons(ctx context.Context) ([]season.Season, error) {
	seasons, err := s.seasonRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	out := make([]season.Season, 0, len(seasons))
	for _, item := range seasons {
		if item.Archived {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *SeasonService) GetSeason(ctx context.Context, seasonID string) (season.Season, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !exists || item.Archived {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	return item, nil
}

// ListSeasonGames returns the season's full game set. Reads are served
// from a short-lived cache; generation invalidates it.
func (s *SeasonService) ListSeasonGames(ctx context.Context, seasonID string) ([]game.Game, error) {
	if _, err := s.GetSeason(ctx, seasonID); err != nil {
		return nil, err
	}

	if s.gamesCache == nil {
		games, err := s.gameRepo.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, fmt.Errorf("list games: %w", err)
		}
		return games, nil
	}

	value, err := s.gamesCache.GetOrLoad(ctx, gamesCacheKey(seasonID), func(ctx context.Context) (any, error) {
		games, err := s.gameRepo.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, fmt.Errorf("list games: %w", err)
		}
		return games, nil
	})
	if err != nil {
		return nil, err
	}

	games, ok := value.([]game.Game)
	if !ok {
		return nil, fmt.Errorf("unexpected cache entry for season %s games", seasonID)
	}
	return games, nil
}

func (s *SeasonService) CreateSeason(ctx context.Context, input CreateSeasonInput) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.CreateSeason")
	defer span.End()

	seasonID, err := s.idGen.NewID()
	if err != nil {
		return season.Season{}, fmt.Errorf("generate season id: %w", err)
	}

	item := season.Season{
		ID:             seasonID,
		LeagueID:       strings.TrimSpace(input.LeagueID),
		Name:           strings.TrimSpace(input.Name),
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		PlayoffStartAt: input.PlayoffStartAt,
		MaxGamesPerDay: input.MaxGamesPerDay,
		Cycles:         input.Cycles,
		AutoRegenerate: input.AutoRegenerate,
		State:          season.StateConfiguration,
	}
	if err := item.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.seasonRepo.Upsert(ctx, item); err != nil {
		return season.Season{}, fmt.Errorf("create season: %w", err)
	}

	s.logger.InfoContext(ctx, "season created", "season_id", item.ID, "league_id", item.LeagueID)
	return item, nil
}

// UpdateSeason changes tournament parameters. A season that already
// holds a schedule and opted into auto-regeneration gets its pipeline
// re-run against the new parameters; a regeneration already in flight
// is left alone.
func (s *SeasonService) UpdateSeason(ctx context.Context, input UpdateSeasonInput) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.UpdateSeason")
	defer span.End()

	current, err := s.GetSeason(ctx, input.SeasonID)
	if err != nil {
		return season.Season{}, err
	}
	if season.NormalizeState(current.State) == season.StateClosed {
		return season.Season{}, fmt.Errorf("%w: season %s is closed", ErrInvalidInput, current.ID)
	}

	current.Name = strings.TrimSpace(input.Name)
	current.StartDate = input.StartDate
	current.EndDate = input.EndDate
	current.PlayoffStartAt = input.PlayoffStartAt
	current.MaxGamesPerDay = input.MaxGamesPerDay
	current.Cycles = input.Cycles
	current.AutoRegenerate = input.AutoRegenerate
	if err := current.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.seasonRepo.Upsert(ctx, current); err != nil {
		return season.Season{}, fmt.Errorf("update season: %w", err)
	}

	state := season.NormalizeState(current.State)
	if current.AutoRegenerate && (state == season.StateGenerated || state == season.StateActive) {
		if s.regenerator == nil {
			return season.Season{}, fmt.Errorf("%w: schedule regeneration is not configured", ErrDependencyUnavailable)
		}
		if _, err := s.regenerator.GenerateSchedule(ctx, current.ID); err != nil {
			if errors.Is(err, ErrGenerationInProgress) {
				s.logger.WarnContext(ctx, "parameter-change regeneration skipped, run in progress",
					"season_id", current.ID)
				return current, nil
			}
			return season.Season{}, err
		}
		return s.GetSeason(ctx, current.ID)
	}

	return current, nil
}

func (s *SeasonService) ActivateSeason(ctx context.Context, seasonID string) (season.Season, error) {
	return s.transitionSeason(ctx, seasonID, season.StateActive)
}

// StartPlayoffs moves the season into its playoff phase. Entry is
// rejected until the configured playoff start date has arrived; a season
// without one may enter at any time and the entry time is stamped.
func (s *SeasonService) StartPlayoffs(ctx context.Context, seasonID string) (season.Season, error) {
	current, err := s.GetSeason(ctx, seasonID)
	if err != nil {
		return season.Season{}, err
	}
	if current.PlayoffStartAt != nil && s.now().Before(*current.PlayoffStartAt) {
		return season.Season{}, fmt.Errorf("%w: playoffs start %s has not arrived",
			ErrInvalidInput, current.PlayoffStartAt.Format(time.DateOnly))
	}

	updated, err := s.transitionSeason(ctx, seasonID, season.StatePlayoffs)
	if err != nil {
		return season.Season{}, err
	}

	if updated.PlayoffStartAt == nil {
		startedAt := s.now().UTC()
		updated.PlayoffStartAt = &startedAt
		if err := s.seasonRepo.Upsert(ctx, updated); err != nil {
			return season.Season{}, fmt.Errorf("update season: %w", err)
		}
	}

	return updated, nil
}

func (s *SeasonService) CloseSeason(ctx context.Context, seasonID string) (season.Season, error) {
	return s.transitionSeason(ctx, seasonID, season.StateClosed)
}

func (s *SeasonService) ArchiveSeason(ctx context.Context, seasonID string) error {
	current, err := s.GetSeason(ctx, seasonID)
	if err != nil {
		return err
	}
	if season.NormalizeState(current.State) != season.StateClosed {
		return fmt.Errorf("%w: only closed seasons can be archived", ErrInvalidInput)
	}

	if err := s.seasonRepo.Archive(ctx, current.ID); err != nil {
		return fmt.Errorf("archive season: %w", err)
	}
	return nil
}

func (s *SeasonService) transitionSeason(ctx context.Context, seasonID string, target season.State) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.transitionSeason")
	defer span.End()

	current, err := s.GetSeason(ctx, seasonID)
	if err != nil {
		return season.Season{}, err
	}

	updated, err := season.Transition(current, target)
	if err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.seasonRepo.Upsert(ctx, updated); err != nil {
		return season.Season{}, fmt.Errorf("update season: %w", err)
	}

	s.logger.InfoContext(ctx, "season state changed",
		"season_id", updated.ID,
		"from", string(season.NormalizeState(current.State)),
		"to", string(updated.State),
	)
	return updated, nil
}

// RosterChanged reacts to a team joining or leaving a league. Every
// non-archived season of the league that opted into auto-regeneration and
// holds a generated schedule is rebuilt in place. One failing season does
// not stop the rest; a season whose generation lock is held is skipped.
func (s *SeasonService) RosterChanged(ctx context.Context, input RosterChangedInput) (RosterChangedResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.RosterChanged")
	defer span.End()

	leagueID := strings.TrimSpace(input.LeagueID)
	if leagueID == "" {
		return RosterChangedResult{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if s.regenerator == nil {
		return RosterChangedResult{}, fmt.Errorf("%w: schedule regeneration is not configured", ErrDependencyUnavailable)
	}

	seasons, err := s.seasonRepo.List(ctx)
	if err != nil {
		return RosterChangedResult{}, fmt.Errorf("list seasons: %w", err)
	}

	result := RosterChangedResult{LeagueID: leagueID}
	for _, item := range seasons {
		if item.LeagueID != leagueID || item.Archived || !item.AutoRegenerate {
			continue
		}
		state := season.NormalizeState(item.State)
		if state != season.StateGenerated && state != season.StateActive {
			continue
		}

		result.SeasonCount++
		row := RosterChangedSeasonResult{SeasonID: item.ID}

		genResult, err := s.regenerator.GenerateSchedule(ctx, item.ID)
		switch {
		case err == nil:
			row.Status = rosterChangeStatusRegenerated
			row.GameCount = genResult.GameCount
			result.RegeneratedCount++
		case errors.Is(err, ErrGenerationInProgress):
			row.Status = rosterChangeStatusSkipped
			row.Message = err.Error()
			result.SkippedCount++
		default:
			row.Status = rosterChangeStatusFailed
			row.Message = err.Error()
			result.FailedCount++
			s.logger.WarnContext(ctx, "roster-change regeneration failed",
				"season_id", item.ID, "error", err)
		}

		result.Seasons = append(result.Seasons, row)
	}

	return result, nil
}
