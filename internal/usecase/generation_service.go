package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/league-scheduler/internal/domain/game"
	"github.com/riskibarqy/league-scheduler/internal/domain/schedule"
	"github.com/riskibarqy/league-scheduler/internal/domain/season"
	"github.com/riskibarqy/league-scheduler/internal/domain/team"
	"github.com/riskibarqy/league-scheduler/internal/domain/timeslot"
	"github.com/riskibarqy/league-scheduler/internal/domain/venue"
	"github.com/riskibarqy/league-scheduler/internal/platform/cache"
	"github.com/riskibarqy/league-scheduler/internal/platform/id"
	"github.com/riskibarqy/league-scheduler/internal/platform/logging"
	"github.com/riskibarqy/league-scheduler/internal/platform/resilience"
)

// GenerationResult summarizes one successful scheduling run.
type GenerationResult struct {
	SeasonID     string       `json:"season_id"`
	State        season.State `json:"state"`
	TeamCount    int          `json:"team_count"`
	GameCount    int          `json:"game_count"`
	PinnedCount  int          `json:"pinned_count"`
	PairingCount int          `json:"pairing_count"`
	GeneratedAt  time.Time    `json:"generated_at"`
}

// GenerationService runs the scheduling pipeline for one season: pairing
// generation, calendar derivation, slot resolution, invariant validation
// and the atomic swap of the unplayed game set.
type GenerationService struct {
	seasonRepo   season.Repository
	teamRepo     team.Repository
	venueRepo    venue.Repository
	timeSlotRepo timeslot.Repository
	gameRepo     game.Repository
	locks        *resilience.KeyedTryLock
	gamesCache   *cache.Store
	idGen        id.Generator
	weekdays     []time.Weekday
	logger       *logging.Logger
	now          func() time.Time
}

func NewGenerationService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	venueRepo venue.Repository,
	timeSlotRepo timeslot.Repository,
	gameRepo game.Repository,
	gamesCache *cache.Store,
	idGen id.Generator,
	weekdays []time.Weekday,
	logger *logging.Logger,
) *GenerationService {
	if idGen == nil {
		idGen = id.NewRandomGenerator()
	}
	if len(weekdays) == 0 {
		weekdays = []time.Weekday{time.Saturday}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &GenerationService{
		seasonRepo:   seasonRepo,
		teamRepo:     teamRepo,
		venueRepo:    venueRepo,
		timeSlotRepo: timeSlotRepo,
		gameRepo:     gameRepo,
		locks:        resilience.NewKeyedTryLock(),
		gamesCache:   gamesCache,
		idGen:        idGen,
		weekdays:     weekdays,
		logger:       logger,
		now:          time.Now,
	}
}

// GenerateSchedule builds a full schedule for the season and replaces its
// unplayed games. Games already in play are pinned: they keep their date,
// venue, slot and opponents, and their pairings are not regenerated. At
// most one run per season executes at a time; a concurrent call fails fast
// with ErrGenerationInProgress.
//
// The season record is only touched after the new game set is persisted,
// so a failed run leaves the previous schedule fully intact.
func (s *GenerationService) GenerateSchedule(ctx context.Context, seasonID string) (GenerationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GenerationService.GenerateSchedule")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return GenerationResult{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	if !s.locks.Acquire(seasonID) {
		return GenerationResult{}, fmt.Errorf("%w: season=%s", ErrGenerationInProgress, seasonID)
	}
	defer s.locks.Release(seasonID)

	current, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return GenerationResult{}, fmt.Errorf("get season: %w", err)
	}
	if !exists || current.Archived {
		return GenerationResult{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	if !season.IsGenerationState(current.State) {
		return GenerationResult{}, fmt.Errorf("%w: season %s in state %s cannot be scheduled",
			ErrInvalidInput, seasonID, season.NormalizeState(current.State))
	}

	teamIDs, err := s.activeTeamIDs(ctx, current.LeagueID)
	if err != nil {
		return GenerationResult{}, err
	}

	pairings, err := schedule.GeneratePairings(teamIDs, current.Cycles)
	if err != nil {
		return GenerationResult{}, fmt.Errorf("generate pairings: %w", err)
	}
	pairingCount := len(pairings)

	pinned, err := s.pinnedGames(ctx, seasonID)
	if err != nil {
		return GenerationResult{}, err
	}
	pairings = schedule.RemovePinnedPairings(pairings, pinned)

	venueRefs, slotRefs, err := s.activeResources(ctx, current.LeagueID)
	if err != nil {
		return GenerationResult{}, err
	}

	pool := schedule.NewCalendarPool(
		current.StartDate, current.EndDate, s.weekdays,
		venueRefs, slotRefs, current.MaxGamesPerDay,
	)

	assignments, err := schedule.Resolve(schedule.ResolveInput{
		SeasonID: seasonID,
		Pairings: pairings,
		Days:     pool.Days(),
		Capacity: pool.Capacity(),
		Pinned:   pinned,
	})
	if err != nil {
		return GenerationResult{}, err
	}

	if err := schedule.ValidateSchedule(schedule.ValidateInput{
		SeasonID:    seasonID,
		TeamIDs:     teamIDs,
		Cycles:      current.Cycles,
		Start:       current.StartDate,
		End:         current.EndDate,
		Weekdays:    s.weekdays,
		Assignments: assignments,
		Pinned:      pinned,
	}); err != nil {
		return GenerationResult{}, err
	}

	games, err := s.buildGames(seasonID, assignments)
	if err != nil {
		return GenerationResult{}, err
	}

	if err := s.gameRepo.ReplaceUnplayed(ctx, seasonID, games); err != nil {
		return GenerationResult{}, fmt.Errorf("replace unplayed games: %w", err)
	}

	// The game swap and the season stamp are separate writes. A failure
	// between them leaves fresh games with a stale stamp; the pipeline is
	// deterministic, so the next run rewrites the identical game set and
	// corrects the stamp.
	target := season.StateGenerated
	if season.NormalizeState(current.State) == season.StateActive {
		target = season.StateActive
	}
	updated, err := season.Transition(current, target)
	if err != nil {
		return GenerationResult{}, fmt.Errorf("transition season state: %w", err)
	}

	generatedAt := s.now().UTC()
	updated.LastGeneratedAt = &generatedAt
	if err := s.seasonRepo.Upsert(ctx, updated); err != nil {
		return GenerationResult{}, fmt.Errorf("update season: %w", err)
	}

	if s.gamesCache != nil {
		s.gamesCache.Invalidate(gamesCacheKey(seasonID))
	}

	s.logger.InfoContext(ctx, "schedule generated",
		"season_id", seasonID,
		"state", string(updated.State),
		"teams", len(teamIDs),
		"games", len(games),
		"pinned", len(pinned),
	)

	return GenerationResult{
		SeasonID:     seasonID,
		State:        updated.State,
		TeamCount:    len(teamIDs),
		GameCount:    len(games) + len(pinned),
		PinnedCount:  len(pinned),
		PairingCount: pairingCount,
		GeneratedAt:  generatedAt,
	}, nil
}

// activeTeamIDs returns the sorted roster snapshot the pipeline runs on.
// Sorting makes pairing generation deterministic across runs.
func (s *GenerationService) activeTeamIDs(ctx context.Context, leagueID string) ([]string, error) {
	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	ids := make([]string, 0, len(teams))
	for _, t := range teams {
		if t.Active {
			ids = append(ids, t.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *GenerationService) pinnedGames(ctx context.Context, seasonID string) ([]schedule.PinnedGame, error) {
	played, err := s.gameRepo.ListPlayedBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list played games: %w", err)
	}

	pinned := make([]schedule.PinnedGame, 0, len(played))
	for _, g := range played {
		pinned = append(pinned, schedule.PinnedGame{
			HomeTeamID: g.HomeTeamID,
			AwayTeamID: g.AwayTeamID,
			Cycle:      g.Cycle,
			Date:       g.Date,
			VenueID:    g.VenueID,
			TimeSlotID: g.TimeSlotID,
		})
	}
	return pinned, nil
}

func (s *GenerationService) activeResources(ctx context.Context, leagueID string) ([]schedule.VenueRef, []schedule.SlotRef, error) {
	venues, err := s.venueRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, nil, fmt.Errorf("list venues: %w", err)
	}
	slots, err := s.timeSlotRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, nil, fmt.Errorf("list time slots: %w", err)
	}

	venueRefs := make([]schedule.VenueRef, 0, len(venues))
	for _, v := range venues {
		if v.Active {
			venueRefs = append(venueRefs, schedule.VenueRef{ID: v.ID, DisplayOrder: v.DisplayOrder})
		}
	}
	slotRefs := make([]schedule.SlotRef, 0, len(slots))
	for _, ts := range slots {
		if ts.Active {
			slotRefs = append(slotRefs, schedule.SlotRef{ID: ts.ID, DisplayOrder: ts.DisplayOrder})
		}
	}

	if len(venueRefs) == 0 {
		return nil, nil, fmt.Errorf("%w: league %s has no active venues", ErrInvalidInput, leagueID)
	}
	if len(slotRefs) == 0 {
		return nil, nil, fmt.Errorf("%w: league %s has no active time slots", ErrInvalidInput, leagueID)
	}

	return venueRefs, slotRefs, nil
}

func (s *GenerationService) buildGames(seasonID string, assignments []schedule.Assignment) ([]game.Game, error) {
	games := make([]game.Game, 0, len(assignments))
	for _, a := range assignments {
		gameID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate game id: %w", err)
		}
		games = append(games, game.Game{
			ID:         gameID,
			SeasonID:   seasonID,
			HomeTeamID: a.Pairing.HomeTeamID,
			AwayTeamID: a.Pairing.AwayTeamID,
			VenueID:    a.VenueID,
			TimeSlotID: a.TimeSlotID,
			Date:       a.Date,
			Cycle:      a.Pairing.Cycle,
			Status:     game.StatusScheduled,
		})
	}
	return games, nil
}

func gamesCacheKey(seasonID string) string {
	return "games:" + seasonID
}
