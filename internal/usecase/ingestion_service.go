package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-scheduler/internal/domain/team"
	"github.com/riskibarqy/league-scheduler/internal/domain/timeslot"
	"github.com/riskibarqy/league-scheduler/internal/domain/venue"
	"github.com/riskibarqy/league-scheduler/internal/platform/logging"
)

// IngestionService accepts reference-data snapshots pushed by the
// collaborating league-management service: team rosters, venues and time
// slots. Ingestion only persists; schedule reactions run through the
// roster-changed event.
type IngestionService struct {
	teamRepo     team.Repository
	venueRepo    venue.Repository
	timeSlotRepo timeslot.Repository
	logger       *logging.Logger
}

func NewIngestionService(
	teamRepo team.Repository,
	venueRepo venue.Repository,
	timeSlotRepo timeslot.Repository,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &IngestionService{
		teamRepo:     teamRepo,
		venueRepo:    venueRepo,
		timeSlotRepo: timeSlotRepo,
		logger:       logger,
	}
}

func (s *IngestionService) UpsertTeams(ctx context.Context, leagueID string, items []team.Team) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.UpsertTeams")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return 0, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if len(items) == 0 {
		return 0, fmt.Errorf("%w: at least one team is required", ErrInvalidInput)
	}

	for i := range items {
		items[i].LeagueID = leagueID
		if err := items[i].Validate(); err != nil {
			return 0, fmt.Errorf("%w: team %d: %v", ErrInvalidInput, i, err)
		}
	}

	if err := s.teamRepo.UpsertTeams(ctx, items); err != nil {
		return 0, fmt.Errorf("upsert teams: %w", err)
	}

	s.logger.InfoContext(ctx, "teams ingested", "league_id", leagueID, "count", len(items))
	return len(items), nil
}

func (s *IngestionService) UpsertVenues(ctx context.Context, leagueID string, items []venue.Venue) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.UpsertVenues")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return 0, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if len(items) == 0 {
		return 0, fmt.Errorf("%w: at least one venue is required", ErrInvalidInput)
	}

	for i := range items {
		items[i].LeagueID = leagueID
		if err := items[i].Validate(); err != nil {
			return 0, fmt.Errorf("%w: venue %d: %v", ErrInvalidInput, i, err)
		}
	}

	if err := s.venueRepo.UpsertVenues(ctx, items); err != nil {
		return 0, fmt.Errorf("upsert venues: %w", err)
	}

	s.logger.InfoContext(ctx, "venues ingested", "league_id", leagueID, "count", len(items))
	return len(items), nil
}

func (s *IngestionService) UpsertTimeSlots(ctx context.Context, leagueID string, items []timeslot.TimeSlot) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.UpsertTimeSlots")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return 0, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if len(items) == 0 {
		return 0, fmt.Errorf("%w: at least one time slot is required", ErrInvalidInput)
	}

	for i := range items {
		items[i].LeagueID = leagueID
		if err := items[i].Validate(); err != nil {
			return 0, fmt.Errorf("%w: time slot %d: %v", ErrInvalidInput, i, err)
		}
	}

	if err := s.timeSlotRepo.UpsertTimeSlots(ctx, items); err != nil {
		return 0, fmt.Errorf("upsert time slots: %w", err)
	}

	s.logger.InfoContext(ctx, "time slots ingested", "league_id", leagueID, "count", len(items))
	return len(items), nil
}

func (s *IngestionService) ListTeams(ctx context.Context, leagueID string) ([]team.Team, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	items, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *IngestionService) ListVenues(ctx context.Context, leagueID string) ([]venue.Venue, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	items, err := s.venueRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return items, nil
}

func (s *IngestionService) ListTimeSlots(ctx context.Context, leagueID string) ([]timeslot.TimeSlot, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	items, err := s.timeSlotRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	return items, nil
}
