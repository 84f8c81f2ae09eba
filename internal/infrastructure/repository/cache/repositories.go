// Package cache wraps repositories with read-through caching for the
// reference data the resolver reads on every generation run. Writes
// invalidate the affected league keys so ingestion is visible on the
// next read.
package cache

import (
	"context"

	"github.com/riskibarqy/league-scheduler/internal/domain/team"
	"github.com/riskibarqy/league-scheduler/internal/domain/timeslot"
	"github.com/riskibarqy/league-scheduler/internal/domain/venue"
	basecache "github.com/riskibarqy/league-scheduler/internal/platform/cache"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	key := "team:list:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, leagueID, teamID string) (team.Team, bool, error) {
	key := "team:id:" + leagueID + ":" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) UpsertTeams(ctx context.Context, items []team.Team) error {
	if err := r.next.UpsertTeams(ctx, items); err != nil {
		return err
	}
	for _, item := range items {
		r.cache.Invalidate("team:list:" + item.LeagueID)
		r.cache.Invalidate("team:id:" + item.LeagueID + ":" + item.ID)
	}
	return nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type VenueRepository struct {
	next  venue.Repository
	cache *basecache.Store
}

func NewVenueRepository(next venue.Repository, cache *basecache.Store) *VenueRepository {
	return &VenueRepository{next: next, cache: cache}
}

func (r *VenueRepository) ListByLeague(ctx context.Context, leagueID string) ([]venue.Venue, error) {
	key := "venue:list:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]venue.Venue(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]venue.Venue)
	return append([]venue.Venue(nil), items...), nil
}

func (r *VenueRepository) UpsertVenues(ctx context.Context, items []venue.Venue) error {
	if err := r.next.UpsertVenues(ctx, items); err != nil {
		return err
	}
	for _, item := range items {
		r.cache.Invalidate("venue:list:" + item.LeagueID)
	}
	return nil
}

type TimeSlotRepository struct {
	next  timeslot.Repository
	cache *basecache.Store
}

func NewTimeSlotRepository(next timeslot.Repository, cache *basecache.Store) *TimeSlotRepository {
	return &TimeSlotRepository{next: next, cache: cache}
}

func (r *TimeSlotRepository) ListByLeague(ctx context.Context, leagueID string) ([]timeslot.TimeSlot, error) {
	key := "timeslot:list:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]timeslot.TimeSlot(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]timeslot.TimeSlot)
	return append([]timeslot.TimeSlot(nil), items...), nil
}

func (r *TimeSlotRepository) UpsertTimeSlots(ctx context.Context, items []timeslot.TimeSlot) error {
	if err := r.next.UpsertTimeSlots(ctx, items); err != nil {
		return err
	}
	for _, item := range items {
		r.cache.Invalidate("timeslot:list:" + item.LeagueID)
	}
	return nil
}
