package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/league-scheduler/internal/domain/venue"
)

type VenueRepository struct {
	mu             sync.RWMutex
	venuesByLeague map[string][]venue.Venue
}

func NewVenueRepository(venues []venue.Venue) *VenueRepository {
	venuesByLeague := make(map[string][]venue.Venue)
	for _, item := range venues {
		venuesByLeague[item.LeagueID] = append(venuesByLeague[item.LeagueID], item)
	}

	return &VenueRepository{venuesByLeague: venuesByLeague}
}

func (r *VenueRepository) ListByLeague(_ context.Context, leagueID string) ([]venue.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	venues := r.venuesByLeague[leagueID]
	out := make([]venue.Venue, 0, len(venues))
	out = append(out, venues...)

	return out, nil
}

func (r *VenueRepository) UpsertVenues(_ context.Context, items []venue.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		leagueID := strings.TrimSpace(item.LeagueID)
		venueID := strings.TrimSpace(item.ID)
		if leagueID == "" || venueID == "" {
			continue
		}

		rows := r.venuesByLeague[leagueID]
		updated := false
		for idx := range rows {
			if rows[idx].ID == venueID {
				rows[idx] = item
				updated = true
				break
			}
		}
		if !updated {
			rows = append(rows, item)
		}
		r.venuesByLeague[leagueID] = rows
	}

	return nil
}
