package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/league-scheduler/internal/domain/season"
)

type SeasonRepository struct {
	mu      sync.RWMutex
	seasons map[string]season.Season
}

func NewSeasonRepository(seasons []season.Season) *SeasonRepository {
	byID := make(map[string]season.Season, len(seasons))
	for _, item := range seasons {
		byID[item.ID] = item
	}

	return &SeasonRepository{seasons: byID}
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0, len(r.seasons))
	for _, item := range r.seasons {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.seasons[seasonID]
	return item, ok, nil
}

func (r *SeasonRepository) Upsert(_ context.Context, item season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seasons[item.ID] = item
	return nil
}

func (r *SeasonRepository) Archive(_ context.Context, seasonID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.seasons[seasonID]
	if !ok {
		return nil
	}
	item.Archived = true
	r.seasons[seasonID] = item
	return nil
}
