package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/league-scheduler/internal/domain/game"
)

type GameRepository struct {
	mu            sync.RWMutex
	gamesBySeason map[string][]game.Game
}

func NewGameRepository(games []game.Game) *GameRepository {
	gamesBySeason := make(map[string][]game.Game)
	for _, item := range games {
		gamesBySeason[item.SeasonID] = append(gamesBySeason[item.SeasonID], item)
	}

	return &GameRepository{gamesBySeason: gamesBySeason}
}

func (r *GameRepository) ListBySeason(_ context.Context, seasonID string) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	games := r.gamesBySeason[seasonID]
	out := make([]game.Game, 0, len(games))
	out = append(out, games...)
	sortGames(out)

	return out, nil
}

func (r *GameRepository) ListPlayedBySeason(_ context.Context, seasonID string) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []game.Game
	for _, item := range r.gamesBySeason[seasonID] {
		if game.IsPlayed(item.Status) {
			out = append(out, item)
		}
	}
	sortGames(out)

	return out, nil
}

func (r *GameRepository) ReplaceUnplayed(_ context.Context, seasonID string, games []game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []game.Game
	for _, item := range r.gamesBySeason[seasonID] {
		if game.IsPlayed(item.Status) {
			kept = append(kept, item)
		}
	}
	kept = append(kept, games...)
	r.gamesBySeason[seasonID] = kept

	return nil
}

func sortGames(games []game.Game) {
	sort.SliceStable(games, func(i, j int) bool {
		if !games[i].Date.Equal(games[j].Date) {
			return games[i].Date.Before(games[j].Date)
		}
		if games[i].VenueID != games[j].VenueID {
			return games[i].VenueID < games[j].VenueID
		}
		return games[i].TimeSlotID < games[j].TimeSlotID
	})
}
