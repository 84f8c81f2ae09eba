package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/league-scheduler/internal/domain/timeslot"
)

type TimeSlotRepository struct {
	mu            sync.RWMutex
	slotsByLeague map[string][]timeslot.TimeSlot
}

func NewTimeSlotRepository(slots []timeslot.TimeSlot) *TimeSlotRepository {
	slotsByLeague := make(map[string][]timeslot.TimeSlot)
	for _, item := range slots {
		slotsByLeague[item.LeagueID] = append(slotsByLeague[item.LeagueID], item)
	}

	return &TimeSlotRepository{slotsByLeague: slotsByLeague}
}

func (r *TimeSlotRepository) ListByLeague(_ context.Context, leagueID string) ([]timeslot.TimeSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slots := r.slotsByLeague[leagueID]
	out := make([]timeslot.TimeSlot, 0, len(slots))
	out = append(out, slots...)

	return out, nil
}

func (r *TimeSlotRepository) UpsertTimeSlots(_ context.Context, items []timeslot.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		leagueID := strings.TrimSpace(item.LeagueID)
		slotID := strings.TrimSpace(item.ID)
		if leagueID == "" || slotID == "" {
			continue
		}

		rows := r.slotsByLeague[leagueID]
		updated := false
		for idx := range rows {
			if rows[idx].ID == slotID {
				rows[idx] = item
				updated = true
				break
			}
		}
		if !updated {
			rows = append(rows, item)
		}
		r.slotsByLeague[leagueID] = rows
	}

	return nil
}
