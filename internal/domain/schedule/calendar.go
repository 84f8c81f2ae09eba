package schedule

import (
	"sort"
	"time"
)

// Resource is a (venue, time slot) combination assignable to one pairing on
// a given day.
type Resource struct {
	VenueID    string
	TimeSlotID string
}

// Day is one scheduling day: a calendar date inside the season window that
// matches the allowed weekday policy, carrying its assignable resources in
// canonical order.
type Day struct {
	Date      time.Time
	Resources []Resource
}

// VenueRef and SlotRef are the minimal projections of venues and time slots
// the pool needs; resolving full entities stays with their owning stores.
type VenueRef struct {
	ID           string
	DisplayOrder int
}

type SlotRef struct {
	ID           string
	DisplayOrder int
}

// CalendarPool derives scheduling days for a season window. It holds no
// mutable state: Days re-derives the sequence on every call.
type CalendarPool struct {
	start     time.Time
	end       time.Time
	weekdays  map[time.Weekday]bool
	resources []Resource
	capacity  int
}

// NewCalendarPool builds a pool over [start, end] for the allowed weekday
// set. Resources are ordered by venue display order, then slot display
// order (ties broken by identifier), and truncated to maxGamesPerDay: the
// excess combinations are simply never offered.
func NewCalendarPool(start, end time.Time, weekdays []time.Weekday, venues []VenueRef, slots []SlotRef, maxGamesPerDay int) *CalendarPool {
	allowed := make(map[time.Weekday]bool, len(weekdays))
	for _, wd := range weekdays {
		allowed[wd] = true
	}

	orderedVenues := make([]VenueRef, len(venues))
	copy(orderedVenues, venues)
	sort.SliceStable(orderedVenues, func(i, j int) bool {
		if orderedVenues[i].DisplayOrder != orderedVenues[j].DisplayOrder {
			return orderedVenues[i].DisplayOrder < orderedVenues[j].DisplayOrder
		}
		return orderedVenues[i].ID < orderedVenues[j].ID
	})

	orderedSlots := make([]SlotRef, len(slots))
	copy(orderedSlots, slots)
	sort.SliceStable(orderedSlots, func(i, j int) bool {
		if orderedSlots[i].DisplayOrder != orderedSlots[j].DisplayOrder {
			return orderedSlots[i].DisplayOrder < orderedSlots[j].DisplayOrder
		}
		return orderedSlots[i].ID < orderedSlots[j].ID
	})

	resources := make([]Resource, 0, len(orderedVenues)*len(orderedSlots))
	for _, v := range orderedVenues {
		for _, s := range orderedSlots {
			resources = append(resources, Resource{VenueID: v.ID, TimeSlotID: s.ID})
		}
	}
	if maxGamesPerDay > 0 && len(resources) > maxGamesPerDay {
		resources = resources[:maxGamesPerDay]
	}

	return &CalendarPool{
		start:     truncateToDate(start),
		end:       truncateToDate(end),
		weekdays:  allowed,
		resources: resources,
		capacity:  maxGamesPerDay,
	}
}

// Capacity is the per-day game cap.
func (p *CalendarPool) Capacity() int {
	return p.capacity
}

// Days returns the finite chronological sequence of scheduling days. Each
// day shares the pool's canonical resource list.
func (p *CalendarPool) Days() []Day {
	var out []Day
	for d := p.start; !d.After(p.end); d = d.AddDate(0, 0, 1) {
		if !p.weekdays[d.Weekday()] {
			continue
		}
		out = append(out, Day{Date: d, Resources: p.resources})
	}
	return out
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
