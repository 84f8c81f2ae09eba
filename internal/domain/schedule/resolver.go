package schedule

import "time"

// Assignment binds one pairing to a concrete (date, venue, time slot).
type Assignment struct {
	Pairing    Pairing
	Date       time.Time
	VenueID    string
	TimeSlotID string
}

// PinnedGame is an already-played game that regeneration must not move. Its
// resources are pre-consumed and its pairing is excluded from assignment.
type PinnedGame struct {
	HomeTeamID string
	AwayTeamID string
	Cycle      int
	Date       time.Time
	VenueID    string
	TimeSlotID string
}

// ResolveInput carries one resolver run. SeasonID is used only for error
// reporting.
type ResolveInput struct {
	SeasonID string
	Pairings []Pairing
	Days     []Day
	Capacity int
	Pinned   []PinnedGame
}

type tripleKey struct {
	date       time.Time
	venueID    string
	timeSlotID string
}

type teamDateKey struct {
	date   time.Time
	teamID string
}

// Resolve assigns every pairing to the earliest feasible day and resource.
// Pairings are processed in generation order; days in chronological order;
// resources in the day's canonical order. A pairing is placed on the first
// combination where the day still has capacity, the (date, venue, slot)
// triple is free, and neither team already plays that date.
//
// A pairing with no feasible combination is recorded and the scan moves on,
// so one over-constrained matchup does not hide the rest of the shortage.
// The run fails with *ResourceShortageError when any pairing ends
// unassigned. Nothing is persisted here; the working set is in memory only.
func Resolve(input ResolveInput) ([]Assignment, error) {
	usedTriple := make(map[tripleKey]bool)
	teamBusy := make(map[teamDateKey]bool)
	dayCount := make(map[time.Time]int)

	for _, pin := range input.Pinned {
		date := truncateToDate(pin.Date)
		usedTriple[tripleKey{date, pin.VenueID, pin.TimeSlotID}] = true
		teamBusy[teamDateKey{date, pin.HomeTeamID}] = true
		teamBusy[teamDateKey{date, pin.AwayTeamID}] = true
		dayCount[date]++
	}

	assignments := make([]Assignment, 0, len(input.Pairings))
	var unassigned []UnassignedPairing

	for _, pairing := range input.Pairings {
		placed := false
		hadOpenDay := false

		for _, day := range input.Days {
			date := day.Date
			if input.Capacity > 0 && dayCount[date] >= input.Capacity {
				continue
			}

			var free *Resource
			for i := range day.Resources {
				if !usedTriple[tripleKey{date, day.Resources[i].VenueID, day.Resources[i].TimeSlotID}] {
					free = &day.Resources[i]
					break
				}
			}
			if free == nil {
				continue
			}

			if teamBusy[teamDateKey{date, pairing.HomeTeamID}] || teamBusy[teamDateKey{date, pairing.AwayTeamID}] {
				hadOpenDay = true
				continue
			}

			usedTriple[tripleKey{date, free.VenueID, free.TimeSlotID}] = true
			teamBusy[teamDateKey{date, pairing.HomeTeamID}] = true
			teamBusy[teamDateKey{date, pairing.AwayTeamID}] = true
			dayCount[date]++
			assignments = append(assignments, Assignment{
				Pairing:    pairing,
				Date:       date,
				VenueID:    free.VenueID,
				TimeSlotID: free.TimeSlotID,
			})
			placed = true
			break
		}

		if !placed {
			reason := ShortageCapacityExhausted
			if hadOpenDay {
				reason = ShortageNoCommonFreeDay
			}
			unassigned = append(unassigned, UnassignedPairing{Pairing: pairing, Reason: reason})
		}
	}

	if len(unassigned) > 0 {
		return nil, &ResourceShortageError{SeasonID: input.SeasonID, Unassigned: unassigned}
	}

	return assignments, nil
}

// RemovePinnedPairings drops from the pairing sequence the matchups already
// satisfied by pinned games, matching one pairing per pinned game by cycle
// and unordered team pair. Opponent identity of a pinned game never
// changes, even when a team is later deactivated.
func RemovePinnedPairings(pairings []Pairing, pinned []PinnedGame) []Pairing {
	if len(pinned) == 0 {
		return pairings
	}

	remaining := make(map[pairCycleKey]int, len(pinned))
	for _, pin := range pinned {
		remaining[normalizedPairCycle(pin.HomeTeamID, pin.AwayTeamID, pin.Cycle)]++
	}

	out := make([]Pairing, 0, len(pairings))
	for _, p := range pairings {
		key := normalizedPairCycle(p.HomeTeamID, p.AwayTeamID, p.Cycle)
		if remaining[key] > 0 {
			remaining[key]--
			continue
		}
		out = append(out, p)
	}

	return out
}

type pairCycleKey struct {
	a, b  string
	cycle int
}

func normalizedPairCycle(a, b string, cycle int) pairCycleKey {
	if a > b {
		a, b = b, a
	}
	return pairCycleKey{a: a, b: b, cycle: cycle}
}
