package schedule

import (
	"fmt"
	"time"
)

// Invariant rule names surfaced in violation errors.
const (
	RulePairingCoverage   = "pairing coverage"
	RuleCycleAlternation  = "home/away cycle alternation"
	RuleResourceConflict  = "duplicate (date, venue, time slot)"
	RuleTeamDoubleBooked  = "team plays twice on one date"
	RuleDateOutsideWindow = "date outside season window or weekday policy"
	RuleHomeAwayImbalance = "home/away imbalance"
)

// ValidateInput is a full proposed schedule: the fresh assignments plus any
// pinned games, together with the inputs the schedule was generated from.
type ValidateInput struct {
	SeasonID    string
	TeamIDs     []string
	Cycles      int
	Start       time.Time
	End         time.Time
	Weekdays    []time.Weekday
	Assignments []Assignment
	Pinned      []PinnedGame
}

type scheduledGame struct {
	home  string
	away  string
	cycle int
	date  time.Time
	venue string
	slot  string
}

func (g scheduledGame) String() string {
	return fmt.Sprintf("%s %s vs %s (cycle %d, venue %s, slot %s)",
		g.date.Format(time.DateOnly), g.home, g.away, g.cycle, g.venue, g.slot)
}

// ValidateSchedule re-checks every structural guarantee of a proposed
// schedule before it is accepted: pairing coverage and cycle alternation,
// resource and team conflicts, window membership and home/away balance.
// Any violation is a *InvariantViolationError naming the broken rule; this
// is a defense against resolver bugs, not a normal-path failure.
func ValidateSchedule(in ValidateInput) error {
	games := make([]scheduledGame, 0, len(in.Assignments)+len(in.Pinned))
	for _, a := range in.Assignments {
		games = append(games, scheduledGame{
			home:  a.Pairing.HomeTeamID,
			away:  a.Pairing.AwayTeamID,
			cycle: a.Pairing.Cycle,
			date:  truncateToDate(a.Date),
			venue: a.VenueID,
			slot:  a.TimeSlotID,
		})
	}
	for _, p := range in.Pinned {
		games = append(games, scheduledGame{
			home:  p.HomeTeamID,
			away:  p.AwayTeamID,
			cycle: p.Cycle,
			date:  truncateToDate(p.Date),
			venue: p.VenueID,
			slot:  p.TimeSlotID,
		})
	}

	if err := checkConflicts(games); err != nil {
		return err
	}
	if err := checkWindow(in, games); err != nil {
		return err
	}
	if err := checkCoverage(in, games); err != nil {
		return err
	}
	return checkBalance(in, games)
}

func checkConflicts(games []scheduledGame) error {
	byTriple := make(map[tripleKey]scheduledGame, len(games))
	byTeamDate := make(map[teamDateKey]scheduledGame, len(games)*2)

	for _, g := range games {
		triple := tripleKey{g.date, g.venue, g.slot}
		if prev, ok := byTriple[triple]; ok {
			return &InvariantViolationError{
				Rule:  RuleResourceConflict,
				Games: []string{prev.String(), g.String()},
			}
		}
		byTriple[triple] = g

		for _, teamID := range []string{g.home, g.away} {
			key := teamDateKey{g.date, teamID}
			if prev, ok := byTeamDate[key]; ok {
				return &InvariantViolationError{
					Rule:  RuleTeamDoubleBooked,
					Games: []string{prev.String(), g.String()},
				}
			}
			byTeamDate[key] = g
		}
	}

	return nil
}

func checkWindow(in ValidateInput, games []scheduledGame) error {
	allowed := make(map[time.Weekday]bool, len(in.Weekdays))
	for _, wd := range in.Weekdays {
		allowed[wd] = true
	}
	start := truncateToDate(in.Start)
	end := truncateToDate(in.End)

	for _, g := range games {
		if g.date.Before(start) || g.date.After(end) || !allowed[g.date.Weekday()] {
			return &InvariantViolationError{
				Rule:  RuleDateOutsideWindow,
				Games: []string{g.String()},
			}
		}
	}

	return nil
}

// checkCoverage verifies every unordered roster pair meets exactly once per
// cycle with orientation flipping between successive cycles. Games with a
// team outside the roster snapshot (a pinned opponent deactivated
// mid-season) are exempt: their pairing is owned by the past.
func checkCoverage(in ValidateInput, games []scheduledGame) error {
	roster := make(map[string]bool, len(in.TeamIDs))
	for _, id := range in.TeamIDs {
		roster[id] = true
	}

	homeByPairCycle := make(map[pairCycleKey]string)
	for _, g := range games {
		if !roster[g.home] || !roster[g.away] {
			continue
		}
		key := normalizedPairCycle(g.home, g.away, g.cycle)
		if _, ok := homeByPairCycle[key]; ok {
			return &InvariantViolationError{
				Rule:  RulePairingCoverage,
				Games: []string{fmt.Sprintf("%s vs %s meets twice in cycle %d", g.home, g.away, g.cycle)},
			}
		}
		homeByPairCycle[key] = g.home
	}

	for i, a := range in.TeamIDs {
		for _, b := range in.TeamIDs[i+1:] {
			for cycle := 1; cycle <= in.Cycles; cycle++ {
				key := normalizedPairCycle(a, b, cycle)
				home, ok := homeByPairCycle[key]
				if !ok {
					return &InvariantViolationError{
						Rule:  RulePairingCoverage,
						Games: []string{fmt.Sprintf("%s vs %s missing in cycle %d", a, b, cycle)},
					}
				}
				if cycle > 1 {
					prev := homeByPairCycle[normalizedPairCycle(a, b, cycle-1)]
					if prev == home {
						return &InvariantViolationError{
							Rule:  RuleCycleAlternation,
							Games: []string{fmt.Sprintf("%s home vs %s in both cycle %d and %d", home, otherTeam(home, a, b), cycle-1, cycle)},
						}
					}
				}
			}
		}
	}

	return nil
}

func checkBalance(in ValidateInput, games []scheduledGame) error {
	roster := make(map[string]bool, len(in.TeamIDs))
	for _, id := range in.TeamIDs {
		roster[id] = true
	}

	diff := make(map[string]int, len(in.TeamIDs))
	for _, g := range games {
		if !roster[g.home] || !roster[g.away] {
			continue
		}
		diff[g.home]++
		diff[g.away]--
	}

	for _, teamID := range in.TeamIDs {
		if d := diff[teamID]; d < -1 || d > 1 {
			return &InvariantViolationError{
				Rule:  RuleHomeAwayImbalance,
				Games: []string{fmt.Sprintf("team %s home/away difference is %d", teamID, d)},
			}
		}
	}

	return nil
}

func otherTeam(current, a, b string) string {
	if current == a {
		return b
	}
	return a
}
