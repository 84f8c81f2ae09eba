package schedule

// Pairing is an abstract (home, away, cycle) matchup prior to resource
// assignment. Cycle is 1-based.
type Pairing struct {
	HomeTeamID string
	AwayTeamID string
	Cycle      int
}

// byeTeam is the synthetic opponent inserted for odd team counts. Pairings
// involving it are filtered out before the sequence is returned.
const byeTeam = ""

// GeneratePairings produces the round-robin pairing sequence for the given
// teams using the circle method: one position is fixed and the remaining
// positions rotate once per round. The sequence is fully determined by the
// input order of teamIDs, so an unchanged roster always yields an identical
// sequence.
//
// Within each cycle every team meets every other team exactly once. Home
// and away roles are assigned so that per cycle each team's home count and
// away count differ by at most one, and successive cycles swap roles for
// every pair.
func GeneratePairings(teamIDs []string, cycles int) ([]Pairing, error) {
	if len(teamIDs) < 2 {
		return nil, ErrInsufficientTeams
	}
	if cycles < 1 {
		return nil, ErrInvalidCycleCount
	}

	ids := make([]string, len(teamIDs))
	copy(ids, teamIDs)
	if len(ids)%2 == 1 {
		ids = append(ids, byeTeam)
	}

	size := len(ids)
	rounds := size - 1
	perCycle := rounds * size / 2

	base := make([]Pairing, 0, perCycle)
	for round := 0; round < rounds; round++ {
		for _, p := range roundPairings(ids, round) {
			if p.HomeTeamID == byeTeam || p.AwayTeamID == byeTeam {
				continue
			}
			base = append(base, p)
		}
	}

	out := make([]Pairing, 0, len(base)*cycles)
	for cycle := 1; cycle <= cycles; cycle++ {
		for _, p := range base {
			home, away := p.HomeTeamID, p.AwayTeamID
			// Odd cycles repeat the base orientation, even cycles swap it.
			if cycle%2 == 0 {
				home, away = away, home
			}
			out = append(out, Pairing{HomeTeamID: home, AwayTeamID: away, Cycle: cycle})
		}
	}

	return out, nil
}

// roundPairings emits one round of the circle method. ids[size-1] is the
// fixed position; the rest rotate by round index. The fixed pair's home
// role alternates with round parity, the remaining pairs alternate by their
// distance from the round pivot, which balances home counts across a cycle.
func roundPairings(ids []string, round int) []Pairing {
	size := len(ids)
	ring := size - 1

	out := make([]Pairing, 0, size/2)

	rotating := ids[round%ring]
	fixed := ids[size-1]
	if round%2 == 0 {
		out = append(out, Pairing{HomeTeamID: fixed, AwayTeamID: rotating})
	} else {
		out = append(out, Pairing{HomeTeamID: rotating, AwayTeamID: fixed})
	}

	for k := 1; k <= size/2-1; k++ {
		first := ids[(round+k)%ring]
		second := ids[(round-k+ring)%ring]
		if k%2 == 1 {
			out = append(out, Pairing{HomeTeamID: first, AwayTeamID: second})
		} else {
			out = append(out, Pairing{HomeTeamID: second, AwayTeamID: first})
		}
	}

	return out
}
