package schedule

import (
	"errors"
	"reflect"
	"testing"
)

func TestGeneratePairings_CountFormula(t *testing.T) {
	cases := []struct {
		name   string
		teams  []string
		cycles int
	}{
		{name: "two teams one cycle", teams: []string{"a", "b"}, cycles: 1},
		{name: "four teams one cycle", teams: []string{"a", "b", "c", "d"}, cycles: 1},
		{name: "five teams with bye", teams: []string{"a", "b", "c", "d", "e"}, cycles: 1},
		{name: "six teams two cycles", teams: []string{"a", "b", "c", "d", "e", "f"}, cycles: 2},
		{name: "seven teams three cycles", teams: []string{"a", "b", "c", "d", "e", "f", "g"}, cycles: 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pairings, err := GeneratePairings(tc.teams, tc.cycles)
			if err != nil {
				t.Fatalf("generate pairings: %v", err)
			}

			n := len(tc.teams)
			want := tc.cycles * n * (n - 1) / 2
			if len(pairings) != want {
				t.Fatalf("expected %d pairings, got %d", want, len(pairings))
			}

			pairCount := make(map[pairCycleKey]int)
			for _, p := range pairings {
				if p.HomeTeamID == p.AwayTeamID {
					t.Fatalf("team paired with itself: %+v", p)
				}
				key := normalizedPairCycle(p.HomeTeamID, p.AwayTeamID, 0)
				pairCount[key]++
			}
			for key, count := range pairCount {
				if count != tc.cycles {
					t.Fatalf("pair %s/%s appears %d times, expected %d", key.a, key.b, count, tc.cycles)
				}
			}
		})
	}
}

func TestGeneratePairings_EachPairOncePerCycle(t *testing.T) {
	pairings, err := GeneratePairings([]string{"a", "b", "c", "d", "e"}, 2)
	if err != nil {
		t.Fatalf("generate pairings: %v", err)
	}

	seen := make(map[pairCycleKey]bool)
	for _, p := range pairings {
		key := normalizedPairCycle(p.HomeTeamID, p.AwayTeamID, p.Cycle)
		if seen[key] {
			t.Fatalf("pair %s/%s meets twice in cycle %d", key.a, key.b, p.Cycle)
		}
		seen[key] = true
	}
}

func TestGeneratePairings_CycleSwapsHomeAway(t *testing.T) {
	pairings, err := GeneratePairings([]string{"a", "b", "c", "d"}, 3)
	if err != nil {
		t.Fatalf("generate pairings: %v", err)
	}

	homeByCycle := make(map[pairCycleKey]string)
	for _, p := range pairings {
		homeByCycle[normalizedPairCycle(p.HomeTeamID, p.AwayTeamID, p.Cycle)] = p.HomeTeamID
	}

	for key, home := range homeByCycle {
		if key.cycle == 1 {
			continue
		}
		prev := homeByCycle[normalizedPairCycle(key.a, key.b, key.cycle-1)]
		if prev == home {
			t.Fatalf("pair %s/%s keeps home team %s across cycles %d and %d", key.a, key.b, home, key.cycle-1, key.cycle)
		}
	}
}

func TestGeneratePairings_HomeAwayBalance(t *testing.T) {
	for _, teams := range [][]string{
		{"a", "b", "c"},
		{"a", "b", "c", "d"},
		{"a", "b", "c", "d", "e"},
		{"a", "b", "c", "d", "e", "f"},
		{"a", "b", "c", "d", "e", "f", "g", "h", "i"},
	} {
		for _, cycles := range []int{1, 2, 3} {
			pairings, err := GeneratePairings(teams, cycles)
			if err != nil {
				t.Fatalf("generate pairings for %d teams: %v", len(teams), err)
			}

			diff := make(map[string]int)
			for _, p := range pairings {
				diff[p.HomeTeamID]++
				diff[p.AwayTeamID]--
			}
			for teamID, d := range diff {
				if d < -1 || d > 1 {
					t.Fatalf("%d teams, %d cycles: team %s home/away difference is %d", len(teams), cycles, teamID, d)
				}
			}
		}
	}
}

func TestGeneratePairings_Deterministic(t *testing.T) {
	teams := []string{"mariners", "orioles", "angels", "royals", "astros"}

	first, err := GeneratePairings(teams, 2)
	if err != nil {
		t.Fatalf("first generation: %v", err)
	}
	second, err := GeneratePairings(teams, 2)
	if err != nil {
		t.Fatalf("second generation: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("two generations over the same roster differ")
	}
}

func TestGeneratePairings_NoByeLeaks(t *testing.T) {
	pairings, err := GeneratePairings([]string{"a", "b", "c"}, 1)
	if err != nil {
		t.Fatalf("generate pairings: %v", err)
	}
	for _, p := range pairings {
		if p.HomeTeamID == "" || p.AwayTeamID == "" {
			t.Fatalf("bye team leaked into pairing %+v", p)
		}
	}
}

func TestGeneratePairings_Errors(t *testing.T) {
	if _, err := GeneratePairings([]string{"solo"}, 1); !errors.Is(err, ErrInsufficientTeams) {
		t.Fatalf("expected ErrInsufficientTeams, got %v", err)
	}
	if _, err := GeneratePairings(nil, 1); !errors.Is(err, ErrInsufficientTeams) {
		t.Fatalf("expected ErrInsufficientTeams for empty roster, got %v", err)
	}
	if _, err := GeneratePairings([]string{"a", "b"}, 0); !errors.Is(err, ErrInvalidCycleCount) {
		t.Fatalf("expected ErrInvalidCycleCount, got %v", err)
	}
}
