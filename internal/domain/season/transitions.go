package season

import "fmt"

// transition is a single allowed edge in the season lifecycle.
type transition struct {
	from State
	to   State
}

var allowedTransitions = []transition{
	{from: StateConfiguration, to: StateGenerated},
	{from: StateGenerated, to: StateActive},
	{from: StateActive, to: StatePlayoffs},
	{from: StateActive, to: StateClosed},
	{from: StatePlayoffs, to: StateClosed},

	// Regeneration re-runs the pipeline without leaving the current state;
	// the no-op edges make that explicit rather than special-cased.
	{from: StateGenerated, to: StateGenerated},
	{from: StateActive, to: StateActive},
}

// CanTransition reports whether the lifecycle permits moving between the two
// states. Guards on top of structure (dates, roster size) live in the
// lifecycle controller, not here.
func CanTransition(from, to State) bool {
	from = NormalizeState(from)
	for _, edge := range allowedTransitions {
		if edge.from == from && edge.to == to {
			return true
		}
	}
	return false
}

// Transition returns the season moved to the target state, or an error when
// the lifecycle forbids the move.
func Transition(s Season, to State) (Season, error) {
	if !CanTransition(s.State, to) {
		return s, fmt.Errorf("season %s cannot move from %s to %s", s.ID, NormalizeState(s.State), to)
	}
	s.State = to
	return s, nil
}
