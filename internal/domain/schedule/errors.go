package schedule

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInsufficientTeams = errors.New("at least 2 active teams are required")
	ErrInvalidCycleCount = errors.New("cycle count must be at least 1")
)

// ShortageReason categorizes why a pairing could not be assigned.
type ShortageReason string

const (
	// ShortageCapacityExhausted: every scheduling day through the season end
	// had no free resource left when the pairing was considered.
	ShortageCapacityExhausted ShortageReason = "DAY_CAPACITY_EXHAUSTED"
	// ShortageNoCommonFreeDay: free resources existed, but on every such day
	// at least one of the two teams was already booked.
	ShortageNoCommonFreeDay ShortageReason = "NO_COMMON_FREE_DAY"
)

// UnassignedPairing is one pairing the resolver could not place, with the
// constraint that blocked it.
type UnassignedPairing struct {
	Pairing Pairing
	Reason  ShortageReason
}

// ResourceShortageError reports that the season's day/venue/slot capacity
// does not admit the full pairing set. It lists every unassignable pairing
// so an operator can fix parameters (add a venue, widen the window, reduce
// cycles) and retry.
type ResourceShortageError struct {
	SeasonID   string
	Unassigned []UnassignedPairing
}

func (e *ResourceShortageError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "season %s: %d pairing(s) could not be scheduled:", e.SeasonID, len(e.Unassigned))
	for _, item := range e.Unassigned {
		fmt.Fprintf(&sb, " [%s vs %s cycle %d: %s]",
			item.Pairing.HomeTeamID, item.Pairing.AwayTeamID, item.Pairing.Cycle, item.Reason)
	}
	return sb.String()
}

// InvariantViolationError reports a structural defect in a proposed
// schedule. It is a safety net against resolver bugs and is always fatal to
// the generation run.
type InvariantViolationError struct {
	Rule  string
	Games []string
}

func (e *InvariantViolationError) Error() string {
	if len(e.Games) == 0 {
		return fmt.Sprintf("schedule invariant violated: %s", e.Rule)
	}
	return fmt.Sprintf("schedule invariant violated: %s (games: %s)", e.Rule, strings.Join(e.Games, "; "))
}
