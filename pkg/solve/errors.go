package solve

import (
	"fmt"

	"github.com/dshills/floorplan/pkg/access"
	"github.com/dshills/floorplan/pkg/planstate"
)

// InvalidIntentError wraps a schema-level validation failure (spec section
// 7): duplicate room ids, unknown adjacency targets, non-positive areas,
// unknown room type, self-adjacency.
type InvalidIntentError struct {
	Err error
}

func (e *InvalidIntentError) Error() string { return fmt.Sprintf("invalid intent: %v", e.Err) }
func (e *InvalidIntentError) Unwrap() error  { return e.Err }

// PlacementFailureError reports the accumulated per-room placement
// failures the placer recorded without aborting (spec section 7). Partial
// carries the plan state at the point of failure, for diagnosis.
type PlacementFailureError struct {
	Failures []planstate.FailureReason
	Partial  *planstate.PlanState
}

func (e *PlacementFailureError) Error() string {
	return fmt.Sprintf("%d room(s) could not be placed: %v", len(e.Failures), e.Failures)
}

// CorridorImpossibleError reports that the corridor generator found no
// valid strip to bridge disconnected rooms.
type CorridorImpossibleError struct {
	Err     error
	Partial *planstate.PlanState
}

func (e *CorridorImpossibleError) Error() string { return fmt.Sprintf("corridor: %v", e.Err) }
func (e *CorridorImpossibleError) Unwrap() error  { return e.Err }

// UnreachableRoomsError wraps access.UnreachableRoomsError with the
// partial state, so callers get both the unreachable ids and the plan to
// diagnose them (spec section 7).
type UnreachableRoomsError struct {
	*access.UnreachableRoomsError
	Partial *planstate.PlanState
}

// InvariantBrokenError is fatal: a post-condition of the placer failed
// (overlap, outside footprint). Signals a bug in the pipeline itself; the
// caller receives the partial state for diagnosis.
type InvariantBrokenError struct {
	Detail  string
	Partial *planstate.PlanState
}

func (e *InvariantBrokenError) Error() string { return fmt.Sprintf("invariant broken: %s", e.Detail) }
