// Package solve orchestrates the full floor-plan pipeline: normalize intent
// → build frame → place rooms → gap-fill → swap-repair → place openings →
// generate corridor if disconnected → place openings on the corridor →
// validate reachability → compute plan score (spec section 4.9).
package solve

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sort"

	"github.com/dshills/floorplan/pkg/access"
	"github.com/dshills/floorplan/pkg/corridor"
	"github.com/dshills/floorplan/pkg/frame"
	"github.com/dshills/floorplan/pkg/intent"
	"github.com/dshills/floorplan/pkg/openings"
	"github.com/dshills/floorplan/pkg/placer"
	"github.com/dshills/floorplan/pkg/planstate"
	"github.com/dshills/floorplan/pkg/score"
)

// Config tunes a solve run. The zero value is the documented default
// behavior.
type Config struct {
	MaxCandidatesPerRoom int  // 0 means placer.DefaultMaxCandidatesPerRoom
	LookaheadConst       float64
	AllRoomsReachable    *bool // nil means true, per spec section 6's hard.all_rooms_reachable default
	Inspect              bool  // opt-in trace, spec section 6
	CorridorIDPrefix     string
}

func (c Config) requireReachable() bool {
	return c.AllRoomsReachable == nil || *c.AllRoomsReachable
}

func (c Config) corridorPrefix() string {
	if c.CorridorIDPrefix != "" {
		return c.CorridorIDPrefix
	}
	return "auto_"
}

// Hash returns a stable provenance fingerprint over the config and the
// intent document's wire form, for debugging and the inspection trace —
// not used to seed any randomness (the solver is fully deterministic).
func (c Config) Hash(li *intent.LayoutIntent) []byte {
	h := sha256.New()
	fmt.Fprintf(h, "%+v", c)
	fmt.Fprintf(h, "%+v", li)
	return h.Sum(nil)
}

// Score holds the plan-level soft score (spec section 4.4).
type Score struct {
	Total      float64
	Components map[string]float64
}

// Trace is the opt-in inspection record (spec section 6): per-room
// ordering and the reachability partition. Populated only when
// Config.Inspect is true.
type Trace struct {
	PlacementOrder []string
	FailureReasons []planstate.FailureReason
	EntryRoomID    string
	Reachable      []string
	Unreachable    []string
}

// Result is a successful solve's output (spec section 6's SolveResult
// Success variant).
type Result struct {
	State *planstate.PlanState
	Score Score
	Trace *Trace
}

// Solve runs the full pipeline against a LayoutIntent (spec section 4.9).
// On failure it returns a typed error (InvalidIntentError,
// PlacementFailureError, CorridorImpossibleError, UnreachableRoomsError, or
// InvariantBrokenError); the placement-stage errors carry the partial
// state for diagnosis.
func Solve(ctx context.Context, li *intent.LayoutIntent, cfg Config) (*Result, error) {
	norm, err := li.Normalize()
	if err != nil {
		return nil, &InvalidIntentError{Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := frame.Build(norm)
	if err != nil {
		return nil, fmt.Errorf("building frame: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ps := placer.Place(f, norm.Rooms, placer.Options{
		MaxCandidatesPerRoom: cfg.MaxCandidatesPerRoom,
		Weights:              norm.Weights,
		LookaheadConst:       cfg.LookaheadConst,
	})

	if err := checkPlacerInvariants(f, ps); err != nil {
		err.(*InvariantBrokenError).Partial = ps
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	roomsByID := make(map[string]intent.RoomSpec, len(norm.Rooms))
	for _, r := range norm.Rooms {
		roomsByID[r.ID] = r
	}

	entryID, ok := access.SelectEntry(f, ps)
	if ok {
		openings.PlaceExteriorDoor(f, ps, entryID, norm.ExteriorDoorWidth)
	}
	walls := openings.DeriveWalls(f, ps)
	openings.PlaceInteriorDoors(walls, roomsByID, norm.AccessRules, norm.DoorWidth, ps)
	openings.PlaceWindows(f, walls, roomsByID, norm.WindowWidth, ps)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if corridor.NeedsCorridor(ps) {
		if err := corridor.Generate(f, ps, norm.CorridorWidth, cfg.corridorPrefix()); err != nil {
			// No valid strip bridges the disconnected rooms. If reachability
			// is required, fall through to the access validator below so the
			// failure names the specific unreachable rooms rather than just
			// reporting the corridor search gave up. Otherwise this is the
			// only check that would have caught it, so surface it directly.
			if !cfg.requireReachable() {
				return nil, &CorridorImpossibleError{Err: err, Partial: ps}
			}
		} else {
			roomsByID[corridorRoomID(ps)] = corridorSpec(ps)
			corridorWalls := openings.DeriveWalls(f, ps)
			openings.PlaceInteriorDoors(corridorWalls, roomsByID, norm.AccessRules, norm.DoorWidth, ps)
		}
	}

	if len(ps.Unplaced) > 0 && cfg.requireReachable() {
		return nil, &PlacementFailureError{Failures: ps.FailureReasons, Partial: ps}
	}

	entryID, verr := access.Validate(f, ps, cfg.requireReachable())
	if verr != nil {
		if ure, ok := verr.(*access.UnreachableRoomsError); ok {
			return nil, &UnreachableRoomsError{UnreachableRoomsError: ure, Partial: ps}
		}
		return nil, verr
	}

	components, componentMap := score.ComputePlan(ps, norm.Rooms, f)
	total := components.Total(norm.Weights)

	var trace *Trace
	if cfg.Inspect {
		trace = buildTrace(f, ps, entryID)
	}

	return &Result{
		State: ps,
		Score: Score{Total: total, Components: componentMap},
		Trace: trace,
	}, nil
}

func corridorRoomID(ps *planstate.PlanState) string {
	for id, p := range ps.Placed {
		if p.IsCorridor {
			return id
		}
	}
	return ""
}

func corridorSpec(ps *planstate.PlanState) intent.RoomSpec {
	id := corridorRoomID(ps)
	if p, ok := ps.Placed[id]; ok {
		return p.Spec
	}
	return intent.RoomSpec{}
}

// checkPlacerInvariants re-checks two of the placer's post-conditions: every
// placed room lies inside the footprint and no two placed rooms overlap.
// must_touch_edge, attached-room adjacency and grid snapping are not
// re-checked here. A failure signals a pipeline bug, not a recoverable
// placement failure.
func checkPlacerInvariants(f *frame.Frame, ps *planstate.PlanState) error {
	ids := make([]string, 0, len(ps.Placed))
	for id := range ps.Placed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for i, idA := range ids {
		a := ps.Placed[idA]
		if !f.Footprint.ContainsRect(a.Rect) {
			return &InvariantBrokenError{Detail: fmt.Sprintf("room %s outside footprint", idA)}
		}
		for _, idB := range ids[i+1:] {
			b := ps.Placed[idB]
			if a.Rect.Overlaps(b.Rect) {
				return &InvariantBrokenError{Detail: fmt.Sprintf("rooms %s and %s overlap", idA, idB)}
			}
		}
	}
	return nil
}

func buildTrace(f *frame.Frame, ps *planstate.PlanState, entryID string) *Trace {
	t := &Trace{
		FailureReasons: ps.FailureReasons,
		EntryRoomID:    entryID,
	}
	for _, p := range ps.OrderedPlaced() {
		t.PlacementOrder = append(t.PlacementOrder, p.ID)
	}
	if entryID != "" {
		g := access.BuildGraph(ps)
		reached := g.Reachable(entryID)
		for _, id := range sortedKeys(reached) {
			t.Reachable = append(t.Reachable, id)
		}
		for id := range ps.Placed {
			if !reached[id] {
				t.Unreachable = append(t.Unreachable, id)
			}
		}
		sort.Strings(t.Unreachable)
	}
	return t
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
