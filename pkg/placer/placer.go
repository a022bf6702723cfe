// Package placer greedily seats rooms into a Frame: it orders rooms by
// priority, generates and scores candidates for each, falls back from
// preferred to all cells, and records failures for rooms it cannot seat.
// Two post-passes follow: gap-filling and swap repair (spec section 4.5).
package placer

import (
	"fmt"
	"math"
	"sort"

	"github.com/dshills/floorplan/pkg/candidate"
	"github.com/dshills/floorplan/pkg/constraint"
	"github.com/dshills/floorplan/pkg/frame"
	"github.com/dshills/floorplan/pkg/geom"
	"github.com/dshills/floorplan/pkg/intent"
	"github.com/dshills/floorplan/pkg/planstate"
	"github.com/dshills/floorplan/pkg/score"
)

// DefaultMaxCandidatesPerRoom is the spec section 4.5 default candidate
// cap per room.
const DefaultMaxCandidatesPerRoom = 15

// Options configures a placement run.
type Options struct {
	MaxCandidatesPerRoom int // 0 means DefaultMaxCandidatesPerRoom
	Weights              intent.Weights
	LookaheadConst       float64
}

// Place runs the full spec section 4.5 pipeline: priority ordering, the
// greedy placement loop, gap-filling, and swap repair.
func Place(f *frame.Frame, rooms []intent.RoomSpec, opts Options) *planstate.PlanState {
	ps := planstate.New(f.Footprint)
	maxCandidates := opts.MaxCandidatesPerRoom
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidatesPerRoom
	}

	ordered := Order(rooms)
	hallID := findHallID(rooms)
	ownedBy := ownerToAttached(rooms)

	for i, spec := range ordered {
		future := ordered[i+1:]
		placeOne(f, ps, spec, future, hallID, ownedBy, maxCandidates, opts)
	}

	GapFill(f, ps)
	SwapRepair(f, ps, rooms)

	return ps
}

func findHallID(rooms []intent.RoomSpec) string {
	for _, r := range rooms {
		if r.Category() == intent.CategoryCirculation {
			return r.ID
		}
	}
	return ""
}

func ownerToAttached(rooms []intent.RoomSpec) map[string][]string {
	byID := make(map[string]intent.RoomSpec, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}
	out := make(map[string][]string)
	for _, r := range rooms {
		if r.IsAttachable() || isSingleAdjacencyBathToBedroom(r, byID) {
			if len(r.AdjacentTo) > 0 {
				out[r.AdjacentTo[0]] = append(out[r.AdjacentTo[0]], r.ID)
			}
		}
	}
	return out
}

// placeOne runs the spec section 4.5 placement loop for a single room.
func placeOne(f *frame.Frame, ps *planstate.PlanState, spec intent.RoomSpec, future []intent.RoomSpec, hallID string, ownedBy map[string][]string, maxCandidates int, opts Options) {
	adjacentIDs := expandedAdjacency(spec, ps)

	reserved := 0.0
	for _, attachedID := range ownedBy[spec.ID] {
		for _, fr := range future {
			if fr.ID == attachedID {
				reserved += 2.5 * 2.0 // reserve a >=2.5m strip, nominal depth 2.0m
			}
		}
	}

	preferredCells := f.CellsFor(spec.PreferredBands, spec.PreferredDepths)
	best, ok := bestCandidate(f, ps, &spec, preferredCells, adjacentIDs, reserved, future, hallID, maxCandidates, opts)
	if !ok {
		allCells := f.AllCells()
		best, ok = bestCandidate(f, ps, &spec, allCells, adjacentIDs, reserved, future, hallID, maxCandidates, opts)
	}
	if !ok {
		ps.Fail(spec, classifyFailure(f, ps, &spec, preferredCells))
		return
	}

	ps.Place(&planstate.PlacedRoom{
		ID:    spec.ID,
		Spec:  spec,
		Rect:  best.Rect,
		Band:  best.Cell.BandID,
		Depth: best.Cell.DepthID,
	})
}

// expandedAdjacency implements spec section 4.5's "sibling rule": a room's
// adjacency set grows to include any already-placed room sharing an
// adjacency target with it.
func expandedAdjacency(spec intent.RoomSpec, ps *planstate.PlanState) []string {
	set := make(map[string]bool)
	for _, id := range spec.AdjacentTo {
		set[id] = true
	}
	for _, placed := range ps.OrderedPlaced() {
		if sharesAdjacencyTarget(spec, placed.Spec) {
			set[placed.ID] = true
		}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sharesAdjacencyTarget(a, b intent.RoomSpec) bool {
	for _, x := range a.AdjacentTo {
		for _, y := range b.AdjacentTo {
			if x == y {
				return true
			}
		}
	}
	return false
}

func bestCandidate(f *frame.Frame, ps *planstate.PlanState, spec *intent.RoomSpec, cells []frame.Cell, adjacentIDs []string, reserved float64, future []intent.RoomSpec, hallID string, maxCandidates int, opts Options) (candidate.Candidate, bool) {
	ctx := candidate.Context{Placed: ps.Placed, AdjacentIDs: adjacentIDs, ReservedArea: reserved}
	cands := candidate.Generate(spec, cells, f, ctx, maxCandidates)

	var best candidate.Candidate
	bestScore := math.Inf(-1)
	found := false
	for _, c := range cands {
		if v := constraint.Check(spec, c.Rect, f, ps); v != nil {
			continue
		}
		soft := score.Candidate(spec, c.Rect, c.Cell, f, score.CandidateContext{
			Placed:         ps.Placed,
			FutureRooms:    future,
			HallRoomID:     hallID,
			LookaheadConst: opts.LookaheadConst,
		}, opts.Weights)
		total := c.PreliminaryScore + soft
		if total > bestScore {
			bestScore = total
			best = c
			found = true
		}
	}
	return best, found
}

// classifyFailure buckets the rejection reason for a PlacementFailure (spec
// section 7): no_cells, no_candidates, or all_rejected, plus conflicting
// room ids for overlaps.
func classifyFailure(f *frame.Frame, ps *planstate.PlanState, spec *intent.RoomSpec, preferredCells []frame.Cell) string {
	allCells := f.AllCells()
	if len(allCells) == 0 {
		return "no_cells"
	}
	ctx := candidate.Context{Placed: ps.Placed, AdjacentIDs: spec.AdjacentTo}
	cands := candidate.Generate(spec, allCells, f, ctx, DefaultMaxCandidatesPerRoom)
	if len(cands) == 0 {
		return "no_candidates"
	}
	conflicts := map[string]bool{}
	for _, c := range cands {
		if v := constraint.Check(spec, c.Rect, f, ps); v != nil && v.Kind == constraint.Overlap {
			conflicts[v.ConflictingID] = true
		}
	}
	if len(conflicts) > 0 {
		ids := make([]string, 0, len(conflicts))
		for id := range conflicts {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return fmt.Sprintf("all_rejected: overlaps with %v", ids)
	}
	return "all_rejected"
}

// GapFill extends every placed room's rect outward in all four cardinal
// directions until blocked, iterating to a fixed point (spec section 4.5),
// capped at 5 passes.
func GapFill(f *frame.Frame, ps *planstate.PlanState) {
	for pass := 0; pass < 5; pass++ {
		changed := false
		for _, id := range sortedPlacedIDs(ps) {
			room := ps.Placed[id]
			extended := extendRect(f, ps, room)
			if extended != room.Rect {
				room.Rect = extended
				changed = true
			}
		}
		if !changed {
			break
		}
	}
}

func sortedPlacedIDs(ps *planstate.PlanState) []string {
	ids := make([]string, 0, len(ps.Placed))
	for id := range ps.Placed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func extendRect(f *frame.Frame, ps *planstate.PlanState, room *planstate.PlacedRoom) geom.Rect {
	r := room.Rect
	bbox := f.Footprint.BoundingBox()

	// North: decrease Y1 until blocked.
	limit := bbox.Y1
	for otherID, other := range ps.Placed {
		if otherID == room.ID {
			continue
		}
		if other.Rect.Y2 <= r.Y1+geom.Epsilon && xOverlap(other.Rect, r) {
			if other.Rect.Y2 > limit {
				limit = other.Rect.Y2
			}
		}
	}
	newY1 := limit
	if room.Spec.MaxHeight > 0 && r.Y2-newY1 > room.Spec.MaxHeight {
		newY1 = r.Y2 - room.Spec.MaxHeight
	}
	r.Y1 = geom.Snap(math.Min(r.Y1, math.Max(newY1, limit)))
	if r.Y1 < limit {
		r.Y1 = limit
	}

	// South: increase Y2 until blocked.
	limit = bbox.Y2
	for otherID, other := range ps.Placed {
		if otherID == room.ID {
			continue
		}
		if other.Rect.Y1 >= r.Y2-geom.Epsilon && xOverlap(other.Rect, r) {
			if other.Rect.Y1 < limit {
				limit = other.Rect.Y1
			}
		}
	}
	newY2 := limit
	if room.Spec.MaxHeight > 0 && newY2-r.Y1 > room.Spec.MaxHeight {
		newY2 = r.Y1 + room.Spec.MaxHeight
	}
	r.Y2 = geom.Snap(math.Max(r.Y2, math.Min(newY2, limit)))
	if r.Y2 > limit {
		r.Y2 = limit
	}

	// West: decrease X1 until blocked.
	limit = bbox.X1
	for otherID, other := range ps.Placed {
		if otherID == room.ID {
			continue
		}
		if other.Rect.X2 <= r.X1+geom.Epsilon && yOverlap(other.Rect, r) {
			if other.Rect.X2 > limit {
				limit = other.Rect.X2
			}
		}
	}
	newX1 := limit
	if room.Spec.MaxWidth > 0 && r.X2-newX1 > room.Spec.MaxWidth {
		newX1 = r.X2 - room.Spec.MaxWidth
	}
	r.X1 = geom.Snap(math.Min(r.X1, math.Max(newX1, limit)))
	if r.X1 < limit {
		r.X1 = limit
	}

	// East: increase X2 until blocked.
	limit = bbox.X2
	for otherID, other := range ps.Placed {
		if otherID == room.ID {
			continue
		}
		if other.Rect.X1 >= r.X2-geom.Epsilon && yOverlap(other.Rect, r) {
			if other.Rect.X1 < limit {
				limit = other.Rect.X1
			}
		}
	}
	newX2 := limit
	if room.Spec.MaxWidth > 0 && newX2-r.X1 > room.Spec.MaxWidth {
		newX2 = r.X1 + room.Spec.MaxWidth
	}
	r.X2 = geom.Snap(math.Max(r.X2, math.Min(newX2, limit)))
	if r.X2 > limit {
		r.X2 = limit
	}

	extended := geom.NewRect(r.X1, r.Y1, r.X2, r.Y2)
	if !f.Footprint.ContainsRect(extended) {
		return room.Rect
	}
	for otherID, other := range ps.Placed {
		if otherID != room.ID && other.Rect.Overlaps(extended) {
			return room.Rect
		}
	}
	return extended
}

func xOverlap(a, b geom.Rect) bool {
	return a.X1 < b.X2-geom.Epsilon && b.X1 < a.X2-geom.Epsilon
}

func yOverlap(a, b geom.Rect) bool {
	return a.Y1 < b.Y2-geom.Epsilon && b.Y1 < a.Y2-geom.Epsilon
}

// SwapRepair exchanges the rects of area-similar room pairs when doing so
// strictly increases satisfied adjacencies, without breaking either room's
// must_touch_edge/must_touch_exterior (spec section 4.5).
func SwapRepair(f *frame.Frame, ps *planstate.PlanState, rooms []intent.RoomSpec) {
	for {
		ids := sortedPlacedIDs(ps)
		swapped := false
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := ps.Placed[ids[i]], ps.Placed[ids[j]]
				if !areasSimilar(a.Rect.Area(), b.Rect.Area()) {
					continue
				}
				if tryImproveSwap(f, ps, a, b) {
					swapped = true
				}
			}
		}
		if !swapped {
			break
		}
	}
}

func areasSimilar(a, b float64) bool {
	if a == 0 || b == 0 {
		return false
	}
	ratio := a / b
	return ratio >= 0.8 && ratio <= 1.25
}

func tryImproveSwap(f *frame.Frame, ps *planstate.PlanState, a, b *planstate.PlacedRoom) bool {
	before := satisfiedAdjacencies(ps, a) + satisfiedAdjacencies(ps, b)

	origA, origB := a.Rect, b.Rect
	a.Rect, b.Rect = origB, origA

	valid := respectsEdgeConstraints(f, a) && respectsEdgeConstraints(f, b) &&
		!ps.OverlapsAny(a.Rect, a.ID) && !ps.OverlapsAny(b.Rect, b.ID)

	after := satisfiedAdjacencies(ps, a) + satisfiedAdjacencies(ps, b)

	if valid && after > before {
		return true
	}
	a.Rect, b.Rect = origA, origB
	return false
}

func respectsEdgeConstraints(f *frame.Frame, p *planstate.PlacedRoom) bool {
	if p.Spec.MustTouchExterior && !f.Footprint.TouchesExterior(p.Rect) {
		return false
	}
	if p.Spec.MustTouchEdge != nil {
		e, ok := geom.ParseEdge(*p.Spec.MustTouchEdge)
		if !ok || !f.Footprint.TouchesEdge(p.Rect, e) {
			return false
		}
	}
	return true
}

func satisfiedAdjacencies(ps *planstate.PlanState, p *planstate.PlacedRoom) int {
	count := 0
	for _, id := range p.Spec.AdjacentTo {
		if other, ok := ps.Placed[id]; ok && geom.Adjacent(p.Rect, other.Rect) {
			count++
		}
	}
	return count
}
