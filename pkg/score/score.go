// Package score implements the soft scorer: per-candidate scoring added on
// top of the candidate generator's preliminary score, the hall-adjacency
// look-ahead penalty, and the plan-level score used for final reporting
// (spec section 4.4).
package score

import (
	"math"

	"github.com/dshills/floorplan/pkg/frame"
	"github.com/dshills/floorplan/pkg/geom"
	"github.com/dshills/floorplan/pkg/intent"
	"github.com/dshills/floorplan/pkg/planstate"
)

// DefaultLookaheadEdgePerFutureRoom is the "2.0 m per future room" constant
// from spec section 4.4, called out as empirically tuned and left
// configurable — see DESIGN.md open-question 2.
const DefaultLookaheadEdgePerFutureRoom = 2.0

// Weights is intent.Weights under this package's name; the fields are the
// same.
type Weights = intent.Weights

// CandidateContext carries what Candidate needs beyond the rect itself:
// the room being scored, its cell, already-placed rooms, and the rooms
// still waiting that might need hall frontage.
type CandidateContext struct {
	Placed         map[string]*planstate.PlacedRoom
	FutureRooms    []intent.RoomSpec
	HallRoomID     string
	LookaheadConst float64 // 0 means use DefaultLookaheadEdgePerFutureRoom
}

// Candidate computes the spec section 4.4 per-candidate soft score for a
// room placed at rect r in cell, added to the candidate generator's
// preliminary score.
func Candidate(room *intent.RoomSpec, r geom.Rect, cell frame.Cell, f *frame.Frame, ctx CandidateContext, w Weights) float64 {
	total := 0.0

	for _, b := range room.PreferredBands {
		if b == cell.BandID {
			total += 5 * wOr1(w.Adjacency)
		}
	}
	for _, d := range room.PreferredDepths {
		if d == cell.DepthID {
			total += 5 * wOr1(w.Adjacency)
		}
	}

	for _, id := range room.AdjacentTo {
		p, ok := ctx.Placed[id]
		if !ok {
			continue
		}
		shared, _, ok := geom.SharedEdgeLength(r, p.Rect)
		if ok {
			total += (5 + shared) * wOr1(w.Adjacency)
		}
	}
	for _, id := range room.AvoidAdjacentTo {
		p, ok := ctx.Placed[id]
		if !ok {
			continue
		}
		if geom.Adjacent(r, p.Rect) {
			total -= 10 * wOr1(w.Adjacency)
		}
	}

	if isGlazingRoom(room.Type) {
		if f.Footprint.TouchesExterior(r) {
			total += 3 * wOr1(w.ExteriorAccess)
		}
		if f.GardenEdge != nil && f.Footprint.TouchesEdge(r, *f.GardenEdge) {
			total += 5 * wOr1(w.ExteriorAccess)
		}
	}

	if room.Type == intent.Bath {
		for _, p := range ctx.Placed {
			if p.Spec.Type == intent.Bath && geom.Adjacent(r, p.Rect) {
				total += 5 * wOr1(w.Balance)
			}
		}
	}

	aspect := r.Aspect()
	if aspect < 0.5 || aspect > 2.0 {
		total -= 3
	}

	targetArea := room.TargetArea
	if targetArea == 0 {
		targetArea = room.MinArea * 1.1
	}
	if targetArea > 0 {
		deviation := math.Abs(r.Area()-targetArea) / targetArea
		if deviation > 0.20 {
			total -= 5 * deviation
		}
	}
	if room.MaxArea > 0 && r.Area() > room.MaxArea {
		excessRatio := (r.Area() - room.MaxArea) / room.MaxArea
		total -= 10 * excessRatio
	}

	if ctx.HallRoomID != "" {
		total += hallLookahead(room, r, cell, ctx, f)
	}

	return total
}

func wOr1(w float64) float64 {
	if w == 0 {
		return 1
	}
	return w
}

func isGlazingRoom(t intent.RoomType) bool {
	switch t {
	case intent.Living, intent.Bedroom, intent.Office, intent.Dining:
		return true
	default:
		return false
	}
}

// hallLookahead implements spec section 4.4's hall-adjacency look-ahead:
// when a candidate sits in the band neighboring the circulation room's
// band, it must leave enough of the shared boundary for rooms placed
// later that also need direct hall adjacency.
func hallLookahead(room *intent.RoomSpec, r geom.Rect, cell frame.Cell, ctx CandidateContext, f *frame.Frame) float64 {
	hall, ok := ctx.Placed[ctx.HallRoomID]
	if !ok {
		return 0
	}
	if !bandsNeighbor(cell, hall, f) {
		return 0
	}

	segment, _, adjacent := geom.SharedEdgeLength(r, hall.Rect)
	if !adjacent {
		// Candidate isn't directly against the hall; look-ahead only
		// constrains candidates that would claim hall frontage.
		return 0
	}

	hallSpanLen := hallYSpanLength(r, hall.Rect)
	claimedByPlaced := 0.0
	for id, p := range ctx.Placed {
		if id == ctx.HallRoomID {
			continue
		}
		s, _, ok := geom.SharedEdgeLength(p.Rect, hall.Rect)
		if ok {
			claimedByPlaced += s
		}
	}

	future := futureHallSeekers(room, ctx)
	lookaheadConst := ctx.LookaheadConst
	if lookaheadConst == 0 {
		lookaheadConst = DefaultLookaheadEdgePerFutureRoom
	}

	remainingEdge := hallSpanLen - claimedByPlaced - segment
	needed := float64(future) * lookaheadConst
	if remainingEdge < needed {
		deficit := needed - remainingEdge
		return -10 * deficit
	}
	return 0
}

func hallYSpanLength(r, hall geom.Rect) float64 {
	lo := math.Max(r.Y1, hall.Y1)
	hi := math.Min(r.Y2, hall.Y2)
	if hi > lo {
		return hi - lo
	}
	lo = math.Max(r.X1, hall.X1)
	hi = math.Min(r.X2, hall.X2)
	if hi > lo {
		return hi - lo
	}
	return 0
}

func bandsNeighbor(cell frame.Cell, hall *planstate.PlacedRoom, f *frame.Frame) bool {
	return geom.Adjacent(cell.Rect, hall.Rect) || cell.Rect.Overlaps(hall.Rect)
}

// futureHallSeekers counts rooms still unplaced that need direct hall
// adjacency and are not attached rooms (ensuites, closets). Band
// preference is not considered: a future room counts whichever band it
// prefers.
func futureHallSeekers(room *intent.RoomSpec, ctx CandidateContext) int {
	n := 0
	for _, fr := range ctx.FutureRooms {
		if fr.ID == room.ID {
			continue
		}
		if fr.IsAttachable() {
			continue
		}
		needsHall := false
		for _, adj := range fr.AdjacentTo {
			if adj == ctx.HallRoomID {
				needsHall = true
				break
			}
		}
		if needsHall {
			n++
		}
	}
	return n
}

// PlanComponents holds the seven weighted plan-level score components
// (spec section 4.4).
type PlanComponents struct {
	ZonePreference    float64
	AdjacencySatis    float64
	HallAreaPenalty   float64
	ExteriorGlazing   float64
	BathClustering    float64
	Compactness       float64
	ExteriorWallBreaks float64
}

// Total returns the weighted sum of a PlanComponents.
func (c PlanComponents) Total(w Weights) float64 {
	return c.ZonePreference*wOr1(w.Adjacency) +
		c.AdjacencySatis*wOr1(w.Adjacency) +
		c.HallAreaPenalty*wOr1(w.Compactness) +
		c.ExteriorGlazing*wOr1(w.ExteriorAccess) +
		c.BathClustering*wOr1(w.Balance) +
		c.Compactness*wOr1(w.Compactness) +
		c.ExteriorWallBreaks*wOr1(w.CorridorCost)
}

// ComputePlan computes the plan-level score for a finished PlanState (spec
// section 4.4).
func ComputePlan(ps *planstate.PlanState, rooms []intent.RoomSpec, f *frame.Frame) (PlanComponents, map[string]float64) {
	var c PlanComponents

	zoneTotal, zoneHit := 0, 0
	adjTotal, adjHit := 0, 0
	for _, spec := range rooms {
		p, ok := ps.Placed[spec.ID]
		if !ok {
			continue
		}
		if len(spec.PreferredBands) > 0 || len(spec.PreferredDepths) > 0 {
			zoneTotal++
			if (len(spec.PreferredBands) == 0 || contains(spec.PreferredBands, p.Band)) &&
				(len(spec.PreferredDepths) == 0 || contains(spec.PreferredDepths, p.Depth)) {
				zoneHit++
			}
		}
		for _, adjID := range spec.AdjacentTo {
			adjTotal++
			if other, ok := ps.Placed[adjID]; ok && geom.Adjacent(p.Rect, other.Rect) {
				adjHit++
			}
		}
	}
	if zoneTotal > 0 {
		c.ZonePreference = float64(zoneHit) / float64(zoneTotal)
	}
	if adjTotal > 0 {
		c.AdjacencySatis = float64(adjHit) / float64(adjTotal)
	}

	footprintArea := f.Footprint.BoundingBox().Area()
	hallArea := 0.0
	roomArea := 0.0
	for _, p := range ps.Placed {
		roomArea += p.Rect.Area()
		if p.Spec.Category() == intent.CategoryCirculation {
			hallArea += p.Rect.Area()
		}
	}
	if footprintArea > 0 {
		hallFraction := hallArea / footprintArea
		if hallFraction > 0.15 {
			c.HallAreaPenalty = -(hallFraction - 0.15) * 10
		} else if hallFraction >= 0.08 && hallFraction <= 0.12 {
			c.HallAreaPenalty = 1.0
		}
		c.Compactness = math.Min(roomArea/footprintArea, 0.95)
	}

	glazingCandidates, glazingHit := 0, 0
	for _, p := range ps.Placed {
		if !isGlazingRoom(p.Spec.Type) {
			continue
		}
		glazingCandidates++
		touches := f.Footprint.TouchesExterior(p.Rect)
		if touches {
			glazingHit++
		}
		if f.GardenEdge != nil && f.Footprint.TouchesEdge(p.Rect, *f.GardenEdge) {
			c.ExteriorGlazing += 0.1
		}
	}
	if glazingCandidates > 0 {
		c.ExteriorGlazing += float64(glazingHit) / float64(glazingCandidates)
	}

	baths := []*planstate.PlacedRoom{}
	for _, p := range ps.Placed {
		if p.Spec.Type == intent.Bath {
			baths = append(baths, p)
		}
	}
	possiblePairs := len(baths) * (len(baths) - 1) / 2
	adjacentPairs := 0
	for i := 0; i < len(baths); i++ {
		for j := i + 1; j < len(baths); j++ {
			if geom.Adjacent(baths[i].Rect, baths[j].Rect) {
				adjacentPairs++
			}
		}
	}
	if possiblePairs > 0 {
		c.BathClustering = float64(adjacentPairs) / float64(possiblePairs)
	}

	edgeRoomCounts := map[geom.Edge]map[string]bool{geom.North: {}, geom.South: {}, geom.East: {}, geom.West: {}}
	bbox := f.Footprint.BoundingBox()
	for id, p := range ps.Placed {
		for _, e := range []geom.Edge{geom.North, geom.South, geom.East, geom.West} {
			if p.Rect.TouchesEdge(bbox, e) {
				edgeRoomCounts[e][id] = true
			}
		}
	}
	totalBreaks := 0
	for _, m := range edgeRoomCounts {
		totalBreaks += len(m)
	}
	if totalBreaks > 0 {
		c.ExteriorWallBreaks = 1.0 / float64(totalBreaks)
	}

	components := map[string]float64{
		"zone_preference":      c.ZonePreference,
		"adjacency_satisfaction": c.AdjacencySatis,
		"hall_area_penalty":     c.HallAreaPenalty,
		"exterior_glazing":      c.ExteriorGlazing,
		"bath_clustering":       c.BathClustering,
		"compactness":           c.Compactness,
		"exterior_wall_breaks":  c.ExteriorWallBreaks,
	}
	return c, components
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
