package openings

import (
	"sort"

	"github.com/dshills/floorplan/pkg/frame"
	"github.com/dshills/floorplan/pkg/geom"
	"github.com/dshills/floorplan/pkg/intent"
	"github.com/dshills/floorplan/pkg/planstate"
)

// clearance is the margin on each side of a door required within a shared
// wall, per spec section 4.6 ("door_width + 2*clearance").
const clearance = 0.2

// serviceRoomPriority orders candidate partners for a single-door service
// room: the circulation category first, then kitchen, then living, then
// everything else (spec section 4.6).
func serviceRoomPriority(t intent.RoomType, cat intent.Category) int {
	switch {
	case cat == intent.CategoryCirculation:
		return 0
	case t == intent.Kitchen:
		return 1
	case t == intent.Living:
		return 2
	default:
		return 3
	}
}

// isSingleDoorRoom reports whether spec is one of the service-room types
// restricted to at most one interior door (spec section 4.6).
func isSingleDoorRoom(spec intent.RoomSpec) bool {
	if spec.IsEnsuite {
		return true
	}
	switch spec.Type {
	case intent.Bath:
		return !spec.IsEnsuite
	case intent.Closet, intent.Laundry, intent.Ensuite:
		return true
	default:
		return false
	}
}

// isGenerated reports whether a room id was synthesized by the solver
// (e.g. the corridor), which is always allowed through the access filter.
func isGenerated(id string) bool {
	return len(id) >= 5 && id[:5] == "auto_"
}

// PlaceExteriorDoor places the entry room's exterior door on the front-edge
// wall, centered (position 0.5), with the default exterior door width
// (spec section 4.6).
func PlaceExteriorDoor(f *frame.Frame, ps *planstate.PlanState, entryID string, width float64) *planstate.PlacedOpening {
	entry, ok := ps.Placed[entryID]
	if !ok {
		return nil
	}
	bbox := f.Footprint.BoundingBox()
	for _, e := range []geom.Edge{f.FrontEdge} {
		if !entry.Rect.TouchesEdge(bbox, e) {
			continue
		}
		lo, hi := perpRange(entry.Rect, e)
		length := hi - lo
		if length < width {
			continue
		}
		pos := lo + length*0.5 - width/2
		opening := planstate.PlacedOpening{
			Kind: planstate.Door, RoomID: entryID, Edge: e,
			Position: geom.Snap(pos - lo), Width: width, IsExterior: true,
		}
		ps.Openings = append(ps.Openings, opening)
		return &ps.Openings[len(ps.Openings)-1]
	}
	return nil
}

// candidatePair is one admissible shared-wall door candidate.
type candidatePair struct {
	wall Wall
	a, b intent.RoomSpec
}

// PlaceInteriorDoors places doors on every admissible shared wall (spec
// section 4.6): passes the access filter, and for single-door service
// rooms keeps only the single best-ranked partner.
func PlaceInteriorDoors(walls []Wall, rooms map[string]intent.RoomSpec, rules []intent.AccessRule, doorWidth float64, ps *planstate.PlanState) {
	var candidates []candidatePair
	for _, w := range walls {
		if w.RoomB == "" {
			continue
		}
		if w.Length() < doorWidth+2*clearance {
			continue
		}
		a, aok := rooms[w.RoomA]
		b, bok := rooms[w.RoomB]
		if !aok || !bok {
			continue
		}
		if !accessAllowed(a, b, rules) {
			continue
		}
		candidates = append(candidates, candidatePair{wall: w, a: a, b: b})
	}

	restricted := make(map[string][]candidatePair)
	var unrestricted []candidatePair
	for _, c := range candidates {
		switch {
		case isSingleDoorRoom(c.a):
			restricted[c.a.ID] = append(restricted[c.a.ID], c)
		case isSingleDoorRoom(c.b):
			restricted[c.b.ID] = append(restricted[c.b.ID], c)
		default:
			unrestricted = append(unrestricted, c)
		}
	}

	for _, c := range unrestricted {
		emitDoor(ps, c.wall, doorWidth)
	}

	ids := make([]string, 0, len(restricted))
	for id := range restricted {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, roomID := range ids {
		cands := restricted[roomID]
		best := pickBestPartner(roomID, cands)
		if best != nil {
			emitDoor(ps, best.wall, doorWidth)
		}
	}
}

func pickBestPartner(roomID string, cands []candidatePair) *candidatePair {
	if len(cands) == 0 {
		return nil
	}
	type scored struct {
		c   candidatePair
		pri int
	}
	owner := ""
	self, _ := selfRoom(roomID, cands)
	if self.IsAttachable() && len(self.AdjacentTo) > 0 {
		owner = self.AdjacentTo[0]
	}

	scoredCands := make([]scored, len(cands))
	for i, c := range cands {
		partner := c.a
		if partner.ID == roomID {
			partner = c.b
		}
		pri := 3
		if owner != "" {
			if partner.ID == owner {
				pri = 0
			}
		} else {
			pri = serviceRoomPriority(partner.Type, partner.Category())
		}
		scoredCands[i] = scored{c: c, pri: pri}
	}
	sort.SliceStable(scoredCands, func(i, j int) bool {
		if scoredCands[i].pri != scoredCands[j].pri {
			return scoredCands[i].pri < scoredCands[j].pri
		}
		return scoredCands[i].c.wall.Length() > scoredCands[j].c.wall.Length()
	})
	return &scoredCands[0].c
}

func selfRoom(roomID string, cands []candidatePair) (intent.RoomSpec, bool) {
	for _, c := range cands {
		if c.a.ID == roomID {
			return c.a, true
		}
		if c.b.ID == roomID {
			return c.b, true
		}
	}
	return intent.RoomSpec{}, false
}

func emitDoor(ps *planstate.PlanState, w Wall, doorWidth float64) {
	mid := (w.Lo + w.Hi) / 2
	pos := mid - doorWidth/2
	corner, _ := perpRange(ps.Placed[w.RoomA].Rect, w.Edge)
	ps.Openings = append(ps.Openings, planstate.PlacedOpening{
		Kind: planstate.Door, RoomID: w.RoomA, Edge: w.Edge,
		Position: geom.Snap(pos - corner), Width: doorWidth, IsExterior: false, ConnectsTo: w.RoomB,
	})
}

func accessAllowed(a, b intent.RoomSpec, rules []intent.AccessRule) bool {
	if isGenerated(a.ID) || isGenerated(b.ID) {
		return true
	}
	return intent.Allowed(rules, a.Type, b.Type, a.Category(), b.Category())
}
