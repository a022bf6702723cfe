// Package constraint rejects placement candidates that violate a hard
// rule: containment, overlap, edge, or strict-adjacency (spec section 4.3).
package constraint

import (
	"fmt"

	"github.com/dshills/floorplan/pkg/frame"
	"github.com/dshills/floorplan/pkg/geom"
	"github.com/dshills/floorplan/pkg/intent"
	"github.com/dshills/floorplan/pkg/planstate"
)

// ViolationKind names the hard rule a candidate broke.
type ViolationKind int

const (
	Overlap ViolationKind = iota
	OutsideFootprint
	NoExterior
	WrongEdge
	DisconnectedFromOwner
)

// String returns the wire name of a violation kind.
func (v ViolationKind) String() string {
	switch v {
	case Overlap:
		return "overlap"
	case OutsideFootprint:
		return "outside_footprint"
	case NoExterior:
		return "no_exterior"
	case WrongEdge:
		return "wrong_edge"
	case DisconnectedFromOwner:
		return "disconnected_from_owner"
	default:
		return "unknown"
	}
}

// Violation is one rejection reason, with the conflicting room id set for
// Overlap.
type Violation struct {
	Kind          ViolationKind
	ConflictingID string
}

func (v Violation) Error() string {
	if v.Kind == Overlap {
		return fmt.Sprintf("%s: %s", v.Kind, v.ConflictingID)
	}
	return v.Kind.String()
}

// Check evaluates a candidate rect against every hard rule and returns the
// first violation found, or nil if the candidate passes (spec section 4.3).
func Check(room *intent.RoomSpec, r geom.Rect, f *frame.Frame, ps *planstate.PlanState) *Violation {
	for _, p := range ps.OrderedPlaced() {
		if p.Rect.Overlaps(r) {
			return &Violation{Kind: Overlap, ConflictingID: p.ID}
		}
	}

	if !f.Footprint.ContainsRect(r) {
		return &Violation{Kind: OutsideFootprint}
	}

	if room.MustTouchExterior && !f.Footprint.TouchesExterior(r) {
		return &Violation{Kind: NoExterior}
	}

	if room.MustTouchEdge != nil {
		e, ok := geom.ParseEdge(*room.MustTouchEdge)
		if !ok || !f.Footprint.TouchesEdge(r, e) {
			return &Violation{Kind: WrongEdge}
		}
	}

	if room.IsAttachable() {
		owner := findOwner(room, ps)
		if owner == nil || !geom.Adjacent(r, owner.Rect) {
			return &Violation{Kind: DisconnectedFromOwner}
		}
	}

	return nil
}

// findOwner resolves the owner room of an attached (ensuite/closet) room
// via its adjacent_to list, per spec section 4.3.
func findOwner(room *intent.RoomSpec, ps *planstate.PlanState) *planstate.PlacedRoom {
	for _, id := range room.AdjacentTo {
		if p, ok := ps.Placed[id]; ok {
			return p
		}
	}
	return nil
}

// Filter returns only the candidates whose rect passes Check.
func Filter(room *intent.RoomSpec, rects []geom.Rect, f *frame.Frame, ps *planstate.PlanState) []geom.Rect {
	var out []geom.Rect
	for _, r := range rects {
		if Check(room, r, f, ps) == nil {
			out = append(out, r)
		}
	}
	return out
}
