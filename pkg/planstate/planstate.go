// Package planstate holds the solver's working state: the rooms placed so
// far, the rooms still waiting, the openings cut into walls, and the
// corridor polygon — plus the failure bookkeeping the placer appends to
// when a room cannot be seated.
package planstate

import (
	"github.com/dshills/floorplan/pkg/geom"
	"github.com/dshills/floorplan/pkg/intent"
)

// OpeningKind distinguishes a door from a window.
type OpeningKind int

const (
	Door OpeningKind = iota
	Window
)

// String returns the lowercase wire form of an OpeningKind.
func (k OpeningKind) String() string {
	if k == Door {
		return "door"
	}
	return "window"
}

// PlacedRoom is a room that has been given a final rect.
type PlacedRoom struct {
	ID       string
	Spec     intent.RoomSpec
	Rect     geom.Rect
	Band     string
	Depth    string
	IsCorridor bool // true for the synthetic circulation room the corridor stage inserts
}

// PlacedOpening is a door or window cut into a wall segment.
type PlacedOpening struct {
	Kind       OpeningKind
	RoomID     string
	Edge       geom.Edge
	Position   float64 // distance in meters from the edge's start corner
	Width      float64
	IsExterior bool
	ConnectsTo string // other room id for doors; "" for windows and exterior doors
}

// FailureReason records why a room could not be placed, for diagnostics and
// for the PlacementFailure error the solve package raises.
type FailureReason struct {
	RoomID string
	Reason string
}

// PlanState is the solver's mutable working state, threaded through every
// stage from placement through validation.
type PlanState struct {
	Footprint geom.Footprint

	// Placed preserves insertion order: the order rooms were actually seated
	// in, which later stages (wall derivation, door ordering) rely on.
	order  []string
	Placed map[string]*PlacedRoom

	Unplaced []intent.RoomSpec

	Openings []PlacedOpening

	CorridorPolygon *geom.Rect // nil if no corridor was inserted

	FailureReasons []FailureReason
}

// New creates an empty PlanState over the given footprint.
func New(fp geom.Footprint) *PlanState {
	return &PlanState{
		Footprint: fp,
		Placed:    make(map[string]*PlacedRoom),
	}
}

// Place records a room's final rect, appending to the insertion-ordered
// placement list.
func (ps *PlanState) Place(room *PlacedRoom) {
	if _, exists := ps.Placed[room.ID]; !exists {
		ps.order = append(ps.order, room.ID)
	}
	ps.Placed[room.ID] = room
}

// OrderedPlaced returns placed rooms in the order they were seated.
func (ps *PlanState) OrderedPlaced() []*PlacedRoom {
	out := make([]*PlacedRoom, 0, len(ps.order))
	for _, id := range ps.order {
		if r, ok := ps.Placed[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Fail records that a room could not be placed and adds it to Unplaced.
func (ps *PlanState) Fail(spec intent.RoomSpec, reason string) {
	ps.Unplaced = append(ps.Unplaced, spec)
	ps.FailureReasons = append(ps.FailureReasons, FailureReason{RoomID: spec.ID, Reason: reason})
}

// OverlapsAny reports whether r overlaps any already-placed room's rect.
func (ps *PlanState) OverlapsAny(r geom.Rect, excludeID string) bool {
	for id, p := range ps.Placed {
		if id == excludeID {
			continue
		}
		if p.Rect.Overlaps(r) {
			return true
		}
	}
	return false
}

// NeighborsOf returns the IDs of all placed rooms sharing a collinear
// boundary edge with room id's rect.
func (ps *PlanState) NeighborsOf(id string) []string {
	room, ok := ps.Placed[id]
	if !ok {
		return nil
	}
	var out []string
	for otherID, other := range ps.Placed {
		if otherID == id {
			continue
		}
		if geom.Adjacent(room.Rect, other.Rect) {
			out = append(out, otherID)
		}
	}
	return out
}
