package constraint

import (
	"testing"

	"github.com/dshills/floorplan/pkg/frame"
	"github.com/dshills/floorplan/pkg/geom"
	"github.com/dshills/floorplan/pkg/intent"
	"github.com/dshills/floorplan/pkg/planstate"
)

func buildFrame(t *testing.T) *frame.Frame {
	t.Helper()
	rect := geom.NewRect(0, 0, 10, 10)
	li := &intent.LayoutIntent{FootprintRect: &rect, Rooms: []intent.RoomSpec{{ID: "r1", Type: intent.Bedroom, MinArea: 9}}}
	norm, _ := li.Normalize()
	f, _ := frame.Build(norm)
	return f
}

func TestCheckRejectsOverlap(t *testing.T) {
	f := buildFrame(t)
	ps := planstate.New(f.Footprint)
	ps.Place(&planstate.PlacedRoom{ID: "a", Rect: geom.NewRect(0, 0, 5, 5)})
	room := &intent.RoomSpec{ID: "b", MinArea: 4}
	v := Check(room, geom.NewRect(2, 2, 6, 6), f, ps)
	if v == nil || v.Kind != Overlap || v.ConflictingID != "a" {
		t.Fatalf("expected overlap violation against a, got %+v", v)
	}
}

func TestCheckRejectsOutsideFootprint(t *testing.T) {
	f := buildFrame(t)
	ps := planstate.New(f.Footprint)
	room := &intent.RoomSpec{ID: "b", MinArea: 4}
	v := Check(room, geom.NewRect(9, 9, 12, 12), f, ps)
	if v == nil || v.Kind != OutsideFootprint {
		t.Fatalf("expected outside_footprint violation, got %+v", v)
	}
}

func TestCheckAcceptsValidCandidate(t *testing.T) {
	f := buildFrame(t)
	ps := planstate.New(f.Footprint)
	room := &intent.RoomSpec{ID: "b", MinArea: 4}
	v := Check(room, geom.NewRect(0, 0, 3, 3), f, ps)
	if v != nil {
		t.Fatalf("expected no violation, got %+v", v)
	}
}

func TestCheckRejectsWrongEdge(t *testing.T) {
	f := buildFrame(t)
	ps := planstate.New(f.Footprint)
	edge := "N"
	room := &intent.RoomSpec{ID: "b", MinArea: 4, MustTouchEdge: &edge}
	v := Check(room, geom.NewRect(0, 8, 3, 10), f, ps)
	if v == nil || v.Kind != WrongEdge {
		t.Fatalf("expected wrong_edge violation (touches south not north), got %+v", v)
	}
}

func TestCheckRejectsDisconnectedAttachedRoom(t *testing.T) {
	f := buildFrame(t)
	ps := planstate.New(f.Footprint)
	ps.Place(&planstate.PlacedRoom{ID: "master", Rect: geom.NewRect(0, 0, 5, 5)})
	room := &intent.RoomSpec{ID: "ensuite", Type: intent.Ensuite, MinArea: 4, IsEnsuite: true, AdjacentTo: []string{"master"}}
	v := Check(room, geom.NewRect(6, 6, 8, 8), f, ps)
	if v == nil || v.Kind != DisconnectedFromOwner {
		t.Fatalf("expected disconnected_from_owner, got %+v", v)
	}
}

func TestCheckAcceptsAdjacentAttachedRoom(t *testing.T) {
	f := buildFrame(t)
	ps := planstate.New(f.Footprint)
	ps.Place(&planstate.PlacedRoom{ID: "master", Rect: geom.NewRect(0, 0, 5, 5)})
	room := &intent.RoomSpec{ID: "ensuite", Type: intent.Ensuite, MinArea: 4, IsEnsuite: true, AdjacentTo: []string{"master"}}
	v := Check(room, geom.NewRect(5, 0, 7, 2), f, ps)
	if v != nil {
		t.Fatalf("expected adjacent ensuite to pass, got %+v", v)
	}
}
