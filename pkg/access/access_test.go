package access

import (
	"testing"

	"github.com/dshills/floorplan/pkg/frame"
	"github.com/dshills/floorplan/pkg/geom"
	"github.com/dshills/floorplan/pkg/intent"
	"github.com/dshills/floorplan/pkg/planstate"
)

func testFrame(t *testing.T) *frame.Frame {
	t.Helper()
	rect := geom.NewRect(0, 0, 10, 6)
	li := &intent.LayoutIntent{FootprintRect: &rect, FrontEdge: "S", Rooms: []intent.RoomSpec{{ID: "r1", Type: intent.Bedroom, MinArea: 9}}}
	norm, _ := li.Normalize()
	f, _ := frame.Build(norm)
	return f
}

func TestSelectEntryPrefersExteriorDoor(t *testing.T) {
	f := testFrame(t)
	ps := planstate.New(f.Footprint)
	ps.Place(&planstate.PlacedRoom{ID: "hall", Spec: intent.RoomSpec{ID: "hall", Type: intent.Hall, HasExteriorDoor: true}, Rect: geom.NewRect(0, 0, 3, 3)})
	ps.Place(&planstate.PlacedRoom{ID: "foyer", Spec: intent.RoomSpec{ID: "foyer", Type: intent.Foyer}, Rect: geom.NewRect(3, 0, 6, 3)})
	id, ok := SelectEntry(f, ps)
	if !ok || id != "hall" {
		t.Fatalf("SelectEntry = %q, %v; want hall", id, ok)
	}
}

func TestSelectEntryFallsBackToFoyer(t *testing.T) {
	f := testFrame(t)
	ps := planstate.New(f.Footprint)
	ps.Place(&planstate.PlacedRoom{ID: "foyer", Spec: intent.RoomSpec{ID: "foyer", Type: intent.Foyer}, Rect: geom.NewRect(0, 0, 3, 3)})
	id, ok := SelectEntry(f, ps)
	if !ok || id != "foyer" {
		t.Fatalf("SelectEntry = %q, %v; want foyer", id, ok)
	}
}

func TestBFSReachesConnectedRooms(t *testing.T) {
	ps := planstate.New(geom.Footprint{})
	ps.Place(&planstate.PlacedRoom{ID: "a"})
	ps.Place(&planstate.PlacedRoom{ID: "b"})
	ps.Place(&planstate.PlacedRoom{ID: "c"})
	ps.Openings = append(ps.Openings, planstate.PlacedOpening{Kind: planstate.Door, RoomID: "a", ConnectsTo: "b"})
	g := BuildGraph(ps)
	reached := g.Reachable("a")
	if !reached["b"] {
		t.Error("expected b reachable from a")
	}
	if reached["c"] {
		t.Error("expected c unreachable (no door to c)")
	}
}

func TestValidateReportsUnreachableRooms(t *testing.T) {
	f := testFrame(t)
	ps := planstate.New(f.Footprint)
	ps.Place(&planstate.PlacedRoom{ID: "hall", Spec: intent.RoomSpec{ID: "hall", Type: intent.Hall, HasExteriorDoor: true}, Rect: geom.NewRect(0, 0, 3, 3)})
	ps.Place(&planstate.PlacedRoom{ID: "isolated", Spec: intent.RoomSpec{ID: "isolated", Type: intent.Bedroom}, Rect: geom.NewRect(6, 3, 9, 6)})
	_, err := Validate(f, ps, true)
	if err == nil {
		t.Fatal("expected unreachable rooms error")
	}
	ure, ok := err.(*UnreachableRoomsError)
	if !ok {
		t.Fatalf("expected *UnreachableRoomsError, got %T", err)
	}
	if len(ure.Unreachable) != 1 || ure.Unreachable[0] != "isolated" {
		t.Errorf("Unreachable = %v, want [isolated]", ure.Unreachable)
	}
}
