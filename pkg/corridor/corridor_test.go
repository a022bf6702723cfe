package corridor

import (
	"testing"

	"github.com/dshills/floorplan/pkg/frame"
	"github.com/dshills/floorplan/pkg/geom"
	"github.com/dshills/floorplan/pkg/intent"
	"github.com/dshills/floorplan/pkg/planstate"
)

func testFrame(t *testing.T) *frame.Frame {
	t.Helper()
	rect := geom.NewRect(0, 0, 12, 10)
	li := &intent.LayoutIntent{FootprintRect: &rect, Rooms: []intent.RoomSpec{{ID: "r1", Type: intent.Bedroom, MinArea: 9}}}
	norm, _ := li.Normalize()
	f, _ := frame.Build(norm)
	return f
}

func TestNeedsCorridorFalseWhenConnected(t *testing.T) {
	f := testFrame(t)
	ps := planstate.New(f.Footprint)
	ps.Place(&planstate.PlacedRoom{ID: "a", Rect: geom.NewRect(0, 0, 5, 10)})
	ps.Place(&planstate.PlacedRoom{ID: "b", Rect: geom.NewRect(5, 0, 10, 10)})
	if NeedsCorridor(ps) {
		t.Error("expected no corridor needed for adjacent rooms")
	}
}

func TestNeedsCorridorTrueWhenDisconnected(t *testing.T) {
	f := testFrame(t)
	ps := planstate.New(f.Footprint)
	ps.Place(&planstate.PlacedRoom{ID: "a", Rect: geom.NewRect(0, 0, 4, 4)})
	ps.Place(&planstate.PlacedRoom{ID: "b", Rect: geom.NewRect(8, 6, 12, 10)})
	if !NeedsCorridor(ps) {
		t.Error("expected corridor needed for disconnected rooms")
	}
}

func TestGenerateBridgesGapWithCorridor(t *testing.T) {
	f := testFrame(t)
	ps := planstate.New(f.Footprint)
	ps.Place(&planstate.PlacedRoom{ID: "a", Spec: intent.RoomSpec{ID: "a", Type: intent.Bedroom}, Rect: geom.NewRect(0, 0, 5, 4)})
	ps.Place(&planstate.PlacedRoom{ID: "b", Spec: intent.RoomSpec{ID: "b", Type: intent.Bedroom}, Rect: geom.NewRect(0, 6, 5, 10)})
	err := Generate(f, ps, 1.2, "auto_")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if ps.CorridorPolygon == nil {
		t.Fatal("expected a corridor to be inserted")
	}
	if NeedsCorridor(ps) {
		t.Error("rooms should be connected after corridor insertion")
	}
}
