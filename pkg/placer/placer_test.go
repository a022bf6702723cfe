package placer

import (
	"testing"

	"github.com/dshills/floorplan/pkg/frame"
	"github.com/dshills/floorplan/pkg/geom"
	"github.com/dshills/floorplan/pkg/intent"
)

func TestOrderPutsCirculationFirst(t *testing.T) {
	rooms := []intent.RoomSpec{
		{ID: "living", Type: intent.Living, MinArea: 20},
		{ID: "hall", Type: intent.Hall, MinArea: 8, HasExteriorDoor: true, IsCirculation: true},
		{ID: "bedroom", Type: intent.Bedroom, MinArea: 12},
	}
	ordered := Order(rooms)
	if ordered[0].ID != "hall" {
		t.Fatalf("expected hall first, got order %v", ids(ordered))
	}
}

func TestOrderSplicesAttachedAfterOwner(t *testing.T) {
	rooms := []intent.RoomSpec{
		{ID: "living", Type: intent.Living, MinArea: 20},
		{ID: "master", Type: intent.Bedroom, MinArea: 16},
		{ID: "ensuite", Type: intent.Bath, MinArea: 4, IsEnsuite: true, AdjacentTo: []string{"master"}},
	}
	ordered := Order(rooms)
	masterIdx, ensuiteIdx := -1, -1
	for i, r := range ordered {
		if r.ID == "master" {
			masterIdx = i
		}
		if r.ID == "ensuite" {
			ensuiteIdx = i
		}
	}
	if ensuiteIdx != masterIdx+1 {
		t.Fatalf("expected ensuite immediately after master, got order %v", ids(ordered))
	}
}

func ids(rooms []intent.RoomSpec) []string {
	out := make([]string, len(rooms))
	for i, r := range rooms {
		out[i] = r.ID
	}
	return out
}

// TestPlaceTwoRoomEastWest mirrors spec scenario S1.
func TestPlaceTwoRoomEastWest(t *testing.T) {
	rect := geom.NewRect(0, 0, 12, 8)
	li := &intent.LayoutIntent{
		FootprintRect: &rect,
		Bands: []intent.BandSpec{
			{ID: "left", TargetWidth: 6},
			{ID: "right", TargetWidth: 6},
		},
		Rooms: []intent.RoomSpec{
			{ID: "living", Type: intent.Living, MinArea: 25, PreferredBands: []string{"left"}, MustTouchExterior: true},
			{ID: "bedroom", Type: intent.Bedroom, MinArea: 20, PreferredBands: []string{"right"}, MustTouchExterior: true},
		},
	}
	norm, err := li.Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	f, err := frame.Build(norm)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ps := Place(f, norm.Rooms, Options{})

	living, ok := ps.Placed["living"]
	if !ok {
		t.Fatalf("living not placed; failures: %+v", ps.FailureReasons)
	}
	bedroom, ok := ps.Placed["bedroom"]
	if !ok {
		t.Fatalf("bedroom not placed; failures: %+v", ps.FailureReasons)
	}
	if living.Rect.X2 > 7 {
		t.Errorf("living.rect.x2 = %v, want <= 7", living.Rect.X2)
	}
	if bedroom.Rect.X1 < 5 {
		t.Errorf("bedroom.rect.x1 = %v, want >= 5", bedroom.Rect.X1)
	}
	if living.Rect.Overlaps(bedroom.Rect) {
		t.Error("living and bedroom rects overlap")
	}
}

func TestGapFillIsFixedPointOnSecondRun(t *testing.T) {
	rect := geom.NewRect(0, 0, 10, 10)
	li := &intent.LayoutIntent{FootprintRect: &rect, Rooms: []intent.RoomSpec{{ID: "r1", Type: intent.Bedroom, MinArea: 9}}}
	norm, _ := li.Normalize()
	f, _ := frame.Build(norm)
	ps := Place(f, norm.Rooms, Options{})
	before := ps.Placed["r1"].Rect
	GapFill(f, ps)
	after := ps.Placed["r1"].Rect
	if before != after {
		t.Errorf("second gap-fill pass changed rect: %v -> %v", before, after)
	}
}
