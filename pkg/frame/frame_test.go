package frame

import (
	"testing"

	"github.com/dshills/floorplan/pkg/geom"
	"github.com/dshills/floorplan/pkg/intent"
)

func TestBuildExplicitBands(t *testing.T) {
	rect := geom.NewRect(0, 0, 12, 8)
	li := &intent.LayoutIntent{
		FootprintRect: &rect,
		Bands: []intent.BandSpec{
			{ID: "left", TargetWidth: 6},
			{ID: "right", TargetWidth: 6},
		},
		Rooms: []intent.RoomSpec{{ID: "r1", Type: intent.Bedroom, MinArea: 9}},
	}
	norm, err := li.Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	f, err := Build(norm)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(f.Bands) != 2 {
		t.Fatalf("expected 2 bands, got %d", len(f.Bands))
	}
	if f.Bands[0].X1 != 0 || f.Bands[0].X2 != 6 {
		t.Errorf("left band = %+v, want X1=0 X2=6", f.Bands[0])
	}
	if f.Bands[1].X2 != 12 {
		t.Errorf("right band X2 = %v, want 12 (absorbs remainder)", f.Bands[1].X2)
	}
	if len(f.Cells) != 2 {
		t.Errorf("expected 2 cells (1 depth x 2 bands), got %d", len(f.Cells))
	}
}

func TestBuildDerivesLeftRightBands(t *testing.T) {
	rect := geom.NewRect(0, 0, 10, 8)
	li := &intent.LayoutIntent{
		FootprintRect: &rect,
		Rooms: []intent.RoomSpec{
			{ID: "r1", Type: intent.Living, MinArea: 9, PreferredBands: []string{"left"}},
			{ID: "r2", Type: intent.Bedroom, MinArea: 9, PreferredBands: []string{"right"}},
		},
	}
	norm, _ := li.Normalize()
	f, err := Build(norm)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(f.Bands) != 2 {
		t.Fatalf("expected derived left/right bands, got %d", len(f.Bands))
	}
}

func TestCellsInsidePolygonFootprint(t *testing.T) {
	poly := geom.Polygon{Points: []geom.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}
	li := &intent.LayoutIntent{
		FootprintPolygon: &poly,
		Rooms:            []intent.RoomSpec{{ID: "r1", Type: intent.Bedroom, MinArea: 9}},
	}
	norm, _ := li.Normalize()
	f, err := Build(norm)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, c := range f.Cells {
		if !c.InsideFootprint {
			t.Errorf("cell %+v should be inside the square polygon footprint", c)
		}
	}
}

func TestCellsForFiltersByPreference(t *testing.T) {
	rect := geom.NewRect(0, 0, 12, 8)
	li := &intent.LayoutIntent{
		FootprintRect: &rect,
		Bands: []intent.BandSpec{
			{ID: "left", TargetWidth: 6},
			{ID: "right", TargetWidth: 6},
		},
		Rooms: []intent.RoomSpec{{ID: "r1", Type: intent.Bedroom, MinArea: 9}},
	}
	norm, _ := li.Normalize()
	f, _ := Build(norm)
	cells := f.CellsFor([]string{"left"}, nil)
	if len(cells) != 1 || cells[0].BandID != "left" {
		t.Errorf("CellsFor([left]) = %+v, want single left cell", cells)
	}
}
