package intentcfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/floorplan/pkg/intent"
)

func TestLoadFromBytes_ValidDocument(t *testing.T) {
	doc := `
units: m
footprint:
  rect:
    x1: 0
    y1: 0
    x2: 12
    y2: 10
front_edge: S
bands:
  - id: private
    target_width: 4
  - id: circulation
    target_width: 2
  - id: public
    target_width: 6
defaults:
  door_width: 90
  window_width: 120
rooms:
  - id: hall
    type: hall
    min_area: 8
    must_touch_edge: S
    has_exterior_door: true
    is_circulation: true
  - id: living
    type: living
    min_area: 20
    must_touch_exterior: true
    adjacent_to: [hall]
access_rule_preset: traditional
weights:
  adjacency: 0.3
`
	li, err := LoadFromBytes([]byte(doc))
	if err != nil {
		t.Fatalf("LoadFromBytes() failed: %v", err)
	}

	if li.FootprintRect == nil {
		t.Fatal("expected a rect footprint")
	}
	if li.FootprintRect.X2 != 12 || li.FootprintRect.Y2 != 10 {
		t.Errorf("footprint rect = %+v, want 12x10", li.FootprintRect)
	}
	if li.FrontEdge != "S" {
		t.Errorf("FrontEdge = %q, want S", li.FrontEdge)
	}
	if len(li.Bands) != 3 {
		t.Fatalf("len(Bands) = %d, want 3", len(li.Bands))
	}
	if li.Bands[0].ID != "private" || li.Bands[0].TargetWidth != 4 {
		t.Errorf("Bands[0] = %+v, want {private 4 0 0}", li.Bands[0])
	}
	if li.Defaults == nil || li.Defaults.DoorWidthCM != 90 {
		t.Errorf("Defaults.DoorWidthCM = %+v, want 90", li.Defaults)
	}
	if len(li.Rooms) != 2 {
		t.Fatalf("len(Rooms) = %d, want 2", len(li.Rooms))
	}
	hall := li.Rooms[0]
	if hall.Type != intent.Hall {
		t.Errorf("Rooms[0].Type = %v, want Hall", hall.Type)
	}
	if hall.MustTouchEdge == nil || *hall.MustTouchEdge != "S" {
		t.Errorf("Rooms[0].MustTouchEdge = %v, want S", hall.MustTouchEdge)
	}
	if !hall.HasExteriorDoor || !hall.IsCirculation {
		t.Error("hall should be circulation with an exterior door")
	}
	living := li.Rooms[1]
	if len(living.AdjacentTo) != 1 || living.AdjacentTo[0] != "hall" {
		t.Errorf("living.AdjacentTo = %v, want [hall]", living.AdjacentTo)
	}
	if li.AccessRulePreset != intent.PresetTraditional {
		t.Errorf("AccessRulePreset = %q, want traditional", li.AccessRulePreset)
	}
	if li.Weights == nil || li.Weights.Adjacency != 0.3 {
		t.Errorf("Weights.Adjacency = %+v, want 0.3", li.Weights)
	}
}

func TestLoadFromBytes_PolygonFootprint(t *testing.T) {
	doc := `
footprint:
  polygon:
    - {x: 0, y: 0}
    - {x: 10, y: 0}
    - {x: 10, y: 8}
    - {x: 0, y: 8}
rooms:
  - id: living
    type: living
    min_area: 20
`
	li, err := LoadFromBytes([]byte(doc))
	if err != nil {
		t.Fatalf("LoadFromBytes() failed: %v", err)
	}
	if li.FootprintPolygon == nil {
		t.Fatal("expected a polygon footprint")
	}
	if len(li.FootprintPolygon.Points) != 4 {
		t.Errorf("len(Points) = %d, want 4", len(li.FootprintPolygon.Points))
	}
}

func TestLoadFromBytes_CentimeterUnits(t *testing.T) {
	doc := `
units: cm
footprint:
  rect: {x1: 0, y1: 0, x2: 1200, y2: 1000}
rooms:
  - id: living
    type: living
    min_area: 200000
`
	li, err := LoadFromBytes([]byte(doc))
	if err != nil {
		t.Fatalf("LoadFromBytes() failed: %v", err)
	}
	if li.FootprintRect.X2 != 12 {
		t.Errorf("footprint X2 = %v, want 12 (converted from cm)", li.FootprintRect.X2)
	}
	if li.Rooms[0].MinArea != 20 {
		t.Errorf("MinArea = %v, want 20 (converted from cm^2)", li.Rooms[0].MinArea)
	}
}

func TestLoadFromBytes_MissingFootprint(t *testing.T) {
	doc := `
rooms:
  - id: living
    type: living
    min_area: 20
`
	if _, err := LoadFromBytes([]byte(doc)); err == nil {
		t.Error("expected an error for a missing footprint")
	}
}

func TestLoadFromBytes_UnknownRoomType(t *testing.T) {
	doc := `
footprint:
  rect: {x1: 0, y1: 0, x2: 10, y2: 10}
rooms:
  - id: odd
    type: spaceship_bridge
    min_area: 20
`
	if _, err := LoadFromBytes([]byte(doc)); err == nil {
		t.Error("expected an error for an unknown room type")
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "intent.yaml")
	doc := `
footprint:
  rect: {x1: 0, y1: 0, x2: 10, y2: 8}
rooms:
  - id: living
    type: living
    min_area: 20
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	li, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(li.Rooms) != 1 {
		t.Errorf("len(Rooms) = %d, want 1", len(li.Rooms))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
