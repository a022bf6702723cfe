package intent

import (
	"testing"

	"github.com/dshills/floorplan/pkg/geom"
)

func simpleRoom(id string, minArea float64) RoomSpec {
	return RoomSpec{ID: id, Type: Bedroom, MinArea: minArea}
}

func TestLayoutIntentValidateRequiresFootprint(t *testing.T) {
	li := &LayoutIntent{Rooms: []RoomSpec{simpleRoom("r1", 9)}}
	if err := li.Validate(); err == nil {
		t.Fatal("expected error when no footprint is set")
	}
}

func TestLayoutIntentValidateRejectsBothFootprints(t *testing.T) {
	rect := geom.NewRect(0, 0, 10, 10)
	poly := geom.Polygon{Points: []geom.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}
	li := &LayoutIntent{FootprintRect: &rect, FootprintPolygon: &poly, Rooms: []RoomSpec{simpleRoom("r1", 9)}}
	if err := li.Validate(); err == nil {
		t.Fatal("expected error when both footprint variants are set")
	}
}

func TestLayoutIntentValidateRejectsDuplicateRoomIDs(t *testing.T) {
	rect := geom.NewRect(0, 0, 10, 10)
	li := &LayoutIntent{FootprintRect: &rect, Rooms: []RoomSpec{simpleRoom("r1", 9), simpleRoom("r1", 12)}}
	if err := li.Validate(); err == nil {
		t.Fatal("expected error on duplicate room ids")
	}
}

func TestLayoutIntentValidateRejectsUnknownAdjacencyRef(t *testing.T) {
	rect := geom.NewRect(0, 0, 10, 10)
	room := simpleRoom("r1", 9)
	room.AdjacentTo = []string{"ghost"}
	li := &LayoutIntent{FootprintRect: &rect, Rooms: []RoomSpec{room}}
	if err := li.Validate(); err == nil {
		t.Fatal("expected error referencing unknown room")
	}
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	rect := geom.NewRect(0, 0, 10, 8)
	li := &LayoutIntent{FootprintRect: &rect, Rooms: []RoomSpec{simpleRoom("r1", 9)}}
	norm, err := li.Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if norm.DoorWidth != 0.9 {
		t.Errorf("DoorWidth = %v, want 0.9", norm.DoorWidth)
	}
	if norm.CorridorWidth != 1.10 {
		t.Errorf("CorridorWidth = %v, want 1.10", norm.CorridorWidth)
	}
	if norm.FrontEdge != geom.South {
		t.Errorf("FrontEdge = %v, want South", norm.FrontEdge)
	}
	if norm.Rooms[0].TargetArea <= norm.Rooms[0].MinArea {
		t.Errorf("TargetArea %v should exceed MinArea %v when unset", norm.Rooms[0].TargetArea, norm.Rooms[0].MinArea)
	}
}

func TestNormalizeResolvesAccessPreset(t *testing.T) {
	rect := geom.NewRect(0, 0, 10, 8)
	li := &LayoutIntent{
		FootprintRect:    &rect,
		Rooms:            []RoomSpec{simpleRoom("r1", 9)},
		AccessRulePreset: PresetTraditional,
	}
	norm, err := li.Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(norm.AccessRules) == 0 {
		t.Fatal("expected traditional preset to produce access rules")
	}
}

func TestCategoryOfAndOverride(t *testing.T) {
	if CategoryOf(Bedroom) != CategoryPrivate {
		t.Errorf("Bedroom category = %v, want Private", CategoryOf(Bedroom))
	}
	r := RoomSpec{ID: "r1", Type: Bedroom, MinArea: 9, IsCirculation: true}
	if r.Category() != CategoryCirculation {
		t.Errorf("IsCirculation override failed: got %v", r.Category())
	}
}

func TestParseRoomTypeRoundTrip(t *testing.T) {
	for t1 := Bedroom; t1 <= Other; t1++ {
		parsed, ok := ParseRoomType(t1.String())
		if !ok || parsed != t1 {
			t.Errorf("round trip failed for %v", t1)
		}
	}
}

func TestAccessAllowedSymmetric(t *testing.T) {
	rules := ResolvePreset(PresetTraditional)
	if !Allowed(rules, Hall, Bedroom, CategoryCirculation, CategoryPrivate) {
		t.Error("hall -> bedroom should be allowed under traditional preset")
	}
	if Allowed(rules, Living, Bedroom, CategoryPublic, CategoryPrivate) {
		t.Error("living -> bedroom should be rejected under traditional preset")
	}
}

func TestAccessAllowedCirculationFromSideOverride(t *testing.T) {
	rules := []AccessRule{
		{RoomTypeOrCategory: CategoryCirculation.String(), CanLeadTo: []string{CategoryService.String()}},
	}
	if !Allowed(rules, Hall, Living, CategoryCirculation, CategoryPublic) {
		t.Error("circulation room should always be allowed as the from side, regardless of its own can_lead_to rule")
	}
	if !Allowed(rules, Corridor, Bedroom, CategoryCirculation, CategoryPrivate) {
		t.Error("circulation room should always be allowed as the from side, regardless of its own can_lead_to rule")
	}
}
