package score

import (
	"testing"

	"github.com/dshills/floorplan/pkg/frame"
	"github.com/dshills/floorplan/pkg/geom"
	"github.com/dshills/floorplan/pkg/intent"
	"github.com/dshills/floorplan/pkg/planstate"
)

func buildFrame(t *testing.T) *frame.Frame {
	t.Helper()
	rect := geom.NewRect(0, 0, 12, 10)
	li := &intent.LayoutIntent{FootprintRect: &rect, Rooms: []intent.RoomSpec{{ID: "r1", Type: intent.Bedroom, MinArea: 9}}}
	norm, _ := li.Normalize()
	f, _ := frame.Build(norm)
	return f
}

func TestCandidateScoreRewardsAdjacency(t *testing.T) {
	f := buildFrame(t)
	hall := &planstate.PlacedRoom{ID: "hall", Rect: geom.NewRect(0, 0, 4, 10), Spec: intent.RoomSpec{ID: "hall", Type: intent.Hall}}
	placed := map[string]*planstate.PlacedRoom{"hall": hall}
	room := &intent.RoomSpec{ID: "bed", Type: intent.Bedroom, MinArea: 9, AdjacentTo: []string{"hall"}}
	adjacent := geom.NewRect(4, 0, 7, 3)
	far := geom.NewRect(9, 7, 12, 10)
	cell := f.Cells[0]
	sAdj := Candidate(room, adjacent, cell, f, CandidateContext{Placed: placed}, Weights{})
	sFar := Candidate(room, far, cell, f, CandidateContext{Placed: placed}, Weights{})
	if sAdj <= sFar {
		t.Errorf("adjacent candidate score %v should exceed far candidate score %v", sAdj, sFar)
	}
}

func TestCandidateScorePenalizesAvoidAdjacency(t *testing.T) {
	f := buildFrame(t)
	other := &planstate.PlacedRoom{ID: "noisy", Rect: geom.NewRect(0, 0, 4, 10)}
	placed := map[string]*planstate.PlacedRoom{"noisy": other}
	room := &intent.RoomSpec{ID: "bed", Type: intent.Bedroom, MinArea: 9, AvoidAdjacentTo: []string{"noisy"}}
	touching := geom.NewRect(4, 0, 7, 3)
	cell := f.Cells[0]
	s := Candidate(room, touching, cell, f, CandidateContext{Placed: placed}, Weights{})
	if s >= 0 {
		t.Errorf("expected negative score for touching avoided room, got %v", s)
	}
}

func TestHallLookaheadPenalizesMonopolization(t *testing.T) {
	f := buildFrame(t)
	hall := &planstate.PlacedRoom{ID: "hall", Rect: geom.NewRect(0, 0, 2, 10), Spec: intent.RoomSpec{ID: "hall", Type: intent.Hall}}
	placed := map[string]*planstate.PlacedRoom{"hall": hall}
	future := []intent.RoomSpec{
		{ID: "bed2", Type: intent.Bedroom, MinArea: 9, AdjacentTo: []string{"hall"}},
		{ID: "bath1", Type: intent.Bath, MinArea: 4, AdjacentTo: []string{"hall"}},
	}
	room := &intent.RoomSpec{ID: "bed1", Type: intent.Bedroom, MinArea: 9, AdjacentTo: []string{"hall"}}
	monopolizing := geom.NewRect(2, 0, 6, 10) // claims the entire hall frontage
	cell := f.Cells[0]
	ctx := CandidateContext{Placed: placed, FutureRooms: future, HallRoomID: "hall"}
	s := Candidate(room, monopolizing, cell, f, ctx, Weights{})
	ctxNoFuture := CandidateContext{Placed: placed, HallRoomID: "hall"}
	sNoFuture := Candidate(room, monopolizing, cell, f, ctxNoFuture, Weights{})
	if s >= sNoFuture {
		t.Errorf("expected look-ahead penalty to lower score below no-future-rooms case: with=%v without=%v", s, sNoFuture)
	}
}

func TestComputePlanZonePreference(t *testing.T) {
	f := buildFrame(t)
	ps := planstate.New(f.Footprint)
	spec := intent.RoomSpec{ID: "bed", Type: intent.Bedroom, MinArea: 9, PreferredBands: []string{"full"}}
	ps.Place(&planstate.PlacedRoom{ID: "bed", Spec: spec, Rect: geom.NewRect(0, 0, 3, 3), Band: "full"})
	c, components := ComputePlan(ps, []intent.RoomSpec{spec}, f)
	if c.ZonePreference != 1.0 {
		t.Errorf("ZonePreference = %v, want 1.0", c.ZonePreference)
	}
	if components["zone_preference"] != 1.0 {
		t.Errorf("components map mismatch: %v", components)
	}
}
