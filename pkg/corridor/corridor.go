// Package corridor inserts an axis-aligned circulation strip when placed
// rooms form more than one connected adjacency component (spec section
// 4.7).
package corridor

import (
	"fmt"
	"sort"

	"github.com/dshills/floorplan/pkg/frame"
	"github.com/dshills/floorplan/pkg/geom"
	"github.com/dshills/floorplan/pkg/intent"
	"github.com/dshills/floorplan/pkg/planstate"
)

// ImpossibleError reports that no valid corridor strip could be found
// (spec section 7).
type ImpossibleError struct{}

func (e *ImpossibleError) Error() string { return "corridor generator found no valid strip" }

// components computes the connected components of the placed-room
// adjacency graph (rects_adjacent edges).
func components(ps *planstate.PlanState) [][]string {
	ids := make([]string, 0, len(ps.Placed))
	for id := range ps.Placed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	visited := map[string]bool{}
	var comps [][]string
	for _, start := range ids {
		if visited[start] {
			continue
		}
		var comp []string
		queue := []string{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for _, id := range ids {
				if visited[id] || id == cur {
					continue
				}
				if geom.Adjacent(ps.Placed[cur].Rect, ps.Placed[id].Rect) {
					visited[id] = true
					queue = append(queue, id)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// NeedsCorridor reports whether placed rooms form more than one connected
// component.
func NeedsCorridor(ps *planstate.PlanState) bool {
	return len(components(ps)) > 1
}

// Generate tries the three strategies of spec section 4.7, in order, and
// inserts the first valid corridor as a placed circulation room. Returns
// ImpossibleError if none is valid.
func Generate(f *frame.Frame, ps *planstate.PlanState, corridorWidth float64, idPrefix string) error {
	if !NeedsCorridor(ps) {
		return nil
	}

	candidates := midHorizontalCandidates(f, ps, corridorWidth)
	candidates = append(candidates, midVerticalCandidates(f, ps, corridorWidth)...)
	candidates = append(candidates, pairwiseGapCandidates(f, ps, corridorWidth)...)

	for _, r := range candidates {
		if isValidCorridor(f, ps, r) {
			id := fmt.Sprintf("%scorridor", idPrefix)
			ps.CorridorPolygon = &r
			ps.Place(&planstate.PlacedRoom{
				ID:         id,
				Spec:       intent.RoomSpec{ID: id, Type: intent.Corridor, IsCirculation: true},
				Rect:       r,
				IsCorridor: true,
			})
			return nil
		}
	}
	return &ImpossibleError{}
}

func midHorizontalCandidates(f *frame.Frame, ps *planstate.PlanState, width float64) []geom.Rect {
	bbox := f.Footprint.BoundingBox()
	ys := sortedCoords(ps, func(r geom.Rect) (float64, float64) { return r.Y1, r.Y2 })
	var out []geom.Rect
	mid := bbox.Y1 + bbox.Height()/2
	out = append(out, geom.NewRect(bbox.X1, mid-width/2, bbox.X2, mid+width/2))
	for i := 0; i+1 < len(ys); i++ {
		gap := ys[i+1] - ys[i]
		if gap >= width {
			gapMid := (ys[i] + ys[i+1]) / 2
			out = append(out, geom.NewRect(bbox.X1, gapMid-width/2, bbox.X2, gapMid+width/2))
		}
	}
	return out
}

func midVerticalCandidates(f *frame.Frame, ps *planstate.PlanState, width float64) []geom.Rect {
	bbox := f.Footprint.BoundingBox()
	xs := sortedCoords(ps, func(r geom.Rect) (float64, float64) { return r.X1, r.X2 })
	var out []geom.Rect
	mid := bbox.X1 + bbox.Width()/2
	out = append(out, geom.NewRect(mid-width/2, bbox.Y1, mid+width/2, bbox.Y2))
	for i := 0; i+1 < len(xs); i++ {
		gap := xs[i+1] - xs[i]
		if gap >= width {
			gapMid := (xs[i] + xs[i+1]) / 2
			out = append(out, geom.NewRect(gapMid-width/2, bbox.Y1, gapMid+width/2, bbox.Y2))
		}
	}
	return out
}

func pairwiseGapCandidates(f *frame.Frame, ps *planstate.PlanState, width float64) []geom.Rect {
	ids := make([]string, 0, len(ps.Placed))
	for id := range ps.Placed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []geom.Rect
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := ps.Placed[ids[i]].Rect, ps.Placed[ids[j]].Rect
			if r, ok := verticalGap(a, b, width); ok {
				out = append(out, r)
			}
			if r, ok := verticalGap(b, a, width); ok {
				out = append(out, r)
			}
			if r, ok := horizontalGap(a, b, width); ok {
				out = append(out, r)
			}
			if r, ok := horizontalGap(b, a, width); ok {
				out = append(out, r)
			}
		}
	}
	return out
}

// verticalGap tries a horizontal corridor filling the vertical gap between
// a (above) and b (below) when they sufficiently overlap in x.
func verticalGap(a, b geom.Rect, width float64) (geom.Rect, bool) {
	gap := b.Y1 - a.Y2
	if gap < width {
		return geom.Rect{}, false
	}
	lo := max(a.X1, b.X1)
	hi := min(a.X2, b.X2)
	if hi-lo < 2*width {
		return geom.Rect{}, false
	}
	return geom.NewRect(lo, a.Y2, hi, b.Y1), true
}

// horizontalGap is verticalGap's x-axis analogue.
func horizontalGap(a, b geom.Rect, width float64) (geom.Rect, bool) {
	gap := b.X1 - a.X2
	if gap < width {
		return geom.Rect{}, false
	}
	lo := max(a.Y1, b.Y1)
	hi := min(a.Y2, b.Y2)
	if hi-lo < 2*width {
		return geom.Rect{}, false
	}
	return geom.NewRect(a.X2, lo, b.X1, hi), true
}

func sortedCoords(ps *planstate.PlanState, extract func(geom.Rect) (float64, float64)) []float64 {
	set := map[float64]bool{}
	for _, p := range ps.Placed {
		lo, hi := extract(p.Rect)
		set[lo] = true
		set[hi] = true
	}
	out := make([]float64, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}

// isValidCorridor implements spec section 4.7's validity rule: fully
// inside the footprint, and for every non-circulation placed room, the
// overlap area with the corridor is <= 10% of the corridor's area.
func isValidCorridor(f *frame.Frame, ps *planstate.PlanState, r geom.Rect) bool {
	if r.Area() <= 0 || !f.Footprint.ContainsRect(r) {
		return false
	}
	corridorArea := r.Area()
	for _, p := range ps.Placed {
		if p.Spec.Category() == intent.CategoryCirculation {
			continue
		}
		overlap := p.Rect.OverlapArea(r)
		if overlap > 0.10*corridorArea {
			return false
		}
	}
	return true
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
