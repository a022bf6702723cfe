// Package frame partitions a normalized intent's footprint into vertical
// bands and horizontal depth zones, and builds the cartesian product of
// cells the candidate generator places rooms into.
package frame

import (
	"fmt"

	"github.com/dshills/floorplan/pkg/geom"
	"github.com/dshills/floorplan/pkg/intent"
)

// Band is a vertical slice of the footprint, spanning its full depth.
type Band struct {
	ID     string
	X1, X2 float64
	Width  float64
}

// Depth is a horizontal slice of the footprint, spanning its full width.
type Depth struct {
	ID     string
	Y1, Y2 float64
	Depth  float64
}

// Cell is one band×depth intersection, the basic placement unit.
type Cell struct {
	BandID         string
	DepthID        string
	Rect           geom.Rect
	InsideFootprint bool
}

// Frame is built once from a normalized intent and never mutated.
type Frame struct {
	Footprint  geom.Footprint
	Bands      []Band
	Depths     []Depth
	Cells      []Cell
	FrontEdge  geom.Edge
	GardenEdge *geom.Edge
}

// CellsFor returns every cell whose band id and depth id appear in the
// given (possibly empty) preference lists. An empty list places no
// restriction on that axis, so CellsFor(nil, nil) returns every cell
// inside the footprint.
func (f *Frame) CellsFor(bandIDs, depthIDs []string) []Cell {
	bandSet := toSet(bandIDs)
	depthSet := toSet(depthIDs)
	var out []Cell
	for _, c := range f.Cells {
		bandOK := len(bandSet) == 0 || bandSet[c.BandID]
		depthOK := len(depthSet) == 0 || depthSet[c.DepthID]
		if bandOK && depthOK && c.InsideFootprint {
			out = append(out, c)
		}
	}
	return out
}

// AllCells returns every cell that lies inside the footprint.
func (f *Frame) AllCells() []Cell {
	var out []Cell
	for _, c := range f.Cells {
		if c.InsideFootprint {
			out = append(out, c)
		}
	}
	return out
}

func toSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// Build derives the Frame from a normalized intent (spec section 4.1).
func Build(n *intent.Normalized) (*Frame, error) {
	bbox := n.Footprint.BoundingBox()

	bands, err := buildBands(n, bbox)
	if err != nil {
		return nil, fmt.Errorf("building bands: %w", err)
	}
	depths, err := buildDepths(n, bbox)
	if err != nil {
		return nil, fmt.Errorf("building depths: %w", err)
	}

	var cells []Cell
	for _, b := range bands {
		for _, d := range depths {
			rect := geom.NewRect(b.X1, d.Y1, b.X2, d.Y2)
			cells = append(cells, Cell{
				BandID:          b.ID,
				DepthID:         d.ID,
				Rect:            rect,
				InsideFootprint: cellInsideFootprint(n.Footprint, rect),
			})
		}
	}

	return &Frame{
		Footprint:  n.Footprint,
		Bands:      bands,
		Depths:     depths,
		Cells:      cells,
		FrontEdge:  n.FrontEdge,
		GardenEdge: n.GardenEdge,
	}, nil
}

// cellInsideFootprint computes inside_footprint per spec section 4.1: for
// rect footprints every cell is inside by construction; for polygon
// footprints the cell's sample points (center + 8 inset) must include at
// least one strictly inside the polygon.
func cellInsideFootprint(fp geom.Footprint, rect geom.Rect) bool {
	if !fp.IsPolygon {
		return true
	}
	return geom.RectOverlapsPolygonInterior(rect, fp.Polygon)
}

func buildBands(n *intent.Normalized, bbox geom.Rect) ([]Band, error) {
	totalWidth := bbox.Width()

	if len(n.Bands) > 0 {
		return distributeBands(n.Bands, bbox.X1, totalWidth)
	}

	// Derive from room preferences (spec section 4.1).
	hasLeft, hasRight, hasCenter := false, false, false
	for _, r := range n.Rooms {
		for _, pref := range r.PreferredBands {
			switch pref {
			case "left":
				hasLeft = true
			case "right":
				hasRight = true
			case "center":
				hasCenter = true
			}
		}
	}

	switch {
	case hasCenter:
		w1 := geom.Snap(totalWidth * 0.30)
		w2 := geom.Snap(totalWidth * 0.40)
		x1 := bbox.X1
		x2 := geom.Snap(x1 + w1)
		x3 := geom.Snap(x2 + w2)
		x4 := bbox.X2
		return []Band{
			{ID: "left", X1: x1, X2: x2, Width: x2 - x1},
			{ID: "center", X1: x2, X2: x3, Width: x3 - x2},
			{ID: "right", X1: x3, X2: x4, Width: x4 - x3},
		}, nil
	case hasLeft && hasRight:
		w1 := geom.Snap(totalWidth * 0.40)
		x1 := bbox.X1
		x2 := geom.Snap(x1 + w1)
		x3 := bbox.X2
		return []Band{
			{ID: "left", X1: x1, X2: x2, Width: x2 - x1},
			{ID: "right", X1: x2, X2: x3, Width: x3 - x2},
		}, nil
	default:
		return []Band{{ID: "full", X1: bbox.X1, X2: bbox.X2, Width: totalWidth}}, nil
	}
}

func distributeBands(specs []intent.BandSpec, origin, total float64) ([]Band, error) {
	targets := make([]float64, len(specs))
	sumTarget := 0.0
	for i, s := range specs {
		t := s.TargetWidth
		if t <= 0 {
			t = total / float64(len(specs))
		}
		targets[i] = t
		sumTarget += t
	}
	if sumTarget <= 0 {
		return nil, fmt.Errorf("band widths sum to zero")
	}

	bands := make([]Band, len(specs))
	x := origin
	for i, s := range specs {
		w := total * targets[i] / sumTarget
		if s.Min > 0 && w < s.Min {
			w = s.Min
		}
		if s.Max > 0 && w > s.Max {
			w = s.Max
		}
		x1 := geom.Snap(x)
		x2 := geom.Snap(x + w)
		if i == len(specs)-1 {
			x2 = geom.Snap(origin + total) // last band absorbs rounding remainder
		}
		bands[i] = Band{ID: s.ID, X1: x1, X2: x2, Width: x2 - x1}
		x = x2
	}
	return bands, nil
}

func buildDepths(n *intent.Normalized, bbox geom.Rect) ([]Depth, error) {
	totalDepth := bbox.Height()
	reversed := n.FrontEdge == geom.South || n.FrontEdge == geom.East

	if len(n.Depths) > 0 {
		specs := n.Depths
		if reversed {
			specs = reverseDepthSpecs(specs)
		}
		return distributeDepths(specs, bbox.Y1, totalDepth)
	}

	return []Depth{{ID: "full", Y1: bbox.Y1, Y2: bbox.Y2, Depth: totalDepth}}, nil
}

func reverseDepthSpecs(in []intent.DepthSpec) []intent.DepthSpec {
	out := make([]intent.DepthSpec, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}

func distributeDepths(specs []intent.DepthSpec, origin, total float64) ([]Depth, error) {
	targets := make([]float64, len(specs))
	sumTarget := 0.0
	for i, s := range specs {
		t := s.TargetDepth
		if t <= 0 {
			t = total / float64(len(specs))
		}
		targets[i] = t
		sumTarget += t
	}
	if sumTarget <= 0 {
		return nil, fmt.Errorf("depth zones sum to zero")
	}

	depths := make([]Depth, len(specs))
	y := origin
	for i, s := range specs {
		h := total * targets[i] / sumTarget
		if s.Min > 0 && h < s.Min {
			h = s.Min
		}
		if s.Max > 0 && h > s.Max {
			h = s.Max
		}
		y1 := geom.Snap(y)
		y2 := geom.Snap(y + h)
		if i == len(specs)-1 {
			y2 = geom.Snap(origin + total)
		}
		depths[i] = Depth{ID: s.ID, Y1: y1, Y2: y2, Depth: y2 - y1}
		y = y2
	}
	return depths, nil
}
