// Package candidate generates the scored set of concrete room rectangles
// the placer chooses from for a given room and set of cells (spec section
// 4.2).
package candidate

import (
	"math"
	"sort"

	"github.com/dshills/floorplan/pkg/frame"
	"github.com/dshills/floorplan/pkg/geom"
	"github.com/dshills/floorplan/pkg/intent"
	"github.com/dshills/floorplan/pkg/planstate"
)

// Candidate is one concrete rectangle proposed for a room, along with the
// cell it was generated against and its preliminary score.
type Candidate struct {
	Rect             geom.Rect
	Cell             frame.Cell
	PreliminaryScore float64
}

// Context bundles the extra information the generator needs beyond the
// room and cell list: rooms already placed, the ids the room must be
// adjacent to (including siblings), and area reserved for a not-yet-placed
// attachment.
type Context struct {
	Placed       map[string]*planstate.PlacedRoom
	AdjacentIDs  []string
	ReservedArea float64
}

const (
	gridStep            = geom.GridSize
	cornerBonus         = 2.0
	fullCellEdgeBonus   = 5.0
	exteriorScanBonus   = 5.0
	requiredAdjBonus    = 20.0
	anyAdjBonus         = 3.0
	scorePrelimCorner   = 3.0
	scorePrelimInternal = 4.0
	scorePrelimExternal = 1.0
	scorePrelimExtReq   = 5.0
	scorePrelimEdgeReq  = 8.0
	scorePrelimAdjOK    = 25.0
	scorePrelimAdjShort = -15.0
	scorePrelimAdjNone  = -30.0
	minAdjEdge          = 1.0 // meters; minimum shared edge for "satisfied" adjacency
	dedupeTolerance     = 0.05
)

var sizeScales = []float64{1.0, 0.95, 1.05}
var sizeAspects = []float64{1.0, 0.75, 1.33}

// Generate emits a ranked, deduplicated list of candidates for room against
// cells, following spec section 4.2.
func Generate(room *intent.RoomSpec, cells []frame.Cell, f *frame.Frame, ctx Context, maxCandidates int) []Candidate {
	sizes := sizeVariations(room, ctx.ReservedArea)

	var out []Candidate
	for _, cell := range cells {
		for _, size := range sizes {
			fitted := fitSizeInCell(size, cell.Rect, room)
			for _, pos := range positions(room, fitted, cell, f, ctx) {
				if !passesFilter(pos.rect, cell, ctx) {
					continue
				}
				score := pos.bonus + preliminaryScore(room, pos.rect, cell, f, ctx, pos.touchedInternal, pos.touchedExternal)
				out = append(out, Candidate{Rect: pos.rect, Cell: cell, PreliminaryScore: score})
			}
		}
	}

	out = dedupe(out)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PreliminaryScore > out[j].PreliminaryScore })
	if maxCandidates > 0 && len(out) > maxCandidates {
		out = out[:maxCandidates]
	}
	return out
}

type size struct{ w, h float64 }

// sizeVariations implements spec section 4.2 step 1.
func sizeVariations(room *intent.RoomSpec, reservedArea float64) []size {
	targetArea := room.TargetArea
	if targetArea == 0 {
		targetArea = room.MinArea * 1.1
	}
	if reservedArea > 0 {
		cap := targetArea - reservedArea
		if cap < room.MinArea {
			cap = room.MinArea
		}
		targetArea = cap
	}

	var out []size
	seen := map[size]bool{}
	add := func(w, h float64) {
		w, h = geom.Snap(w), geom.Snap(h)
		s := size{w, h}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	if room.FillCell {
		// Caller fits this against the actual cell in fitSizeInCell; here we
		// just emit markers: full size plus two 10%-shrunk variants.
		add(targetArea, -1) // sentinel h=-1 means "derive from cell in fitSizeInCell"
		add(targetArea*0.9, -1)
		add(targetArea*0.81, -1)
		return out
	}

	for _, scale := range sizeScales {
		area := targetArea * scale
		for _, aspect := range sizeAspects {
			if room.Aspect.HasAspect() {
				if aspect < room.Aspect.Min || aspect > room.Aspect.Max {
					continue
				}
			}
			w := math.Sqrt(area * aspect)
			h := math.Sqrt(area / aspect)
			w, h = clampDims(w, h, room)
			add(w, h)
			add(h, w) // rotated pair
		}
	}
	return out
}

func clampDims(w, h float64, room *intent.RoomSpec) (float64, float64) {
	if room.MinWidth > 0 && w < room.MinWidth {
		w = room.MinWidth
	}
	if room.MaxWidth > 0 && w > room.MaxWidth {
		w = room.MaxWidth
	}
	if room.MinHeight > 0 && h < room.MinHeight {
		h = room.MinHeight
	}
	if room.MaxHeight > 0 && h > room.MaxHeight {
		h = room.MaxHeight
	}
	return w, h
}

// fitSizeInCell resolves FillCell's sentinel sizes against the actual cell
// and refits any size that overflows the cell by shrinking the long side,
// keeping area >= 0.95*min_area (spec section 4.2 step 1).
func fitSizeInCell(s size, cellRect geom.Rect, room *intent.RoomSpec) size {
	w, h := s.w, s.h
	if h < 0 {
		// FillCell sentinel: w carries the target area fraction.
		targetArea := w
		cw, ch := cellRect.Width(), cellRect.Height()
		cellArea := cw * ch
		scale := 1.0
		if cellArea > 0 {
			scale = math.Sqrt(targetArea / cellArea)
		}
		w, h = cw*math.Min(scale, 1.0), ch*math.Min(scale, 1.0)
		w, h = clampDims(w, h, room)
		return size{geom.Snap(w), geom.Snap(h)}
	}

	minArea := room.MinArea * 0.95
	if w > cellRect.Width() {
		newW := cellRect.Width()
		newArea := newW * h
		if newArea < minArea && newW > 0 {
			h = minArea / newW
		}
		w = newW
	}
	if h > cellRect.Height() {
		newH := cellRect.Height()
		newArea := w * newH
		if newArea < minArea && newH > 0 {
			w = minArea / newH
		}
		h = newH
	}
	return size{geom.Snap(w), geom.Snap(h)}
}

type placement struct {
	rect            geom.Rect
	bonus           float64
	touchedInternal bool
	touchedExternal bool
}

// positions implements spec section 4.2 step 2.
func positions(room *intent.RoomSpec, s size, cell frame.Cell, f *frame.Frame, ctx Context) []placement {
	var out []placement
	cr := cell.Rect
	w, h := s.w, s.h
	if w <= 0 || h <= 0 {
		return nil
	}

	addAt := func(x1, y1, bonus float64) {
		r := geom.NewRect(x1, y1, x1+w, y1+h)
		out = append(out, placement{rect: r, bonus: bonus})
	}

	// Four cell corners, bonus +2.
	addAt(cr.X1, cr.Y1, cornerBonus)
	addAt(cr.X2-w, cr.Y1, cornerBonus)
	addAt(cr.X1, cr.Y2-h, cornerBonus)
	addAt(cr.X2-w, cr.Y2-h, cornerBonus)

	// Full-cell-width, cell-edge-aligned positions, bonus +5.
	if math.Abs(w-cr.Width()) <= geom.Epsilon {
		addAt(cr.X1, cr.Y1, fullCellEdgeBonus)
		addAt(cr.X1, cr.Y2-h, fullCellEdgeBonus)
	}
	if math.Abs(h-cr.Height()) <= geom.Epsilon {
		addAt(cr.X1, cr.Y1, fullCellEdgeBonus)
		addAt(cr.X2-w, cr.Y1, fullCellEdgeBonus)
	}

	// must_touch_exterior: scan along each footprint-boundary cell edge.
	if room.MustTouchExterior {
		step := gridStep * 4
		for _, e := range []geom.Edge{geom.North, geom.South, geom.East, geom.West} {
			if !cell.Rect.TouchesEdge(f.Footprint.BoundingBox(), e) {
				continue
			}
			switch e {
			case geom.North, geom.South:
				y1 := cr.Y1
				if e == geom.South {
					y1 = cr.Y2 - h
				}
				for x := cr.X1; x+w <= cr.X2+geom.Epsilon; x += step {
					addAt(math.Min(x, cr.X2-w), y1, exteriorScanBonus)
				}
			case geom.East, geom.West:
				x1 := cr.X1
				if e == geom.East {
					x1 = cr.X2 - w
				}
				for y := cr.Y1; y+h <= cr.Y2+geom.Epsilon; y += step {
					addAt(x1, math.Min(y, cr.Y2-h), exteriorScanBonus)
				}
			}
		}
	}

	// Adjacent-to-required positions: against each required room's faces.
	for _, id := range ctx.AdjacentIDs {
		other, ok := ctx.Placed[id]
		if !ok {
			continue
		}
		out = append(out, adjacentPositions(other.Rect, w, h, cr, requiredAdjBonus)...)
	}

	// Adjacent-to-any positions: against every placed room's faces, in id
	// order so the candidate list does not depend on map iteration.
	anyIDs := make([]string, 0, len(ctx.Placed))
	for id := range ctx.Placed {
		anyIDs = append(anyIDs, id)
	}
	sort.Strings(anyIDs)
	for _, id := range anyIDs {
		out = append(out, adjacentPositions(ctx.Placed[id].Rect, w, h, cr, anyAdjBonus)...)
	}

	return out
}

// adjacentPositions emits the four positions placing a w×h rect exactly
// against other's N/S/E/W face, clamped perpendicular extent into cr, with
// up to 1m tolerance outside cr (spec section 4.2 step 2).
func adjacentPositions(other geom.Rect, w, h float64, cr geom.Rect, bonus float64) []placement {
	const tol = 1.0
	clamp := func(v, lo, hi float64) float64 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	var out []placement
	// North face of other: candidate sits above other, its south edge = other's north edge.
	y1 := other.Y1 - h
	x1 := clamp(other.X1, cr.X1-tol, cr.X2-w+tol)
	out = append(out, placement{rect: geom.NewRect(x1, y1, x1+w, y1+h), bonus: bonus})
	// South face: candidate below other.
	y1 = other.Y2
	out = append(out, placement{rect: geom.NewRect(x1, y1, x1+w, y1+h), bonus: bonus})
	// East face: candidate right of other.
	x1 = other.X2
	y1 = clamp(other.Y1, cr.Y1-tol, cr.Y2-h+tol)
	out = append(out, placement{rect: geom.NewRect(x1, y1, x1+w, y1+h), bonus: bonus})
	// West face: candidate left of other.
	x1 = other.X1 - w
	out = append(out, placement{rect: geom.NewRect(x1, y1, x1+w, y1+h), bonus: bonus})
	return out
}

// passesFilter implements spec section 4.2 step 3 (the parts owned by the
// generator itself; full hard-constraint rejection lives in pkg/constraint).
func passesFilter(r geom.Rect, cell frame.Cell, ctx Context) bool {
	const tol = 1.0
	tolerant := geom.NewRect(cell.Rect.X1-tol, cell.Rect.Y1-tol, cell.Rect.X2+tol, cell.Rect.Y2+tol)
	if !tolerant.Contains(r) {
		return false
	}
	for _, p := range ctx.Placed {
		if p.Rect.Overlaps(r) {
			return false
		}
	}
	return true
}

// preliminaryScore implements spec section 4.2 step 4's within-generator
// ranking score (excluding the position bonus, added separately by caller).
func preliminaryScore(room *intent.RoomSpec, r geom.Rect, cell frame.Cell, f *frame.Frame, ctx Context, _, _ bool) float64 {
	score := 0.0

	if onCellCorner(r, cell.Rect) {
		score += scorePrelimCorner
	}

	internalTouch, externalTouch := edgeTouches(r, cell.Rect, f)
	if internalTouch {
		score += scorePrelimInternal
	}
	if externalTouch {
		score += scorePrelimExternal
	}

	if room.MustTouchExterior && f.Footprint.TouchesExterior(r) {
		score += scorePrelimExtReq
	}
	if room.MustTouchEdge != nil {
		if e, ok := geom.ParseEdge(*room.MustTouchEdge); ok && f.Footprint.TouchesEdge(r, e) {
			score += scorePrelimEdgeReq
		}
	}

	if len(ctx.AdjacentIDs) > 0 {
		satisfied := 0
		bestShared := 0.0
		anyShort := false
		for _, id := range ctx.AdjacentIDs {
			other, ok := ctx.Placed[id]
			if !ok {
				continue
			}
			shared, _, ok := geom.SharedEdgeLength(r, other.Rect)
			if !ok {
				continue
			}
			if shared >= minAdjEdge {
				satisfied++
				score += scorePrelimAdjOK + shared
				if shared > bestShared {
					bestShared = shared
				}
			} else {
				anyShort = true
			}
		}
		if satisfied == 0 {
			if anyShort {
				score += scorePrelimAdjShort
			} else {
				score += scorePrelimAdjNone
			}
		}
	}

	targetArea := room.TargetArea
	if targetArea == 0 {
		targetArea = room.MinArea * 1.1
	}
	if targetArea > 0 {
		score -= 5 * math.Abs(r.Area()-targetArea) / targetArea
	}

	if r.Aspect() > 1.67 {
		score -= 2
	}

	return score
}

func onCellCorner(r, cell geom.Rect) bool {
	atX := math.Abs(r.X1-cell.X1) <= geom.Epsilon || math.Abs(r.X2-cell.X2) <= geom.Epsilon
	atY := math.Abs(r.Y1-cell.Y1) <= geom.Epsilon || math.Abs(r.Y2-cell.Y2) <= geom.Epsilon
	return atX && atY
}

// edgeTouches reports whether r touches an internal (band/depth boundary
// that is not also a footprint edge) or external (footprint boundary) edge
// of its cell.
func edgeTouches(r, cell geom.Rect, f *frame.Frame) (internal, external bool) {
	bbox := f.Footprint.BoundingBox()
	for _, e := range []geom.Edge{geom.North, geom.South, geom.East, geom.West} {
		if !r.TouchesEdge(cell, e) {
			continue
		}
		if cell.TouchesEdge(bbox, e) {
			external = true
		} else {
			internal = true
		}
	}
	return
}

func dedupe(cands []Candidate) []Candidate {
	var out []Candidate
	for _, c := range cands {
		dup := false
		for _, o := range out {
			if rectsClose(c.Rect, o.Rect) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}

func rectsClose(a, b geom.Rect) bool {
	return math.Abs(a.X1-b.X1) <= dedupeTolerance && math.Abs(a.Y1-b.Y1) <= dedupeTolerance &&
		math.Abs(a.X2-b.X2) <= dedupeTolerance && math.Abs(a.Y2-b.Y2) <= dedupeTolerance
}
