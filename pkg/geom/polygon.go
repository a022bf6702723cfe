package geom

import "math"

// Polygon is a simple (non-self-intersecting) polygon, vertices in order.
type Polygon struct {
	Points []Point
}

// BoundingBox returns the axis-aligned bounding box of the polygon.
func (p Polygon) BoundingBox() Rect {
	if len(p.Points) == 0 {
		return Rect{}
	}
	minX, minY := p.Points[0].X, p.Points[0].Y
	maxX, maxY := minX, minY
	for _, pt := range p.Points[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return NewRect(minX, minY, maxX, maxY)
}

// ContainsPoint reports whether p lies strictly inside the polygon, using
// the standard ray-casting (even-odd) rule.
func (poly Polygon) ContainsPoint(p Point) bool {
	n := len(poly.Points)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		pi, pj := poly.Points[i], poly.Points[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xCross := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < xCross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// IsSimple reports whether the polygon has at least 3 points and no two
// non-adjacent edges intersect.
func (poly Polygon) IsSimple() bool {
	n := len(poly.Points)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a1, a2 := poly.Points[i], poly.Points[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// Skip edges adjacent to edge i (share an endpoint).
			if j == i || (j+1)%n == i {
				continue
			}
			b1, b2 := poly.Points[j], poly.Points[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return false
			}
		}
	}
	return true
}

func segmentsIntersect(p1, p2, p3, p4 Point) bool {
	d1 := cross(sub(p4, p3), sub(p1, p3))
	d2 := cross(sub(p4, p3), sub(p2, p3))
	d3 := cross(sub(p2, p1), sub(p3, p1))
	d4 := cross(sub(p2, p1), sub(p4, p1))
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return false
}

func sub(a, b Point) Point { return Point{a.X - b.X, a.Y - b.Y} }
func cross(a, b Point) float64 { return a.X*b.Y - a.Y*b.X }

// insetSamplePoints returns the center plus 8 inset points (10% inset from
// each corner and each edge midpoint) of r, per spec section 4.1.
func insetSamplePoints(r Rect, inset float64) []Point {
	w := r.Width()
	h := r.Height()
	ix := w * inset
	iy := h * inset
	x1, y1, x2, y2 := r.X1, r.Y1, r.X2, r.Y2
	cx, cy := (x1+x2)/2, (y1+y2)/2
	return []Point{
		{X: cx, Y: cy},
		{X: x1 + ix, Y: y1 + iy}, // NW corner inset
		{X: x2 - ix, Y: y1 + iy}, // NE corner inset
		{X: x1 + ix, Y: y2 - iy}, // SW corner inset
		{X: x2 - ix, Y: y2 - iy}, // SE corner inset
		{X: cx, Y: y1 + iy},      // N edge midpoint inset
		{X: cx, Y: y2 - iy},      // S edge midpoint inset
		{X: x1 + ix, Y: cy},      // W edge midpoint inset
		{X: x2 - ix, Y: cy},      // E edge midpoint inset
	}
}

// RectOverlapsPolygonInterior reports whether at least one of the rect's
// center-plus-8-inset sample points (10% inset) falls strictly inside the
// polygon. Used by the frame builder to decide whether a cell is inside a
// polygon footprint.
func RectOverlapsPolygonInterior(r Rect, poly Polygon) bool {
	for _, p := range insetSamplePoints(r, 0.10) {
		if poly.ContainsPoint(p) {
			return true
		}
	}
	return false
}

// RectInPolygon reports whether r is contained in poly, approximated by
// requiring every sample point (center plus 8 inset at 10%) to lie inside
// the polygon, per spec section 3's containment rule for polygon
// footprints.
func RectInPolygon(r Rect, poly Polygon) bool {
	for _, p := range insetSamplePoints(r, 0.10) {
		if !poly.ContainsPoint(p) {
			return false
		}
	}
	return true
}

// RectTouchesPolygonBoundary reports whether one of r's four edges lies
// collinearly on a polygon edge with a positive-length overlap, i.e. r
// touches the polygon's actual boundary (as opposed to merely its bounding
// box — see Footprint.TouchesEdge for that).
func RectTouchesPolygonBoundary(r Rect, poly Polygon) bool {
	n := len(poly.Points)
	edges := []Rect{r.EdgeRect(North), r.EdgeRect(South), r.EdgeRect(East), r.EdgeRect(West)}
	for i := 0; i < n; i++ {
		a := poly.Points[i]
		b := poly.Points[(i+1)%n]
		for _, re := range edges {
			if rectEdgeCollinearOverlap(re, a, b) {
				return true
			}
		}
	}
	return false
}

// rectEdgeCollinearOverlap reports whether the degenerate rect edge re
// (a horizontal or vertical segment) is collinear with segment a-b and
// overlaps it by a positive length.
func rectEdgeCollinearOverlap(re Rect, a, b Point) bool {
	const eps = Epsilon
	horizontal := math.Abs(re.Y1-re.Y2) <= eps
	if horizontal {
		if math.Abs(a.Y-b.Y) > eps || math.Abs(a.Y-re.Y1) > eps {
			return false
		}
		lo := math.Max(math.Min(a.X, b.X), re.X1)
		hi := math.Min(math.Max(a.X, b.X), re.X2)
		return hi-lo > eps
	}
	vertical := math.Abs(re.X1-re.X2) <= eps
	if vertical {
		if math.Abs(a.X-b.X) > eps || math.Abs(a.X-re.X1) > eps {
			return false
		}
		lo := math.Max(math.Min(a.Y, b.Y), re.Y1)
		hi := math.Min(math.Max(a.Y, b.Y), re.Y2)
		return hi-lo > eps
	}
	return false
}
