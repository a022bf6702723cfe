package geom

import "fmt"

// Footprint is the outer boundary of a building: either a plain rectangle
// or a simple polygon. Its BoundingBox is the "nominal" rect used for
// north/south/east/west edge tests regardless of which variant is active.
type Footprint struct {
	IsPolygon bool
	Rect      Rect
	Polygon   Polygon
}

// NewRectFootprint builds a rectangular footprint.
func NewRectFootprint(r Rect) Footprint {
	return Footprint{IsPolygon: false, Rect: r, Polygon: Polygon{Points: rectCorners(r)}}
}

// NewPolygonFootprint builds a polygon footprint. The polygon must already
// be simple; callers should check Validate().
func NewPolygonFootprint(poly Polygon) Footprint {
	return Footprint{IsPolygon: true, Rect: poly.BoundingBox(), Polygon: poly}
}

func rectCorners(r Rect) []Point {
	return []Point{{r.X1, r.Y1}, {r.X2, r.Y1}, {r.X2, r.Y2}, {r.X1, r.Y2}}
}

// Validate checks the footprint is well-formed: polygon variants must have
// at least 3 points and be simple.
func (f Footprint) Validate() error {
	if !f.IsPolygon {
		if f.Rect.Width() <= 0 || f.Rect.Height() <= 0 {
			return fmt.Errorf("footprint rect must have positive width and height")
		}
		return nil
	}
	if len(f.Polygon.Points) < 3 {
		return fmt.Errorf("footprint polygon must have at least 3 points, got %d", len(f.Polygon.Points))
	}
	if !f.Polygon.IsSimple() {
		return fmt.Errorf("footprint polygon must be simple (non-self-intersecting)")
	}
	return nil
}

// BoundingBox returns the nominal bounding rect, used for N/S/E/W edge
// tests regardless of footprint variant.
func (f Footprint) BoundingBox() Rect { return f.Rect }

// ContainsRect reports whether r is fully inside the footprint: exact
// rect-in-rect for rectangular footprints, sample-point-in-polygon (10%
// inset) for polygon footprints, per spec section 3.
func (f Footprint) ContainsRect(r Rect) bool {
	if !f.IsPolygon {
		return f.Rect.Contains(r)
	}
	return RectInPolygon(r, f.Polygon)
}

// OverlapsInterior reports whether r overlaps the footprint's interior,
// used by the frame builder to flag cells inside/outside a polygon
// footprint.
func (f Footprint) OverlapsInterior(r Rect) bool {
	if !f.IsPolygon {
		return f.Rect.Overlaps(r) || f.Rect.Contains(r)
	}
	return RectOverlapsPolygonInterior(r, f.Polygon)
}

// TouchesExterior reports whether r touches the footprint's actual
// boundary: any of r's four edges against the bounding box for rect
// footprints, or a collinear positive-overlap edge against a polygon edge
// for polygon footprints (per spec section 4.3).
func (f Footprint) TouchesExterior(r Rect) bool {
	if !f.IsPolygon {
		return r.TouchesEdge(f.Rect, North) || r.TouchesEdge(f.Rect, South) ||
			r.TouchesEdge(f.Rect, East) || r.TouchesEdge(f.Rect, West)
	}
	return RectTouchesPolygonBoundary(r, f.Polygon)
}

// TouchesEdge reports whether r touches the named cardinal edge of the
// footprint's bounding box. must_touch_edge is always evaluated against
// the bounding box, even for polygon footprints — see DESIGN.md
// open-question 1.
func (f Footprint) TouchesEdge(r Rect, e Edge) bool {
	return r.TouchesEdge(f.Rect, e)
}
