// Package openings derives walls from placed rooms and places doors and
// windows on them, honoring access rules and the single-door-service-room
// rule (spec section 4.6).
package openings

import (
	"sort"

	"github.com/dshills/floorplan/pkg/frame"
	"github.com/dshills/floorplan/pkg/geom"
	"github.com/dshills/floorplan/pkg/planstate"
)

// Wall is one candidate wall segment: either a shared wall between two
// rooms, or an exterior/interior remainder belonging to one room.
type Wall struct {
	ID         string
	RoomA      string
	RoomB      string // "" if not shared
	Edge       geom.Edge // relative to RoomA
	Lo, Hi     float64   // segment extent along the wall's axis, in meters
	IsExterior bool
}

// Length returns the wall segment's length.
func (w Wall) Length() float64 { return w.Hi - w.Lo }

// axisCoord returns the coordinate of the wall along its fixed axis
// (the y value for N/S walls, the x value for E/W walls) and the
// perpendicular range [Lo,Hi] is along the other axis.
func axisCoord(r geom.Rect, e geom.Edge) float64 {
	switch e {
	case geom.North:
		return r.Y1
	case geom.South:
		return r.Y2
	case geom.East:
		return r.X2
	default: // West
		return r.X1
	}
}

func perpRange(r geom.Rect, e geom.Edge) (float64, float64) {
	switch e {
	case geom.North, geom.South:
		return r.X1, r.X2
	default:
		return r.Y1, r.Y2
	}
}

// DeriveWalls builds the wall list for every placed room (spec section
// 4.6): each of a room's four edges becomes a wall segment; collinear
// overlapping edges between two rooms split into a shared wall plus
// non-overlapping remainders; walls on the footprint boundary are flagged
// exterior.
func DeriveWalls(f *frame.Frame, ps *planstate.PlanState) []Wall {
	var walls []Wall
	idCounter := 0
	nextID := func() string {
		idCounter++
		return geomWallID(idCounter)
	}

	rooms := ps.OrderedPlaced()
	claimed := make(map[string][]segment) // roomID+edge -> consumed [lo,hi] ranges

	for i, room := range rooms {
		for _, e := range []geom.Edge{geom.North, geom.South, geom.East, geom.West} {
			lo, hi := perpRange(room.Rect, e)
			key := room.ID + e.String()
			for j, other := range rooms {
				if i == j {
					continue
				}
				oppEdge := e.Opposite()
				if axisCoord(room.Rect, e) != axisCoord(other.Rect, oppEdge) {
					continue
				}
				oLo, oHi := perpRange(other.Rect, oppEdge)
				sLo, sHi := maxF(lo, oLo), minF(hi, oHi)
				if sHi-sLo <= geom.Epsilon {
					continue
				}
				if room.ID < other.ID { // emit the shared wall once, from the lexicographically first room
					walls = append(walls, Wall{ID: nextID(), RoomA: room.ID, RoomB: other.ID, Edge: e, Lo: sLo, Hi: sHi})
				}
				claimed[key] = append(claimed[key], segment{sLo, sHi})
			}

			remainders := subtractSegments(lo, hi, claimed[key])
			bbox := f.Footprint.BoundingBox()
			exterior := room.Rect.TouchesEdge(bbox, e) && f.Footprint.TouchesExterior(room.Rect)
			for _, rem := range remainders {
				if rem.hi-rem.lo <= geom.Epsilon {
					continue
				}
				walls = append(walls, Wall{ID: nextID(), RoomA: room.ID, Edge: e, Lo: rem.lo, Hi: rem.hi, IsExterior: exterior})
			}
		}
	}

	sort.SliceStable(walls, func(i, j int) bool { return walls[i].ID < walls[j].ID })
	return walls
}

type segment struct{ lo, hi float64 }

func subtractSegments(lo, hi float64, claimed []segment) []segment {
	if len(claimed) == 0 {
		return []segment{{lo, hi}}
	}
	sort.Slice(claimed, func(i, j int) bool { return claimed[i].lo < claimed[j].lo })
	var out []segment
	cursor := lo
	for _, c := range claimed {
		if c.lo > cursor {
			out = append(out, segment{cursor, minF(c.lo, hi)})
		}
		if c.hi > cursor {
			cursor = c.hi
		}
	}
	if cursor < hi {
		out = append(out, segment{cursor, hi})
	}
	return out
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func geomWallID(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	if n < len(letters) {
		return "wall_" + string(letters[n-1])
	}
	return "wall_" + itoa(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
