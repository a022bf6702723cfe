package openings

import (
	"sort"

	"github.com/dshills/floorplan/pkg/frame"
	"github.com/dshills/floorplan/pkg/geom"
	"github.com/dshills/floorplan/pkg/intent"
	"github.com/dshills/floorplan/pkg/planstate"
)

func isGlazingRoom(t intent.RoomType) bool {
	switch t {
	case intent.Living, intent.Bedroom, intent.Office, intent.Dining, intent.Kitchen:
		return true
	default:
		return false
	}
}

// PlaceWindows emits one window per exterior wall of each living-type room
// (spec section 4.6): living, bedroom, office, dining, kitchen. Rooms
// touching garden_edge get a second window if their primary exterior wall
// is on a different edge.
func PlaceWindows(f *frame.Frame, walls []Wall, rooms map[string]intent.RoomSpec, windowWidth float64, ps *planstate.PlanState) {
	byRoom := make(map[string][]Wall)
	for _, w := range walls {
		if w.IsExterior && w.RoomB == "" {
			byRoom[w.RoomA] = append(byRoom[w.RoomA], w)
		}
	}

	roomIDs := make([]string, 0, len(byRoom))
	for id := range byRoom {
		roomIDs = append(roomIDs, id)
	}
	sort.Strings(roomIDs)

	for _, roomID := range roomIDs {
		exteriorWalls := byRoom[roomID]
		spec, ok := rooms[roomID]
		if !ok || !isGlazingRoom(spec.Type) {
			continue
		}

		primaryEdge := geom.North
		placedPrimary := false
		roomRect := ps.Placed[roomID].Rect
		for _, w := range exteriorWalls {
			if w.Length() < windowWidth+0.6 {
				continue
			}
			mid := (w.Lo + w.Hi) / 2
			corner, _ := perpRange(roomRect, w.Edge)
			pos := geom.Snap(mid - windowWidth/2 - corner)
			ps.Openings = append(ps.Openings, planstate.PlacedOpening{
				Kind: planstate.Window, RoomID: roomID, Edge: w.Edge,
				Position: pos, Width: windowWidth, IsExterior: true,
			})
			if !placedPrimary {
				primaryEdge = w.Edge
				placedPrimary = true
			}
		}

		if f.GardenEdge == nil || !placedPrimary {
			continue
		}
		if (spec.Type == intent.Living || spec.Type == intent.Bedroom) && primaryEdge != *f.GardenEdge {
			for _, w := range exteriorWalls {
				if w.Edge == *f.GardenEdge && w.Length() >= windowWidth+0.6 {
					mid := (w.Lo + w.Hi) / 2
					corner, _ := perpRange(roomRect, w.Edge)
					pos := geom.Snap(mid - windowWidth/2 - corner)
					ps.Openings = append(ps.Openings, planstate.PlacedOpening{
						Kind: planstate.Window, RoomID: roomID, Edge: w.Edge,
						Position: pos, Width: windowWidth, IsExterior: true,
					})
					break
				}
			}
		}
	}
}
