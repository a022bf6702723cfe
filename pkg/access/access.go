// Package access selects the entry room, builds the undirected door graph,
// and performs BFS reachability validation (spec section 4.8).
package access

import (
	"fmt"
	"sort"

	"github.com/dshills/floorplan/pkg/frame"
	"github.com/dshills/floorplan/pkg/intent"
	"github.com/dshills/floorplan/pkg/planstate"
)

// SelectEntry implements spec section 4.8's entry selection, first match
// wins: the room with has_exterior_door; a foyer; a circulation room
// touching front_edge; any room touching front_edge.
func SelectEntry(f *frame.Frame, ps *planstate.PlanState) (string, bool) {
	bbox := f.Footprint.BoundingBox()

	for _, id := range sortedIDs(ps) {
		if ps.Placed[id].Spec.HasExteriorDoor {
			return id, true
		}
	}
	for _, id := range sortedIDs(ps) {
		if ps.Placed[id].Spec.Type == intent.Foyer {
			return id, true
		}
	}
	for _, id := range sortedIDs(ps) {
		p := ps.Placed[id]
		if p.Spec.Category() == intent.CategoryCirculation && p.Rect.TouchesEdge(bbox, f.FrontEdge) {
			return id, true
		}
	}
	for _, id := range sortedIDs(ps) {
		p := ps.Placed[id]
		if p.Rect.TouchesEdge(bbox, f.FrontEdge) {
			return id, true
		}
	}
	return "", false
}

func sortedIDs(ps *planstate.PlanState) []string {
	ids := make([]string, 0, len(ps.Placed))
	for id := range ps.Placed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Graph is the undirected door graph: vertices are placed-room ids, edges
// are interior doors. Windows are ignored.
type Graph struct {
	adjacency map[string]map[string]bool
}

// BuildGraph constructs the door graph from a PlanState's interior doors.
func BuildGraph(ps *planstate.PlanState) *Graph {
	g := &Graph{adjacency: make(map[string]map[string]bool)}
	for id := range ps.Placed {
		g.adjacency[id] = make(map[string]bool)
	}
	for _, o := range ps.Openings {
		if o.Kind != planstate.Door || o.IsExterior || o.ConnectsTo == "" {
			continue
		}
		g.addEdge(o.RoomID, o.ConnectsTo)
	}
	return g
}

func (g *Graph) addEdge(a, b string) {
	if g.adjacency[a] == nil {
		g.adjacency[a] = make(map[string]bool)
	}
	if g.adjacency[b] == nil {
		g.adjacency[b] = make(map[string]bool)
	}
	g.adjacency[a][b] = true
	g.adjacency[b][a] = true
}

// Reachable runs BFS from start and returns the set of reached ids.
func (g *Graph) Reachable(start string) map[string]bool {
	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		neighbors := make([]string, 0, len(g.adjacency[cur]))
		for n := range g.adjacency[cur] {
			neighbors = append(neighbors, n)
		}
		sort.Strings(neighbors)
		for _, n := range neighbors {
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return visited
}

// UnreachableRoomsError reports placed rooms the BFS from the entry never
// reached (spec section 4.8, section 7).
type UnreachableRoomsError struct {
	Unreachable []string
}

func (e *UnreachableRoomsError) Error() string {
	return fmt.Sprintf("unreachable rooms from entry: %v", e.Unreachable)
}

// Validate runs the full spec section 4.8 pipeline: select the entry,
// build the door graph, BFS, and check every placed room is reached.
func Validate(f *frame.Frame, ps *planstate.PlanState, requireAllReachable bool) (entryID string, err error) {
	entryID, ok := SelectEntry(f, ps)
	if !ok {
		return "", fmt.Errorf("no entry room found: no room has an exterior door, is a foyer, or touches the front edge")
	}

	g := BuildGraph(ps)
	reached := g.Reachable(entryID)

	if !requireAllReachable {
		return entryID, nil
	}

	var unreachable []string
	for _, id := range sortedIDs(ps) {
		if !reached[id] {
			unreachable = append(unreachable, id)
		}
	}
	if len(unreachable) > 0 {
		return entryID, &UnreachableRoomsError{Unreachable: unreachable}
	}
	return entryID, nil
}
