package placer

import (
	"sort"

	"github.com/dshills/floorplan/pkg/intent"
)

// attachment pairs an attached (ensuite/closet/single-adjacency bath) room
// with the owner it must be spliced after.
type attachment struct {
	owner    string
	attached intent.RoomSpec
}

// isSingleAdjacencyBathToBedroom reports whether r is a bath whose sole
// adjacency target is a bedroom — the third attached-room case alongside
// ensuites and closets (spec section 4.5).
func isSingleAdjacencyBathToBedroom(r intent.RoomSpec, byID map[string]intent.RoomSpec) bool {
	if r.Type != intent.Bath || len(r.AdjacentTo) != 1 {
		return false
	}
	owner, ok := byID[r.AdjacentTo[0]]
	return ok && owner.Type == intent.Bedroom
}

// partition splits rooms into standalone rooms and attachments, per spec
// section 4.5.
func partition(rooms []intent.RoomSpec) (standalone []intent.RoomSpec, attachments []attachment) {
	byID := make(map[string]intent.RoomSpec, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}
	for _, r := range rooms {
		if r.IsAttachable() || isSingleAdjacencyBathToBedroom(r, byID) {
			owner := ""
			if len(r.AdjacentTo) > 0 {
				owner = r.AdjacentTo[0]
			}
			attachments = append(attachments, attachment{owner: owner, attached: r})
			continue
		}
		standalone = append(standalone, r)
	}
	return standalone, attachments
}

// circulationIDs returns the set of room ids that are circulation rooms.
func circulationIDs(rooms []intent.RoomSpec) map[string]bool {
	set := make(map[string]bool)
	for _, r := range rooms {
		if r.Category() == intent.CategoryCirculation {
			set[r.ID] = true
		}
	}
	return set
}

// priority computes the spec section 4.5 ordering score for a standalone
// room.
func priority(r intent.RoomSpec, circulation map[string]bool) float64 {
	p := r.MinArea

	isCirculation := r.Category() == intent.CategoryCirculation
	switch {
	case isCirculation && r.HasExteriorDoor:
		p += 500
	case isCirculation:
		p += 300
	}

	if r.MustTouchEdge != nil {
		p += 100
	}
	if r.MustTouchExterior {
		p += 50
	}

	adjToCirculation := false
	for _, id := range r.AdjacentTo {
		if circulation[id] {
			adjToCirculation = true
			break
		}
	}
	if adjToCirculation {
		p += 80
	}

	p += 5 * float64(len(r.AdjacentTo))

	zoneAxes := 0
	if len(r.PreferredBands) > 0 {
		zoneAxes++
	}
	if len(r.PreferredDepths) > 0 {
		zoneAxes++
	}
	p += 5 * float64(zoneAxes)

	if r.Type == intent.Bath && adjToCirculation {
		p += 90
	} else if r.Type == intent.Bath || r.Type == intent.Laundry {
		p -= 20
	}

	return p
}

// Order computes the full placement order for spec section 4.5: standalone
// rooms sorted by descending priority (stable, ties by input order), with
// each owner's attached rooms spliced immediately after it.
func Order(rooms []intent.RoomSpec) []intent.RoomSpec {
	standalone, attachments := partition(rooms)
	circulation := circulationIDs(rooms)

	type scored struct {
		room intent.RoomSpec
		pri  float64
	}
	scoredRooms := make([]scored, len(standalone))
	for i, r := range standalone {
		scoredRooms[i] = scored{room: r, pri: priority(r, circulation)}
	}
	sort.SliceStable(scoredRooms, func(i, j int) bool { return scoredRooms[i].pri > scoredRooms[j].pri })

	byOwner := make(map[string][]intent.RoomSpec, len(attachments))
	for _, a := range attachments {
		byOwner[a.owner] = append(byOwner[a.owner], a.attached)
	}

	out := make([]intent.RoomSpec, 0, len(rooms))
	for _, s := range scoredRooms {
		out = append(out, s.room)
		out = append(out, byOwner[s.room.ID]...)
		delete(byOwner, s.room.ID)
	}
	// Any attachments whose owner never made it into standalone (owner
	// itself attached, or missing) are appended in original order.
	for _, a := range attachments {
		if _, pending := byOwner[a.owner]; pending {
			out = append(out, a.attached)
			delete(byOwner, a.owner)
		}
	}
	return out
}
