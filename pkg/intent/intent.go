package intent

import (
	"fmt"

	"github.com/dshills/floorplan/pkg/geom"
)

// Defaults holds the fallback dimensions applied during normalization when
// an intent document omits them (spec section 4.1). All fields are in
// centimeters as authored; Normalize converts them to meters.
type Defaults struct {
	DoorWidthCM         float64
	WindowWidthCM       float64
	ExteriorDoorWidthCM float64
	CorridorWidthCM     float64
}

// DefaultDefaults returns the built-in fallback values (spec section 4.1).
func DefaultDefaults() Defaults {
	return Defaults{
		DoorWidthCM:         90,
		WindowWidthCM:       120,
		ExteriorDoorWidthCM: 100,
		CorridorWidthCM:     110,
	}
}

// Weights holds the plan-level soft scoring weights (spec section 4.4).
// A zero value means "unset"; Normalize fills in the documented defaults.
type Weights struct {
	Adjacency      float64
	Compactness    float64
	AspectFit      float64
	AreaFit        float64
	ExteriorAccess float64
	CorridorCost   float64
	Balance        float64
}

// DefaultWeights returns the built-in scoring weights (spec section 4.4).
func DefaultWeights() Weights {
	return Weights{
		Adjacency:      0.25,
		Compactness:    0.15,
		AspectFit:      0.15,
		AreaFit:        0.15,
		ExteriorAccess: 0.10,
		CorridorCost:   0.10,
		Balance:        0.10,
	}
}

// BandSpec is one caller-authored vertical band: an id and an optional
// target/min/max width in meters (0 means unset).
type BandSpec struct {
	ID                        string
	TargetWidth, Min, Max     float64
}

// DepthSpec is one caller-authored horizontal depth zone: an id and an
// optional target/min/max depth in meters (0 means unset).
type DepthSpec struct {
	ID                        string
	TargetDepth, Min, Max     float64
}

// LayoutIntent is the solver's full, pre-normalization input document (spec
// section 3): a building footprint, the bands/depths describing its
// layout grid, and the list of rooms to place within it.
type LayoutIntent struct {
	FootprintRect    *geom.Rect
	FootprintPolygon *geom.Polygon

	Bands  []BandSpec // caller-ordered bands, left to right; nil means derive
	Depths []DepthSpec // caller-ordered depths, front to back; nil means one full-depth zone (depths are not derived from room preferences)

	FrontEdge  string // raw edge token, resolved during Normalize
	GardenEdge string // raw edge token, resolved during Normalize; optional

	Defaults *Defaults // nil means use DefaultDefaults()

	Rooms []RoomSpec

	AccessRulePreset AccessRulePreset
	AccessRules      []AccessRule // additional rules layered on top of the preset

	Weights *Weights // nil means use DefaultWeights()
}

// Normalized is the resolved, solver-ready form of a LayoutIntent: every
// default applied, every unit converted to meters, every edge token parsed.
type Normalized struct {
	Footprint geom.Footprint

	Bands  []BandSpec
	Depths []DepthSpec

	FrontEdge  geom.Edge
	GardenEdge *geom.Edge

	DoorWidth         float64
	WindowWidth       float64
	ExteriorDoorWidth float64
	CorridorWidth     float64

	Rooms []RoomSpec

	AccessRules []AccessRule

	Weights Weights
}

// Validate checks the intent document for schema-level errors (spec section
// 7, InvalidIntent): exactly one footprint variant, non-empty rooms, unique
// room IDs, valid room specs, a resolvable front edge, and a recognised
// access rule preset.
func (li *LayoutIntent) Validate() error {
	if li.FootprintRect == nil && li.FootprintPolygon == nil {
		return fmt.Errorf("intent must set a footprint (rect or polygon)")
	}
	if li.FootprintRect != nil && li.FootprintPolygon != nil {
		return fmt.Errorf("intent must set exactly one footprint variant, not both")
	}
	if len(li.Rooms) == 0 {
		return fmt.Errorf("intent must list at least one room")
	}
	seen := make(map[string]bool, len(li.Rooms))
	for i := range li.Rooms {
		room := &li.Rooms[i]
		if err := room.Validate(); err != nil {
			return err
		}
		if seen[room.ID] {
			return fmt.Errorf("duplicate room id %q", room.ID)
		}
		seen[room.ID] = true
	}
	for i := range li.Rooms {
		for _, ref := range li.Rooms[i].AdjacentTo {
			if !seen[ref] {
				return fmt.Errorf("room %s: adjacent_to references unknown room %q", li.Rooms[i].ID, ref)
			}
		}
		for _, ref := range li.Rooms[i].AvoidAdjacentTo {
			if !seen[ref] {
				return fmt.Errorf("room %s: avoid_adjacent_to references unknown room %q", li.Rooms[i].ID, ref)
			}
		}
		for _, ref := range li.Rooms[i].NeedsAccessFrom {
			if !seen[ref] {
				return fmt.Errorf("room %s: needs_access_from references unknown room %q", li.Rooms[i].ID, ref)
			}
		}
	}
	if li.FrontEdge != "" {
		if _, ok := geom.ParseEdge(li.FrontEdge); !ok {
			return fmt.Errorf("front_edge %q is not a recognised edge", li.FrontEdge)
		}
	}
	if li.GardenEdge != "" {
		if _, ok := geom.ParseEdge(li.GardenEdge); !ok {
			return fmt.Errorf("garden_edge %q is not a recognised edge", li.GardenEdge)
		}
	}
	if err := li.AccessRulePreset.Validate(); err != nil {
		return err
	}
	for i := range li.Rooms {
		if e := li.Rooms[i].MustTouchEdge; e != nil {
			if _, ok := geom.ParseEdge(*e); !ok {
				return fmt.Errorf("room %s: must_touch_edge %q is not a recognised edge", li.Rooms[i].ID, *e)
			}
		}
	}
	return nil
}

// Normalize resolves a validated LayoutIntent into solver-ready form:
// applies defaults, converts centimeter dimensions to meters, resolves the
// access-rule preset (merging with any caller-supplied rules), and parses
// edge tokens (spec section 4.1's "intent normalizer").
func (li *LayoutIntent) Normalize() (*Normalized, error) {
	if err := li.Validate(); err != nil {
		return nil, err
	}

	var fp geom.Footprint
	if li.FootprintPolygon != nil {
		fp = geom.NewPolygonFootprint(*li.FootprintPolygon)
	} else {
		fp = geom.NewRectFootprint(*li.FootprintRect)
	}
	if err := fp.Validate(); err != nil {
		return nil, fmt.Errorf("footprint: %w", err)
	}

	defaults := DefaultDefaults()
	if li.Defaults != nil {
		if li.Defaults.DoorWidthCM > 0 {
			defaults.DoorWidthCM = li.Defaults.DoorWidthCM
		}
		if li.Defaults.WindowWidthCM > 0 {
			defaults.WindowWidthCM = li.Defaults.WindowWidthCM
		}
		if li.Defaults.ExteriorDoorWidthCM > 0 {
			defaults.ExteriorDoorWidthCM = li.Defaults.ExteriorDoorWidthCM
		}
		if li.Defaults.CorridorWidthCM > 0 {
			defaults.CorridorWidthCM = li.Defaults.CorridorWidthCM
		}
	}

	weights := DefaultWeights()
	if li.Weights != nil {
		weights = mergeWeights(weights, *li.Weights)
	}

	frontEdge := geom.South
	if li.FrontEdge != "" {
		frontEdge, _ = geom.ParseEdge(li.FrontEdge)
	}
	var gardenEdge *geom.Edge
	if li.GardenEdge != "" {
		e, _ := geom.ParseEdge(li.GardenEdge)
		gardenEdge = &e
	}

	// Caller rules come first so that RuleFor's first match lets them
	// override the preset's rule for the same type or category.
	rules := append([]AccessRule{}, li.AccessRules...)
	rules = append(rules, ResolvePreset(li.AccessRulePreset)...)

	rooms := make([]RoomSpec, len(li.Rooms))
	copy(rooms, li.Rooms)
	for i := range rooms {
		if rooms[i].TargetArea == 0 {
			if rooms[i].MaxArea > 0 {
				rooms[i].TargetArea = (rooms[i].MinArea + rooms[i].MaxArea) / 2
			} else {
				rooms[i].TargetArea = rooms[i].MinArea * 1.2
			}
		}
	}

	return &Normalized{
		Footprint:         fp,
		Bands:             li.Bands,
		Depths:            li.Depths,
		FrontEdge:         frontEdge,
		GardenEdge:        gardenEdge,
		DoorWidth:         defaults.DoorWidthCM / 100.0,
		WindowWidth:       defaults.WindowWidthCM / 100.0,
		ExteriorDoorWidth: defaults.ExteriorDoorWidthCM / 100.0,
		CorridorWidth:     defaults.CorridorWidthCM / 100.0,
		Rooms:             rooms,
		AccessRules:       rules,
		Weights:           weights,
	}, nil
}

func mergeWeights(base, override Weights) Weights {
	if override.Adjacency != 0 {
		base.Adjacency = override.Adjacency
	}
	if override.Compactness != 0 {
		base.Compactness = override.Compactness
	}
	if override.AspectFit != 0 {
		base.AspectFit = override.AspectFit
	}
	if override.AreaFit != 0 {
		base.AreaFit = override.AreaFit
	}
	if override.ExteriorAccess != 0 {
		base.ExteriorAccess = override.ExteriorAccess
	}
	if override.CorridorCost != 0 {
		base.CorridorCost = override.CorridorCost
	}
	if override.Balance != 0 {
		base.Balance = override.Balance
	}
	return base
}
