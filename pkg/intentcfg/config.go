// Package intentcfg loads a LayoutIntent from a YAML document: read,
// unmarshal, validate.
package intentcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/floorplan/pkg/geom"
	"github.com/dshills/floorplan/pkg/intent"
)

// Document is the YAML wire form of a LayoutIntent (spec section 6's
// fields-and-effects table).
type Document struct {
	Units string `yaml:"units,omitempty"`

	Footprint struct {
		Rect *struct {
			X1, Y1, X2, Y2 float64
		} `yaml:"rect,omitempty"`
		Polygon []PointDoc `yaml:"polygon,omitempty"`
	} `yaml:"footprint"`

	Bands  []BandDoc  `yaml:"bands,omitempty"`
	Depths []DepthDoc `yaml:"depths,omitempty"`

	FrontEdge  string `yaml:"front_edge,omitempty"`
	GardenEdge string `yaml:"garden_edge,omitempty"`

	Defaults *DefaultsDoc `yaml:"defaults,omitempty"`

	Rooms []RoomDoc `yaml:"rooms"`

	Hard struct {
		AllRoomsReachable *bool `yaml:"all_rooms_reachable,omitempty"`
	} `yaml:"hard,omitempty"`

	AccessRulePreset string        `yaml:"access_rule_preset,omitempty"`
	AccessRules      []AccessDoc   `yaml:"access_rules,omitempty"`
	Weights          *WeightsDoc   `yaml:"weights,omitempty"`
}

// PointDoc is a polygon vertex in the document's declared units.
type PointDoc struct {
	X, Y float64
}

// BandDoc is one vertical band entry.
type BandDoc struct {
	ID          string  `yaml:"id"`
	TargetWidth float64 `yaml:"target_width,omitempty"`
	Min         float64 `yaml:"min,omitempty"`
	Max         float64 `yaml:"max,omitempty"`
}

// DepthDoc is one horizontal depth-zone entry.
type DepthDoc struct {
	ID          string  `yaml:"id"`
	TargetDepth float64 `yaml:"target_depth,omitempty"`
	Min         float64 `yaml:"min,omitempty"`
	Max         float64 `yaml:"max,omitempty"`
}

// DefaultsDoc holds the document's opening-width defaults, in centimeters.
type DefaultsDoc struct {
	DoorWidth         float64 `yaml:"door_width,omitempty"`
	WindowWidth       float64 `yaml:"window_width,omitempty"`
	ExteriorDoorWidth float64 `yaml:"exterior_door_width,omitempty"`
	CorridorWidth     float64 `yaml:"corridor_width,omitempty"`
}

// AspectDoc bounds a room's width/height ratio.
type AspectDoc struct {
	Min, Max float64
}

// RoomDoc is one room entry (spec section 3's RoomSpec).
type RoomDoc struct {
	ID    string `yaml:"id"`
	Type  string `yaml:"type"`
	Label string `yaml:"label,omitempty"`

	MinArea    float64 `yaml:"min_area"`
	TargetArea float64 `yaml:"target_area,omitempty"`
	MaxArea    float64 `yaml:"max_area,omitempty"`

	MinWidth  float64 `yaml:"min_width,omitempty"`
	MaxWidth  float64 `yaml:"max_width,omitempty"`
	MinHeight float64 `yaml:"min_height,omitempty"`
	MaxHeight float64 `yaml:"max_height,omitempty"`

	Aspect *AspectDoc `yaml:"aspect,omitempty"`

	FillCell bool `yaml:"fill_cell,omitempty"`

	PreferredBands  []string `yaml:"preferred_bands,omitempty"`
	PreferredDepths []string `yaml:"preferred_depths,omitempty"`

	MustTouchExterior bool    `yaml:"must_touch_exterior,omitempty"`
	MustTouchEdge     *string `yaml:"must_touch_edge,omitempty"`

	AdjacentTo      []string `yaml:"adjacent_to,omitempty"`
	AvoidAdjacentTo []string `yaml:"avoid_adjacent_to,omitempty"`
	NeedsAccessFrom []string `yaml:"needs_access_from,omitempty"`

	IsCirculation   bool `yaml:"is_circulation,omitempty"`
	HasExteriorDoor bool `yaml:"has_exterior_door,omitempty"`
	IsEnsuite       bool `yaml:"is_ensuite,omitempty"`
}

// AccessDoc is one access-rule override (spec section 3's AccessRule).
type AccessDoc struct {
	RoomTypeOrCategory string   `yaml:"room_type_or_category"`
	AccessibleFrom     []string `yaml:"accessible_from,omitempty"`
	CanLeadTo          []string `yaml:"can_lead_to,omitempty"`
}

// WeightsDoc holds the seven plan-level soft-scoring multipliers.
type WeightsDoc struct {
	Adjacency      float64 `yaml:"adjacency,omitempty"`
	Compactness    float64 `yaml:"compactness,omitempty"`
	AspectFit      float64 `yaml:"aspect_fit,omitempty"`
	AreaFit        float64 `yaml:"area_fit,omitempty"`
	ExteriorAccess float64 `yaml:"exterior_access,omitempty"`
	CorridorCost   float64 `yaml:"corridor_cost,omitempty"`
	Balance        float64 `yaml:"balance,omitempty"`
}

// Load reads and parses a YAML LayoutIntent document from path.
func Load(path string) (*intent.LayoutIntent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading intent file: %w", err)
	}
	return LoadFromBytes(data)
}

// AllRoomsReachable reads a YAML document's hard.all_rooms_reachable
// setting (it reads and unmarshals the document again, but skips building
// and validating the LayoutIntent), for callers (such as the
// CLI) that need it to build a solve.Config alongside the LayoutIntent.
// Returns nil if the document does not set it.
func AllRoomsReachable(path string) (*bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading intent file: %w", err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return doc.Hard.AllRoomsReachable, nil
}

// LoadFromBytes parses a YAML LayoutIntent document from data. Useful for
// testing and programmatic document generation.
func LoadFromBytes(data []byte) (*intent.LayoutIntent, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	li, err := doc.toIntent()
	if err != nil {
		return nil, err
	}
	if err := li.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return li, nil
}

// unitScale returns the factor to convert the document's length unit to
// meters: 1.0 for "m" (the default), 0.01 for "cm".
func (d *Document) unitScale() float64 {
	if d.Units == "cm" {
		return 0.01
	}
	return 1.0
}

func (d *Document) toIntent() (*intent.LayoutIntent, error) {
	scale := d.unitScale()
	li := &intent.LayoutIntent{
		FrontEdge:        d.FrontEdge,
		GardenEdge:       d.GardenEdge,
		AccessRulePreset: intent.AccessRulePreset(d.AccessRulePreset),
	}

	switch {
	case d.Footprint.Rect != nil:
		r := geom.NewRect(
			d.Footprint.Rect.X1*scale, d.Footprint.Rect.Y1*scale,
			d.Footprint.Rect.X2*scale, d.Footprint.Rect.Y2*scale,
		)
		li.FootprintRect = &r
	case len(d.Footprint.Polygon) >= 3:
		pts := make([]geom.Point, len(d.Footprint.Polygon))
		for i, p := range d.Footprint.Polygon {
			pts[i] = geom.Point{X: p.X * scale, Y: p.Y * scale}
		}
		poly := geom.Polygon{Points: pts}
		li.FootprintPolygon = &poly
	default:
		return nil, fmt.Errorf("footprint must set rect or polygon (>= 3 points)")
	}

	for _, b := range d.Bands {
		li.Bands = append(li.Bands, intent.BandSpec{
			ID: b.ID, TargetWidth: b.TargetWidth * scale, Min: b.Min * scale, Max: b.Max * scale,
		})
	}
	for _, dp := range d.Depths {
		li.Depths = append(li.Depths, intent.DepthSpec{
			ID: dp.ID, TargetDepth: dp.TargetDepth * scale, Min: dp.Min * scale, Max: dp.Max * scale,
		})
	}

	if d.Defaults != nil {
		li.Defaults = &intent.Defaults{
			DoorWidthCM:         cmOf(d.Defaults.DoorWidth, scale),
			WindowWidthCM:       cmOf(d.Defaults.WindowWidth, scale),
			ExteriorDoorWidthCM: cmOf(d.Defaults.ExteriorDoorWidth, scale),
			CorridorWidthCM:     cmOf(d.Defaults.CorridorWidth, scale),
		}
	}

	if d.Weights != nil {
		li.Weights = &intent.Weights{
			Adjacency:      d.Weights.Adjacency,
			Compactness:    d.Weights.Compactness,
			AspectFit:      d.Weights.AspectFit,
			AreaFit:        d.Weights.AreaFit,
			ExteriorAccess: d.Weights.ExteriorAccess,
			CorridorCost:   d.Weights.CorridorCost,
			Balance:        d.Weights.Balance,
		}
	}

	for _, a := range d.AccessRules {
		li.AccessRules = append(li.AccessRules, intent.AccessRule{
			RoomTypeOrCategory: a.RoomTypeOrCategory,
			AccessibleFrom:     a.AccessibleFrom,
			CanLeadTo:          a.CanLeadTo,
		})
	}

	for _, rd := range d.Rooms {
		t, ok := intent.ParseRoomType(rd.Type)
		if !ok {
			return nil, fmt.Errorf("room %s: unknown type %q", rd.ID, rd.Type)
		}
		room := intent.RoomSpec{
			ID:                rd.ID,
			Type:              t,
			Label:             rd.Label,
			MinArea:           rd.MinArea * scale * scale,
			TargetArea:        rd.TargetArea * scale * scale,
			MaxArea:           rd.MaxArea * scale * scale,
			MinWidth:          rd.MinWidth * scale,
			MaxWidth:          rd.MaxWidth * scale,
			MinHeight:         rd.MinHeight * scale,
			MaxHeight:         rd.MaxHeight * scale,
			FillCell:          rd.FillCell,
			PreferredBands:    rd.PreferredBands,
			PreferredDepths:   rd.PreferredDepths,
			MustTouchExterior: rd.MustTouchExterior,
			MustTouchEdge:     rd.MustTouchEdge,
			AdjacentTo:        rd.AdjacentTo,
			AvoidAdjacentTo:   rd.AvoidAdjacentTo,
			NeedsAccessFrom:   rd.NeedsAccessFrom,
			IsCirculation:     rd.IsCirculation,
			HasExteriorDoor:   rd.HasExteriorDoor,
			IsEnsuite:         rd.IsEnsuite,
		}
		if rd.Aspect != nil {
			room.Aspect = &intent.AspectRange{Min: rd.Aspect.Min, Max: rd.Aspect.Max}
		}
		li.Rooms = append(li.Rooms, room)
	}

	return li, nil
}

func cmOf(v, scale float64) float64 {
	if v == 0 {
		return 0
	}
	// Opening and corridor widths are written in centimeters whatever the
	// document's units, so they pass through unscaled.
	return v
}
