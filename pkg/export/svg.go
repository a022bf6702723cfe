package export

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/floorplan/pkg/geom"
	"github.com/dshills/floorplan/pkg/intent"
	"github.com/dshills/floorplan/pkg/planstate"
	"github.com/dshills/floorplan/pkg/solve"
)

// SVGOptions configures floor-plan visualization export.
type SVGOptions struct {
	Width       int    // Canvas width in pixels
	Height      int    // Canvas height in pixels
	Margin      int    // Canvas margin in pixels (default: 40)
	ShowLabels  bool   // Show room id/type labels
	ColorByType bool   // Color rooms by category (circulation/private/public/service)
	ShowLegend  bool   // Show legend explaining colors
	ShowStats   bool   // Show room count / score in the header
	Title       string // Optional title for the visualization
}

// DefaultSVGOptions returns sensible default SVG export options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:       1200,
		Height:      900,
		Margin:      40,
		ShowLabels:  true,
		ColorByType: true,
		ShowLegend:  true,
		ShowStats:   true,
		Title:       "Floor Plan",
	}
}

const headerHeight = 50

// ExportSVG renders a solved plan's rooms, openings, and corridor to SVG.
func ExportSVG(result *solve.Result, opts SVGOptions) ([]byte, error) {
	if result == nil || result.State == nil {
		return nil, fmt.Errorf("result must contain a plan state")
	}
	if opts.Width <= 0 {
		opts.Width = 1200
	}
	if opts.Height <= 0 {
		opts.Height = 900
	}
	if opts.Margin <= 0 {
		opts.Margin = 40
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#1a1a2e")

	sc := newScaler(result.State.Footprint.BoundingBox(), opts)

	drawFootprint(canvas, sc, result.State.Footprint.BoundingBox())
	drawRooms(canvas, sc, result.State, opts)
	drawOpenings(canvas, sc, result.State)
	if opts.ShowLabels {
		drawRoomLabels(canvas, sc, result.State)
	}
	if opts.ShowLegend {
		drawLegend(canvas, opts)
	}
	if opts.Title != "" || opts.ShowStats {
		drawHeader(canvas, result, opts)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile renders a solved plan to SVG and writes it to filepath.
func SaveSVGToFile(result *solve.Result, filepath string, opts SVGOptions) error {
	data, err := ExportSVG(result, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// scaler maps meter coordinates onto the canvas, preserving aspect ratio.
type scaler struct {
	originX, originY float64
	marginX, marginY float64
	scale            float64
}

func newScaler(bbox geom.Rect, opts SVGOptions) scaler {
	drawW := float64(opts.Width - 2*opts.Margin)
	drawH := float64(opts.Height - 2*opts.Margin - headerHeight)
	scale := drawW / bbox.Width()
	if alt := drawH / bbox.Height(); alt < scale {
		scale = alt
	}
	return scaler{
		originX: bbox.X1, originY: bbox.Y1,
		marginX: float64(opts.Margin), marginY: float64(opts.Margin + headerHeight),
		scale: scale,
	}
}

func (s scaler) px(x, y float64) (int, int) {
	return int(s.marginX + (x-s.originX)*s.scale), int(s.marginY + (y-s.originY)*s.scale)
}

func (s scaler) rect(r geom.Rect) (x, y, w, h int) {
	x, y = s.px(r.X1, r.Y1)
	w = int(r.Width() * s.scale)
	h = int(r.Height() * s.scale)
	return
}

func drawFootprint(canvas *svg.SVG, sc scaler, bbox geom.Rect) {
	x, y, w, h := sc.rect(bbox)
	canvas.Rect(x, y, w, h, "fill:none;stroke:#e2e8f0;stroke-width:2")
}

func sortedRoomIDs(ps *planstate.PlanState) []string {
	ids := make([]string, 0, len(ps.Placed))
	for id := range ps.Placed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func drawRooms(canvas *svg.SVG, sc scaler, ps *planstate.PlanState, opts SVGOptions) {
	for _, id := range sortedRoomIDs(ps) {
		room := ps.Placed[id]
		x, y, w, h := sc.rect(room.Rect)
		color := getRoomColor(room.Spec, opts)
		style := fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:1.5;opacity:0.9", color)
		if room.IsCorridor {
			style = fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:1.5;opacity:0.6;stroke-dasharray:4,2", color)
		}
		canvas.Rect(x, y, w, h, style)
	}
}

func getRoomColor(spec intent.RoomSpec, opts SVGOptions) string {
	if !opts.ColorByType {
		return "#4a5568"
	}
	switch spec.Category() {
	case intent.CategoryCirculation:
		return "#4299e1"
	case intent.CategoryPrivate:
		return "#9f7aea"
	case intent.CategoryPublic:
		return "#48bb78"
	case intent.CategoryService:
		return "#ed8936"
	default:
		return "#4a5568"
	}
}

func drawRoomLabels(canvas *svg.SVG, sc scaler, ps *planstate.PlanState) {
	for _, id := range sortedRoomIDs(ps) {
		room := ps.Placed[id]
		x, y, w, h := sc.rect(room.Rect)
		cx, cy := x+w/2, y+h/2
		label := room.ID
		if room.Spec.Label != "" {
			label = room.Spec.Label
		}
		canvas.Text(cx, cy, label, "text-anchor:middle;font-size:12px;font-family:monospace;fill:#e2e8f0;font-weight:500")
		canvas.Text(cx, cy+14, room.Spec.Type.String(), "text-anchor:middle;font-size:9px;font-family:monospace;fill:#a0aec0")
	}
}

// drawOpenings renders doors and windows as tick marks on the wall they
// belong to: a segment lying along the room's edge that covers the
// opening's width.
func drawOpenings(canvas *svg.SVG, sc scaler, ps *planstate.PlanState) {
	for _, o := range ps.Openings {
		room, ok := ps.Placed[o.RoomID]
		if !ok {
			continue
		}
		x1, y1, x2, y2 := openingSegment(room.Rect, o)
		px1, py1 := sc.px(x1, y1)
		px2, py2 := sc.px(x2, y2)
		color := "#f6e05e"
		if o.Kind == planstate.Window {
			color = "#63b3ed"
		}
		canvas.Line(px1, py1, px2, py2, fmt.Sprintf("stroke:%s;stroke-width:4;stroke-linecap:round", color))
	}
}

// openingSegment returns the endpoints (in meters) of the opening's tick
// mark on the room's Edge wall, from Position (the opening's start offset
// from the wall's start corner) to Position+Width.
func openingSegment(r geom.Rect, o planstate.PlacedOpening) (x1, y1, x2, y2 float64) {
	switch o.Edge {
	case geom.North:
		sx := r.X1 + o.Position
		return sx, r.Y1, sx + o.Width, r.Y1
	case geom.South:
		sx := r.X1 + o.Position
		return sx, r.Y2, sx + o.Width, r.Y2
	case geom.East:
		sy := r.Y1 + o.Position
		return r.X2, sy, r.X2, sy + o.Width
	default: // West
		sy := r.Y1 + o.Position
		return r.X1, sy, r.X1, sy + o.Width
	}
}

func drawLegend(canvas *svg.SVG, opts SVGOptions) {
	legendX := opts.Width - opts.Margin - 160
	legendY := opts.Margin + headerHeight + 10

	canvas.Rect(legendX-10, legendY-20, 170, 160, "fill:#2d3748;stroke:#4a5568;stroke-width:1;opacity:0.95;rx:5")
	canvas.Text(legendX, legendY, "Categories", "font-size:13px;font-weight:bold;fill:#e2e8f0")
	legendY += 22

	entries := []struct {
		name  string
		color string
	}{
		{"Circulation", "#4299e1"},
		{"Private", "#9f7aea"},
		{"Public", "#48bb78"},
		{"Service", "#ed8936"},
	}
	for _, e := range entries {
		canvas.Rect(legendX, legendY-10, 16, 16, fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:1", e.color))
		canvas.Text(legendX+24, legendY+2, e.name, "font-size:11px;fill:#cbd5e0")
		legendY += 22
	}

	canvas.Line(legendX, legendY, legendX+16, legendY, "stroke:#f6e05e;stroke-width:4")
	canvas.Text(legendX+24, legendY+4, "Door", "font-size:11px;fill:#cbd5e0")
	legendY += 20
	canvas.Line(legendX, legendY, legendX+16, legendY, "stroke:#63b3ed;stroke-width:4")
	canvas.Text(legendX+24, legendY+4, "Window", "font-size:11px;fill:#cbd5e0")
}

func drawHeader(canvas *svg.SVG, result *solve.Result, opts SVGOptions) {
	headerY := 25
	if opts.Title != "" {
		canvas.Text(opts.Width/2, headerY, opts.Title, "text-anchor:middle;font-size:20px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
		headerY += 22
	}
	if opts.ShowStats {
		stats := fmt.Sprintf("Rooms: %d | Openings: %d | Score: %.3f",
			len(result.State.Placed), len(result.State.Openings), result.Score.Total)
		canvas.Text(opts.Width/2, headerY, stats, "text-anchor:middle;font-size:12px;fill:#a0aec0;font-family:monospace")
	}
}
