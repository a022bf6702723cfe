// Package export renders a solved floor plan to its persisted forms: an
// SVG visualization of the rooms, openings, and corridor, and a JSON
// serialization of the plan state plus score.
package export
