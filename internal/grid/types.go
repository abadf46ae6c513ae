package grid

import "encoding/json"

// Position is an absolute cell coordinate, zero-based column/row index into
// the current SystemSize. Absolute positions are ephemeral: they are only
// valid for the viewport they were computed against and are never persisted.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RelPosition is an anchor-relative cell coordinate. X is a signed offset
// from the viewport's anchor column; Y is always >= 0. This is the form
// that gets persisted, because it stays meaningful when the column count
// (and therefore the anchor) changes with the viewport.
type RelPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is an element footprint in cells. Immutable once an element exists;
// elements are not resizable.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SystemSize is the grid's current column/row count. Recomputed from the
// live viewport on every resize, never persisted.
type SystemSize struct {
	Columns int
	Rows    int
}

// ElementType categorizes grid elements.
type ElementType string

const (
	ElementWidget ElementType = "widget"
	ElementIcon   ElementType = "icon"
	ElementFixed  ElementType = "fixed"
)

// Element is a single item on a desktop. Data and State are opaque to the
// engine; widgets interpret them.
type Element struct {
	ID        string          `json:"id"`
	Type      ElementType     `json:"type"`
	Position  RelPosition     `json:"position"`
	Size      Size            `json:"size"`
	Component string          `json:"component,omitempty"`
	Fixed     bool            `json:"fixed,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	State     json.RawMessage `json:"state,omitempty"`
}

// Movable reports whether the element may be dragged or displaced. Fixed
// elements are immovable obstacles: nothing may land on them and they never
// appear in a displacement result.
func (e *Element) Movable() bool {
	return !e.Fixed && e.Type != ElementFixed
}

// Placed is an element resolved to absolute coordinates for the current
// viewport. The validator and the collision resolver work entirely in this
// space.
type Placed struct {
	ID    string
	Pos   Position
	Size  Size
	Fixed bool
}

// AnchorColumn returns the column index persisted layouts measure their
// horizontal offsets from.
func AnchorColumn(columns int) int {
	return columns / 2
}

// ToAbsolute resolves an anchor-relative position against an anchor column.
func ToAbsolute(rel RelPosition, anchor int) Position {
	return Position{X: anchor + rel.X, Y: rel.Y}
}

// ToRelative is the inverse of ToAbsolute; the round trip is the identity
// for any integer anchor.
func ToRelative(abs Position, anchor int) RelPosition {
	return RelPosition{X: abs.X - anchor, Y: abs.Y}
}

// Resolve converts elements to absolute placements for the given anchor.
func Resolve(elements []Element, anchor int) []Placed {
	out := make([]Placed, 0, len(elements))
	for i := range elements {
		e := &elements[i]
		out = append(out, Placed{
			ID:    e.ID,
			Pos:   ToAbsolute(e.Position, anchor),
			Size:  e.Size,
			Fixed: !e.Movable(),
		})
	}
	return out
}
