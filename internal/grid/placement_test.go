package grid

import "testing"

func sys(cols, rows int) SystemSize {
	return SystemSize{Columns: cols, Rows: rows}
}

func TestOverlapsHalfOpen(t *testing.T) {
	a := Position{X: 0, Y: 0}
	asz := Size{Width: 2, Height: 2}
	// Touching edges is not an overlap.
	if Overlaps(a, asz, Position{X: 2, Y: 0}, Size{Width: 1, Height: 1}) {
		t.Fatalf("edge-adjacent rects must not overlap")
	}
	if !Overlaps(a, asz, Position{X: 1, Y: 1}, Size{Width: 1, Height: 1}) {
		t.Fatalf("expected overlap at (1,1)")
	}
}

func TestIsValidPositionBounds(t *testing.T) {
	s := sys(8, 6)
	size := Size{Width: 2, Height: 2}
	if !IsValidPosition(Position{X: 6, Y: 4}, size, s, nil) {
		t.Fatalf("expected bottom-right corner to be valid")
	}
	if IsValidPosition(Position{X: 7, Y: 4}, size, s, nil) {
		t.Fatalf("expected out-of-bounds x to be invalid")
	}
	if IsValidPosition(Position{X: -1, Y: 0}, size, s, nil) {
		t.Fatalf("expected negative x to be invalid")
	}
}

func TestFindAvailablePositionRasterOrder(t *testing.T) {
	s := sys(4, 4)
	others := []Placed{
		{ID: "a", Pos: Position{X: 0, Y: 0}, Size: Size{Width: 2, Height: 1}},
	}
	pos := FindAvailablePosition(Size{Width: 2, Height: 1}, s, 0, others)
	if pos == nil {
		t.Fatalf("expected a slot")
	}
	if *pos != (Position{X: 2, Y: 0}) {
		t.Fatalf("expected (2,0), got %+v", *pos)
	}
}

func TestFindAvailablePositionIdempotent(t *testing.T) {
	s := sys(6, 6)
	others := []Placed{
		{ID: "a", Pos: Position{X: 0, Y: 0}, Size: Size{Width: 3, Height: 3}},
	}
	first := FindAvailablePosition(Size{Width: 2, Height: 2}, s, 0, others)
	second := FindAvailablePosition(Size{Width: 2, Height: 2}, s, 0, others)
	if first == nil || second == nil {
		t.Fatalf("expected slots, got %v and %v", first, second)
	}
	if *first != *second {
		t.Fatalf("raster scan not idempotent: %+v vs %+v", *first, *second)
	}
}

func TestFindAvailablePositionNoRoom(t *testing.T) {
	s := sys(2, 2)
	others := []Placed{
		{ID: "a", Pos: Position{X: 0, Y: 0}, Size: Size{Width: 2, Height: 2}},
	}
	if pos := FindAvailablePosition(Size{Width: 2, Height: 2}, s, 0, others); pos != nil {
		t.Fatalf("expected nil for a packed grid, got %+v", *pos)
	}
	if pos := FindAvailablePosition(Size{Width: 3, Height: 1}, s, 0, nil); pos != nil {
		t.Fatalf("expected nil for an element wider than the grid, got %+v", *pos)
	}
}

func TestFindNearestAvailablePositionPrefersOrigin(t *testing.T) {
	s := sys(8, 8)
	origin := Position{X: 3, Y: 3}
	pos := FindNearestAvailablePosition(origin, Size{Width: 1, Height: 1}, s, 3, nil)
	if pos == nil || *pos != origin {
		t.Fatalf("expected origin %+v, got %v", origin, pos)
	}
}

func TestFindNearestAvailablePositionRings(t *testing.T) {
	s := sys(8, 8)
	origin := Position{X: 3, Y: 3}
	others := []Placed{
		{ID: "a", Pos: origin, Size: Size{Width: 1, Height: 1}},
	}
	pos := FindNearestAvailablePosition(origin, Size{Width: 1, Height: 1}, s, 3, others)
	if pos == nil {
		t.Fatalf("expected a nearby slot")
	}
	d := max(abs(pos.X-origin.X), abs(pos.Y-origin.Y))
	if d != 1 {
		t.Fatalf("expected a ring-1 slot, got %+v (distance %d)", *pos, d)
	}
}

func TestFindNearestAvailablePositionFallsBackToRaster(t *testing.T) {
	s := sys(6, 6)
	// Block a 3x3 neighborhood around the origin so ring radius 1 fails.
	others := []Placed{
		{ID: "block", Pos: Position{X: 2, Y: 2}, Size: Size{Width: 3, Height: 3}},
	}
	pos := FindNearestAvailablePosition(Position{X: 3, Y: 3}, Size{Width: 1, Height: 1}, s, 1, others)
	if pos == nil {
		t.Fatalf("expected raster fallback to find a slot")
	}
	if *pos != (Position{X: 0, Y: 0}) {
		t.Fatalf("expected raster fallback at (0,0), got %+v", *pos)
	}
}

func TestSearchRadius(t *testing.T) {
	if r := SearchRadius(ElementIcon, Size{Width: 1, Height: 1}, 0); r != DefaultIconSearchRadius {
		t.Fatalf("icon radius = %d, want %d", r, DefaultIconSearchRadius)
	}
	if r := SearchRadius(ElementIcon, Size{Width: 1, Height: 1}, 6); r != 6 {
		t.Fatalf("configured icon radius = %d, want 6", r)
	}
	if r := SearchRadius(ElementWidget, Size{Width: 2, Height: 2}, 3); r != 5 {
		t.Fatalf("small widget radius = %d, want 5", r)
	}
	if r := SearchRadius(ElementWidget, Size{Width: 4, Height: 2}, 3); r != 8 {
		t.Fatalf("wide widget radius = %d, want 8", r)
	}
}
