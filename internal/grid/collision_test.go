package grid

import (
	"fmt"
	"testing"
)

func assertNoOverlaps(t *testing.T, placed []Placed, result map[string]Position) {
	t.Helper()
	final := make([]Placed, len(placed))
	copy(final, placed)
	for i := range final {
		if pos, ok := result[final[i].ID]; ok {
			final[i].Pos = pos
		}
	}
	for i := range final {
		for j := i + 1; j < len(final); j++ {
			a, b := final[i], final[j]
			if a.Fixed && b.Fixed {
				continue
			}
			if Overlaps(a.Pos, a.Size, b.Pos, b.Size) {
				t.Fatalf("overlap between %s at %+v and %s at %+v", a.ID, a.Pos, b.ID, b.Pos)
			}
		}
	}
}

func TestResolveDragRejectsFixedOverlap(t *testing.T) {
	// Example scenario 1: 8x6 grid, a 2x2 fixed search element at (3,0) and
	// a 1x1 icon at (0,0). Dragging the icon onto the fixed element must be
	// rejected with an empty mapping.
	placed := []Placed{
		{ID: "search", Pos: Position{X: 3, Y: 0}, Size: Size{Width: 2, Height: 2}, Fixed: true},
		{ID: "icon", Pos: Position{X: 0, Y: 0}, Size: Size{Width: 1, Height: 1}},
	}
	orig := Position{X: 0, Y: 0}
	result := ResolveDrag(placed, "icon", Position{X: 3, Y: 0}, sys(8, 6), &orig)
	if len(result) != 0 {
		t.Fatalf("expected empty mapping, got %v", result)
	}
}

func TestResolveDragSwap(t *testing.T) {
	// Example scenario 2: A at (0,0), B at (1,0), both 1x1. Dragging A onto
	// B's slot swaps them cleanly.
	placed := []Placed{
		{ID: "A", Pos: Position{X: 0, Y: 0}, Size: Size{Width: 1, Height: 1}},
		{ID: "B", Pos: Position{X: 1, Y: 0}, Size: Size{Width: 1, Height: 1}},
	}
	orig := Position{X: 0, Y: 0}
	result := ResolveDrag(placed, "A", Position{X: 1, Y: 0}, sys(8, 6), &orig)
	if len(result) != 2 {
		t.Fatalf("expected 2 entries, got %v", result)
	}
	if result["A"] != (Position{X: 1, Y: 0}) || result["B"] != (Position{X: 0, Y: 0}) {
		t.Fatalf("expected clean swap, got %v", result)
	}
	assertNoOverlaps(t, placed, result)
}

func TestResolveDragPushesInDragDirection(t *testing.T) {
	// Dragging A rightward onto B should push B further right, not left.
	// B is bigger than A's vacated slot, so the swap shortcut cannot fire.
	placed := []Placed{
		{ID: "A", Pos: Position{X: 2, Y: 2}, Size: Size{Width: 1, Height: 1}},
		{ID: "B", Pos: Position{X: 3, Y: 2}, Size: Size{Width: 2, Height: 2}},
	}
	orig := Position{X: 2, Y: 2}
	result := ResolveDrag(placed, "A", Position{X: 3, Y: 2}, sys(10, 6), &orig)
	bPos, ok := result["B"]
	if !ok {
		t.Fatalf("expected B to be displaced, got %v", result)
	}
	if bPos.X <= 3 {
		t.Fatalf("expected B pushed right of column 3, got %+v", bPos)
	}
	assertNoOverlaps(t, placed, result)
}

func TestResolveDragSwapRequiresContainment(t *testing.T) {
	// A 1x1 drags onto a 2x2; the 2x2 does not fit in the vacated 1x1 slot
	// even though the grid around it is empty.
	placed := []Placed{
		{ID: "A", Pos: Position{X: 0, Y: 0}, Size: Size{Width: 1, Height: 1}},
		{ID: "B", Pos: Position{X: 1, Y: 0}, Size: Size{Width: 2, Height: 2}},
	}
	orig := Position{X: 0, Y: 0}
	result := ResolveDrag(placed, "A", Position{X: 1, Y: 0}, sys(8, 6), &orig)
	if bPos, ok := result["B"]; ok && bPos == orig {
		t.Fatalf("2x2 element must not swap into a 1x1 slot: %v", result)
	}
	assertNoOverlaps(t, placed, result)
}

func TestResolveDragCascades(t *testing.T) {
	// A row of unit icons: pushing the first one right must ripple through
	// the rest without producing overlaps.
	placed := []Placed{
		{ID: "drag", Pos: Position{X: 0, Y: 0}, Size: Size{Width: 1, Height: 1}},
		{ID: "b", Pos: Position{X: 1, Y: 0}, Size: Size{Width: 2, Height: 1}},
		{ID: "c", Pos: Position{X: 3, Y: 0}, Size: Size{Width: 2, Height: 1}},
	}
	orig := Position{X: 0, Y: 0}
	result := ResolveDrag(placed, "drag", Position{X: 1, Y: 0}, sys(8, 4), &orig)
	if _, ok := result["drag"]; !ok {
		t.Fatalf("dragged element missing from result: %v", result)
	}
	assertNoOverlaps(t, placed, result)
}

func TestResolveDragFixedNeverMoves(t *testing.T) {
	placed := []Placed{
		{ID: "drag", Pos: Position{X: 0, Y: 0}, Size: Size{Width: 2, Height: 2}},
		{ID: "icon", Pos: Position{X: 2, Y: 0}, Size: Size{Width: 1, Height: 1}},
		{ID: "clock", Pos: Position{X: 3, Y: 0}, Size: Size{Width: 2, Height: 2}, Fixed: true},
	}
	orig := Position{X: 0, Y: 0}
	result := ResolveDrag(placed, "drag", Position{X: 1, Y: 0}, sys(8, 6), &orig)
	if _, ok := result["clock"]; ok {
		t.Fatalf("fixed element must never appear in the result: %v", result)
	}
	assertNoOverlaps(t, placed, result)
}

func TestResolveDragBlockedElementsStayPut(t *testing.T) {
	// Example scenario 4: a widget dragged into a fully packed block of
	// unit icons where nothing is free within the bounded search radius.
	// At most one icon escapes via the swap shortcut into the vacated
	// slot; every other displaced icon keeps its pre-drag position.
	s := sys(30, 30)
	var placed []Placed
	for y := 0; y <= 20; y++ {
		for x := 0; x <= 20; x++ {
			placed = append(placed, Placed{
				ID:   fmt.Sprintf("i%d-%d", x, y),
				Pos:  Position{X: x, Y: y},
				Size: Size{Width: 1, Height: 1},
			})
		}
	}
	placed = append(placed, Placed{ID: "w", Pos: Position{X: 25, Y: 25}, Size: Size{Width: 2, Height: 2}})
	orig := Position{X: 25, Y: 25}
	result := ResolveDrag(placed, "w", Position{X: 5, Y: 5}, s, &orig)

	if result["w"] != (Position{X: 5, Y: 5}) {
		t.Fatalf("expected w at (5,5), got %+v", result["w"])
	}
	swapped := 0
	for id, pos := range result {
		if id == "w" {
			continue
		}
		if pos == orig {
			swapped++
			continue
		}
		var want Position
		for i := range placed {
			if placed[i].ID == id {
				want = placed[i].Pos
			}
		}
		if pos != want {
			t.Fatalf("blocked icon %s moved from %+v to %+v", id, want, pos)
		}
	}
	if swapped > 1 {
		t.Fatalf("expected at most one swap into the vacated slot, got %d", swapped)
	}
}

func TestResolveDragClampsTarget(t *testing.T) {
	placed := []Placed{
		{ID: "A", Pos: Position{X: 0, Y: 0}, Size: Size{Width: 2, Height: 2}},
	}
	orig := Position{X: 0, Y: 0}
	result := ResolveDrag(placed, "A", Position{X: 20, Y: 20}, sys(8, 6), &orig)
	if result["A"] != (Position{X: 6, Y: 4}) {
		t.Fatalf("expected clamped landing at (6,4), got %v", result)
	}
}

func TestResolveDragTooLargeRejected(t *testing.T) {
	placed := []Placed{
		{ID: "A", Pos: Position{X: 0, Y: 0}, Size: Size{Width: 9, Height: 2}},
	}
	result := ResolveDrag(placed, "A", Position{X: 0, Y: 0}, sys(8, 6), nil)
	if len(result) != 0 {
		t.Fatalf("expected rejection for oversized element, got %v", result)
	}
}

func TestResolveDragTerminatesOnLargeGrid(t *testing.T) {
	// 50x50 grid fully packed with 1x1 elements in a 20x10 block plus the
	// dragged element; must return without spinning even when displacement
	// is impossible for most of them.
	s := sys(50, 50)
	var placed []Placed
	id := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			placed = append(placed, Placed{
				ID:   fmt.Sprintf("e%d", id),
				Pos:  Position{X: x, Y: y},
				Size: Size{Width: 1, Height: 1},
			})
			id++
		}
	}
	placed = append(placed, Placed{ID: "drag", Pos: Position{X: 30, Y: 30}, Size: Size{Width: 5, Height: 5}})
	orig := Position{X: 30, Y: 30}
	result := ResolveDrag(placed, "drag", Position{X: 2, Y: 2}, s, &orig)
	if _, ok := result["drag"]; !ok {
		t.Fatalf("dragged element missing from result")
	}
}

func TestResolveDragDirectionTieBreak(t *testing.T) {
	// Zero drag vector: ties are broken by the base order, so the first
	// free cell found is to the right.
	placed := []Placed{
		{ID: "A", Pos: Position{X: 2, Y: 2}, Size: Size{Width: 1, Height: 1}},
		{ID: "B", Pos: Position{X: 3, Y: 2}, Size: Size{Width: 1, Height: 1}},
	}
	result := ResolveDrag(placed, "A", Position{X: 3, Y: 2}, sys(8, 6), nil)
	if result["B"] != (Position{X: 4, Y: 2}) {
		t.Fatalf("expected B pushed right by base direction order, got %v", result)
	}
}
