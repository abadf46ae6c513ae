package tui

import (
	"strings"
	"testing"

	"github.com/1broseidon/deskgrid/internal/grid"
)

func testMetrics() grid.Metrics {
	return grid.Metrics{CellSize: 4, GapSize: 1, MinColumns: 4, MinRows: 3}
}

func TestCanvasBoxDrawsBorderAndLabel(t *testing.T) {
	c := newCanvas(10, 5)
	c.box(grid.PixelRect{Left: 0, Top: 0, Width: 9, Height: 4}, paintWidget, "clock")

	plain := c.String()
	if !strings.Contains(plain, "╭") || !strings.Contains(plain, "╯") {
		t.Fatalf("expected rounded border corners in output:\n%s", plain)
	}
	if !strings.Contains(plain, "clock") {
		t.Fatalf("expected label in output:\n%s", plain)
	}
}

func TestCanvasBoxClipsLabel(t *testing.T) {
	c := newCanvas(6, 3)
	c.box(grid.PixelRect{Left: 0, Top: 0, Width: 6, Height: 3}, paintIcon, "bookmarks")

	plain := c.String()
	if strings.Contains(plain, "bookmarks") {
		t.Fatalf("expected label to be clipped to the box width:\n%s", plain)
	}
	if !strings.Contains(plain, "book") {
		t.Fatalf("expected clipped label prefix:\n%s", plain)
	}
}

func TestCanvasSetIgnoresOutOfBounds(t *testing.T) {
	c := newCanvas(3, 3)
	c.set(-1, 0, 'x', paintIcon)
	c.set(0, -1, 'x', paintIcon)
	c.set(3, 0, 'x', paintIcon)
	c.set(0, 3, 'x', paintIcon)
	if strings.Contains(c.String(), "x") {
		t.Fatalf("out-of-bounds writes must be dropped")
	}
}

func TestRenderBoardPlacesElementAtCellOrigin(t *testing.T) {
	met := testMetrics()
	sys := grid.SystemSize{Columns: 4, Rows: 3}
	placed := []grid.Placed{
		{ID: "a", Pos: grid.Position{X: 1, Y: 0}, Size: grid.Size{Width: 2, Height: 2}},
	}
	out := renderBoard(met, sys, placed, map[string]string{"a": "notes"}, "", "", nil, nil)

	lines := strings.Split(out, "\n")
	area := met.GridRect(sys)
	if len(lines) != area.Height {
		t.Fatalf("expected %d lines, got %d", area.Height, len(lines))
	}
	// Element at cell (1,0) starts at pixel column 5 (unit 5).
	if !strings.Contains(lines[0], "╭") {
		t.Fatalf("expected top border on first line:\n%s", out)
	}
	if !strings.Contains(out, "notes") {
		t.Fatalf("expected label in output:\n%s", out)
	}
}

func TestRenderBoardGhostMovesElement(t *testing.T) {
	met := testMetrics()
	sys := grid.SystemSize{Columns: 4, Rows: 3}
	placed := []grid.Placed{
		{ID: "drag", Pos: grid.Position{X: 0, Y: 0}, Size: grid.Size{Width: 1, Height: 1}},
		{ID: "b", Pos: grid.Position{X: 1, Y: 0}, Size: grid.Size{Width: 1, Height: 1}},
	}
	ghosts := map[string]grid.Position{"b": {X: 2, Y: 0}}

	withGhost := renderBoard(met, sys, placed, map[string]string{"b": "B"}, "", "drag", ghosts, nil)
	without := renderBoard(met, sys, placed, map[string]string{"b": "B"}, "", "", nil, nil)
	if withGhost == without {
		t.Fatalf("expected ghost position to change the render")
	}
}

func TestPaintForClassifiesElements(t *testing.T) {
	icon := grid.Placed{ID: "i", Size: grid.Size{Width: 1, Height: 1}}
	widget := grid.Placed{ID: "w", Size: grid.Size{Width: 2, Height: 2}}
	fixed := grid.Placed{ID: "f", Size: grid.Size{Width: 2, Height: 2}, Fixed: true}

	if paintFor(icon, "") != paintIcon {
		t.Fatalf("expected icon paint")
	}
	if paintFor(widget, "") != paintWidget {
		t.Fatalf("expected widget paint")
	}
	if paintFor(fixed, "") != paintFixed {
		t.Fatalf("expected fixed paint")
	}
	if paintFor(widget, "w") != paintSelected {
		t.Fatalf("expected selection to win")
	}
}
