package drag

import (
	"testing"
	"time"

	"github.com/1broseidon/deskgrid/internal/grid"
)

func testThresholds() Thresholds {
	return Thresholds{
		DragPixels:   5,
		ClickWindow:  200 * time.Millisecond,
		SettleWindow: 300 * time.Millisecond,
	}
}

// fakeClock advances manually so timing windows are deterministic.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestSession() (*Session, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	s := NewSession(testThresholds())
	s.now = clock.now
	return s, clock
}

func TestBeginIgnoredWhileActive(t *testing.T) {
	s, _ := newTestSession()
	if !s.Begin("a", Point{X: 10, Y: 10}, grid.Position{X: 1, Y: 1}, Point{X: 12, Y: 12}) {
		t.Fatalf("first Begin should succeed")
	}
	if s.Begin("b", Point{}, grid.Position{}, Point{}) {
		t.Fatalf("Begin must be ignored while a gesture is active")
	}
	if s.ElementID() != "a" {
		t.Fatalf("active element changed: %s", s.ElementID())
	}
}

func TestThresholdPromotesToDragging(t *testing.T) {
	s, _ := newTestSession()
	s.Begin("a", Point{X: 0, Y: 0}, grid.Position{}, Point{X: 50, Y: 50})

	if s.Move(Point{X: 54, Y: 50}) {
		t.Fatalf("4px move must not start a drag")
	}
	if s.Phase() != PhasePotential {
		t.Fatalf("expected potential, got %s", s.Phase())
	}
	if !s.Move(Point{X: 50, Y: 56}) {
		t.Fatalf("6px move on the y axis must start a drag")
	}
	if !s.Dragging() {
		t.Fatalf("expected dragging phase")
	}
}

func TestQuickReleaseIsClick(t *testing.T) {
	s, clock := newTestSession()
	s.Begin("a", Point{}, grid.Position{}, Point{X: 5, Y: 5})
	s.Move(Point{X: 6, Y: 5})
	clock.advance(100 * time.Millisecond)

	wasDrag, click := s.Release()
	if wasDrag || !click {
		t.Fatalf("expected click, got wasDrag=%v click=%v", wasDrag, click)
	}
	if s.Active() {
		t.Fatalf("session must be idle after release")
	}
}

func TestSlowReleaseIsNeither(t *testing.T) {
	s, clock := newTestSession()
	s.Begin("a", Point{}, grid.Position{}, Point{X: 5, Y: 5})
	clock.advance(500 * time.Millisecond)

	wasDrag, click := s.Release()
	if wasDrag || click {
		t.Fatalf("held press past the click window is neither: wasDrag=%v click=%v", wasDrag, click)
	}
}

func TestJustFinishedWindow(t *testing.T) {
	s, clock := newTestSession()
	s.Begin("a", Point{}, grid.Position{}, Point{X: 0, Y: 0})
	s.Move(Point{X: 20, Y: 0})

	wasDrag, _ := s.Release()
	if !wasDrag {
		t.Fatalf("expected a drag release")
	}
	if !s.JustFinished(clock.t.Add(100 * time.Millisecond)) {
		t.Fatalf("expected JustFinished within the settle window")
	}
	if s.JustFinished(clock.t.Add(400 * time.Millisecond)) {
		t.Fatalf("expected JustFinished to expire after the settle window")
	}
}

func TestCancelDoesNotMarkFinished(t *testing.T) {
	s, clock := newTestSession()
	s.Begin("a", Point{}, grid.Position{}, Point{X: 0, Y: 0})
	s.Move(Point{X: 20, Y: 0})
	s.Cancel()

	if s.Active() {
		t.Fatalf("session must be idle after cancel")
	}
	if s.JustFinished(clock.t) {
		t.Fatalf("cancel is not a release; no settle window applies")
	}
}

func TestVisualPositionClampsAndScales(t *testing.T) {
	s, _ := newTestSession()
	s.Begin("a", Point{X: 10, Y: 10}, grid.Position{X: 1, Y: 1}, Point{X: 12, Y: 12})
	s.Move(Point{X: 40, Y: 40})

	elem := grid.PixelRect{Width: 19, Height: 19}
	area := grid.PixelRect{Left: 0, Top: 0, Width: 79, Height: 59}

	v := s.VisualPosition(Point{X: 40, Y: 40}, elem, area)
	if v.Scale != hoverScale {
		t.Fatalf("expected hover scale, got %v", v.Scale)
	}
	// Cursor minus press offset (2,2).
	if v.Left != 38 || v.Top != 38 {
		t.Fatalf("expected (38,38), got (%d,%d)", v.Left, v.Top)
	}

	// Far outside the grid area: clamped to the bottom-right edge.
	v = s.VisualPosition(Point{X: 500, Y: 500}, elem, area)
	if v.Left+v.Width > area.Width || v.Top+v.Height > area.Height {
		t.Fatalf("visual position not clamped: %+v", v)
	}

	// When the scaled footprint cannot fit, no scale-up is applied.
	tiny := grid.PixelRect{Width: 20, Height: 20}
	v = s.VisualPosition(Point{X: 5, Y: 5}, grid.PixelRect{Width: 20, Height: 20}, tiny)
	if v.Scale != 1.0 || v.Width != 20 {
		t.Fatalf("expected unscaled visual in a tight area, got %+v", v)
	}
}

func TestCandidateCellUsesCenteredRounding(t *testing.T) {
	s, _ := newTestSession()
	m := grid.Metrics{CellSize: 9, GapSize: 1}
	s.Begin("a", Point{X: 0, Y: 0}, grid.Position{}, Point{X: 0, Y: 0})

	if got := s.CandidateCell(Point{X: 4, Y: 0}, m); got != (grid.Position{X: 0, Y: 0}) {
		t.Fatalf("expected cell (0,0) before the midpoint, got %+v", got)
	}
	if got := s.CandidateCell(Point{X: 5, Y: 0}, m); got != (grid.Position{X: 1, Y: 0}) {
		t.Fatalf("expected cell (1,0) past the midpoint, got %+v", got)
	}
}

func TestDisplacedPreviewClearedOnRelease(t *testing.T) {
	s, _ := newTestSession()
	s.Begin("a", Point{}, grid.Position{}, Point{X: 0, Y: 0})
	s.Move(Point{X: 20, Y: 0})
	s.SetDisplaced(map[string]grid.Position{"b": {X: 2, Y: 0}})
	if len(s.Displaced()) != 1 {
		t.Fatalf("expected preview to be stored")
	}
	s.Release()
	if s.Displaced() != nil {
		t.Fatalf("preview must be discarded when the session ends")
	}
}
