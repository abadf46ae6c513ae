// Package drag tracks the lifecycle of a single pointer drag gesture over
// the grid: click-vs-drag disambiguation, free-form visual positioning, and
// the displacement preview for elements pushed aside mid-drag. It is pure
// session state; committing a drop is the board's job.
package drag

import (
	"time"

	"github.com/1broseidon/deskgrid/internal/grid"
)

// Phase is the drag session lifecycle state.
type Phase int

const (
	// PhaseIdle means no pointer gesture is in progress.
	PhaseIdle Phase = iota
	// PhasePotential means the pointer is down but hasn't moved far enough
	// to count as a drag; a release here is a plain click.
	PhasePotential
	// PhaseDragging means the threshold was crossed and the element follows
	// the pointer.
	PhaseDragging
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePotential:
		return "potential"
	case PhaseDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Point is a pixel coordinate in grid-area space.
type Point struct {
	X int
	Y int
}

// Thresholds are the gesture tuning knobs, loaded from config.
type Thresholds struct {
	// DragPixels is how far the pointer must move on either axis before a
	// press becomes a drag.
	DragPixels int
	// ClickWindow bounds how long an under-threshold gesture may last and
	// still be an unambiguous click.
	ClickWindow time.Duration
	// SettleWindow is how long after a drag release the session still
	// reports JustFinished, so the trailing click event browsers and
	// terminals emit can suppress itself.
	SettleWindow time.Duration
}

// hoverScale is the visual scale-up applied to the dragged element while it
// follows the pointer.
const hoverScale = 1.05

// Visual is the free-form pixel rendering state of the dragged element.
type Visual struct {
	Left   int
	Top    int
	Width  int
	Height int
	Scale  float64
}

// Session is a single pointer-down-to-pointer-up gesture. Exactly one
// session exists per grid instance; a new press while one is active is
// ignored.
type Session struct {
	phase       Phase
	elementID   string
	startMouse  Point
	mouseOffset Point // pointer minus element pixel origin at press time
	elementPos  grid.Position
	startedAt   time.Time
	dragEndedAt time.Time

	displaced map[string]grid.Position

	thresholds Thresholds
	now        func() time.Time
}

// NewSession creates an idle session with the given thresholds.
func NewSession(th Thresholds) *Session {
	return &Session{
		thresholds: th,
		now:        time.Now,
	}
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Dragging reports whether the threshold has been crossed.
func (s *Session) Dragging() bool {
	return s.phase == PhaseDragging
}

// Active reports whether any gesture (potential or dragging) is in flight.
func (s *Session) Active() bool {
	return s.phase != PhaseIdle
}

// ElementID returns the element under the gesture, or "" when idle.
func (s *Session) ElementID() string {
	if s.phase == PhaseIdle {
		return ""
	}
	return s.elementID
}

// StartPosition returns the element's absolute position at press time.
func (s *Session) StartPosition() grid.Position {
	return s.elementPos
}

// Begin starts a potential drag. elementOrigin is the element's pixel
// origin, elementPos its absolute cell position at press time. Returns
// false (and changes nothing) when a gesture is already active.
func (s *Session) Begin(elementID string, elementOrigin Point, elementPos grid.Position, mouse Point) bool {
	if s.phase != PhaseIdle {
		return false
	}
	s.phase = PhasePotential
	s.elementID = elementID
	s.startMouse = mouse
	s.mouseOffset = Point{X: mouse.X - elementOrigin.X, Y: mouse.Y - elementOrigin.Y}
	s.elementPos = elementPos
	s.startedAt = s.now()
	s.displaced = nil
	return true
}

// Move feeds a pointer-move. The first move that exceeds the threshold on
// either axis promotes the session to dragging; returns true when dragging.
func (s *Session) Move(mouse Point) bool {
	switch s.phase {
	case PhaseIdle:
		return false
	case PhasePotential:
		dx := abs(mouse.X - s.startMouse.X)
		dy := abs(mouse.Y - s.startMouse.Y)
		if dx > s.thresholds.DragPixels || dy > s.thresholds.DragPixels {
			s.phase = PhaseDragging
		}
		return s.phase == PhaseDragging
	default:
		return true
	}
}

// VisualPosition computes the free-form pixel position of the dragged
// element for the current pointer: the cursor minus the press offset,
// clamped to the grid area, scaled up as a hover affordance when the
// scaled footprint still fits inside the grid area.
func (s *Session) VisualPosition(mouse Point, elem grid.PixelRect, area grid.PixelRect) Visual {
	left := mouse.X - s.mouseOffset.X
	top := mouse.Y - s.mouseOffset.Y

	scale := hoverScale
	scaledW := int(float64(elem.Width) * scale)
	scaledH := int(float64(elem.Height) * scale)
	if scaledW > area.Width || scaledH > area.Height {
		scale = 1.0
		scaledW = elem.Width
		scaledH = elem.Height
	}

	if left < area.Left {
		left = area.Left
	}
	if top < area.Top {
		top = area.Top
	}
	if left+scaledW > area.Left+area.Width {
		left = area.Left + area.Width - scaledW
	}
	if top+scaledH > area.Top+area.Height {
		top = area.Top + area.Height - scaledH
	}

	return Visual{Left: left, Top: top, Width: scaledW, Height: scaledH, Scale: scale}
}

// CandidateCell converts the current pointer into the snapped landing cell
// using centered rounding, so the element must cross a cell midpoint before
// the preview jumps.
func (s *Session) CandidateCell(mouse Point, m grid.Metrics) grid.Position {
	return m.PixelToCellCentered(mouse.X-s.mouseOffset.X, mouse.Y-s.mouseOffset.Y)
}

// SetDisplaced stores the proposed positions of elements pushed aside by
// the in-progress drag, for ghost rendering. Discarded when the session
// ends without a commit.
func (s *Session) SetDisplaced(positions map[string]grid.Position) {
	s.displaced = positions
}

// Displaced returns the current displacement preview.
func (s *Session) Displaced() map[string]grid.Position {
	return s.displaced
}

// Release ends the gesture on pointer-up. wasDrag is true when the
// threshold had been crossed (the caller then commits or reverts based on
// the resolver result); click is true for an unambiguous quick click that
// never crossed the threshold.
func (s *Session) Release() (wasDrag, click bool) {
	switch s.phase {
	case PhaseDragging:
		s.dragEndedAt = s.now()
		s.reset()
		return true, false
	case PhasePotential:
		click = s.now().Sub(s.startedAt) <= s.thresholds.ClickWindow
		s.reset()
		return false, click
	default:
		return false, false
	}
}

// Cancel abandons the gesture without committing and without marking a
// drag as finished (no release happened, so no trailing click follows).
func (s *Session) Cancel() {
	s.reset()
}

// JustFinished reports whether a drag was released within the settle
// window, so a click handler firing right after the release can suppress
// itself.
func (s *Session) JustFinished(now time.Time) bool {
	if s.dragEndedAt.IsZero() {
		return false
	}
	return now.Sub(s.dragEndedAt) < s.thresholds.SettleWindow
}

func (s *Session) reset() {
	s.phase = PhaseIdle
	s.elementID = ""
	s.startMouse = Point{}
	s.mouseOffset = Point{}
	s.elementPos = grid.Position{}
	s.startedAt = time.Time{}
	s.displaced = nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
