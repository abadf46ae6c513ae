package grid

// Metrics holds the fixed pixel geometry of the grid: cell size, gap, and
// the padding around the usable area. All conversions between pixel space
// and cell space go through these values.
type Metrics struct {
	CellSize   int
	GapSize    int
	Padding    Padding
	MinColumns int
	MinRows    int
}

// Padding is the reserved border around the grid area, in pixels.
type Padding struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// PixelRect is a pixel-space bounding box handed to the rendering layer.
type PixelRect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// unit is the pitch of the grid: one cell plus one gap.
func (m Metrics) unit() int {
	return m.CellSize + m.GapSize
}

// PixelToCell converts a pixel coordinate (relative to the grid origin) to
// the cell containing it. Gap pixels belong to the following cell: the
// division floors, so a point just past a cell's right edge already counts
// as the next column. This governs snap while static.
func (m Metrics) PixelToCell(px, py int) Position {
	u := m.unit()
	if px < 0 {
		px = 0
	}
	if py < 0 {
		py = 0
	}
	return Position{X: px / u, Y: py / u}
}

// PixelToCellCentered converts with a half-cell offset before flooring, so
// an element being dragged must cross the midpoint of a cell before it
// counts as having moved into it. Deliberately a different rounding rule
// than PixelToCell: drag feedback should feel like a magnet toward the
// nearer cell, while click-to-place treats the gap as part of the next
// cell.
func (m Metrics) PixelToCellCentered(px, py int) Position {
	u := m.unit()
	px += u / 2
	py += u / 2
	if px < 0 {
		px = 0
	}
	if py < 0 {
		py = 0
	}
	return Position{X: px / u, Y: py / u}
}

// CellToPixel returns the pixel origin of a cell. Inputs are integers, so
// this is exact.
func (m Metrics) CellToPixel(pos Position) (left, top int) {
	u := m.unit()
	return pos.X * u, pos.Y * u
}

// ElementRect computes the pixel bounding box of an element at an absolute
// position. An element spanning W cells covers W cells plus the W-1 gaps
// between them, hence the trailing-gap subtraction.
func (m Metrics) ElementRect(pos Position, size Size) PixelRect {
	left, top := m.CellToPixel(pos)
	u := m.unit()
	return PixelRect{
		Left:   left,
		Top:    top,
		Width:  size.Width*u - m.GapSize,
		Height: size.Height*u - m.GapSize,
	}
}

// GridRect returns the pixel footprint of the whole grid area for a given
// system size, used to clamp free-form drag visuals.
func (m Metrics) GridRect(sys SystemSize) PixelRect {
	u := m.unit()
	return PixelRect{
		Left:   0,
		Top:    0,
		Width:  sys.Columns*u - m.GapSize,
		Height: sys.Rows*u - m.GapSize,
	}
}

// SystemSizeFor derives the column/row count from the viewport pixel
// dimensions. The count floors to whole cells, clamps to the configured
// minimums, and is walked back by one if the resulting footprint (which
// has no trailing gap) still overruns the available space.
func (m Metrics) SystemSizeFor(viewportW, viewportH int) SystemSize {
	u := m.unit()
	availW := viewportW - m.Padding.Left - m.Padding.Right
	availH := viewportH - m.Padding.Top - m.Padding.Bottom

	// The last cell in each axis carries no trailing gap, so one extra gap's
	// worth of space is usable when dividing.
	cols := (availW + m.GapSize) / u
	rows := (availH + m.GapSize) / u
	if cols < m.MinColumns {
		cols = m.MinColumns
	}
	if rows < m.MinRows {
		rows = m.MinRows
	}

	if cols > m.MinColumns && cols*u-m.GapSize > availW {
		cols--
	}
	if rows > m.MinRows && rows*u-m.GapSize > availH {
		rows--
	}

	return SystemSize{Columns: cols, Rows: rows}
}
