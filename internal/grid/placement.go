package grid

// maxScanRows bounds the raster scan so a packed grid cannot spin the UI
// thread. Hitting the bound means "no room", never an error.
const maxScanRows = 20

// DefaultIconSearchRadius is the Chebyshev ring radius used for icons in
// the nearest-slot search; widgets scale their radius with their footprint.
const DefaultIconSearchRadius = 3

// Overlaps reports whether two cell rectangles intersect. Half-open
// interval semantics on both axes: rectangles that merely touch edges do
// not overlap.
func Overlaps(aPos Position, aSize Size, bPos Position, bSize Size) bool {
	return aPos.X < bPos.X+bSize.Width && bPos.X < aPos.X+aSize.Width &&
		aPos.Y < bPos.Y+bSize.Height && bPos.Y < aPos.Y+aSize.Height
}

// IsValidPosition reports whether an element of the given size can sit at
// pos: fully inside [0,columns)x[0,rows) and clear of every placement in
// others.
func IsValidPosition(pos Position, size Size, sys SystemSize, others []Placed) bool {
	if pos.X < 0 || pos.Y < 0 {
		return false
	}
	if pos.X+size.Width > sys.Columns || pos.Y+size.Height > sys.Rows {
		return false
	}
	for i := range others {
		if Overlaps(pos, size, others[i].Pos, others[i].Size) {
			return false
		}
	}
	return true
}

// FindAvailablePosition raster-scans row-major from (0, startRow) for the
// first slot that fits the size. The column cursor steps by the element
// width and wraps to the next row when it would run past the right edge.
// Returns nil when no slot exists within the scan bound; callers treat nil
// as a silent no-op.
func FindAvailablePosition(size Size, sys SystemSize, startRow int, others []Placed) *Position {
	if startRow < 0 {
		startRow = 0
	}
	if size.Width <= 0 || size.Height <= 0 || size.Width > sys.Columns {
		return nil
	}
	for y := startRow; y < startRow+maxScanRows; y++ {
		for x := 0; x+size.Width <= sys.Columns; x += size.Width {
			pos := Position{X: x, Y: y}
			if IsValidPosition(pos, size, sys, others) {
				return &pos
			}
		}
	}
	return nil
}

// SearchRadius returns the nearest-slot search radius for an element:
// icons use the small fixed iconRadius, widgets scale with their footprint.
func SearchRadius(t ElementType, size Size, iconRadius int) int {
	if t == ElementIcon {
		if iconRadius < 1 {
			iconRadius = DefaultIconSearchRadius
		}
		return iconRadius
	}
	r := size.Width
	if size.Height > r {
		r = size.Height
	}
	r *= 2
	if r < 5 {
		r = 5
	}
	return r
}

// FindNearestAvailablePosition tries the origin cell first, then scans
// cells within growing Chebyshev rings around it up to radius, and finally
// falls back to a raster scan from the top of the grid. Returns nil when
// everything is full.
func FindNearestAvailablePosition(origin Position, size Size, sys SystemSize, radius int, others []Placed) *Position {
	if IsValidPosition(origin, size, sys, others) {
		return &origin
	}
	for r := 1; r <= radius; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if max(abs(dx), abs(dy)) != r {
					continue
				}
				pos := Position{X: origin.X + dx, Y: origin.Y + dy}
				if IsValidPosition(pos, size, sys, others) {
					return &pos
				}
			}
		}
	}
	return FindAvailablePosition(size, sys, 0, others)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
