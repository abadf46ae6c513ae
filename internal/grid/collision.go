package grid

import "sort"

// maxDisplacementRadius caps the per-element BFS so displacement always
// terminates, even on a fully packed grid. An element that cannot be
// displaced within the cap keeps its pre-drag position instead of leaving
// the layout half-resolved.
const maxDisplacementRadius = 10

// Base direction order: right, left, down, up. Ties in the drag-alignment
// sort are broken by this order so results are reproducible.
var baseDirections = [4]Position{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
}

// ResolveDrag computes final absolute positions for every element affected
// by dropping the dragged element at target. The returned map always
// contains the dragged element when non-empty; fixed elements never appear
// in it. An empty map means the drop is rejected outright (target out of
// bounds or on a fixed element) and the caller must restore the original
// layout.
//
// original is the dragged element's pre-drag absolute position; it drives
// the direction preference and the swap shortcut and may be nil.
func ResolveDrag(placed []Placed, draggedID string, target Position, sys SystemSize, original *Position) map[string]Position {
	var dragged *Placed
	byID := make(map[string]*Placed, len(placed))
	for i := range placed {
		p := &placed[i]
		byID[p.ID] = p
		if p.ID == draggedID {
			dragged = p
		}
	}
	if dragged == nil || dragged.Fixed {
		return map[string]Position{}
	}
	if dragged.Size.Width > sys.Columns || dragged.Size.Height > sys.Rows {
		return map[string]Position{}
	}

	target = clampPosition(target, dragged.Size, sys)
	for i := range placed {
		p := &placed[i]
		if p.Fixed && Overlaps(target, dragged.Size, p.Pos, p.Size) {
			return map[string]Position{}
		}
	}

	// Working positions: start from current layout, dragged already at its
	// target. result records every element the cascade touches.
	current := make(map[string]Position, len(placed))
	for i := range placed {
		current[placed[i].ID] = placed[i].Pos
	}
	current[draggedID] = target
	result := map[string]Position{draggedID: target}

	dragVec := Position{}
	if original != nil {
		dragVec = Position{X: target.X - original.X, Y: target.Y - original.Y}
	}

	processed := map[string]bool{draggedID: true}
	var queue []string
	for i := range placed {
		p := &placed[i]
		if p.Fixed || p.ID == draggedID {
			continue
		}
		if Overlaps(target, dragged.Size, p.Pos, p.Size) {
			queue = append(queue, p.ID)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if processed[id] {
			continue
		}
		processed[id] = true
		el := byID[id]

		// The conflict may have resolved itself while the element waited in
		// the queue (whatever overlapped it moved elsewhere).
		if fitsAt(el.Pos, el.Size, id, sys, placed, current) {
			continue
		}

		var next Position
		switch {
		case original != nil &&
			el.Size.Width <= dragged.Size.Width && el.Size.Height <= dragged.Size.Height &&
			fitsAt(*original, el.Size, id, sys, placed, current):
			// Swap shortcut: the vacated slot takes the displaced element
			// directly, so similar-sized elements trade places.
			next = *original
		default:
			found := searchDisplacement(el, sys, placed, current, dragVec)
			if found == nil {
				// Can't be displaced within the bound; stays put.
				next = el.Pos
			} else {
				next = *found
			}
		}

		current[id] = next
		result[id] = next

		// Cascade: anything not yet handled that the assignee now covers
		// gets pushed too.
		if next != el.Pos {
			for i := range placed {
				o := &placed[i]
				if o.Fixed || processed[o.ID] {
					continue
				}
				if Overlaps(next, el.Size, current[o.ID], o.Size) {
					queue = append(queue, o.ID)
				}
			}
		}
	}

	return result
}

// fitsAt reports whether an element of the given size fits at pos without
// leaving the grid or overlapping anything else (fixed obstacles included)
// at its current working position.
func fitsAt(pos Position, size Size, selfID string, sys SystemSize, placed []Placed, current map[string]Position) bool {
	if pos.X < 0 || pos.Y < 0 || pos.X+size.Width > sys.Columns || pos.Y+size.Height > sys.Rows {
		return false
	}
	for i := range placed {
		p := &placed[i]
		if p.ID == selfID {
			continue
		}
		if Overlaps(pos, size, current[p.ID], p.Size) {
			return false
		}
	}
	return true
}

// searchDisplacement walks outward from the element's current position in
// the four axis directions, re-sorting the direction order each step so the
// direction best aligned with the drag vector is tried first. The search is
// breadth-first and bounded by maxDisplacementRadius; among equally-near
// free cells the most drag-aligned one wins.
func searchDisplacement(el *Placed, sys SystemSize, placed []Placed, current map[string]Position, dragVec Position) *Position {
	type node struct {
		pos   Position
		depth int
	}

	visited := map[Position]bool{el.Pos: true}
	queue := []node{{pos: el.Pos, depth: 0}}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if n.depth > 0 && fitsAt(n.pos, el.Size, el.ID, sys, placed, current) {
			pos := n.pos
			return &pos
		}
		if n.depth >= maxDisplacementRadius {
			continue
		}

		for _, dir := range sortedDirections(dragVec) {
			next := Position{X: n.pos.X + dir.X, Y: n.pos.Y + dir.Y}
			if visited[next] {
				continue
			}
			if next.X < 0 || next.Y < 0 || next.X+el.Size.Width > sys.Columns || next.Y+el.Size.Height > sys.Rows {
				continue
			}
			visited[next] = true
			queue = append(queue, node{pos: next, depth: n.depth + 1})
		}
	}
	return nil
}

// sortedDirections returns the four axis directions ordered by alignment
// with the drag vector (highest dot product first). A stable sort keeps the
// base right/left/down/up order for ties.
func sortedDirections(dragVec Position) [4]Position {
	dirs := baseDirections
	sort.SliceStable(dirs[:], func(i, j int) bool {
		return dot(dirs[i], dragVec) > dot(dirs[j], dragVec)
	})
	return dirs
}

func dot(a, b Position) int {
	return a.X*b.X + a.Y*b.Y
}

// clampPosition pulls a candidate position inside the grid bounds.
func clampPosition(pos Position, size Size, sys SystemSize) Position {
	if pos.X < 0 {
		pos.X = 0
	}
	if pos.Y < 0 {
		pos.Y = 0
	}
	if pos.X+size.Width > sys.Columns {
		pos.X = sys.Columns - size.Width
	}
	if pos.Y+size.Height > sys.Rows {
		pos.Y = sys.Rows - size.Height
	}
	return pos
}
