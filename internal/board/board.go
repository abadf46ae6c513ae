// Package board owns the live desktop state: the desktop list, the active
// desktop, and every element mutation. It converts between the persisted
// anchor-relative layout and the absolute coordinates the grid engine works
// in, and writes the full state back to the store after each committed
// change.
package board

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/1broseidon/deskgrid/internal/config"
	"github.com/1broseidon/deskgrid/internal/grid"
	"github.com/1broseidon/deskgrid/internal/store"
)

type Board struct {
	mu         sync.RWMutex
	metrics    grid.Metrics
	iconRadius int
	sys        grid.SystemSize
	state      *store.State
	store      *store.Store
}

// New loads the persisted state (seeding a single empty desktop on first
// run) and returns a board sized to the configured minimum grid. Call
// Resize once the real viewport is known.
func New(cfg *config.Config, st *store.Store) (*Board, error) {
	state, err := st.Load()
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = &store.State{
			Desktops: []store.Desktop{{
				ID:   uuid.NewString(),
				Name: cfg.DefaultDesktop,
			}},
		}
		state.CurrentDesktop = state.Desktops[0].ID
		if err := st.Save(state); err != nil {
			return nil, err
		}
	}
	if len(state.Desktops) == 0 {
		return nil, fmt.Errorf("board state has no desktops")
	}
	if findDesktop(state, state.CurrentDesktop) == nil {
		state.CurrentDesktop = state.Desktops[0].ID
	}

	m := cfg.Metrics()
	return &Board{
		metrics:    m,
		iconRadius: cfg.IconSearchRadius,
		sys:        grid.SystemSize{Columns: m.MinColumns, Rows: m.MinRows},
		state:      state,
		store:      st,
	}, nil
}

func findDesktop(st *store.State, id string) *store.Desktop {
	for i := range st.Desktops {
		if st.Desktops[i].ID == id {
			return &st.Desktops[i]
		}
	}
	return nil
}

func (b *Board) current() *store.Desktop {
	return findDesktop(b.state, b.state.CurrentDesktop)
}

func (b *Board) save() error {
	return b.store.Save(b.state)
}

// Metrics returns the grid geometry.
func (b *Board) Metrics() grid.Metrics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.metrics
}

// ApplyConfig swaps in reloaded grid tunables. Call Resize afterwards so
// the grid dimensions follow the new cell size.
func (b *Board) ApplyConfig(cfg *config.Config) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.metrics = cfg.Metrics()
	b.iconRadius = cfg.IconSearchRadius
}

// Sys returns the current grid dimensions.
func (b *Board) Sys() grid.SystemSize {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.sys
}

// Anchor returns the anchor column for the current grid width.
func (b *Board) Anchor() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return grid.AnchorColumn(b.sys.Columns)
}

// Resize recomputes the grid dimensions from the viewport. Persisted
// relative coordinates never change on resize; only their anchor resolution
// does. An element that no longer fits the smaller grid renders clipped
// until it is moved, it is not silently relocated.
func (b *Board) Resize(viewportW, viewportH int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sys = b.metrics.SystemSizeFor(viewportW, viewportH)
	return nil
}

func elementByID(d *store.Desktop, id string) *grid.Element {
	for i := range d.Elements {
		if d.Elements[i].ID == id {
			return &d.Elements[i]
		}
	}
	return nil
}

// Desktops returns a snapshot of all desktops.
func (b *Board) Desktops() []store.Desktop {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]store.Desktop, len(b.state.Desktops))
	copy(out, b.state.Desktops)
	return out
}

// CurrentDesktop returns a snapshot of the active desktop.
func (b *Board) CurrentDesktop() store.Desktop {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return *b.current()
}

// Placements resolves the active desktop to absolute coordinates.
func (b *Board) Placements() []grid.Placed {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return grid.Resolve(b.current().Elements, grid.AnchorColumn(b.sys.Columns))
}

// SwitchDesktop makes the desktop with the given ID or name active.
func (b *Board) SwitchDesktop(ref string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	d := b.lookup(ref)
	if d == nil {
		return fmt.Errorf("desktop %q not found", ref)
	}
	if d.ID == b.state.CurrentDesktop {
		return nil
	}
	b.state.CurrentDesktop = d.ID
	return b.save()
}

func (b *Board) lookup(ref string) *store.Desktop {
	if d := findDesktop(b.state, ref); d != nil {
		return d
	}
	for i := range b.state.Desktops {
		if b.state.Desktops[i].Name == ref {
			return &b.state.Desktops[i]
		}
	}
	return nil
}

// CreateDesktop adds an empty desktop and returns it.
func (b *Board) CreateDesktop(name string) (store.Desktop, error) {
	if err := store.ValidateDesktopName(name); err != nil {
		return store.Desktop{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.state.Desktops {
		if b.state.Desktops[i].Name == name {
			return store.Desktop{}, fmt.Errorf("desktop %q already exists", name)
		}
	}
	d := store.Desktop{ID: uuid.NewString(), Name: name}
	b.state.Desktops = append(b.state.Desktops, d)
	if err := b.save(); err != nil {
		return store.Desktop{}, err
	}
	return d, nil
}

// RenameDesktop changes a desktop's display name.
func (b *Board) RenameDesktop(ref, name string) error {
	if err := store.ValidateDesktopName(name); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	d := b.lookup(ref)
	if d == nil {
		return fmt.Errorf("desktop %q not found", ref)
	}
	for i := range b.state.Desktops {
		if b.state.Desktops[i].ID != d.ID && b.state.Desktops[i].Name == name {
			return fmt.Errorf("desktop %q already exists", name)
		}
	}
	d.Name = name
	return b.save()
}

// DeleteDesktop removes a desktop and its elements. The last desktop cannot
// be deleted; deleting the active one activates the first remaining.
func (b *Board) DeleteDesktop(ref string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	d := b.lookup(ref)
	if d == nil {
		return fmt.Errorf("desktop %q not found", ref)
	}
	if len(b.state.Desktops) == 1 {
		return fmt.Errorf("cannot delete the last desktop")
	}

	id := d.ID
	out := b.state.Desktops[:0]
	for _, existing := range b.state.Desktops {
		if existing.ID != id {
			out = append(out, existing)
		}
	}
	b.state.Desktops = out
	if b.state.CurrentDesktop == id {
		b.state.CurrentDesktop = b.state.Desktops[0].ID
	}
	return b.save()
}

// AddElement places a new element in the first free slot, scanning rows top
// to bottom. Fails when the visible grid has no room.
func (b *Board) AddElement(typ grid.ElementType, component string, size grid.Size, data json.RawMessage) (grid.Element, error) {
	return b.addElement(typ, component, size, data, nil)
}

// AddElementAt places a new element as close as possible to the preferred
// cell: the cell itself when free, then the nearest free slot within the
// type's search radius, then the first raster slot.
func (b *Board) AddElementAt(typ grid.ElementType, component string, size grid.Size, data json.RawMessage, near grid.Position) (grid.Element, error) {
	return b.addElement(typ, component, size, data, &near)
}

func (b *Board) addElement(typ grid.ElementType, component string, size grid.Size, data json.RawMessage, near *grid.Position) (grid.Element, error) {
	if size.Width < 1 || size.Height < 1 {
		return grid.Element{}, fmt.Errorf("element size must be at least 1x1")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if size.Width > b.sys.Columns || size.Height > b.sys.Rows {
		return grid.Element{}, fmt.Errorf("element %dx%d does not fit a %dx%d grid",
			size.Width, size.Height, b.sys.Columns, b.sys.Rows)
	}

	d := b.current()
	anchor := grid.AnchorColumn(b.sys.Columns)
	placed := grid.Resolve(d.Elements, anchor)

	var pos *grid.Position
	if near != nil {
		radius := grid.SearchRadius(typ, size, b.iconRadius)
		pos = grid.FindNearestAvailablePosition(*near, size, b.sys, radius, placed)
	} else {
		pos = grid.FindAvailablePosition(size, b.sys, 0, placed)
	}
	if pos == nil {
		return grid.Element{}, fmt.Errorf("no room on desktop %q for a %dx%d element", d.Name, size.Width, size.Height)
	}

	el := grid.Element{
		ID:        uuid.NewString(),
		Type:      typ,
		Position:  grid.ToRelative(*pos, anchor),
		Size:      size,
		Component: component,
		Fixed:     typ == grid.ElementFixed,
		Data:      data,
	}
	d.Elements = append(d.Elements, el)
	if err := b.save(); err != nil {
		return grid.Element{}, err
	}
	return el, nil
}

// RemoveElement deletes an element from the active desktop.
func (b *Board) RemoveElement(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	d := b.current()
	for i := range d.Elements {
		if d.Elements[i].ID == id {
			d.Elements = append(d.Elements[:i], d.Elements[i+1:]...)
			return b.save()
		}
	}
	return fmt.Errorf("element %q not found", id)
}

// UpdateElementState replaces an element's opaque widget state.
func (b *Board) UpdateElementState(id string, state json.RawMessage) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	el := elementByID(b.current(), id)
	if el == nil {
		return fmt.Errorf("element %q not found", id)
	}
	el.State = state
	return b.save()
}

// MoveElement drops the element at target, displacing whatever is in the
// way, and commits the resulting layout. The returned map holds the final
// absolute position of every element that moved. A rejected drop (target on
// a fixed element, or the element cannot be moved) returns an error and
// leaves the layout untouched.
func (b *Board) MoveElement(id string, target grid.Position) (map[string]grid.Position, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	d := b.current()
	el := elementByID(d, id)
	if el == nil {
		return nil, fmt.Errorf("element %q not found", id)
	}
	if !el.Movable() {
		return nil, fmt.Errorf("element %q is fixed", id)
	}

	anchor := grid.AnchorColumn(b.sys.Columns)
	placed := grid.Resolve(d.Elements, anchor)
	original := grid.ToAbsolute(el.Position, anchor)

	result := grid.ResolveDrag(placed, id, target, b.sys, &original)
	if len(result) == 0 {
		return nil, fmt.Errorf("cannot place element at (%d,%d)", target.X, target.Y)
	}

	for movedID, pos := range result {
		moved := elementByID(d, movedID)
		if moved == nil {
			continue
		}
		moved.Position = grid.ToRelative(pos, anchor)
	}
	if err := b.save(); err != nil {
		return nil, err
	}
	return result, nil
}

// PreviewMove computes the displacement for a drop at target without
// committing anything, for mid-drag ghost rendering.
func (b *Board) PreviewMove(id string, target grid.Position) map[string]grid.Position {
	b.mu.RLock()
	defer b.mu.RUnlock()

	d := b.current()
	el := elementByID(d, id)
	if el == nil || !el.Movable() {
		return map[string]grid.Position{}
	}
	anchor := grid.AnchorColumn(b.sys.Columns)
	placed := grid.Resolve(d.Elements, anchor)
	original := grid.ToAbsolute(el.Position, anchor)
	return grid.ResolveDrag(placed, id, target, b.sys, &original)
}
