package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/deskgrid/internal/board"
	"github.com/1broseidon/deskgrid/internal/drag"
	"github.com/1broseidon/deskgrid/internal/grid"
)

// Paint layers, back to front: background dots, resting elements, ghost
// previews, the free-form drag visual.
type paint int

const (
	paintEmpty paint = iota
	paintDot
	paintWidget
	paintIcon
	paintFixed
	paintSelected
	paintGhost
	paintDrag
)

var paintStyles = map[paint]lipgloss.Style{
	paintDot:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	paintWidget:   lipgloss.NewStyle().Foreground(lipgloss.Color("110")),
	paintIcon:     lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
	paintFixed:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	paintSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("215")),
	paintGhost:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	paintDrag:     lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
}

type canvasCell struct {
	r rune
	p paint
}

// canvas is a character raster the grid is painted onto before styling.
type canvas struct {
	w, h  int
	cells []canvasCell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([]canvasCell, w*h)}
	for i := range c.cells {
		c.cells[i] = canvasCell{r: ' ', p: paintEmpty}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, p paint) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = canvasCell{r: r, p: p}
}

// box paints a bordered rectangle with a centered label on its middle row.
// Rectangles too small for a border are filled solid.
func (c *canvas) box(r grid.PixelRect, p paint, label string) {
	if r.Width < 1 || r.Height < 1 {
		return
	}
	if r.Width < 2 || r.Height < 2 {
		for y := r.Top; y < r.Top+r.Height; y++ {
			for x := r.Left; x < r.Left+r.Width; x++ {
				c.set(x, y, '█', p)
			}
		}
		c.text(r.Left, r.Top, r.Width, label, p)
		return
	}

	right := r.Left + r.Width - 1
	bottom := r.Top + r.Height - 1

	for x := r.Left + 1; x < right; x++ {
		c.set(x, r.Top, '─', p)
		c.set(x, bottom, '─', p)
	}
	for y := r.Top + 1; y < bottom; y++ {
		c.set(r.Left, y, '│', p)
		c.set(right, y, '│', p)
		for x := r.Left + 1; x < right; x++ {
			c.set(x, y, ' ', p)
		}
	}
	c.set(r.Left, r.Top, '╭', p)
	c.set(right, r.Top, '╮', p)
	c.set(r.Left, bottom, '╰', p)
	c.set(right, bottom, '╯', p)

	c.text(r.Left+1, r.Top+r.Height/2, r.Width-2, label, p)
}

// text writes a label clipped and centered within width columns.
func (c *canvas) text(x, y, width int, label string, p paint) {
	if width < 1 || label == "" {
		return
	}
	runes := []rune(label)
	if len(runes) > width {
		runes = runes[:width]
	}
	start := x + (width-len(runes))/2
	for i, r := range runes {
		c.set(start+i, y, r, p)
	}
}

// String renders the canvas with styles applied, grouping runs of the same
// paint to keep the escape-sequence overhead down.
func (c *canvas) String() string {
	var sb strings.Builder
	for y := 0; y < c.h; y++ {
		runStart := 0
		row := c.cells[y*c.w : (y+1)*c.w]
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].p == row[runStart].p {
				continue
			}
			var runes []rune
			for _, cell := range row[runStart:x] {
				runes = append(runes, cell.r)
			}
			seg := string(runes)
			if st, ok := paintStyles[row[runStart].p]; ok {
				seg = st.Render(seg)
			}
			sb.WriteString(seg)
			runStart = x
		}
		if y < c.h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func paintFor(p grid.Placed, selectedID string) paint {
	if p.ID == selectedID {
		return paintSelected
	}
	if p.Fixed {
		return paintFixed
	}
	if p.Size.Width == 1 && p.Size.Height == 1 {
		return paintIcon
	}
	return paintWidget
}

// renderBoard paints the full grid: cell markers, resting elements, ghost
// positions for elements displaced by the in-flight drag, and the dragged
// element itself at its free-form pixel position.
func renderBoard(met grid.Metrics, sys grid.SystemSize, placed []grid.Placed, labels map[string]string, selectedID, dragID string, ghosts map[string]grid.Position, visual *drag.Visual) string {
	area := met.GridRect(sys)
	c := newCanvas(area.Width, area.Height)

	// Cell origin markers.
	for cy := 0; cy < sys.Rows; cy++ {
		for cx := 0; cx < sys.Columns; cx++ {
			px, py := met.CellToPixel(grid.Position{X: cx, Y: cy})
			c.set(px, py, '·', paintDot)
		}
	}

	for _, p := range placed {
		if p.ID == dragID {
			continue
		}
		pos := p.Pos
		if ghost, ok := ghosts[p.ID]; ok {
			pos = ghost
		}
		c.box(met.ElementRect(pos, p.Size), paintFor(p, selectedID), labels[p.ID])
	}

	// Ghost of the landing cell for the dragged element.
	if dragID != "" {
		for _, p := range placed {
			if p.ID != dragID {
				continue
			}
			if visual != nil {
				c.box(grid.PixelRect{Left: visual.Left, Top: visual.Top, Width: visual.Width, Height: visual.Height}, paintDrag, labels[p.ID])
			}
		}
	}

	return c.String()
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Background(lipgloss.Color("236"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

func renderStatusBar(b *board.Board, status string, width int) string {
	d := b.CurrentDesktop()
	sys := b.Sys()
	left := statusStyle.Render(" deskgrid ")
	mid := statusStyle.Render(" " + d.Name + " ")
	dims := statusStyle.Render(fmt.Sprintf(" %dx%d ", sys.Columns, sys.Rows))

	line := left + mid + dims
	if status != "" {
		line += errorStyle.Render(" " + status + " ")
	}
	return lipgloss.NewStyle().Width(width).Background(lipgloss.Color("236")).Render(line)
}

func renderHelpBar(width int) string {
	help := " drag: move  click: select  a: add  x: remove  n: new desktop  r: rename  X: delete desktop  q: quit"
	return helpStyle.Width(width).Render(help)
}
