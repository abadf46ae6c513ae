// Package tui renders the board in the terminal: a desktop sidebar, the
// grid with its elements, and mouse-driven drag and drop with live
// displacement previews.
package tui

import (
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/1broseidon/deskgrid/internal/board"
	"github.com/1broseidon/deskgrid/internal/config"
	"github.com/1broseidon/deskgrid/internal/drag"
	"github.com/1broseidon/deskgrid/internal/grid"
)

const sidebarWidth = 24

// Run starts the interactive board. Requires a TTY. configPath is the file
// to watch for live reloads; empty means the default location.
func Run(cfg *config.Config, configPath string, b *board.Board) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("board requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	p := tea.NewProgram(newModel(cfg, b), tea.WithAltScreen(), tea.WithMouseAllMotion())

	if configPath == "" {
		if path, err := config.DefaultConfigPath(); err == nil {
			configPath = path
		}
	}
	if configPath != "" {
		if w, err := config.NewWatcher(configPath); err == nil {
			defer w.Close()
			go func() {
				for c := range w.C {
					p.Send(configReloadedMsg{cfg: c})
				}
			}()
		}
	}

	_, err := p.Run()
	return err
}

// configReloadedMsg carries a freshly loaded config from the file watcher.
type configReloadedMsg struct {
	cfg *config.Config
}

type mode int

const (
	modeBoard mode = iota
	modeAddElement
	modeNewDesktop
	modeRenameDesktop
)

// model is the root bubbletea model.
type model struct {
	cfg   *config.Config
	board *board.Board

	session   *drag.Session
	candidate grid.Position
	visual    *drag.Visual

	sidebar sidebar

	mode mode
	form *huh.Form

	// Form-bound values (strings for huh, converted on submit)
	fName      string
	fType      string
	fComponent string
	fWidth     string
	fHeight    string

	selectedID string
	status     string

	width  int
	height int
}

func newModel(cfg *config.Config, b *board.Board) model {
	px, click, settle := cfg.Thresholds()
	return model{
		cfg:   cfg,
		board: b,
		session: drag.NewSession(drag.Thresholds{
			DragPixels:   px,
			ClickWindow:  click,
			SettleWindow: settle,
		}),
		sidebar: newSidebar(b),
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// gridOrigin returns the terminal coordinates of cell (0,0).
func (m model) gridOrigin() (x, y int) {
	met := m.board.Metrics()
	return sidebarWidth + 1 + met.Padding.Left, 1 + met.Padding.Top
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(configReloadedMsg); ok {
		return m.applyConfig(msg.cfg), nil
	}
	if m.mode != modeBoard {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Status bar on top, help bar on the bottom; the sidebar takes a
		// fixed column on the left.
		if err := m.board.Resize(m.width-sidebarWidth-1, m.height-2); err != nil {
			m.status = err.Error()
		}
		m.sidebar.setSize(sidebarWidth, m.height-2)
		return m, nil
	}
	return m, nil
}

// applyConfig swaps in a reloaded config: new drag thresholds, new grid
// geometry, and a resize so element placement follows the new cell size.
// Any in-flight drag is dropped since its pixel math is stale.
func (m model) applyConfig(cfg *config.Config) model {
	m.cfg = cfg
	px, click, settle := cfg.Thresholds()
	m.session = drag.NewSession(drag.Thresholds{
		DragPixels:   px,
		ClickWindow:  click,
		SettleWindow: settle,
	})
	m.visual = nil
	m.board.ApplyConfig(cfg)
	if m.width > 0 && m.height > 0 {
		if err := m.board.Resize(m.width-sidebarWidth-1, m.height-2); err != nil {
			m.status = err.Error()
			return m
		}
	}
	m.status = "config reloaded"
	return m
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		if m.session.Active() {
			m.session.Cancel()
			m.visual = nil
			return m, nil
		}
		m.selectedID = ""
		return m, nil
	case "enter":
		if item, ok := m.sidebar.selected(); ok {
			if err := m.board.SwitchDesktop(item.id); err != nil {
				m.status = err.Error()
			} else {
				m.status = "desktop: " + item.name
				m.selectedID = ""
			}
			m.sidebar.refresh(m.board)
		}
		return m, nil
	case "a":
		m.startAddElement()
		return m, m.form.Init()
	case "n":
		m.startNewDesktop()
		return m, m.form.Init()
	case "r":
		m.startRenameDesktop()
		return m, m.form.Init()
	case "x":
		if m.selectedID == "" {
			m.status = "click an element first"
			return m, nil
		}
		if err := m.board.RemoveElement(m.selectedID); err != nil {
			m.status = err.Error()
		} else {
			m.status = "element removed"
			m.selectedID = ""
		}
		m.sidebar.refresh(m.board)
		return m, nil
	case "X":
		d := m.board.CurrentDesktop()
		if err := m.board.DeleteDesktop(d.ID); err != nil {
			m.status = err.Error()
		} else {
			m.status = "deleted desktop " + d.Name
			m.selectedID = ""
		}
		m.sidebar.refresh(m.board)
		return m, nil
	}

	var cmd tea.Cmd
	m.sidebar, cmd = m.sidebar.update(msg)
	return m, cmd
}

func (m model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ox, oy := m.gridOrigin()
	pt := drag.Point{X: msg.X - ox, Y: msg.Y - oy}
	met := m.board.Metrics()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		// A release can be followed by a spurious press-click pair from the
		// terminal; ignore presses inside the settle window.
		if m.session.JustFinished(time.Now()) {
			return m, nil
		}
		p, rect, ok := m.hitTest(pt)
		if !ok {
			m.selectedID = ""
			return m, nil
		}
		m.session.Begin(p.ID, drag.Point{X: rect.Left, Y: rect.Top}, p.Pos, pt)
		return m, nil

	case tea.MouseActionMotion:
		if !m.session.Active() {
			return m, nil
		}
		if !m.session.Move(pt) {
			return m, nil
		}
		id := m.session.ElementID()
		p, ok := m.placedByID(id)
		if !ok {
			m.session.Cancel()
			return m, nil
		}
		m.candidate = m.session.CandidateCell(pt, met)
		preview := m.board.PreviewMove(id, m.candidate)
		delete(preview, id)
		m.session.SetDisplaced(preview)

		rect := met.ElementRect(grid.Position{}, p.Size)
		area := met.GridRect(m.board.Sys())
		v := m.session.VisualPosition(pt, rect, area)
		m.visual = &v
		return m, nil

	case tea.MouseActionRelease:
		if msg.Button != tea.MouseButtonLeft || !m.session.Active() {
			return m, nil
		}
		id := m.session.ElementID()
		wasDrag, click := m.session.Release()
		m.visual = nil
		if wasDrag {
			if _, err := m.board.MoveElement(id, m.candidate); err != nil {
				m.status = err.Error()
			} else {
				m.status = ""
			}
			return m, nil
		}
		if click {
			m.selectedID = id
			if p, ok := m.placedByID(id); ok {
				m.status = fmt.Sprintf("selected %s at (%d,%d)", elementLabel(m.board, id), p.Pos.X, p.Pos.Y)
			}
		}
		return m, nil
	}
	return m, nil
}

// hitTest finds the element whose pixel rect contains the point.
func (m model) hitTest(pt drag.Point) (grid.Placed, grid.PixelRect, bool) {
	met := m.board.Metrics()
	for _, p := range m.board.Placements() {
		rect := met.ElementRect(p.Pos, p.Size)
		if pt.X >= rect.Left && pt.X < rect.Left+rect.Width &&
			pt.Y >= rect.Top && pt.Y < rect.Top+rect.Height {
			return p, rect, true
		}
	}
	return grid.Placed{}, grid.PixelRect{}, false
}

func (m model) placedByID(id string) (grid.Placed, bool) {
	for _, p := range m.board.Placements() {
		if p.ID == id {
			return p, true
		}
	}
	return grid.Placed{}, false
}

func elementLabel(b *board.Board, id string) string {
	d := b.CurrentDesktop()
	for i := range d.Elements {
		if d.Elements[i].ID == id {
			if d.Elements[i].Component != "" {
				return d.Elements[i].Component
			}
			return string(d.Elements[i].Type)
		}
	}
	return id
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.board, m.status, m.width)
	helpBar := renderHelpBar(m.width)

	var content string
	if m.mode != modeBoard && m.form != nil {
		content = lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, m.form.View())
	} else {
		gridView := m.renderGridPane()
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.view(), " ", gridView)
	}

	return lipgloss.JoinVertical(lipgloss.Left, statusBar, content, helpBar)
}

func (m model) renderGridPane() string {
	met := m.board.Metrics()
	sys := m.board.Sys()

	dragID := ""
	var ghosts map[string]grid.Position
	if m.session.Dragging() {
		dragID = m.session.ElementID()
		ghosts = m.session.Displaced()
	}

	labels := make(map[string]string)
	d := m.board.CurrentDesktop()
	for i := range d.Elements {
		labels[d.Elements[i].ID] = elementLabel(m.board, d.Elements[i].ID)
	}

	frame := renderBoard(met, sys, m.board.Placements(), labels, m.selectedID, dragID, ghosts, m.visual)
	pad := lipgloss.NewStyle().Padding(met.Padding.Top, met.Padding.Right, met.Padding.Bottom, met.Padding.Left)
	return pad.Render(frame)
}

func (m model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.mode = modeBoard
			m.form = nil
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.applyForm()
		m.mode = modeBoard
		m.form = nil
		m.sidebar.refresh(m.board)
		return m, nil
	}

	return m, cmd
}

func (m *model) applyForm() {
	switch m.mode {
	case modeAddElement:
		w, errW := strconv.Atoi(m.fWidth)
		h, errH := strconv.Atoi(m.fHeight)
		if errW != nil || errH != nil {
			m.status = "width and height must be numbers"
			return
		}
		el, err := m.board.AddElement(grid.ElementType(m.fType), m.fComponent, grid.Size{Width: w, Height: h}, nil)
		if err != nil {
			m.status = err.Error()
			return
		}
		m.selectedID = el.ID
		m.status = "added " + elementLabel(m.board, el.ID)
	case modeNewDesktop:
		d, err := m.board.CreateDesktop(m.fName)
		if err != nil {
			m.status = err.Error()
			return
		}
		if err := m.board.SwitchDesktop(d.ID); err != nil {
			m.status = err.Error()
			return
		}
		m.status = "desktop: " + d.Name
	case modeRenameDesktop:
		d := m.board.CurrentDesktop()
		if err := m.board.RenameDesktop(d.ID, m.fName); err != nil {
			m.status = err.Error()
			return
		}
		m.status = "renamed to " + m.fName
	}
}
