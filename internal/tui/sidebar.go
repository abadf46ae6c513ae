package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskgrid/internal/board"
)

// desktopItem implements list.Item for the desktop sidebar.
type desktopItem struct {
	id     string
	name   string
	count  int
	active bool
}

func (d desktopItem) FilterValue() string { return d.name }

func (d desktopItem) Title() string {
	if d.active {
		return "● " + d.name
	}
	return "  " + d.name
}

func (d desktopItem) Description() string {
	if d.count == 1 {
		return "  1 element"
	}
	return fmt.Sprintf("  %d elements", d.count)
}

type sidebar struct {
	list list.Model
}

func newSidebar(b *board.Board) sidebar {
	delegate := list.NewDefaultDelegate()
	l := list.New(buildDesktopItems(b), delegate, sidebarWidth, 0)
	l.Title = "Desktops"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return sidebar{list: l}
}

func buildDesktopItems(b *board.Board) []list.Item {
	current := b.CurrentDesktop()
	desktops := b.Desktops()
	items := make([]list.Item, 0, len(desktops))
	for _, d := range desktops {
		items = append(items, desktopItem{
			id:     d.ID,
			name:   d.Name,
			count:  len(d.Elements),
			active: d.ID == current.ID,
		})
	}
	return items
}

func (s sidebar) update(msg tea.Msg) (sidebar, tea.Cmd) {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *sidebar) refresh(b *board.Board) {
	selected := s.list.Index()
	s.list.SetItems(buildDesktopItems(b))
	if selected < len(s.list.Items()) {
		s.list.Select(selected)
	}
}

func (s *sidebar) setSize(w, h int) {
	s.list.SetSize(w, h)
}

func (s sidebar) selected() (desktopItem, bool) {
	item, ok := s.list.SelectedItem().(desktopItem)
	return item, ok
}

func (s sidebar) view() string {
	return s.list.View()
}
