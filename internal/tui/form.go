package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

func (m *model) startAddElement() {
	m.mode = modeAddElement
	m.fType = "widget"
	m.fComponent = ""
	m.fWidth = "2"
	m.fHeight = "2"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("widget", "widget"),
					huh.NewOption("icon", "icon"),
					huh.NewOption("fixed", "fixed"),
				).
				Value(&m.fType),
			huh.NewInput().
				Title("Component").
				Placeholder("clock, notes, bookmark...").
				Value(&m.fComponent),
			huh.NewInput().
				Title("Width (cells)").
				Validate(validateCellCount).
				Value(&m.fWidth),
			huh.NewInput().
				Title("Height (cells)").
				Validate(validateCellCount).
				Value(&m.fHeight),
		),
	)
}

func (m *model) startNewDesktop() {
	m.mode = modeNewDesktop
	m.fName = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Desktop name").
				Validate(validateRequired).
				Value(&m.fName),
		),
	)
}

func (m *model) startRenameDesktop() {
	m.mode = modeRenameDesktop
	m.fName = m.board.CurrentDesktop().Name

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Rename desktop").
				Validate(validateRequired).
				Value(&m.fName),
		),
	)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateCellCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}
