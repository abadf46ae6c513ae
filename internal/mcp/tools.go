package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskgrid/internal/grid"
	"github.com/1broseidon/deskgrid/internal/store"
)

func (s *Server) handleListDesktops(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListDesktopsInput) (*mcpsdk.CallToolResult, ListDesktopsOutput, error) {
	current := s.board.CurrentDesktop()
	desktops := s.board.Desktops()

	out := ListDesktopsOutput{Desktops: make([]DesktopInfo, 0, len(desktops))}
	for _, d := range desktops {
		out.Desktops = append(out.Desktops, DesktopInfo{
			ID:       d.ID,
			Name:     d.Name,
			Active:   d.ID == current.ID,
			Elements: len(d.Elements),
		})
	}
	return nil, out, nil
}

func (s *Server) handleCreateDesktop(_ context.Context, _ *mcpsdk.CallToolRequest, args CreateDesktopInput) (*mcpsdk.CallToolResult, CreateDesktopOutput, error) {
	d, err := s.board.CreateDesktop(args.Name)
	if err != nil {
		return nil, CreateDesktopOutput{}, err
	}
	return nil, CreateDesktopOutput{ID: d.ID, Name: d.Name}, nil
}

func (s *Server) handleSwitchDesktop(_ context.Context, _ *mcpsdk.CallToolRequest, args SwitchDesktopInput) (*mcpsdk.CallToolResult, SwitchDesktopOutput, error) {
	if err := s.board.SwitchDesktop(args.Desktop); err != nil {
		return nil, SwitchDesktopOutput{}, err
	}
	d := s.board.CurrentDesktop()
	return nil, SwitchDesktopOutput{ID: d.ID, Name: d.Name}, nil
}

func (s *Server) handleDescribeBoard(_ context.Context, _ *mcpsdk.CallToolRequest, _ DescribeBoardInput) (*mcpsdk.CallToolResult, DescribeBoardOutput, error) {
	d := s.board.CurrentDesktop()
	sys := s.board.Sys()

	return nil, DescribeBoardOutput{
		Desktop:  d.Name,
		Columns:  sys.Columns,
		Rows:     sys.Rows,
		Anchor:   s.board.Anchor(),
		Elements: elementInfos(&d, s.board.Anchor()),
	}, nil
}

// elementInfos resolves a desktop's elements to absolute coordinates,
// ordered top to bottom then left to right for stable output.
func elementInfos(d *store.Desktop, anchor int) []ElementInfo {
	out := make([]ElementInfo, 0, len(d.Elements))
	for i := range d.Elements {
		el := &d.Elements[i]
		abs := grid.ToAbsolute(el.Position, anchor)
		out = append(out, ElementInfo{
			ID:        el.ID,
			Type:      string(el.Type),
			Component: el.Component,
			X:         abs.X,
			Y:         abs.Y,
			Width:     el.Size.Width,
			Height:    el.Size.Height,
			Fixed:     !el.Movable(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

func (s *Server) handleAddElement(_ context.Context, _ *mcpsdk.CallToolRequest, args AddElementInput) (*mcpsdk.CallToolResult, AddElementOutput, error) {
	typ, err := parseElementType(args.Type)
	if err != nil {
		return nil, AddElementOutput{}, err
	}

	var data json.RawMessage
	if args.Data != "" {
		if !json.Valid([]byte(args.Data)) {
			return nil, AddElementOutput{}, fmt.Errorf("data is not valid JSON")
		}
		data = json.RawMessage(args.Data)
	}

	size := grid.Size{Width: args.Width, Height: args.Height}
	var el grid.Element
	if args.X != nil && args.Y != nil {
		el, err = s.board.AddElementAt(typ, args.Component, size, data, grid.Position{X: *args.X, Y: *args.Y})
	} else {
		el, err = s.board.AddElement(typ, args.Component, size, data)
	}
	if err != nil {
		return nil, AddElementOutput{}, err
	}
	abs := grid.ToAbsolute(el.Position, s.board.Anchor())
	return nil, AddElementOutput{ID: el.ID, X: abs.X, Y: abs.Y}, nil
}

func parseElementType(raw string) (grid.ElementType, error) {
	switch grid.ElementType(raw) {
	case grid.ElementWidget, grid.ElementIcon, grid.ElementFixed:
		return grid.ElementType(raw), nil
	default:
		return "", fmt.Errorf("unknown element type %q; expected widget, icon, or fixed", raw)
	}
}

func (s *Server) handleMoveElement(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveElementInput) (*mcpsdk.CallToolResult, MoveElementOutput, error) {
	result, err := s.board.MoveElement(args.ID, grid.Position{X: args.X, Y: args.Y})
	if err != nil {
		return nil, MoveElementOutput{}, err
	}

	out := MoveElementOutput{Moved: make([]MovedElement, 0, len(result))}
	for id, pos := range result {
		out.Moved = append(out.Moved, MovedElement{ID: id, X: pos.X, Y: pos.Y})
	}
	sort.Slice(out.Moved, func(i, j int) bool {
		// Dragged element first, then by ID for stable output.
		if out.Moved[i].ID == args.ID {
			return true
		}
		if out.Moved[j].ID == args.ID {
			return false
		}
		return out.Moved[i].ID < out.Moved[j].ID
	})
	return nil, out, nil
}

func (s *Server) handleRemoveElement(_ context.Context, _ *mcpsdk.CallToolRequest, args RemoveElementInput) (*mcpsdk.CallToolResult, RemoveElementOutput, error) {
	if err := s.board.RemoveElement(args.ID); err != nil {
		return nil, RemoveElementOutput{}, err
	}
	return nil, RemoveElementOutput{Removed: true}, nil
}
