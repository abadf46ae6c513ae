// Package mcp exposes the board to MCP clients over stdio, so agents and
// editors can inspect and rearrange the grid with the same collision rules
// the interactive board applies.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskgrid/internal/board"
	"github.com/1broseidon/deskgrid/internal/config"
)

const (
	ServerName    = "deskgrid"
	ServerVersion = "0.1.0"
)

// Server is the MCP server wrapping a board instance.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	board     *board.Board
}

// NewServer creates an MCP server for the given board.
func NewServer(cfg *config.Config, b *board.Board) *Server {
	s := &Server{
		config: cfg,
		board:  b,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_desktops",
		Description: "List all desktops with their IDs, names, element counts, and which one is active.",
	}, s.handleListDesktops)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "create_desktop",
		Description: "Create a new empty desktop with the given name. Names must be unique.",
	}, s.handleCreateDesktop)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "switch_desktop",
		Description: "Make a desktop active by ID or name. Subsequent element operations apply to the active desktop.",
	}, s.handleSwitchDesktop)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "describe_board",
		Description: "Describe the active desktop: grid dimensions, anchor column, and every element with its absolute cell position and footprint.",
	}, s.handleDescribeBoard)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "add_element",
		Description: "Add an element (widget, icon, or fixed) to the active desktop. It is placed in the first free slot scanning rows top to bottom; fails when the grid has no room.",
	}, s.handleAddElement)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_element",
		Description: "Move an element to a target cell, displacing overlapping elements with the same collision rules the interactive board uses. Fails when the target overlaps a fixed element.",
	}, s.handleMoveElement)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "remove_element",
		Description: "Remove an element from the active desktop by ID.",
	}, s.handleRemoveElement)
}
