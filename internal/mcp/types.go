package mcp

// ListDesktopsInput is the input for the list_desktops tool.
type ListDesktopsInput struct{}

// DesktopInfo describes one desktop.
type DesktopInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Active   bool   `json:"active"`
	Elements int    `json:"elements"`
}

// ListDesktopsOutput is the output for the list_desktops tool.
type ListDesktopsOutput struct {
	Desktops []DesktopInfo `json:"desktops"`
}

// CreateDesktopInput is the input for the create_desktop tool.
type CreateDesktopInput struct {
	Name string `json:"name" jsonschema:"required,Display name for the new desktop"`
}

// CreateDesktopOutput is the output for the create_desktop tool.
type CreateDesktopOutput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SwitchDesktopInput is the input for the switch_desktop tool.
type SwitchDesktopInput struct {
	Desktop string `json:"desktop" jsonschema:"required,Desktop ID or name to activate"`
}

// SwitchDesktopOutput is the output for the switch_desktop tool.
type SwitchDesktopOutput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DescribeBoardInput is the input for the describe_board tool.
type DescribeBoardInput struct{}

// ElementInfo describes one element at its current absolute position.
type ElementInfo struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Component string `json:"component,omitempty"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Fixed     bool   `json:"fixed,omitempty"`
}

// DescribeBoardOutput is the output for the describe_board tool.
type DescribeBoardOutput struct {
	Desktop  string        `json:"desktop"`
	Columns  int           `json:"columns"`
	Rows     int           `json:"rows"`
	Anchor   int           `json:"anchor"`
	Elements []ElementInfo `json:"elements"`
}

// AddElementInput is the input for the add_element tool.
type AddElementInput struct {
	Type      string `json:"type" jsonschema:"required,Element type: widget, icon, or fixed"`
	Component string `json:"component,omitempty" jsonschema:"Widget component name (e.g. clock, notes, bookmark)"`
	Width     int    `json:"width" jsonschema:"required,Footprint width in cells"`
	Height    int    `json:"height" jsonschema:"required,Footprint height in cells"`
	Data      string `json:"data,omitempty" jsonschema:"Optional JSON document stored with the element"`
	X         *int   `json:"x,omitempty" jsonschema:"Preferred column; the nearest free slot is used when occupied"`
	Y         *int   `json:"y,omitempty" jsonschema:"Preferred row; the nearest free slot is used when occupied"`
}

// AddElementOutput is the output for the add_element tool.
type AddElementOutput struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

// MoveElementInput is the input for the move_element tool.
type MoveElementInput struct {
	ID string `json:"id" jsonschema:"required,Element ID to move"`
	X  int    `json:"x" jsonschema:"required,Target column"`
	Y  int    `json:"y" jsonschema:"required,Target row"`
}

// MovedElement is one element's final position after a move.
type MovedElement struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

// MoveElementOutput is the output for the move_element tool. Moved includes
// the dragged element plus every element displaced to make room.
type MoveElementOutput struct {
	Moved []MovedElement `json:"moved"`
}

// RemoveElementInput is the input for the remove_element tool.
type RemoveElementInput struct {
	ID string `json:"id" jsonschema:"required,Element ID to remove"`
}

// RemoveElementOutput is the output for the remove_element tool.
type RemoveElementOutput struct {
	Removed bool `json:"removed"`
}
