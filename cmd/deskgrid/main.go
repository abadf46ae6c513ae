package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/deskgrid/internal/board"
	"github.com/1broseidon/deskgrid/internal/config"
	"github.com/1broseidon/deskgrid/internal/grid"
	"github.com/1broseidon/deskgrid/internal/store"
	"github.com/1broseidon/deskgrid/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		os.Exit(runBoard(nil))
	}

	switch os.Args[1] {
	case "board":
		os.Exit(runBoard(os.Args[2:]))
	case "desktop":
		os.Exit(runDesktop(os.Args[2:]))
	case "element":
		os.Exit(runElement(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deskgrid <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  board               Open the interactive board (default)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  desktop list        List desktops")
	fmt.Fprintln(w, "  desktop new         Create a desktop")
	fmt.Fprintln(w, "  desktop rename      Rename a desktop")
	fmt.Fprintln(w, "  desktop delete      Delete a desktop")
	fmt.Fprintln(w, "  desktop switch      Switch the active desktop")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  element list        List elements on the active desktop")
	fmt.Fprintln(w, "  element add         Add an element to the active desktop")
	fmt.Fprintln(w, "  element remove      Remove an element")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'deskgrid <command> --help' for command-specific options.")
}

// loadConfig resolves the effective config, from the default location when
// path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// openBoard loads config and persisted state and returns a board ready for
// use. storePath overrides the configured storage location when non-empty.
func openBoard(configPath, storePath string) (*config.Config, *board.Board, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if storePath == "" {
		storePath, err = cfg.GetStoragePath()
		if err != nil {
			return nil, nil, err
		}
	}
	b, err := board.New(cfg, store.New(storePath))
	if err != nil {
		return nil, nil, err
	}
	return cfg, b, nil
}

// parseViewport parses a WIDTHxHEIGHT value like "120x40".
func parseViewport(v string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(v, "x")
	if ok {
		w, err = strconv.Atoi(strings.TrimSpace(ws))
		if err == nil {
			h, err = strconv.Atoi(strings.TrimSpace(hs))
		}
	}
	if !ok || err != nil || w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("invalid viewport %q (want WIDTHxHEIGHT, e.g. 120x40)", v)
	}
	return w, h, nil
}

func runBoard(args []string) int {
	fs := flag.NewFlagSet("board", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/deskgrid/config.yaml)")
	storePath := fs.String("store", "", "Layout storage path (default: from config)")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: deskgrid board [--path PATH] [--store PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive grid board. Drag elements with the mouse; displaced")
		fmt.Fprintln(os.Stderr, "neighbors preview live and commit on drop.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  click     Select an element")
		fmt.Fprintln(os.Stderr, "  drag      Move an element")
		fmt.Fprintln(os.Stderr, "  a         Add an element")
		fmt.Fprintln(os.Stderr, "  x         Remove the selected element")
		fmt.Fprintln(os.Stderr, "  n         New desktop")
		fmt.Fprintln(os.Stderr, "  r         Rename the active desktop")
		fmt.Fprintln(os.Stderr, "  X         Delete the active desktop")
		fmt.Fprintln(os.Stderr, "  Enter     Switch to the highlighted desktop")
		fmt.Fprintln(os.Stderr, "  Esc       Cancel drag / clear selection")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C Quit")
		return 0
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, b, err := openBoard(*path, *storePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := tui.Run(cfg, *path, b); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func printDesktopUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  deskgrid desktop list")
	fmt.Fprintln(w, "  deskgrid desktop new <name>")
	fmt.Fprintln(w, "  deskgrid desktop rename <name-or-id> <new-name>")
	fmt.Fprintln(w, "  deskgrid desktop delete <name-or-id>")
	fmt.Fprintln(w, "  deskgrid desktop switch <name-or-id>")
}

func runDesktop(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printDesktopUsage(os.Stderr)
		return 2
	}

	fs := flag.NewFlagSet("desktop", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/deskgrid/config.yaml)")
	storePath := fs.String("store", "", "Layout storage path (default: from config)")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	rest := fs.Args()

	_, b, err := openBoard(*path, *storePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	switch args[0] {
	case "list":
		current := b.CurrentDesktop()
		for _, d := range b.Desktops() {
			marker := " "
			if d.ID == current.ID {
				marker = "*"
			}
			fmt.Printf("%s %-20s %2d elements  %s\n", marker, d.Name, len(d.Elements), d.ID)
		}
		return 0

	case "new":
		if len(rest) != 1 {
			fmt.Fprintln(os.Stderr, "desktop new requires <name>")
			return 2
		}
		d, err := b.CreateDesktop(rest[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("created desktop %q (%s)\n", d.Name, d.ID)
		return 0

	case "rename":
		if len(rest) != 2 {
			fmt.Fprintln(os.Stderr, "desktop rename requires <name-or-id> <new-name>")
			return 2
		}
		if err := b.RenameDesktop(rest[0], rest[1]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("renamed desktop to %q\n", rest[1])
		return 0

	case "delete":
		if len(rest) != 1 {
			fmt.Fprintln(os.Stderr, "desktop delete requires <name-or-id>")
			return 2
		}
		if err := b.DeleteDesktop(rest[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("desktop deleted")
		return 0

	case "switch":
		if len(rest) != 1 {
			fmt.Fprintln(os.Stderr, "desktop switch requires <name-or-id>")
			return 2
		}
		if err := b.SwitchDesktop(rest[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("active desktop: %s\n", b.CurrentDesktop().Name)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown desktop subcommand: %s\n", args[0])
		return 2
	}
}

func printElementUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  deskgrid element list")
	fmt.Fprintln(w, "  deskgrid element add --type TYPE [--component NAME] [--width N] [--height N] [--data JSON] [--at X,Y]")
	fmt.Fprintln(w, "  deskgrid element remove <id>")
}

func runElement(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printElementUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/deskgrid/config.yaml)")
		storePath := fs.String("store", "", "Layout storage path (default: from config)")
		viewport := fs.String("viewport", "120x40", "Virtual viewport as WIDTHxHEIGHT")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		_, b, err := openBoard(*path, *storePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if rc := resizeVirtual(b, *viewport); rc != 0 {
			return rc
		}

		d := b.CurrentDesktop()
		fmt.Printf("desktop %q (%dx%d grid)\n", d.Name, b.Sys().Columns, b.Sys().Rows)
		for _, p := range b.Placements() {
			fmt.Printf("  %-36s %-8s %dx%d at (%d,%d)\n",
				p.ID, elementKind(d, p.ID), p.Size.Width, p.Size.Height, p.Pos.X, p.Pos.Y)
		}
		return 0

	case "add":
		fs := flag.NewFlagSet("add", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/deskgrid/config.yaml)")
		storePath := fs.String("store", "", "Layout storage path (default: from config)")
		viewport := fs.String("viewport", "120x40", "Virtual viewport as WIDTHxHEIGHT")
		typ := fs.String("type", "widget", "Element type: widget, icon, or fixed")
		component := fs.String("component", "", "Component name (clock, notes, ...)")
		width := fs.Int("width", 2, "Width in cells")
		height := fs.Int("height", 2, "Height in cells")
		data := fs.String("data", "", "Component data as a JSON document")
		at := fs.String("at", "", "Preferred cell as COLUMN,ROW; nearest free slot when occupied")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		switch grid.ElementType(*typ) {
		case grid.ElementWidget, grid.ElementIcon, grid.ElementFixed:
		default:
			fmt.Fprintf(os.Stderr, "invalid element type %q (want widget, icon, or fixed)\n", *typ)
			return 2
		}
		var raw json.RawMessage
		if *data != "" {
			if !json.Valid([]byte(*data)) {
				fmt.Fprintln(os.Stderr, "--data must be valid JSON")
				return 2
			}
			raw = json.RawMessage(*data)
		}

		_, b, err := openBoard(*path, *storePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if rc := resizeVirtual(b, *viewport); rc != 0 {
			return rc
		}

		size := grid.Size{Width: *width, Height: *height}
		var el grid.Element
		if *at != "" {
			xs, ys, ok := strings.Cut(*at, ",")
			x, errX := strconv.Atoi(strings.TrimSpace(xs))
			y, errY := strconv.Atoi(strings.TrimSpace(ys))
			if !ok || errX != nil || errY != nil {
				fmt.Fprintf(os.Stderr, "invalid --at %q (want COLUMN,ROW, e.g. 3,1)\n", *at)
				return 2
			}
			el, err = b.AddElementAt(grid.ElementType(*typ), *component, size, raw, grid.Position{X: x, Y: y})
		} else {
			el, err = b.AddElement(grid.ElementType(*typ), *component, size, raw)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		abs := grid.ToAbsolute(el.Position, b.Anchor())
		fmt.Printf("added %s %s at (%d,%d)\n", el.Type, el.ID, abs.X, abs.Y)
		return 0

	case "remove":
		fs := flag.NewFlagSet("remove", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/deskgrid/config.yaml)")
		storePath := fs.String("store", "", "Layout storage path (default: from config)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "element remove requires <id>")
			return 2
		}

		_, b, err := openBoard(*path, *storePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := b.RemoveElement(fs.Arg(0)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("element removed")
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown element subcommand: %s\n", args[0])
		return 2
	}
}

// resizeVirtual sizes a headless board from a WIDTHxHEIGHT flag.
func resizeVirtual(b *board.Board, viewport string) int {
	w, h, err := parseViewport(viewport)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if err := b.Resize(w, h); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func elementKind(d store.Desktop, id string) string {
	for i := range d.Elements {
		if d.Elements[i].ID == id {
			if d.Elements[i].Component != "" {
				return d.Elements[i].Component
			}
			return string(d.Elements[i].Type)
		}
	}
	return "?"
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  deskgrid config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  deskgrid config print [--path PATH] [--effective|--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/deskgrid/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var err error
		if *path == "" {
			_, err = config.LoadWithSources()
		} else {
			_, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/deskgrid/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		printEffective := fs.Bool("effective", false, "Print effective config (default)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			_ = printEffective // default
			loaded, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			cfg = loaded
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}
