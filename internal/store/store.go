// Package store persists the board state (desktops, elements, current
// desktop) as a single JSON document under the user's config directory.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/1broseidon/deskgrid/internal/grid"
)

// SchemaVersion is bumped when the on-disk layout changes shape.
const SchemaVersion = 1

// Desktop is one named page of elements. Element positions are stored
// anchor-relative so a desktop survives column-count changes.
type Desktop struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Icon     string         `json:"icon,omitempty"`
	Elements []grid.Element `json:"elements"`
}

// State is the full persisted board.
type State struct {
	Version        int       `json:"version"`
	CurrentDesktop string    `json:"current_desktop"`
	Desktops       []Desktop `json:"desktops"`
}

// Store reads and writes the board state at a fixed path.
type Store struct {
	path string
}

// New creates a store writing to path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns ~/.config/deskgrid/board.json.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "deskgrid", "board.json"), nil
}

// Path returns the file this store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// ValidateDesktopName rejects empty or path-like desktop names.
func ValidateDesktopName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("desktop name is required")
	}
	if strings.Contains(name, string(os.PathSeparator)) || name != filepath.Base(name) {
		return fmt.Errorf("invalid desktop name %q", name)
	}
	if name == "." || name == ".." || strings.Contains(name, "..") {
		return fmt.Errorf("invalid desktop name %q", name)
	}
	return nil
}

// Load reads the persisted state. A missing file returns (nil, nil) so the
// caller can seed a default board.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read board state: %w", err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse board state: %w", err)
	}
	if st.Version == 0 {
		st.Version = SchemaVersion
	}
	if st.Version > SchemaVersion {
		return nil, fmt.Errorf("board state version %d is newer than supported version %d", st.Version, SchemaVersion)
	}
	return &st, nil
}

// Save writes the full state atomically: the document is written to a temp
// file in the same directory and renamed over the target.
func (s *Store) Save(st *State) error {
	if st == nil {
		return fmt.Errorf("state is nil")
	}
	for _, d := range st.Desktops {
		if err := ValidateDesktopName(d.Name); err != nil {
			return err
		}
	}
	st.Version = SchemaVersion

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode board state: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".board-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write board state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp state file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace board state: %w", err)
	}
	return nil
}
