package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/deskgrid/internal/grid"
)

func testState() *State {
	return &State{
		CurrentDesktop: "d1",
		Desktops: []Desktop{
			{
				ID:   "d1",
				Name: "Home",
				Elements: []grid.Element{
					{
						ID:        "e1",
						Type:      grid.ElementIcon,
						Position:  grid.RelPosition{X: -2, Y: 0},
						Size:      grid.Size{Width: 1, Height: 1},
						Component: "bookmark",
					},
				},
			},
		},
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "board.json")
	s := New(path)

	if err := s.Save(testState()); err != nil {
		t.Fatalf("save: %v", err)
	}

	st, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st == nil {
		t.Fatalf("expected state, got nil")
	}
	if st.Version != SchemaVersion {
		t.Fatalf("expected version %d, got %d", SchemaVersion, st.Version)
	}
	if st.CurrentDesktop != "d1" || len(st.Desktops) != 1 {
		t.Fatalf("unexpected state: %+v", st)
	}
	el := st.Desktops[0].Elements[0]
	if el.Position != (grid.RelPosition{X: -2, Y: 0}) {
		t.Fatalf("anchor-relative position not preserved: %+v", el.Position)
	}
}

func TestLoadMissingFileReturnsNil(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "board.json"))
	st, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st != nil {
		t.Fatalf("expected nil state for missing file, got %+v", st)
	}
}

func TestLoadRejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	if err := os.WriteFile(path, []byte(`{"version": 99, "desktops": []}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := New(path).Load()
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("expected version error, got %v", err)
	}
}

func TestLoadRejectsCorruptJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := New(path).Load()
	if err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSaveRejectsBadDesktopName(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "board.json"))
	st := testState()
	st.Desktops[0].Name = "../evil"
	if err := s.Save(st); err == nil {
		t.Fatalf("expected invalid name error")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "board.json"))
	if err := s.Save(testState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "board.json" {
		t.Fatalf("expected only board.json, got %v", entries)
	}
}

func TestValidateDesktopName(t *testing.T) {
	for _, name := range []string{"", " ", "a/b", "..", "x..y"} {
		if err := ValidateDesktopName(name); err == nil {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
	if err := ValidateDesktopName("Work"); err != nil {
		t.Fatalf("expected Work to be accepted, got %v", err)
	}
}
