package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/deskgrid/internal/grid"
)

// Padding represents the reserved border around the grid area, in pixels.
type Padding struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// DragConfig tunes the pointer gesture thresholds.
type DragConfig struct {
	// ThresholdPx is how far the pointer must travel on either axis before
	// a press becomes a drag.
	ThresholdPx int `yaml:"threshold_px"`
	// ClickMs bounds how long an under-threshold press may last and still
	// count as a click.
	ClickMs int `yaml:"click_ms"`
	// SettleMs is the window after a drag release during which a trailing
	// click event is suppressed.
	SettleMs int `yaml:"settle_ms"`
}

// Config holds the application configuration.
type Config struct {
	CellSize         int        `yaml:"cell_size"`
	GapSize          int        `yaml:"gap_size"`
	ScreenPadding    Padding    `yaml:"screen_padding"`
	MinColumns       int        `yaml:"min_columns"`
	MinRows          int        `yaml:"min_rows"`
	Drag             DragConfig `yaml:"drag"`
	IconSearchRadius int        `yaml:"icon_search_radius"`
	DefaultDesktop   string     `yaml:"default_desktop"`
	StoragePath      string     `yaml:"storage_path,omitempty"`
	LogLevel         string     `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		CellSize: 4,
		GapSize:  1,
		ScreenPadding: Padding{
			Top:    1,
			Bottom: 1,
			Left:   1,
			Right:  1,
		},
		MinColumns: 4,
		MinRows:    3,
		Drag: DragConfig{
			ThresholdPx: 5,
			ClickMs:     200,
			SettleMs:    300,
		},
		IconSearchRadius: 3,
		DefaultDesktop:   "Home",
		LogLevel:         "info",
	}
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.CellSize < 1 {
		return &ValidationError{Path: "cell_size", Err: fmt.Errorf("cell_size must be >= 1")}
	}
	if c.GapSize < 0 {
		return &ValidationError{Path: "gap_size", Err: fmt.Errorf("gap_size must be >= 0")}
	}
	if c.ScreenPadding.Top < 0 || c.ScreenPadding.Bottom < 0 || c.ScreenPadding.Left < 0 || c.ScreenPadding.Right < 0 {
		return &ValidationError{Path: "screen_padding", Err: fmt.Errorf("screen_padding values must be >= 0")}
	}
	if c.MinColumns < 1 {
		return &ValidationError{Path: "min_columns", Err: fmt.Errorf("min_columns must be >= 1")}
	}
	if c.MinRows < 1 {
		return &ValidationError{Path: "min_rows", Err: fmt.Errorf("min_rows must be >= 1")}
	}
	if c.Drag.ThresholdPx < 1 {
		return &ValidationError{Path: "drag.threshold_px", Err: fmt.Errorf("threshold_px must be >= 1")}
	}
	if c.Drag.ClickMs < 1 {
		return &ValidationError{Path: "drag.click_ms", Err: fmt.Errorf("click_ms must be >= 1")}
	}
	if c.Drag.SettleMs < 0 {
		return &ValidationError{Path: "drag.settle_ms", Err: fmt.Errorf("settle_ms must be >= 0")}
	}
	if c.IconSearchRadius < 1 {
		return &ValidationError{Path: "icon_search_radius", Err: fmt.Errorf("icon_search_radius must be >= 1")}
	}
	if c.DefaultDesktop == "" {
		return &ValidationError{Path: "default_desktop", Err: fmt.Errorf("default_desktop is required")}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}

// ParseLogLevel maps a log_level string onto a slog.Level. Unknown values
// fall back to info.
func ParseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Metrics builds the grid geometry parameters from the configuration.
func (c *Config) Metrics() grid.Metrics {
	return grid.Metrics{
		CellSize: c.CellSize,
		GapSize:  c.GapSize,
		Padding: grid.Padding{
			Top:    c.ScreenPadding.Top,
			Bottom: c.ScreenPadding.Bottom,
			Left:   c.ScreenPadding.Left,
			Right:  c.ScreenPadding.Right,
		},
		MinColumns: c.MinColumns,
		MinRows:    c.MinRows,
	}
}

// Thresholds converts the drag tuning values into the units the gesture
// tracker works in.
func (c *Config) Thresholds() (dragPixels int, clickWindow, settleWindow time.Duration) {
	return c.Drag.ThresholdPx,
		time.Duration(c.Drag.ClickMs) * time.Millisecond,
		time.Duration(c.Drag.SettleMs) * time.Millisecond
}

// GetStoragePath returns the board state file path, defaulting to
// ~/.config/deskgrid/board.json when unset.
func (c *Config) GetStoragePath() (string, error) {
	if c != nil && c.StoragePath != "" {
		return c.StoragePath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "deskgrid", "board.json"), nil
}

// Save writes the configuration to the standard location.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}

	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
