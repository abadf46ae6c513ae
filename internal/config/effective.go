package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

// BuildEffectiveConfig overlays a merged raw config onto the defaults.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.CellSize != nil {
		cfg.CellSize = *raw.CellSize
	}
	if raw.GapSize != nil {
		cfg.GapSize = *raw.GapSize
	}
	if raw.ScreenPadding != nil {
		if raw.ScreenPadding.Top != nil {
			cfg.ScreenPadding.Top = *raw.ScreenPadding.Top
		}
		if raw.ScreenPadding.Bottom != nil {
			cfg.ScreenPadding.Bottom = *raw.ScreenPadding.Bottom
		}
		if raw.ScreenPadding.Left != nil {
			cfg.ScreenPadding.Left = *raw.ScreenPadding.Left
		}
		if raw.ScreenPadding.Right != nil {
			cfg.ScreenPadding.Right = *raw.ScreenPadding.Right
		}
	}
	if raw.MinColumns != nil {
		cfg.MinColumns = *raw.MinColumns
	}
	if raw.MinRows != nil {
		cfg.MinRows = *raw.MinRows
	}
	if raw.Drag != nil {
		if raw.Drag.ThresholdPx != nil {
			cfg.Drag.ThresholdPx = *raw.Drag.ThresholdPx
		}
		if raw.Drag.ClickMs != nil {
			cfg.Drag.ClickMs = *raw.Drag.ClickMs
		}
		if raw.Drag.SettleMs != nil {
			cfg.Drag.SettleMs = *raw.Drag.SettleMs
		}
	}
	if raw.IconSearchRadius != nil {
		cfg.IconSearchRadius = *raw.IconSearchRadius
	}
	if raw.DefaultDesktop != nil {
		cfg.DefaultDesktop = *raw.DefaultDesktop
	}
	if raw.StoragePath != nil {
		cfg.StoragePath = *raw.StoragePath
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}

	return cfg, nil
}
