package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawPadding struct {
	Top    *int `yaml:"top"`
	Bottom *int `yaml:"bottom"`
	Left   *int `yaml:"left"`
	Right  *int `yaml:"right"`
}

type RawDragConfig struct {
	ThresholdPx *int `yaml:"threshold_px"`
	ClickMs     *int `yaml:"click_ms"`
	SettleMs    *int `yaml:"settle_ms"`
}

type RawConfig struct {
	Include          IncludeList    `yaml:"include"`
	CellSize         *int           `yaml:"cell_size"`
	GapSize          *int           `yaml:"gap_size"`
	ScreenPadding    *RawPadding    `yaml:"screen_padding"`
	MinColumns       *int           `yaml:"min_columns"`
	MinRows          *int           `yaml:"min_rows"`
	Drag             *RawDragConfig `yaml:"drag"`
	IconSearchRadius *int           `yaml:"icon_search_radius"`
	DefaultDesktop   *string        `yaml:"default_desktop"`
	StoragePath      *string        `yaml:"storage_path"`
	LogLevel         *string        `yaml:"log_level"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.CellSize != nil {
		out.CellSize = overlay.CellSize
	}
	if overlay.GapSize != nil {
		out.GapSize = overlay.GapSize
	}
	if overlay.ScreenPadding != nil {
		if out.ScreenPadding == nil {
			out.ScreenPadding = &RawPadding{}
		}
		merged := mergeRawPadding(*out.ScreenPadding, *overlay.ScreenPadding)
		out.ScreenPadding = &merged
	}
	if overlay.MinColumns != nil {
		out.MinColumns = overlay.MinColumns
	}
	if overlay.MinRows != nil {
		out.MinRows = overlay.MinRows
	}
	if overlay.Drag != nil {
		if out.Drag == nil {
			out.Drag = &RawDragConfig{}
		}
		if overlay.Drag.ThresholdPx != nil {
			out.Drag.ThresholdPx = overlay.Drag.ThresholdPx
		}
		if overlay.Drag.ClickMs != nil {
			out.Drag.ClickMs = overlay.Drag.ClickMs
		}
		if overlay.Drag.SettleMs != nil {
			out.Drag.SettleMs = overlay.Drag.SettleMs
		}
	}
	if overlay.IconSearchRadius != nil {
		out.IconSearchRadius = overlay.IconSearchRadius
	}
	if overlay.DefaultDesktop != nil {
		out.DefaultDesktop = overlay.DefaultDesktop
	}
	if overlay.StoragePath != nil {
		out.StoragePath = overlay.StoragePath
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}

	return out
}

func mergeRawPadding(base RawPadding, overlay RawPadding) RawPadding {
	out := base
	if overlay.Top != nil {
		out.Top = overlay.Top
	}
	if overlay.Bottom != nil {
		out.Bottom = overlay.Bottom
	}
	if overlay.Left != nil {
		out.Left = overlay.Left
	}
	if overlay.Right != nil {
		out.Right = overlay.Right
	}
	return out
}
