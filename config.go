package dockgui

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tunables of the docking runtime.
type Config struct {
	// Layout metrics
	SplitterThickness float32 `toml:"splitter_thickness" json:"splitter_thickness" mapstructure:"splitter_thickness"`
	WindowMinSize     Vec2    `toml:"window_min_size" json:"window_min_size" mapstructure:"window_min_size"`
	TabBarHeight      float32 `toml:"tab_bar_height" json:"tab_bar_height" mapstructure:"tab_bar_height"`
	TabWidth          float32 `toml:"tab_width" json:"tab_width" mapstructure:"tab_width"`

	// Docking behavior
	DockingSplitRatio            float32 `toml:"docking_split_ratio" json:"docking_split_ratio" mapstructure:"docking_split_ratio"`
	DockingOuterSplitRatio       float32 `toml:"docking_outer_split_ratio" json:"docking_outer_split_ratio" mapstructure:"docking_outer_split_ratio"`
	DockingNoSplit               bool    `toml:"docking_no_split" json:"docking_no_split" mapstructure:"docking_no_split"`
	DockingWithShift             bool    `toml:"docking_with_shift" json:"docking_with_shift" mapstructure:"docking_with_shift"`
	DockingTransparentPayload    bool    `toml:"docking_transparent_payload" json:"docking_transparent_payload" mapstructure:"docking_transparent_payload"`
	FixLargeWindowsWhenUndocking bool    `toml:"fix_large_windows_when_undocking" json:"fix_large_windows_when_undocking" mapstructure:"fix_large_windows_when_undocking"`
	UndockMaxWorkAreaRatio       float32 `toml:"undock_max_work_area_ratio" json:"undock_max_work_area_ratio" mapstructure:"undock_max_work_area_ratio"`

	// Interaction timers (seconds)
	DragDropHoldToOpenTimer      float32 `toml:"drag_drop_hold_to_open_timer" json:"drag_drop_hold_to_open_timer" mapstructure:"drag_drop_hold_to_open_timer"`
	SplitterHoverVisibilityDelay float32 `toml:"splitter_hover_visibility_delay" json:"splitter_hover_visibility_delay" mapstructure:"splitter_hover_visibility_delay"`
	KeyRepeatDelay               float32 `toml:"key_repeat_delay" json:"key_repeat_delay" mapstructure:"key_repeat_delay"`
	KeyRepeatRate                float32 `toml:"key_repeat_rate" json:"key_repeat_rate" mapstructure:"key_repeat_rate"`
	MouseDoubleClickTime         float32 `toml:"mouse_double_click_time" json:"mouse_double_click_time" mapstructure:"mouse_double_click_time"`
	MouseDoubleClickMaxDist      float32 `toml:"mouse_double_click_max_dist" json:"mouse_double_click_max_dist" mapstructure:"mouse_double_click_max_dist"`
	MouseDragThreshold           float32 `toml:"mouse_drag_threshold" json:"mouse_drag_threshold" mapstructure:"mouse_drag_threshold"`

	// Persistence
	IniSavingRate float32 `toml:"ini_saving_rate" json:"ini_saving_rate" mapstructure:"ini_saving_rate"`

	// DebugAsserts turns invariant violations into panics.
	DebugAsserts bool `toml:"debug_asserts" json:"debug_asserts" mapstructure:"debug_asserts"`
}

// DefaultConfig returns the default runtime configuration.
func DefaultConfig() Config {
	return Config{
		SplitterThickness:            2,
		WindowMinSize:                Vec2{X: 32, Y: 32},
		TabBarHeight:                 20,
		TabWidth:                     96,
		DockingSplitRatio:            0.5,
		DockingOuterSplitRatio:       0.35,
		FixLargeWindowsWhenUndocking: true,
		UndockMaxWorkAreaRatio:       0.90,
		DragDropHoldToOpenTimer:      0.70,
		SplitterHoverVisibilityDelay: 0.10,
		KeyRepeatDelay:               DefaultKeyRepeatDelay,
		KeyRepeatRate:                DefaultKeyRepeatRate,
		MouseDoubleClickTime:         DefaultMouseDoubleClickTime,
		MouseDoubleClickMaxDist:      DefaultMouseDoubleClickMaxDist,
		MouseDragThreshold:           DefaultMouseDragThreshold,
		IniSavingRate:                5.0,
	}
}

// LoadConfigTOML decodes a TOML document on top of DefaultConfig.
// Keys absent from the document keep their default values.
func LoadConfigTOML(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	data, err := io.ReadAll(r)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WriteTOML encodes the configuration as TOML.
func (c Config) WriteTOML(w io.Writer) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate rejects configurations the layout math cannot work with.
func (c Config) Validate() error {
	if c.SplitterThickness < 0 {
		return fmt.Errorf("splitter_thickness must be >= 0, got %v", c.SplitterThickness)
	}
	if c.WindowMinSize.X < 1 || c.WindowMinSize.Y < 1 {
		return fmt.Errorf("window_min_size must be >= 1, got %v", c.WindowMinSize)
	}
	if c.DockingSplitRatio <= 0 || c.DockingSplitRatio >= 1 {
		return fmt.Errorf("docking_split_ratio must be in (0,1), got %v", c.DockingSplitRatio)
	}
	if c.DockingOuterSplitRatio <= 0 || c.DockingOuterSplitRatio >= 1 {
		return fmt.Errorf("docking_outer_split_ratio must be in (0,1), got %v", c.DockingOuterSplitRatio)
	}
	if c.UndockMaxWorkAreaRatio <= 0 || c.UndockMaxWorkAreaRatio > 1 {
		return fmt.Errorf("undock_max_work_area_ratio must be in (0,1], got %v", c.UndockMaxWorkAreaRatio)
	}
	return nil
}
