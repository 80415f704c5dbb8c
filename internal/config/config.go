// Package config loads and validates the user configuration for tuidock.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

const (
	// NormalFPS is the frame rate used while idle.
	NormalFPS = 30
	// InteractionFPS is the frame rate used while dragging.
	InteractionFPS = 60
	// MaxLogMessages caps the in-app log buffer.
	MaxLogMessages = 500
	// NotificationDuration is how long notifications stay on screen.
	NotificationDuration = 3 * time.Second
)

const appName = "tuidock"

// UserConfig is the on-disk configuration file.
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Docking     DockingConfig     `toml:"docking"`
	Layout      LayoutConfig      `toml:"layout"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// AppearanceConfig controls colours and chrome.
type AppearanceConfig struct {
	Theme       string `toml:"theme"`
	BorderStyle string `toml:"border_style"`
	HideHelpBar bool   `toml:"hide_help_bar"`
}

// DockingConfig holds the tab sizes, in terminal cells.
type DockingConfig struct {
	MajorTabWidth int `toml:"major_tab_width"`
	MinorTabWidth int `toml:"minor_tab_width"`
	TabHeight     int `toml:"tab_height"`
	TabOverlap    int `toml:"tab_overlap"`
	MaxPreview    int `toml:"max_preview"`
	// DragThreshold is the distance in cells a press must travel before it
	// turns into a drag.
	DragThreshold int `toml:"drag_threshold"`
}

// LayoutConfig selects the persisted layout.
type LayoutConfig struct {
	Name     string `toml:"name"`
	Autosave bool   `toml:"autosave"`
}

// KeybindingsConfig maps actions to key lists, grouped the way the help
// overlay shows them.
type KeybindingsConfig struct {
	Tabs   map[string][]string `toml:"tabs"`
	Layout map[string][]string `toml:"layout"`
	System map[string][]string `toml:"system"`
}

// All returns every action binding in one map.
func (k KeybindingsConfig) All() map[string][]string {
	out := make(map[string][]string, len(k.Tabs)+len(k.Layout)+len(k.System))
	for _, group := range []map[string][]string{k.Tabs, k.Layout, k.System} {
		for action, keys := range group {
			out[action] = keys
		}
	}
	return out
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			BorderStyle: "rounded",
		},
		Docking: DockingConfig{
			MajorTabWidth: 24,
			MinorTabWidth: 18,
			TabHeight:     1,
			TabOverlap:    1,
			MaxPreview:    40,
			DragThreshold: 2,
		},
		Layout: LayoutConfig{
			Name:     "default",
			Autosave: true,
		},
		Keybindings: KeybindingsConfig{
			Tabs: map[string][]string{
				"new_tab":   {"ctrl+t"},
				"close_tab": {"ctrl+w"},
				"next_tab":  {"ctrl+n", "tab"},
				"prev_tab":  {"ctrl+p", "shift+tab"},
			},
			Layout: map[string][]string{
				"split_right":    {"ctrl+right", "alt+l"},
				"split_down":     {"ctrl+down", "alt+j"},
				"save_layout":    {"ctrl+s"},
				"restore_layout": {"ctrl+r"},
			},
			System: map[string][]string{
				"cancel_drag": {"esc"},
				"toggle_logs": {"ctrl+l"},
				"toggle_help": {"?"},
				"quit":        {"ctrl+q", "ctrl+c"},
			},
		},
	}
}

// GetConfigPath returns the path of the config file, creating its directory.
func GetConfigPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join(appName, "config.toml"))
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

// LoadUserConfig reads the config file, writing the defaults on first run.
func LoadUserConfig() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file is created with the
// defaults. Missing keys keep their default values.
func LoadFrom(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := Save(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	fillKeybindings(cfg)
	cfg.Validate()
	return cfg, nil
}

// Save writes cfg to path with a short header.
func Save(path string, cfg *UserConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	header := "# tuidock configuration\n# Run 'tuidock keybinds list' to see every action.\n\n"
	return os.WriteFile(path, append([]byte(header), data...), 0o644)
}

// fillKeybindings puts back default actions a partial file left out, so a
// file that only rebinds one key keeps the rest.
func fillKeybindings(cfg *UserConfig) {
	def := DefaultConfig().Keybindings
	merge := func(dst *map[string][]string, src map[string][]string) {
		if *dst == nil {
			*dst = map[string][]string{}
		}
		for action, keys := range src {
			if _, ok := (*dst)[action]; !ok {
				(*dst)[action] = keys
			}
		}
	}
	merge(&cfg.Keybindings.Tabs, def.Tabs)
	merge(&cfg.Keybindings.Layout, def.Layout)
	merge(&cfg.Keybindings.System, def.System)
}

// Validate clamps out-of-range values to usable ones.
func (c *UserConfig) Validate() {
	d := &c.Docking
	d.MinorTabWidth = clamp(d.MinorTabWidth, 4, 60)
	d.MajorTabWidth = clamp(d.MajorTabWidth, d.MinorTabWidth, 80)
	d.TabHeight = clamp(d.TabHeight, 1, 3)
	d.TabOverlap = clamp(d.TabOverlap, 0, d.MinorTabWidth/2)
	d.MaxPreview = clamp(d.MaxPreview, 10, 200)
	d.DragThreshold = clamp(d.DragThreshold, 1, 10)

	switch c.Appearance.BorderStyle {
	case "rounded", "normal", "thick", "double", "hidden":
	default:
		c.Appearance.BorderStyle = "rounded"
	}
	if c.Layout.Name == "" {
		c.Layout.Name = "default"
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// TabSizing converts the docking section to engine sizes.
func (d DockingConfig) TabSizing() dock.TabSizing {
	h := float64(d.TabHeight)
	return dock.TabSizing{
		Major:          dock.Size{W: float64(d.MajorTabWidth), H: h},
		Minor:          dock.Size{W: float64(d.MinorTabWidth), H: h},
		Nomad:          dock.Size{W: float64(d.MinorTabWidth), H: h},
		Overlap:        float64(d.TabOverlap),
		MaxPreview:     float64(d.MaxPreview),
		DefaultContent: dock.Size{W: 40, H: 12},
	}
}
