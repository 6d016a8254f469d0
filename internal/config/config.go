// Package config handles configuration loading and defaults for taskmaster.
// Configuration is read from an XDG-compliant path, typically
// ~/.config/taskmaster/config.yaml; everything has a sensible default and
// the file is optional.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// DataFile overrides the default task file (~/.taskmaster.json)
	DataFile string `yaml:"data_file,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`
}

// ThemeConfig defines color settings. Values are hex colors, e.g. "#D97757".
type ThemeConfig struct {
	// Primary color for the title bar, selection marker, and progress bar
	Primary string `yaml:"primary,omitempty"`

	// Muted color for secondary text
	Muted string `yaml:"muted,omitempty"`

	// Text color for pending task descriptions
	Text string `yaml:"text,omitempty"`

	// Danger color for high priority and overdue indicators
	Danger string `yaml:"danger,omitempty"`

	// Warning color for medium priority and due-soon indicators
	Warning string `yaml:"warning,omitempty"`

	// Success color for done checkmarks
	Success string `yaml:"success,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts. Each field accepts a
// comma-separated list of key bindings, e.g. "q,ctrl+c" or "j,down".
type KeysConfig struct {
	Quit string `yaml:"quit,omitempty"` // default: "q,ctrl+c"
	Help string `yaml:"help,omitempty"` // default: "?"

	// Navigation keys
	Up     string `yaml:"up,omitempty"`     // default: "k,up"
	Down   string `yaml:"down,omitempty"`   // default: "j,down"
	Top    string `yaml:"top,omitempty"`    // default: "g"
	Bottom string `yaml:"bottom,omitempty"` // default: "G"

	// Task keys
	New      string `yaml:"new,omitempty"`      // default: "n"
	Edit     string `yaml:"edit,omitempty"`     // default: "e,enter"
	Delete   string `yaml:"delete,omitempty"`   // default: "d"
	Toggle   string `yaml:"toggle,omitempty"`   // default: "space"
	Priority string `yaml:"priority,omitempty"` // default: "p"
	DueDate  string `yaml:"due_date,omitempty"` // default: "u"
	Archive  string `yaml:"archive,omitempty"`  // default: "m"

	// View keys
	Search      string `yaml:"search,omitempty"`       // default: "s,/"
	CycleFilter string `yaml:"cycle_filter,omitempty"` // default: "tab"
	CycleSort   string `yaml:"cycle_sort,omitempty"`   // default: "r"
	ReverseSort string `yaml:"reverse_sort,omitempty"` // default: "R"

	// Input keys
	Confirm string `yaml:"confirm,omitempty"` // default: "enter"
	Cancel  string `yaml:"cancel,omitempty"`  // default: "esc"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// ConfirmDeletions shows a confirmation overlay before deleting a task
	ConfirmDeletions bool `yaml:"confirm_deletions,omitempty"` // default: true

	// DueSoonHours is the look-ahead window for the due-soon indicator
	DueSoonHours int `yaml:"due_soon_hours,omitempty"` // default: 24
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataFile: defaultDataFile(),
		Theme: ThemeConfig{
			Primary: "#D97757", // warm amber
			Muted:   "#6B7280",
			Text:    "",        // terminal default
			Danger:  "#EF4444",
			Warning: "#F59E0B",
			Success: "#10B981",
		},
		UX: UXConfig{
			ConfirmDeletions: true,
			DueSoonHours:     24,
		},
	}
}

// defaultDataFile returns the default task file path in the home directory.
func defaultDataFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskmaster.json"
	}
	return filepath.Join(home, ".taskmaster.json")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskmaster")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "taskmaster")
}

// configPath returns the path to the config file.
func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// rawConfig mirrors Config with pointers where absence must be
// distinguished from the zero value (booleans and numeric knobs).
type rawConfig struct {
	DataFile string      `yaml:"data_file"`
	Theme    ThemeConfig `yaml:"theme"`
	Keys     KeysConfig  `yaml:"keys"`
	UX       struct {
		ConfirmDeletions *bool `yaml:"confirm_deletions"`
		DueSoonHours     *int  `yaml:"due_soon_hours"`
	} `yaml:"ux"`
}

// Load reads configuration from disk, merging with defaults. A missing
// config file is not an error; a malformed one is.
func Load() (*Config, error) {
	path := configPath()
	if path == "" {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from an explicit path, merging with
// defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.merge(&raw)
	return cfg, nil
}

// merge applies values present in the user config over the defaults.
func (c *Config) merge(raw *rawConfig) {
	if raw.DataFile != "" {
		c.DataFile = expandHome(raw.DataFile)
	}

	mergeString(&c.Theme.Primary, raw.Theme.Primary)
	mergeString(&c.Theme.Muted, raw.Theme.Muted)
	mergeString(&c.Theme.Text, raw.Theme.Text)
	mergeString(&c.Theme.Danger, raw.Theme.Danger)
	mergeString(&c.Theme.Warning, raw.Theme.Warning)
	mergeString(&c.Theme.Success, raw.Theme.Success)

	// Key bindings: empty means "use built-in default", so a plain copy of
	// non-empty values is presence-aware enough.
	mergeString(&c.Keys.Quit, raw.Keys.Quit)
	mergeString(&c.Keys.Help, raw.Keys.Help)
	mergeString(&c.Keys.Up, raw.Keys.Up)
	mergeString(&c.Keys.Down, raw.Keys.Down)
	mergeString(&c.Keys.Top, raw.Keys.Top)
	mergeString(&c.Keys.Bottom, raw.Keys.Bottom)
	mergeString(&c.Keys.New, raw.Keys.New)
	mergeString(&c.Keys.Edit, raw.Keys.Edit)
	mergeString(&c.Keys.Delete, raw.Keys.Delete)
	mergeString(&c.Keys.Toggle, raw.Keys.Toggle)
	mergeString(&c.Keys.Priority, raw.Keys.Priority)
	mergeString(&c.Keys.DueDate, raw.Keys.DueDate)
	mergeString(&c.Keys.Archive, raw.Keys.Archive)
	mergeString(&c.Keys.Search, raw.Keys.Search)
	mergeString(&c.Keys.CycleFilter, raw.Keys.CycleFilter)
	mergeString(&c.Keys.CycleSort, raw.Keys.CycleSort)
	mergeString(&c.Keys.ReverseSort, raw.Keys.ReverseSort)
	mergeString(&c.Keys.Confirm, raw.Keys.Confirm)
	mergeString(&c.Keys.Cancel, raw.Keys.Cancel)

	if raw.UX.ConfirmDeletions != nil {
		c.UX.ConfirmDeletions = *raw.UX.ConfirmDeletions
	}
	if raw.UX.DueSoonHours != nil && *raw.UX.DueSoonHours > 0 {
		c.UX.DueSoonHours = *raw.UX.DueSoonHours
	}
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// expandHome resolves a leading "~/" against the user's home directory.
func expandHome(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
