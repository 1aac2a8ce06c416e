// Package config handles configuration loading and defaults for linkday.
// Configuration is loaded from XDG-compliant paths (typically
// ~/.config/linkday/config.yaml).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"linkday/internal/fsutil"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.linkday)
	DataDir string `yaml:"data_dir,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`
}

// ThemeConfig defines color settings (hex, e.g. "#7C3AED"). Empty values
// fall back to built-in defaults.
type ThemeConfig struct {
	Primary string `yaml:"primary,omitempty"`
	Accent  string `yaml:"accent,omitempty"`
	Muted   string `yaml:"muted,omitempty"`
	Danger  string `yaml:"danger,omitempty"`
	Text    string `yaml:"text,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts. Each field accepts
// a comma-separated list of key bindings, e.g. "q,ctrl+c" or "j,down".
type KeysConfig struct {
	Quit    string `yaml:"quit,omitempty"`     // default: "q,ctrl+c"
	Help    string `yaml:"help,omitempty"`     // default: "?"
	NextTab string `yaml:"next_tab,omitempty"` // default: "tab"

	// Day strip navigation
	PrevDay string `yaml:"prev_day,omitempty"` // default: "h,left"
	NextDay string `yaml:"next_day,omitempty"` // default: "l,right"

	// List navigation
	Up   string `yaml:"up,omitempty"`   // default: "k,up"
	Down string `yaml:"down,omitempty"` // default: "j,down"

	// Task operations
	Add     string `yaml:"add,omitempty"`      // default: "a"
	Edit    string `yaml:"edit,omitempty"`     // default: "e"
	Toggle  string `yaml:"toggle,omitempty"`   // default: "d,enter,space"
	Delete  string `yaml:"delete,omitempty"`   // default: "x"
	Link    string `yaml:"link,omitempty"`     // default: "L"
	Unlink  string `yaml:"unlink,omitempty"`   // default: "U"
	SetTime string `yaml:"set_time,omitempty"` // default: "t"

	// Hashtag filter
	Filter      string `yaml:"filter,omitempty"`       // default: "f"
	ClearFilter string `yaml:"clear_filter,omitempty"` // default: "F"

	// Input keys
	Confirm string `yaml:"confirm,omitempty"` // default: "enter"
	Cancel  string `yaml:"cancel,omitempty"`  // default: "esc"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// ConfirmDeletions shows a confirmation prompt before deleting tasks
	ConfirmDeletions bool `yaml:"confirm_deletions,omitempty"` // default: true

	// HighlightTags renders hashtags inside task text in the accent color
	HighlightTags bool `yaml:"highlight_tags,omitempty"` // default: true
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Theme: ThemeConfig{
			Primary: "#7C3AED", // Violet
			Accent:  "#10B981", // Emerald
			Muted:   "#6B7280", // Gray
			Danger:  "#EF4444", // Red
			Text:    "",        // Terminal default
		},
		UX: UXConfig{
			ConfirmDeletions: true,
			HighlightTags:    true,
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".linkday"
	}
	return filepath.Join(home, ".linkday")
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "linkday")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "linkday")
}

func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults. A missing
// config file yields the defaults.
func Load() (*Config, error) {
	cfg := Default()

	path := configPath()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, err
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; booleans stay defaulted if this fails

	cfg.merge(&userCfg, &doc)
	return cfg, nil
}

// merge applies user settings over the defaults. Strings apply when
// non-empty; booleans need the YAML document to tell "false" apart from
// "absent".
func (c *Config) merge(other *Config, doc *yaml.Node) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}

	for _, m := range []struct {
		dst *string
		src string
	}{
		{&c.Theme.Primary, other.Theme.Primary},
		{&c.Theme.Accent, other.Theme.Accent},
		{&c.Theme.Muted, other.Theme.Muted},
		{&c.Theme.Danger, other.Theme.Danger},
		{&c.Theme.Text, other.Theme.Text},
		{&c.Keys.Quit, other.Keys.Quit},
		{&c.Keys.Help, other.Keys.Help},
		{&c.Keys.NextTab, other.Keys.NextTab},
		{&c.Keys.PrevDay, other.Keys.PrevDay},
		{&c.Keys.NextDay, other.Keys.NextDay},
		{&c.Keys.Up, other.Keys.Up},
		{&c.Keys.Down, other.Keys.Down},
		{&c.Keys.Add, other.Keys.Add},
		{&c.Keys.Edit, other.Keys.Edit},
		{&c.Keys.Toggle, other.Keys.Toggle},
		{&c.Keys.Delete, other.Keys.Delete},
		{&c.Keys.Link, other.Keys.Link},
		{&c.Keys.Unlink, other.Keys.Unlink},
		{&c.Keys.SetTime, other.Keys.SetTime},
		{&c.Keys.Filter, other.Keys.Filter},
		{&c.Keys.ClearFilter, other.Keys.ClearFilter},
		{&c.Keys.Confirm, other.Keys.Confirm},
		{&c.Keys.Cancel, other.Keys.Cancel},
	} {
		if m.src != "" {
			*m.dst = m.src
		}
	}

	if yamlHasPath(doc, "ux", "confirm_deletions") {
		c.UX.ConfirmDeletions = other.UX.ConfirmDeletions
	}
	if yamlHasPath(doc, "ux", "highlight_tags") {
		c.UX.HighlightTags = other.UX.HighlightTags
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Kind == yaml.ScalarNode && n.Content[i].Value == key {
				next = n.Content[i+1]
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := configPath()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return fsutil.WriteAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path, expanding a
// leading "~".
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	if c.DataDir == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return c.DataDir
	}
	if strings.HasPrefix(c.DataDir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(c.DataDir, "~/"))
		}
	}
	return c.DataDir
}
