// Package config handles loading and saving lv configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/lv/config.yaml
//   - State:   ~/.local/state/lv/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// UIConfig holds UI preference settings.
type UIConfig struct {
	Mouse         *bool `yaml:"mouse,omitempty"`          // Mouse support (default on)
	CollapseDepth *int  `yaml:"collapse_depth,omitempty"` // Folders at this depth or deeper start collapsed (default 1; -1 = all expanded)
	Preview       *bool `yaml:"preview,omitempty"`        // Markdown preview pane (default on)
}

// Config is the top-level configuration for lv.
type Config struct {
	DataPath string   `yaml:"data_path,omitempty"` // Default outline source (jsonl, yaml, or sqlite db)
	UI       UIConfig `yaml:"ui,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{}
}

// MouseEnabled resolves the mouse setting with its default.
func (c Config) MouseEnabled() bool {
	if c.UI.Mouse == nil {
		return true
	}
	return *c.UI.Mouse
}

// CollapseDepth resolves the initial collapse depth with its default:
// top-level folders open, everything deeper collapsed.
func (c Config) CollapseDepth() int {
	if c.UI.CollapseDepth == nil {
		return 1
	}
	return *c.UI.CollapseDepth
}

// PreviewEnabled resolves the preview pane setting with its default.
func (c Config) PreviewEnabled() bool {
	if c.UI.Preview == nil {
		return true
	}
	return *c.UI.Preview
}

// ConfigDir returns the XDG config directory for lv.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "lv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lv")
}

// StateDir returns the XDG state directory for lv.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "lv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "lv")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.DataPath = expandHome(cfg.DataPath)
	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
