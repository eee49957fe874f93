// Package config handles global scribe configuration, machine-local state and
// per-project settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// AppName is the directory name used under the user's config directory.
const AppName = "scribe"

// ErrUnknownProject indicates a project name missing from config.toml.
var ErrUnknownProject = errors.New("project not found in config")

// Config represents the global scribe configuration.
type Config struct {
	// DefaultProject is the name of the default project (from Projects map).
	DefaultProject string `toml:"default_project"`

	// Projects maps project names to directories.
	Projects map[string]string `toml:"projects"`

	// StateFile overrides where state.toml lives. Relative paths are
	// resolved against the config file's directory.
	StateFile string `toml:"state_file"`

	// LogLevel is debug, info, warn or error. Empty means warn.
	LogLevel string `toml:"log_level"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an ANSI color code ("0" to "255") or a hex color ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered cards.
	CodeTheme string `toml:"code_theme"`
}

// ProjectPath returns the path for a named project.
// If name is empty, returns the default project path.
func (c *Config) ProjectPath(name string) (string, error) {
	if name == "" {
		name = c.DefaultProject
	}
	if name == "" {
		return "", fmt.Errorf("%w: no default project configured", ErrUnknownProject)
	}
	if path, ok := c.Projects[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProject, name)
}

// ProjectNames returns configured project names in sorted order.
func (c *Config) ProjectNames() []string {
	names := make([]string, 0, len(c.Projects))
	for name := range c.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddProject registers name at path, replacing any existing entry.
func (c *Config) AddProject(name, path string) {
	if c.Projects == nil {
		c.Projects = make(map[string]string)
	}
	c.Projects[name] = path
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom loads the configuration from a specific path.
// A missing file yields an empty config.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/scribe/config.toml first (XDG style),
// then falls back to the OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", AppName, "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, AppName, "config.toml")
	}
	return filepath.Join(".", "config.toml")
}
