package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/scribe/internal/atomicfile"
)

const configHeader = `# scribe configuration
# 'scribe project add' and 'scribe init --name' update [projects].

`

// onDisk is the written shape of Config: blank settings are dropped so a
// fresh file lists only what the user set.
type onDisk struct {
	DefaultProject *string           `toml:"default_project,omitempty"`
	StateFile      *string           `toml:"state_file,omitempty"`
	LogLevel       *string           `toml:"log_level,omitempty"`
	Projects       map[string]string `toml:"projects,omitempty"`
	UI             *onDiskUI         `toml:"ui,omitempty"`
}

type onDiskUI struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
}

func setting(value string) *string {
	if v := strings.TrimSpace(value); v != "" {
		return &v
	}
	return nil
}

func (c *Config) onDisk() onDisk {
	out := onDisk{
		DefaultProject: setting(c.DefaultProject),
		StateFile:      setting(c.StateFile),
		LogLevel:       setting(c.LogLevel),
	}
	for name, path := range c.Projects {
		if setting(name) == nil || setting(path) == nil {
			continue
		}
		if out.Projects == nil {
			out.Projects = make(map[string]string, len(c.Projects))
		}
		out.Projects[strings.TrimSpace(name)] = strings.TrimSpace(path)
	}
	ui := onDiskUI{Accent: setting(c.UI.Accent), CodeTheme: setting(c.UI.CodeTheme)}
	if ui != (onDiskUI{}) {
		out.UI = &ui
	}
	return out
}

// SaveTo writes cfg to path atomically, creating the directory.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	if err := toml.NewEncoder(&buf).Encode(cfg.onDisk()); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
