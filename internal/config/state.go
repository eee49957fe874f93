package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/scribe/internal/atomicfile"
)

// StateVersion is the current state.toml schema version. Version 1 files
// carry no export history and load unchanged.
const StateVersion = 2

const stateFileName = "state.toml"

// State is machine-local runtime state kept next to config.toml: which
// project is active and where each project was last exported.
type State struct {
	Version       int               `toml:"version"`
	ActiveProject string            `toml:"active_project,omitempty"`
	LastExports   map[string]string `toml:"last_exports,omitempty"`
}

// RecordExport remembers file as the latest export of the project at
// projectPath.
func (s *State) RecordExport(projectPath, file string) {
	key := filepath.Clean(projectPath)
	if s.LastExports == nil {
		s.LastExports = make(map[string]string)
	}
	s.LastExports[key] = file
}

// LastExport returns the latest export recorded for projectPath, or "".
func (s *State) LastExport(projectPath string) string {
	if s == nil || projectPath == "" {
		return ""
	}
	return s.LastExports[filepath.Clean(projectPath)]
}

// ResolveConfigPath returns the override when set, else DefaultPath().
func ResolveConfigPath(explicitConfigPath string) string {
	if p := strings.TrimSpace(explicitConfigPath); p != "" {
		return p
	}
	return DefaultPath()
}

// ResolveStatePath picks the state file: the --state flag, then state_file
// from config.toml (relative paths are taken from the config directory),
// then state.toml beside config.toml.
func ResolveStatePath(explicitStatePath, configPath string, cfg *Config) string {
	if p := strings.TrimSpace(explicitStatePath); p != "" {
		return p
	}
	configDir := filepath.Dir(ResolveConfigPath(configPath))
	fromConfig := ""
	if cfg != nil {
		fromConfig = filepath.FromSlash(strings.TrimSpace(cfg.StateFile))
	}
	switch {
	case fromConfig == "":
		return filepath.Join(configDir, stateFileName)
	case filepath.IsAbs(fromConfig) || strings.HasPrefix(fromConfig, string(filepath.Separator)):
		return filepath.Clean(fromConfig)
	default:
		return filepath.Join(configDir, fromConfig)
	}
}

// LoadState reads path. A missing file yields an empty current-version
// state.
func LoadState(path string) (*State, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("state path is required")
	}
	state := &State{}
	if _, err := toml.DecodeFile(path, state); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to parse state %s: %w", path, err)
		}
	}
	state.normalize()
	return state, nil
}

// SaveState writes state to path atomically, creating the directory.
func SaveState(path string, state *State) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("state path is required")
	}
	out := &State{}
	if state != nil {
		out.ActiveProject = state.ActiveProject
		out.LastExports = state.LastExports
	}
	out.normalize()

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write state %s: %w", path, err)
	}
	return nil
}

func (s *State) normalize() {
	s.Version = StateVersion
	s.ActiveProject = strings.TrimSpace(s.ActiveProject)
	for k, v := range s.LastExports {
		if strings.TrimSpace(v) == "" {
			delete(s.LastExports, k)
		}
	}
	if len(s.LastExports) == 0 {
		s.LastExports = nil
	}
}
