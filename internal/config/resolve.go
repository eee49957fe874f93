package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoProject indicates no project could be resolved.
var ErrNoProject = errors.New("no project specified")

// Project resolution sources, reported by `scribe project current`.
const (
	SourceFlagPath = "flag:--project-path"
	SourceFlagName = "flag:--project"
	SourceActive   = "active_project"
	SourceDefault  = "default_project"
	SourceWorkDir  = "working_directory"
)

// ResolveOptions carries everything project resolution looks at.
type ResolveOptions struct {
	ProjectPath string
	ProjectName string
	Config      *Config
	State       *State

	// WorkDir is checked last; empty means the process working directory.
	WorkDir string
}

// ResolvedProject is the outcome of project resolution.
type ResolvedProject struct {
	Name   string `json:"name,omitempty"`
	Path   string `json:"path"`
	Source string `json:"source"`
}

// ResolveProject picks the project directory with precedence:
//  1. --project-path
//  2. --project name
//  3. active_project from state.toml
//  4. default_project from config.toml
//  5. the working directory, when it contains scribe.yaml
func ResolveProject(opts ResolveOptions) (ResolvedProject, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{}
	}

	if p := strings.TrimSpace(opts.ProjectPath); p != "" {
		return ResolvedProject{Path: absPath(p), Source: SourceFlagPath}, nil
	}
	if name := strings.TrimSpace(opts.ProjectName); name != "" {
		path, err := cfg.ProjectPath(name)
		if err != nil {
			return ResolvedProject{}, err
		}
		return ResolvedProject{Name: name, Path: absPath(path), Source: SourceFlagName}, nil
	}
	if opts.State != nil && opts.State.ActiveProject != "" {
		name := opts.State.ActiveProject
		path, err := cfg.ProjectPath(name)
		if err != nil {
			return ResolvedProject{}, fmt.Errorf("active project: %w", err)
		}
		return ResolvedProject{Name: name, Path: absPath(path), Source: SourceActive}, nil
	}
	if cfg.DefaultProject != "" {
		path, err := cfg.ProjectPath(cfg.DefaultProject)
		if err != nil {
			return ResolvedProject{}, fmt.Errorf("default project: %w", err)
		}
		return ResolvedProject{Name: cfg.DefaultProject, Path: absPath(path), Source: SourceDefault}, nil
	}

	wd := opts.WorkDir
	if wd == "" {
		var err error
		if wd, err = os.Getwd(); err != nil {
			return ResolvedProject{}, fmt.Errorf("%w: %v", ErrNoProject, err)
		}
	}
	if IsProject(wd) {
		return ResolvedProject{Path: absPath(wd), Source: SourceWorkDir}, nil
	}
	return ResolvedProject{}, fmt.Errorf("%w: use --project-path, --project, or run inside a directory with %s", ErrNoProject, ProjectFile)
}

func absPath(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
